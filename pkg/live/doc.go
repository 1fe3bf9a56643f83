// Package live drives remote grid views over WebSocket connections.
//
// View implements grid.View for a display surface that lives on the other
// side of the network: each attached client holds a rendered copy of the
// snapshot and receives full snapshots on reload and atomic edit batches on
// patched updates, framed with the protocol package.
//
// A View validates the same count-consistency invariant a local widget
// would: after every batch, the displayed row counts must match what the
// bound data source reports, and a violation is a fatal programming error.
//
//	view := live.NewView()
//	binder := grid.New[string]()
//	binder.Bind(view)
//	view.Attach(binder)
//
//	r := chi.NewRouter()
//	r.Handle("/grid/ws", view.Handler())
//
// Binder operations stay single-threaded, and the data source is read only
// on the binder's goroutine. Sessions come and go on HTTP goroutines, so
// the View keeps its own rendered copy of the displayed rows and guards it
// internally; attaching clients and resync requests are served from that
// copy, never from the data source.
package live
