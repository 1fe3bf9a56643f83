// Package gridtest provides an in-memory grid view for testing binders.
//
// The View records every structural command it receives and maintains the
// per-section row counts a real widget would display. On every batch close
// and every unbatched edit it checks the widget's core invariant (displayed
// count plus insertions minus deletions must equal the data source's
// reported count) and panics on violation, exactly as a production view
// widget would raise a fatal inconsistency error.
//
//	view := gridtest.NewView()
//	binder := grid.New[string]()
//	binder.Bind(view)
//	view.Attach(binder)
//
//	binder.UpdateCollection(grid.Snapshot[string]{{"A", "B"}})
//	if view.Reloads != 1 {
//	    t.Errorf("Reloads = %d, want 1", view.Reloads)
//	}
package gridtest
