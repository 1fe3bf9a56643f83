// Package grid binds a two-level nested collection to a grid or list view.
//
// A Binder owns the Snapshot currently on display, an ordered sequence of
// sections each holding an ordered sequence of rows, and answers the view's count
// and content queries from it. When the caller pushes a new snapshot, the
// binder diffs each section against its predecessor and applies the resulting
// row insertions and removals to the view inside a single batch, so the view
// never observes a half-applied state.
//
// # Update Protocol
//
// UpdateCollection takes the animated patch path only when the coarse shape
// of the data allows it: a prior snapshot exists, the section count is
// unchanged, and animation is enabled. Otherwise the binder swaps the
// snapshot and asks the view for one full reload. On the patch path, all row
// edits for all sections are queued inside one PerformBatchEdits call, and
// the snapshot swap happens inside that same batch, so any re-entrant count
// query from the view observes counts consistent with the queued edits.
//
// # View Contract
//
// The View is external: rendering, cell recycling, layout and animation are
// its business. The binder requires only that PerformBatchEdits is atomic
// (all queued edits take effect together, or none observably do) and that
// the view re-queries counts and cells for affected rows afterwards.
//
// # Concurrency
//
// The binder is not safe for concurrent use. All operations must run on the
// logical thread that owns the view; callers serialize UpdateCollection.
//
//	binder := grid.New[string]()
//	binder.Bind(view)
//	binder.UpdateCollection(grid.Snapshot[string]{{"A", "B"}, {"C"}})
package grid
