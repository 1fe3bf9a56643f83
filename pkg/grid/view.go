package grid

// View is the grid or list widget driven by a Binder.
//
// Implementations own rendering, layout and cell recycling. The binder only
// issues structural commands and expects the widget to query counts and
// cells back through the DataSource it was attached to.
//
// PerformBatchEdits must be atomic: every edit queued by the edits closure
// takes effect together with the snapshot swap that closes the batch, or,
// should the widget's batch mechanism fail, none of them are observably
// committed. The completion callback may be nil.
type View interface {
	// ReloadAll discards the displayed state and re-queries everything.
	ReloadAll()

	// PerformBatchEdits runs edits, applying every queued structural change
	// as one atomic batch, then invokes completion.
	PerformBatchEdits(edits func(), completion func())

	// InsertRows inserts rows at the given addresses. Addresses refer to
	// positions in the data as it stands once the batch closes.
	InsertRows(at []Address)

	// DeleteRows removes the rows at the given addresses. Addresses refer to
	// positions in the data as it stood when the batch opened.
	DeleteRows(at []Address)
}

// DataSource is the read-only query surface a view consumes.
// Binder implements it; views hold it to answer count and content queries.
type DataSource interface {
	// SectionCount returns the number of sections, 0 before the first update.
	SectionCount() int

	// ItemCount returns the number of rows in the given section.
	// The section index must be in range.
	ItemCount(section int) int

	// Cell returns the display value for the row at the given address.
	Cell(at Address) Cell
}

// CellDequeuer is implemented by views that recycle cells by reuse
// identifier. ConfiguredCellFactory requires the bound view to provide it.
type CellDequeuer interface {
	// DequeueCell returns a fresh or recycled cell for the identifier.
	DequeueCell(identifier string, at Address) Cell
}
