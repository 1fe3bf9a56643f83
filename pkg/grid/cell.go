package grid

// Cell is whatever the view displays for one row. The binder never inspects
// it; cells flow from the factory straight back to the querying view.
type Cell any

// CellFactory builds the cell for one row. It is invoked once per
// visible-row query and must not mutate binder state.
type CellFactory[T comparable] func(binder *Binder[T], view View, at Address, item T) Cell

// CellConfigurator fills a dequeued cell with a row's data.
type CellConfigurator[T comparable] func(cell Cell, at Address, item T)

// ConfiguredCellFactory wires a reuse-identifier dequeue plus configuration
// into a CellFactory. The bound view must implement CellDequeuer; asking a
// view without cell recycling for a dequeued cell is a caller error.
func ConfiguredCellFactory[T comparable](identifier string, configure CellConfigurator[T]) CellFactory[T] {
	return func(binder *Binder[T], view View, at Address, item T) Cell {
		dq, ok := view.(CellDequeuer)
		if !ok {
			panic("grid: view does not support cell dequeuing")
		}
		cell := dq.DequeueCell(identifier, at)
		configure(cell, at, item)
		return cell
	}
}
