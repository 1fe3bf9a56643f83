package gridtest

import (
	"fmt"

	"github.com/gridbind-dev/gridbind/pkg/grid"
)

// View is an in-memory grid view that records structural commands and
// enforces the count-consistency invariant of a real widget.
type View struct {
	// Reloads counts ReloadAll calls.
	Reloads int

	// Batches counts completed PerformBatchEdits calls.
	Batches int

	// Inserted and Deleted accumulate every address ever passed to
	// InsertRows and DeleteRows, in call order.
	Inserted []grid.Address
	Deleted  []grid.Address

	// Completions counts completion callbacks invoked by batches.
	Completions int

	source grid.DataSource

	// counts is the displayed rows-per-section state.
	counts []int

	inBatch        bool
	pendingInserts []grid.Address
	pendingDeletes []grid.Address

	dequeued map[string]int
}

// NewView creates an empty view with no attached data source.
func NewView() *View {
	return &View{dequeued: make(map[string]int)}
}

// Attach sets the data source the view queries for counts and cells.
func (v *View) Attach(source grid.DataSource) {
	v.source = source
}

// RowCount returns the number of rows the view currently displays for the
// given section.
func (v *View) RowCount(section int) int {
	if section < 0 || section >= len(v.counts) {
		return 0
	}
	return v.counts[section]
}

// DisplayedSections returns the number of sections the view currently displays.
func (v *View) DisplayedSections() int {
	return len(v.counts)
}

// ReloadAll implements grid.View by re-querying all counts from the source.
func (v *View) ReloadAll() {
	v.Reloads++
	v.counts = v.counts[:0]
	if v.source == nil {
		return
	}
	for section := 0; section < v.source.SectionCount(); section++ {
		v.counts = append(v.counts, v.source.ItemCount(section))
	}
}

// PerformBatchEdits implements grid.View. Edits queued by the closure are
// applied together when it returns, then validated against the source.
func (v *View) PerformBatchEdits(edits func(), completion func()) {
	if v.inBatch {
		panic("gridtest: nested batch edits")
	}
	v.inBatch = true
	v.pendingInserts = v.pendingInserts[:0]
	v.pendingDeletes = v.pendingDeletes[:0]

	edits()

	v.inBatch = false
	v.applyPending()
	v.Batches++

	if completion != nil {
		v.Completions++
		completion()
	}
}

// InsertRows implements grid.View.
func (v *View) InsertRows(at []grid.Address) {
	v.Inserted = append(v.Inserted, at...)
	if v.inBatch {
		v.pendingInserts = append(v.pendingInserts, at...)
		return
	}
	v.pendingInserts = append(v.pendingInserts[:0], at...)
	v.pendingDeletes = v.pendingDeletes[:0]
	v.applyPending()
}

// DeleteRows implements grid.View.
func (v *View) DeleteRows(at []grid.Address) {
	v.Deleted = append(v.Deleted, at...)
	if v.inBatch {
		v.pendingDeletes = append(v.pendingDeletes, at...)
		return
	}
	v.pendingDeletes = append(v.pendingDeletes[:0], at...)
	v.pendingInserts = v.pendingInserts[:0]
	v.applyPending()
}

// DequeueCell implements grid.CellDequeuer, handing out fresh TextCells and
// counting dequeues per identifier.
func (v *View) DequeueCell(identifier string, at grid.Address) grid.Cell {
	v.dequeued[identifier]++
	return &TextCell{Identifier: identifier}
}

// Dequeues returns how many cells were dequeued for the identifier.
func (v *View) Dequeues(identifier string) int {
	return v.dequeued[identifier]
}

// applyPending applies queued deletes and inserts to the displayed counts
// and verifies the result against the data source. Delete offsets address
// positions as of batch open, insert offsets positions as of batch close.
func (v *View) applyPending() {
	before := make([]int, len(v.counts))
	copy(before, v.counts)

	for _, addr := range v.pendingDeletes {
		if addr.Section < 0 || addr.Section >= len(v.counts) {
			panic(fmt.Sprintf("gridtest: delete in unknown section %s", addr))
		}
		if addr.Row < 0 || addr.Row >= before[addr.Section] {
			panic(fmt.Sprintf("gridtest: delete of row %s beyond displayed count %d",
				addr, before[addr.Section]))
		}
		v.counts[addr.Section]--
	}
	for _, addr := range v.pendingInserts {
		if addr.Section < 0 || addr.Section >= len(v.counts) {
			panic(fmt.Sprintf("gridtest: insert in unknown section %s", addr))
		}
		v.counts[addr.Section]++
	}
	for _, addr := range v.pendingInserts {
		if addr.Row < 0 || addr.Row >= v.counts[addr.Section] {
			panic(fmt.Sprintf("gridtest: insert of row %s beyond resulting count %d",
				addr, v.counts[addr.Section]))
		}
	}
	v.pendingDeletes = v.pendingDeletes[:0]
	v.pendingInserts = v.pendingInserts[:0]

	v.validate()
}

// validate panics when the displayed counts disagree with the data source,
// the fatal inconsistency a real view widget raises.
func (v *View) validate() {
	if v.source == nil {
		return
	}
	if got, want := len(v.counts), v.source.SectionCount(); got != want {
		panic(fmt.Sprintf(
			"gridtest: inconsistent edit batch: view displays %d sections, data source reports %d",
			got, want))
	}
	for section, count := range v.counts {
		if want := v.source.ItemCount(section); count != want {
			panic(fmt.Sprintf(
				"gridtest: inconsistent edit batch: section %d displays %d rows, data source reports %d",
				section, count, want))
		}
	}
}

// TextCell is the cell type handed out by DequeueCell. Configurators fill
// Content; tests assert on it.
type TextCell struct {
	Identifier string
	Content    string
}

// String returns the cell content.
func (c *TextCell) String() string {
	return c.Content
}
