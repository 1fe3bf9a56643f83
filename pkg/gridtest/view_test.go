package gridtest

import (
	"testing"

	"github.com/gridbind-dev/gridbind/pkg/grid"
)

// staticSource is a fixed DataSource for exercising the view directly.
type staticSource struct {
	sections [][]string
}

func (s *staticSource) SectionCount() int { return len(s.sections) }

func (s *staticSource) ItemCount(section int) int { return len(s.sections[section]) }

func (s *staticSource) Cell(at grid.Address) grid.Cell { return s.sections[at.Section][at.Row] }

func TestReloadAdoptsSourceCounts(t *testing.T) {
	view := NewView()
	view.Attach(&staticSource{sections: [][]string{{"a", "b"}, {"c"}}})

	view.ReloadAll()

	if got := view.DisplayedSections(); got != 2 {
		t.Fatalf("DisplayedSections() = %d, want 2", got)
	}
	if got := view.RowCount(0); got != 2 {
		t.Errorf("RowCount(0) = %d, want 2", got)
	}
	if got := view.RowCount(1); got != 1 {
		t.Errorf("RowCount(1) = %d, want 1", got)
	}
}

func TestBatchAppliesQueuedEdits(t *testing.T) {
	source := &staticSource{sections: [][]string{{"a", "b"}}}
	view := NewView()
	view.Attach(source)
	view.ReloadAll()

	view.PerformBatchEdits(func() {
		view.DeleteRows([]grid.Address{grid.Addr(0, 0)})
		view.InsertRows([]grid.Address{grid.Addr(0, 0), grid.Addr(0, 2)})
		source.sections = [][]string{{"x", "b", "y"}}
	}, nil)

	if got := view.RowCount(0); got != 3 {
		t.Errorf("RowCount(0) = %d, want 3", got)
	}
	if view.Batches != 1 {
		t.Errorf("Batches = %d, want 1", view.Batches)
	}
}

func TestInconsistentBatchPanics(t *testing.T) {
	source := &staticSource{sections: [][]string{{"a", "b"}}}
	view := NewView()
	view.Attach(source)
	view.ReloadAll()

	defer func() {
		if recover() == nil {
			t.Error("batch leaving counts inconsistent with source did not panic")
		}
	}()

	// One delete with no matching change in the source data: the displayed
	// count no longer matches the source's reported count.
	view.PerformBatchEdits(func() {
		view.DeleteRows([]grid.Address{grid.Addr(0, 0)})
	}, nil)
}

func TestDeleteBeyondDisplayedCountPanics(t *testing.T) {
	source := &staticSource{sections: [][]string{{"a"}}}
	view := NewView()
	view.Attach(source)
	view.ReloadAll()

	defer func() {
		if recover() == nil {
			t.Error("delete beyond displayed count did not panic")
		}
	}()

	view.PerformBatchEdits(func() {
		view.DeleteRows([]grid.Address{grid.Addr(0, 4)})
	}, nil)
}

func TestNestedBatchPanics(t *testing.T) {
	view := NewView()
	view.Attach(&staticSource{})
	view.ReloadAll()

	defer func() {
		if recover() == nil {
			t.Error("nested PerformBatchEdits did not panic")
		}
	}()

	view.PerformBatchEdits(func() {
		view.PerformBatchEdits(func() {}, nil)
	}, nil)
}

func TestDequeueHandsOutTextCells(t *testing.T) {
	view := NewView()

	cell := view.DequeueCell("row", grid.Addr(0, 0))
	if _, ok := cell.(*TextCell); !ok {
		t.Fatalf("DequeueCell returned %T, want *TextCell", cell)
	}
	if view.Dequeues("row") != 1 {
		t.Errorf("Dequeues(row) = %d, want 1", view.Dequeues("row"))
	}
}
