package grid

// Snapshot is the full two-level dataset considered shown by the view:
// an ordered sequence of sections, each an ordered sequence of rows.
//
// A snapshot is replaced wholesale on every update and never mutated in
// place. The binder deep-copies snapshots on ingest, so callers are free to
// reuse or mutate their slices afterwards.
type Snapshot[T comparable] [][]T

// SectionCount returns the number of sections.
func (s Snapshot[T]) SectionCount() int {
	return len(s)
}

// RowCount returns the total number of rows across all sections.
func (s Snapshot[T]) RowCount() int {
	total := 0
	for _, section := range s {
		total += len(section)
	}
	return total
}

// clone deep-copies the snapshot so the binder owns it exclusively.
func (s Snapshot[T]) clone() Snapshot[T] {
	if s == nil {
		return nil
	}
	out := make(Snapshot[T], len(s))
	for i, section := range s {
		out[i] = make([]T, len(section))
		copy(out[i], section)
	}
	return out
}
