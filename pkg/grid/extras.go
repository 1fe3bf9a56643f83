package grid

// Extras covers view capabilities the binder itself does not implement.
//
// The binder forwards these enumerated queries verbatim to the delegate set
// with WithExtras. With no delegate, every capability is unsupported: the
// boolean queries answer false, SectionIndexTitles answers nil, and the
// mutating calls are ignored.
type Extras interface {
	// CanMoveRow reports whether the row may be reordered by the user.
	CanMoveRow(at Address) bool

	// MoveRow commits a user-driven reorder from one address to another.
	MoveRow(from, to Address)

	// CanEditRow reports whether the row supports edit actions.
	CanEditRow(at Address) bool

	// CommitRowDeletion commits a user-driven row deletion.
	CommitRowDeletion(at Address)

	// SectionIndexTitles returns the fast-scrubbing index titles, or nil.
	SectionIndexTitles() []string
}

// CanMoveRow forwards to the extras delegate; false without one.
func (b *Binder[T]) CanMoveRow(at Address) bool {
	if b.extras == nil {
		return false
	}
	return b.extras.CanMoveRow(at)
}

// MoveRow forwards to the extras delegate; no-op without one.
func (b *Binder[T]) MoveRow(from, to Address) {
	if b.extras == nil {
		return
	}
	b.extras.MoveRow(from, to)
}

// CanEditRow forwards to the extras delegate; false without one.
func (b *Binder[T]) CanEditRow(at Address) bool {
	if b.extras == nil {
		return false
	}
	return b.extras.CanEditRow(at)
}

// CommitRowDeletion forwards to the extras delegate; no-op without one.
func (b *Binder[T]) CommitRowDeletion(at Address) {
	if b.extras == nil {
		return
	}
	b.extras.CommitRowDeletion(at)
}

// SectionIndexTitles forwards to the extras delegate; nil without one.
func (b *Binder[T]) SectionIndexTitles() []string {
	if b.extras == nil {
		return nil
	}
	return b.extras.SectionIndexTitles()
}
