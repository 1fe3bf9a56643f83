package grid

import (
	"context"
	"time"
)

// UpdateStats describes one applied UpdateCollection call.
type UpdateStats struct {
	// Reloaded is true when the update took the full-reload path.
	Reloaded bool

	// Sections is the section count of the new snapshot.
	Sections int

	// RowsInserted and RowsDeleted count the row edits applied across all
	// sections. Both are zero on the reload path.
	RowsInserted int
	RowsDeleted  int

	// Duration is the wall time spent diffing and applying the update.
	Duration time.Duration
}

// Observer receives update lifecycle notifications from a Binder.
//
// UpdateStarted runs before diffing begins and may derive a new context
// (for example to start a trace span); the returned context is passed to
// UpdateApplied once the batch has closed. Observers run in registration
// order, threading the context through.
type Observer interface {
	UpdateStarted(ctx context.Context, sections int) context.Context
	UpdateApplied(ctx context.Context, stats UpdateStats)
}
