// Package gridbind provides the public API for the gridbind library.
//
// This is the recommended import for most applications:
//
//	import "github.com/gridbind-dev/gridbind"
//
// Usage:
//
//	binder := gridbind.New[Row](gridbind.WithAnimated[Row](true))
//	binder.Bind(view)
//	binder.UpdateCollection(snapshot)
package gridbind

import (
	"github.com/gridbind-dev/gridbind/pkg/grid"
	"github.com/gridbind-dev/gridbind/pkg/seqdiff"
)

// =============================================================================
// Core types (re-export from pkg/grid)
// =============================================================================

// Binder keeps a collection view in sync with immutable data snapshots.
type Binder[T comparable] = grid.Binder[T]

// Snapshot is sectioned row data: one slice of rows per section.
type Snapshot[T comparable] = grid.Snapshot[T]

// Address identifies a row by section and row offset.
type Address = grid.Address

// View is the collection view surface a Binder drives.
type View = grid.View

// DataSource answers the view's count and cell queries.
type DataSource = grid.DataSource

// Extras is the optional delegate surface for editing and moving rows.
type Extras = grid.Extras

// Observer receives update lifecycle notifications.
type Observer = grid.Observer

// UpdateStats summarizes one applied update.
type UpdateStats = grid.UpdateStats

// Option configures a Binder.
type Option[T comparable] = grid.Option[T]

// New creates a Binder.
func New[T comparable](opts ...Option[T]) *Binder[T] {
	return grid.New(opts...)
}

// Addr constructs an Address.
func Addr(section, row int) Address {
	return grid.Addr(section, row)
}

// =============================================================================
// Binder options (re-export from pkg/grid)
// =============================================================================

// WithAnimated controls whether updates are applied as batched edits.
func WithAnimated[T comparable](animated bool) Option[T] {
	return grid.WithAnimated[T](animated)
}

// WithExtras sets the optional editing/moving delegate.
func WithExtras[T comparable](extras Extras) Option[T] {
	return grid.WithExtras[T](extras)
}

// WithObserver registers an update observer.
func WithObserver[T comparable](observer Observer) Option[T] {
	return grid.WithObserver[T](observer)
}

// WithCompletion sets the hook invoked after each applied update.
func WithCompletion[T comparable](completion func()) Option[T] {
	return grid.WithCompletion[T](completion)
}

// =============================================================================
// Diffing (re-export from pkg/seqdiff)
// =============================================================================

// Script is a minimal edit script between two sequences.
type Script = seqdiff.Script

// Diff computes the minimal insertion/removal script turning old into new.
func Diff[T comparable](old, new []T) Script {
	return seqdiff.Diff(old, new)
}
