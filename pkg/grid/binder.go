package grid

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gridbind-dev/gridbind/pkg/seqdiff"
)

// Binder owns the snapshot a view displays and reconciles it against
// incoming snapshots, translating per-section edit scripts into batched
// row insertions and deletions on the bound view.
//
// The zero value is not usable; construct with New.
type Binder[T comparable] struct {
	view View

	snapshot    Snapshot[T]
	hasSnapshot bool

	animated    bool
	cellFactory CellFactory[T]
	extras      Extras
	observers   []Observer
	completion  func()
	logger      *slog.Logger
}

// Option configures a Binder.
type Option[T comparable] func(*Binder[T])

// WithAnimated sets the animated flag. When false, every update takes the
// full-reload path. Default: true.
func WithAnimated[T comparable](animated bool) Option[T] {
	return func(b *Binder[T]) {
		b.animated = animated
	}
}

// WithCellFactory sets the factory invoked for each visible-row query.
// Without a factory, Cell returns the raw item.
func WithCellFactory[T comparable](factory CellFactory[T]) Option[T] {
	return func(b *Binder[T]) {
		b.cellFactory = factory
	}
}

// WithConfiguredCells is shorthand for WithCellFactory(ConfiguredCellFactory(...)).
func WithConfiguredCells[T comparable](identifier string, configure CellConfigurator[T]) Option[T] {
	return func(b *Binder[T]) {
		b.cellFactory = ConfiguredCellFactory(identifier, configure)
	}
}

// WithExtras sets the fallback delegate for capabilities the binder does not
// implement itself.
func WithExtras[T comparable](extras Extras) Option[T] {
	return func(b *Binder[T]) {
		b.extras = extras
	}
}

// WithObserver registers an update lifecycle observer. May be given multiple
// times; observers run in registration order.
func WithObserver[T comparable](observer Observer) Option[T] {
	return func(b *Binder[T]) {
		b.observers = append(b.observers, observer)
	}
}

// WithCompletion sets a hook invoked after each update has been handed to
// the view: after the batch closed on the patch path, after the reload
// request on the fallback path.
func WithCompletion[T comparable](completion func()) Option[T] {
	return func(b *Binder[T]) {
		b.completion = completion
	}
}

// WithLogger sets the logger for update decisions. Default: slog.Default.
func WithLogger[T comparable](logger *slog.Logger) Option[T] {
	return func(b *Binder[T]) {
		b.logger = logger
	}
}

// New creates a Binder with no snapshot. Animation defaults to on.
func New[T comparable](opts ...Option[T]) *Binder[T] {
	b := &Binder[T]{
		animated: true,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default().With("component", "grid")
	}
	return b
}

// Bind associates the view that receives count queries and batch edits.
// Must be called before the first update or query.
func (b *Binder[T]) Bind(view View) {
	b.view = view
}

// View returns the bound view, or nil before Bind.
func (b *Binder[T]) View() View {
	return b.view
}

// Animated reports whether updates may take the animated patch path.
func (b *Binder[T]) Animated() bool {
	return b.animated
}

// SetAnimated toggles the animated patch path at runtime.
func (b *Binder[T]) SetAnimated(animated bool) {
	b.animated = animated
}

// UpdateCollection replaces the current snapshot with next and brings the
// bound view up to date, either by a per-section patch batch or by a full
// reload when the coarse shape rules patching out.
func (b *Binder[T]) UpdateCollection(next Snapshot[T]) {
	b.UpdateCollectionContext(context.Background(), next)
}

// UpdateCollectionContext is UpdateCollection with a caller context, which
// flows through the registered observers.
func (b *Binder[T]) UpdateCollectionContext(ctx context.Context, next Snapshot[T]) {
	if b.view == nil {
		panic("grid: UpdateCollection before Bind")
	}

	next = next.clone()

	for _, o := range b.observers {
		ctx = o.UpdateStarted(ctx, next.SectionCount())
	}
	start := time.Now()

	// Per-section patching is only meaningful when the section structure is
	// stable: same section count, a previous snapshot to diff against, and
	// animation enabled.
	if !b.animated || !b.hasSnapshot || next.SectionCount() != b.snapshot.SectionCount() {
		b.logger.Debug("full reload",
			"animated", b.animated,
			"had_snapshot", b.hasSnapshot,
			"sections", next.SectionCount())

		b.snapshot = next
		b.hasSnapshot = true
		b.view.ReloadAll()
		b.finish(ctx, UpdateStats{
			Reloaded: true,
			Sections: next.SectionCount(),
			Duration: time.Since(start),
		})
		return
	}

	var inserted, deleted int
	b.view.PerformBatchEdits(func() {
		for section := range b.snapshot {
			script := seqdiff.Diff(b.snapshot[section], next[section])
			if script.Empty() {
				continue
			}
			if len(script.Removals) > 0 {
				b.view.DeleteRows(addresses(section, script.Removals))
				deleted += len(script.Removals)
			}
			if len(script.Insertions) > 0 {
				b.view.InsertRows(addresses(section, script.Insertions))
				inserted += len(script.Insertions)
			}
		}

		// The swap must happen inside the batch: a re-entrant count query
		// from the view has to see numbers consistent with the queued edits.
		b.snapshot = next
	}, b.completion)

	b.logger.Debug("batched update",
		"sections", next.SectionCount(),
		"inserted", inserted,
		"deleted", deleted)

	b.finish(ctx, UpdateStats{
		Sections:     next.SectionCount(),
		RowsInserted: inserted,
		RowsDeleted:  deleted,
		Duration:     time.Since(start),
	})
}

// finish notifies observers and, on the reload path, the completion hook.
func (b *Binder[T]) finish(ctx context.Context, stats UpdateStats) {
	if stats.Reloaded && b.completion != nil {
		b.completion()
	}
	for _, o := range b.observers {
		o.UpdateApplied(ctx, stats)
	}
}

// SectionCount returns 0 before the first update, else the section count of
// the current snapshot.
func (b *Binder[T]) SectionCount() int {
	if !b.hasSnapshot {
		return 0
	}
	return b.snapshot.SectionCount()
}

// ItemCount returns the row count of the given section. The section index
// must be in range; an out-of-range index is a caller bug and panics.
func (b *Binder[T]) ItemCount(section int) int {
	if section < 0 || section >= b.SectionCount() {
		panic(fmt.Sprintf("grid: section %d out of range (%d sections)", section, b.SectionCount()))
	}
	return len(b.snapshot[section])
}

// Item returns the data value at the given address. The address must be in
// range; an out-of-range address is a caller bug and panics.
func (b *Binder[T]) Item(at Address) T {
	count := b.ItemCount(at.Section)
	if at.Row < 0 || at.Row >= count {
		panic(fmt.Sprintf("grid: row %s out of range (%d rows)", at, count))
	}
	return b.snapshot[at.Section][at.Row]
}

// Cell returns the display value for the row at the given address, built by
// the cell factory. Without a factory the raw item is returned.
func (b *Binder[T]) Cell(at Address) Cell {
	item := b.Item(at)
	if b.cellFactory == nil {
		return item
	}
	return b.cellFactory(b, b.view, at, item)
}

// addresses pairs each row offset with a section index.
func addresses(section int, rows []int) []Address {
	out := make([]Address, len(rows))
	for i, row := range rows {
		out[i] = Address{Section: section, Row: row}
	}
	return out
}
