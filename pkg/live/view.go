package live

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gridbind-dev/gridbind/pkg/grid"
	"github.com/gridbind-dev/gridbind/pkg/protocol"
)

// View is a grid view whose display surface is a set of remote WebSocket
// clients. It implements grid.View.
//
// The data source is only ever read on the goroutine driving the binder.
// Sessions attach and request resyncs on HTTP goroutines, so the view keeps
// its own rendered copy of the displayed rows; everything those goroutines
// touch is guarded by stateMu.
type View struct {
	config Config
	logger *slog.Logger

	source grid.DataSource

	// stateMu guards generation and rendered, and orders broadcast frames
	// against attach-time snapshots in each session's queue.
	stateMu sync.Mutex

	// generation numbers the rendered states sent to clients. It advances
	// by one per reload or batch.
	generation uint64

	// rendered is the per-section row content the remote clients display.
	// Replaced wholesale on every update, never mutated in place.
	rendered [][]string

	inBatch        bool
	pendingDeletes []grid.Address
	pendingInserts []grid.Address

	mu       sync.Mutex
	sessions map[*Session]struct{}
}

// NewView creates a View with the given options applied over defaults.
func NewView(opts ...Option) *View {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &View{
		config:   config,
		logger:   config.Logger,
		sessions: make(map[*Session]struct{}),
	}
}

// Attach sets the data source the view renders rows from. Must be called
// before the first update or client connection.
func (v *View) Attach(source grid.DataSource) {
	v.source = source
}

// Generation returns the current state generation.
func (v *View) Generation() uint64 {
	v.stateMu.Lock()
	defer v.stateMu.Unlock()
	return v.generation
}

// SessionCount returns the number of connected clients.
func (v *View) SessionCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.sessions)
}

// RowCount returns the row count remote clients currently display for the
// given section.
func (v *View) RowCount(section int) int {
	v.stateMu.Lock()
	defer v.stateMu.Unlock()
	if section < 0 || section >= len(v.rendered) {
		return 0
	}
	return len(v.rendered[section])
}

// ReloadAll implements grid.View: re-render everything from the source and
// push a full snapshot to every client.
func (v *View) ReloadAll() {
	rendered := v.renderAll()

	v.stateMu.Lock()
	v.generation++
	v.rendered = rendered
	gen := v.generation
	v.broadcast(protocol.EncodeSnapshot(v.snapshotData()))
	v.stateMu.Unlock()

	v.logger.Debug("reload", "generation", gen, "sections", len(rendered))
}

// PerformBatchEdits implements grid.View. Queued edits are validated,
// rendered and broadcast as one FrameEdits once the closure returns.
func (v *View) PerformBatchEdits(edits func(), completion func()) {
	if v.inBatch {
		panic("live: nested batch edits")
	}
	v.inBatch = true
	v.pendingDeletes = v.pendingDeletes[:0]
	v.pendingInserts = v.pendingInserts[:0]

	edits()

	v.inBatch = false
	v.flushBatch()

	if completion != nil {
		completion()
	}
}

// InsertRows implements grid.View.
func (v *View) InsertRows(at []grid.Address) {
	v.pendingInserts = append(v.pendingInserts, at...)
	if !v.inBatch {
		v.flushBatch()
	}
}

// DeleteRows implements grid.View.
func (v *View) DeleteRows(at []grid.Address) {
	v.pendingDeletes = append(v.pendingDeletes, at...)
	if !v.inBatch {
		v.flushBatch()
	}
}

// flushBatch replays the pending edits onto the rendered rows, advances the
// generation and broadcasts the batch. Runs on the binder's goroutine, with
// the data source already holding the new snapshot, so insert content is
// rendered here.
func (v *View) flushBatch() {
	next := v.applyEdits()

	var batch protocol.EditBatch
	for _, addr := range v.pendingDeletes {
		batch.Edits = append(batch.Edits, protocol.Edit{
			Op:      protocol.EditDeleteRow,
			Section: addr.Section,
			Row:     addr.Row,
		})
	}
	for _, addr := range v.pendingInserts {
		batch.Edits = append(batch.Edits, protocol.Edit{
			Op:      protocol.EditInsertRow,
			Section: addr.Section,
			Row:     addr.Row,
			Content: next[addr.Section][addr.Row],
		})
	}
	v.pendingDeletes = v.pendingDeletes[:0]
	v.pendingInserts = v.pendingInserts[:0]

	v.stateMu.Lock()
	v.generation++
	v.rendered = next
	batch.Generation = v.generation
	gen := v.generation
	v.broadcast(protocol.EncodeEdits(batch))
	v.stateMu.Unlock()

	v.logger.Debug("batch",
		"generation", gen,
		"edits", len(batch.Edits))
}

// applyEdits builds the next rendered state from the current one plus the
// pending edits, validating against the source. A mismatch means the edit
// script was malformed, which is a programming error, not a runtime
// condition. Delete offsets address positions as of batch open, insert
// offsets positions as of batch close.
func (v *View) applyEdits() [][]string {
	next := make([][]string, len(v.rendered))
	for section, rows := range v.rendered {
		next[section] = append([]string(nil), rows...)
	}

	// Deletes arrive grouped per section in ascending row order; walking
	// the queue backwards removes from the highest offset down.
	for i := len(v.pendingDeletes) - 1; i >= 0; i-- {
		addr := v.pendingDeletes[i]
		if addr.Section < 0 || addr.Section >= len(next) ||
			addr.Row < 0 || addr.Row >= len(next[addr.Section]) {
			panic(fmt.Sprintf("live: delete of %s out of displayed bounds", addr))
		}
		rows := next[addr.Section]
		next[addr.Section] = append(rows[:addr.Row], rows[addr.Row+1:]...)
	}
	for _, addr := range v.pendingInserts {
		if addr.Section < 0 || addr.Section >= len(next) ||
			addr.Row < 0 || addr.Row > len(next[addr.Section]) {
			panic(fmt.Sprintf("live: insert of %s out of displayed bounds", addr))
		}
		content := renderContent(v.source.Cell(addr))
		rows := next[addr.Section]
		next[addr.Section] = append(rows[:addr.Row],
			append([]string{content}, rows[addr.Row:]...)...)
	}

	if got, want := len(next), v.source.SectionCount(); got != want {
		panic(fmt.Sprintf("live: inconsistent edit batch: %d displayed sections, source reports %d", got, want))
	}
	for section, rows := range next {
		if want := v.source.ItemCount(section); len(rows) != want {
			panic(fmt.Sprintf(
				"live: inconsistent edit batch: section %d displays %d rows, source reports %d",
				section, len(rows), want))
		}
	}
	return next
}

// renderAll renders every row of the current source state. Must run on the
// binder's goroutine.
func (v *View) renderAll() [][]string {
	if v.source == nil {
		return nil
	}
	out := make([][]string, v.source.SectionCount())
	for section := range out {
		rows := make([]string, v.source.ItemCount(section))
		for row := range rows {
			rows[row] = renderContent(v.source.Cell(grid.Addr(section, row)))
		}
		out[section] = rows
	}
	return out
}

// snapshotData packages the rendered rows for the wire. Callers hold stateMu.
func (v *View) snapshotData() protocol.SnapshotData {
	return protocol.SnapshotData{
		Generation: v.generation,
		Sections:   v.rendered,
	}
}

// broadcast queues an encoded frame to every connected session. Callers hold
// stateMu. Sessions are collected under the session lock and sent to outside
// it: Send may drop a stalled session, which re-enters that lock through
// unregister.
func (v *View) broadcast(frame *protocol.Frame) {
	if len(frame.Payload) > protocol.MaxPayloadSize {
		v.logger.Error("frame exceeds payload limit, dropping",
			"type", frame.Type, "bytes", len(frame.Payload))
		return
	}
	encoded := frame.Encode()

	v.mu.Lock()
	targets := make([]*Session, 0, len(v.sessions))
	for session := range v.sessions {
		targets = append(targets, session)
	}
	v.mu.Unlock()

	for _, session := range targets {
		session.Send(encoded)
	}
}

// register adds a session and primes it with a hello and the current state.
// Holding stateMu across the sends guarantees the session's first frames are
// hello then snapshot, with no broadcast interleaved between them.
func (v *View) register(s *Session) {
	v.stateMu.Lock()
	v.mu.Lock()
	v.sessions[s] = struct{}{}
	v.mu.Unlock()

	s.Send(protocol.EncodeHello().Encode())
	s.Send(protocol.EncodeSnapshot(v.snapshotData()).Encode())
	gen := v.generation
	v.stateMu.Unlock()

	v.logger.Info("session attached", "session", s.ID(), "generation", gen)
}

// unregister removes a closed session.
func (v *View) unregister(s *Session) {
	v.mu.Lock()
	delete(v.sessions, s)
	v.mu.Unlock()

	v.logger.Info("session detached", "session", s.ID())
}

// resync answers a client's ControlResync with a fresh full snapshot.
func (v *View) resync(s *Session) {
	v.stateMu.Lock()
	s.Send(protocol.EncodeSnapshot(v.snapshotData()).Encode())
	gen := v.generation
	v.stateMu.Unlock()

	v.logger.Debug("resync", "session", s.ID(), "generation", gen)
}

// renderContent turns a cell into the string sent over the wire.
func renderContent(cell grid.Cell) string {
	switch c := cell.(type) {
	case string:
		return c
	case fmt.Stringer:
		return c.String()
	default:
		return fmt.Sprint(c)
	}
}
