// Package feed generates mutating demo snapshots for the example server.
package feed

import (
	"fmt"
	"math/rand"

	"github.com/gridbind-dev/gridbind/pkg/grid"
)

// Feed produces a sequence of snapshots where each step applies a small
// number of random row insertions and removals to the previous snapshot.
// Section count stays fixed so consumers exercise the batched update path.
type Feed struct {
	rng     *rand.Rand
	current grid.Snapshot[string]
	step    int
}

// New creates a feed with the given shape. A zero seed seeds from the
// default source.
func New(sections, rows int, seed int64) *Feed {
	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	} else {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	snapshot := make(grid.Snapshot[string], sections)
	f := &Feed{rng: rng}
	for section := range snapshot {
		snapshot[section] = make([]string, rows)
		for row := range snapshot[section] {
			snapshot[section][row] = f.label()
		}
	}
	f.current = snapshot
	return f
}

// Current returns the latest snapshot.
func (f *Feed) Current() grid.Snapshot[string] {
	return f.current
}

// Next mutates the feed and returns the new snapshot. Each section gets
// up to two removals and up to two insertions.
func (f *Feed) Next() grid.Snapshot[string] {
	next := make(grid.Snapshot[string], len(f.current))
	for section, rows := range f.current {
		out := make([]string, 0, len(rows)+2)
		for _, row := range rows {
			if f.rng.Intn(len(rows)+1) < 2 {
				continue
			}
			out = append(out, row)
		}
		for i := 0; i < f.rng.Intn(3); i++ {
			at := f.rng.Intn(len(out) + 1)
			out = append(out[:at], append([]string{f.label()}, out[at:]...)...)
		}
		next[section] = out
	}
	f.current = next
	return next
}

// label returns a fresh unique row label.
func (f *Feed) label() string {
	f.step++
	return fmt.Sprintf("item-%04d", f.step)
}
