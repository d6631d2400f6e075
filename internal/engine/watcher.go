package engine

import (
	"context"
	"time"

	"github.com/tessro/spin/internal/core"
)

// Snapshot is the position of the loaded source at a point in time.
type Snapshot struct {
	Generation uint64
	Position   float64
	Duration   float64
	Playing    bool
}

// Snapshotter reports the current playback position.
type Snapshotter interface {
	Snapshot() Snapshot
}

// Watcher polls a Snapshotter and emits time updates.
type Watcher struct {
	source   Snapshotter
	interval time.Duration
	emit     func(core.Event)
}

// NewWatcher creates a new position watcher.
func NewWatcher(source Snapshotter, interval time.Duration, emit func(core.Event)) *Watcher {
	if interval == 0 {
		interval = 250 * time.Millisecond
	}
	return &Watcher{
		source:   source,
		interval: interval,
		emit:     emit,
	}
}

// Start polls until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	prev := w.source.Snapshot()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			curr := w.source.Snapshot()
			if ev, ok := diffSnapshots(prev, curr); ok {
				w.emit(ev)
			}
			prev = curr
		}
	}
}

// diffSnapshots returns the time update to emit for curr, if any. Updates
// are emitted while playing, and once when the position moves while paused
// (a seek).
func diffSnapshots(prev, curr Snapshot) (core.Event, bool) {
	moved := prev.Generation != curr.Generation || prev.Position != curr.Position
	if !curr.Playing && !moved {
		return core.Event{}, false
	}
	return core.Event{
		Kind:       core.EventTimeUpdate,
		Generation: curr.Generation,
		Position:   curr.Position,
		Duration:   curr.Duration,
	}, true
}
