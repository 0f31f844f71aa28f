// Package viewport implements the client side of the map pipeline: a
// debounced tracker that turns high-frequency pan/zoom events into a
// bounded stream of fetchable bounds, and a fetcher that discards stale
// responses after rapid panning.
package viewport

import (
	"sync"
	"time"

	"github.com/ohmegaloceros-boop/freefoodfinder/internal/models"
)

// DefaultQuietWindow is how long the viewport must hold still before a
// bounds value is emitted.
const DefaultQuietWindow = 300 * time.Millisecond

// Tracker debounces raw viewport-change events. Only the most recent
// bounds of a burst survives, emitted once the quiet window elapses.
// Nothing is emitted before the first Observe or after Close.
type Tracker struct {
	quiet time.Duration
	out   chan models.Bounds

	mu     sync.Mutex
	timer  *time.Timer
	latest models.Bounds
	closed bool
}

// NewTracker creates a tracker. A non-positive quiet duration falls back
// to DefaultQuietWindow.
func NewTracker(quiet time.Duration) *Tracker {
	if quiet <= 0 {
		quiet = DefaultQuietWindow
	}
	return &Tracker{
		quiet: quiet,
		out:   make(chan models.Bounds, 1),
	}
}

// Bounds is the debounced output stream.
func (t *Tracker) Bounds() <-chan models.Bounds {
	return t.out
}

// Observe records one raw viewport-change event and re-arms the quiet
// timer. Safe to call from any goroutine; a no-op after Close.
func (t *Tracker) Observe(b models.Bounds) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}

	t.latest = b
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.quiet, t.emit)
}

// Close cancels any pending emission. No bounds are ever delivered after
// Close returns.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	t.closed = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *Tracker) emit() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}

	// Replace any value the consumer has not picked up yet; a burst must
	// never queue more than one emission.
	select {
	case t.out <- t.latest:
	default:
		select {
		case <-t.out:
		default:
		}
		select {
		case t.out <- t.latest:
		default:
		}
	}
}
