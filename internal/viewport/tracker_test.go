package viewport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ohmegaloceros-boop/freefoodfinder/internal/models"
)

func boundsFor(n float64) models.Bounds {
	return models.Bounds{North: n, South: n - 1, East: -104, West: -106}
}

func TestTracker_BurstEmitsOnce(t *testing.T) {
	tr := NewTracker(40 * time.Millisecond)
	defer tr.Close()

	// Three raw events inside one quiet window.
	tr.Observe(boundsFor(10))
	time.Sleep(10 * time.Millisecond)
	tr.Observe(boundsFor(20))
	time.Sleep(10 * time.Millisecond)
	tr.Observe(boundsFor(30))

	select {
	case b := <-tr.Bounds():
		assert.Equal(t, boundsFor(30), b)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected an emission after the quiet window")
	}

	// Silence afterwards: no further emissions.
	select {
	case b := <-tr.Bounds():
		t.Fatalf("unexpected second emission: %+v", b)
	case <-time.After(120 * time.Millisecond):
	}
}

func TestTracker_NoEmissionBeforeFirstObserve(t *testing.T) {
	tr := NewTracker(20 * time.Millisecond)
	defer tr.Close()

	select {
	case b := <-tr.Bounds():
		t.Fatalf("unexpected emission with no observations: %+v", b)
	case <-time.After(80 * time.Millisecond):
	}
}

func TestTracker_CloseCancelsPendingEmission(t *testing.T) {
	tr := NewTracker(50 * time.Millisecond)

	tr.Observe(boundsFor(10))
	tr.Close()

	select {
	case b := <-tr.Bounds():
		t.Fatalf("emission after teardown: %+v", b)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestTracker_ObserveAfterCloseIsNoop(t *testing.T) {
	tr := NewTracker(20 * time.Millisecond)
	tr.Close()
	tr.Observe(boundsFor(10))

	select {
	case b := <-tr.Bounds():
		t.Fatalf("emission after teardown: %+v", b)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestTracker_SeparateBurstsEmitSeparately(t *testing.T) {
	tr := NewTracker(25 * time.Millisecond)
	defer tr.Close()

	tr.Observe(boundsFor(10))
	b := <-tr.Bounds()
	require.Equal(t, boundsFor(10), b)

	tr.Observe(boundsFor(20))
	b = <-tr.Bounds()
	require.Equal(t, boundsFor(20), b)
}

func TestTracker_UnconsumedEmissionIsReplaced(t *testing.T) {
	tr := NewTracker(10 * time.Millisecond)
	defer tr.Close()

	tr.Observe(boundsFor(10))
	time.Sleep(50 * time.Millisecond)
	// First emission is sitting unconsumed in the channel.
	tr.Observe(boundsFor(20))
	time.Sleep(50 * time.Millisecond)

	b := <-tr.Bounds()
	assert.Equal(t, boundsFor(20), b)

	select {
	case extra := <-tr.Bounds():
		t.Fatalf("stale emission was queued: %+v", extra)
	default:
	}
}
