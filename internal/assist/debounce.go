package assist

import (
	"sync"
	"time"
)

// DefaultDebounceWindow is how long the code must stay unchanged before a
// completion is requested.
const DefaultDebounceWindow = 1000 * time.Millisecond

// Gate is a debounce filter for a single producer and a single consumer.
// Each Update restarts the window; when the window elapses without another
// Update the latest value is emitted once. Values superseded during typing
// are dropped, and a value equal to the last emitted one is not re-emitted.
type Gate struct {
	window time.Duration
	emit   func(string)

	mu         sync.Mutex
	timer      *time.Timer
	gen        uint64
	value      string
	emitted    string
	hasEmitted bool
	stopped    bool
}

// NewGate returns a gate calling emit on its own goroutine after each quiet
// window. A non-positive window selects DefaultDebounceWindow.
func NewGate(window time.Duration, emit func(string)) *Gate {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Gate{window: window, emit: emit}
}

func (g *Gate) Update(v string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stopped {
		return
	}
	g.value = v
	g.gen++
	gen := g.gen
	if g.timer != nil {
		g.timer.Stop()
	}
	g.timer = time.AfterFunc(g.window, func() { g.fire(gen) })
}

func (g *Gate) fire(gen uint64) {
	g.mu.Lock()
	// A timer that lost the race with Update or Stop must not emit.
	if g.stopped || gen != g.gen {
		g.mu.Unlock()
		return
	}
	v := g.value
	if g.hasEmitted && v == g.emitted {
		g.mu.Unlock()
		return
	}
	g.emitted, g.hasEmitted = v, true
	g.mu.Unlock()

	g.emit(v)
}

// Stop cancels any pending emission. The gate ignores later updates.
func (g *Gate) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopped = true
	if g.timer != nil {
		g.timer.Stop()
	}
}
