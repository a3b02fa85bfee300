package assist

import (
	"sync"
	"testing"
	"time"
)

type emissions struct {
	mu  sync.Mutex
	got []string
}

func (e *emissions) add(v string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.got = append(e.got, v)
}

func (e *emissions) values() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.got...)
}

func TestGateEmitsLastValueOfBurst(t *testing.T) {
	var em emissions
	g := NewGate(80*time.Millisecond, em.add)
	defer g.Stop()

	for _, v := range []string{"d", "de", "def", "def f", "def f():"} {
		g.Update(v)
		time.Sleep(2 * time.Millisecond)
	}

	eventually(t, func() bool { return len(em.values()) == 1 })
	time.Sleep(150 * time.Millisecond)

	got := em.values()
	if len(got) != 1 || got[0] != "def f():" {
		t.Fatalf("emissions = %q, want [\"def f():\"]", got)
	}
}

func TestGateSeparateQuietPeriods(t *testing.T) {
	var em emissions
	g := NewGate(20*time.Millisecond, em.add)
	defer g.Stop()

	g.Update("a")
	eventually(t, func() bool { return len(em.values()) == 1 })
	g.Update("ab")
	eventually(t, func() bool { return len(em.values()) == 2 })

	got := em.values()
	if got[0] != "a" || got[1] != "ab" {
		t.Fatalf("emissions = %q", got)
	}
}

func TestGateSkipsUnchangedValue(t *testing.T) {
	var em emissions
	g := NewGate(20*time.Millisecond, em.add)
	defer g.Stop()

	g.Update("x")
	eventually(t, func() bool { return len(em.values()) == 1 })
	g.Update("xy")
	g.Update("x")
	time.Sleep(80 * time.Millisecond)

	if got := em.values(); len(got) != 1 {
		t.Fatalf("emissions = %q, want a single emission", got)
	}
}

func TestGateStop(t *testing.T) {
	var em emissions
	g := NewGate(20*time.Millisecond, em.add)

	g.Update("x")
	g.Stop()
	g.Update("y")
	time.Sleep(80 * time.Millisecond)

	if got := em.values(); len(got) != 0 {
		t.Fatalf("emissions after Stop = %q", got)
	}
}

func TestGateDefaultWindow(t *testing.T) {
	g := NewGate(0, func(string) {})
	defer g.Stop()
	if g.window != DefaultDebounceWindow {
		t.Fatalf("window = %v, want %v", g.window, DefaultDebounceWindow)
	}
	if DefaultDebounceWindow != time.Second {
		t.Fatalf("DefaultDebounceWindow = %v", DefaultDebounceWindow)
	}
}
