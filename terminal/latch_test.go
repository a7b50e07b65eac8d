package terminal

import (
	"testing"
	"time"

	"github.com/pthm-cable/tilestep/components"
	"github.com/pthm-cable/tilestep/input"
)

func TestKeyLatch_HoldWindow(t *testing.T) {
	t0 := time.Unix(1000, 0)
	l := NewKeyLatch(150 * time.Millisecond)

	l.Press(components.Left, t0)

	tests := []struct {
		name string
		at   time.Duration
		want input.State
	}{
		{name: "same instant", at: 0, want: input.State{Left: true}},
		{name: "inside window", at: 100 * time.Millisecond, want: input.State{Left: true}},
		{name: "window edge", at: 150 * time.Millisecond, want: input.State{}},
		{name: "after window", at: time.Second, want: input.State{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := l.State(t0.Add(tc.at)); got != tc.want {
				t.Errorf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestKeyLatch_RepeatExtendsHold(t *testing.T) {
	t0 := time.Unix(1000, 0)
	l := NewKeyLatch(150 * time.Millisecond)

	l.Press(components.Up, t0)
	l.Press(components.Up, t0.Add(100*time.Millisecond))

	if got := l.State(t0.Add(200 * time.Millisecond)); !got.Up {
		t.Error("expected autorepeat to keep up held")
	}
}

func TestKeyLatch_MultipleDirections(t *testing.T) {
	t0 := time.Unix(1000, 0)
	l := NewKeyLatch(150 * time.Millisecond)

	l.Press(components.Down, t0)
	l.Press(components.Right, t0)

	got := l.State(t0)
	if !got.Down || !got.Right || got.Left || got.Up {
		t.Errorf("expected right and down held, got %+v", got)
	}
	if h, _ := got.Resolve(); h != components.Right {
		t.Errorf("expected right to win, got %v", h)
	}
}

func TestKeyLatch_Clear(t *testing.T) {
	t0 := time.Unix(1000, 0)
	l := NewKeyLatch(150 * time.Millisecond)

	l.Press(components.Left, t0)
	l.Clear()
	if l.State(t0).Any() {
		t.Error("expected no keys held after clear")
	}
}

func TestKeyLatch_IgnoresInvalidHeading(t *testing.T) {
	l := NewKeyLatch(150 * time.Millisecond)
	l.Press(components.Heading(9), time.Unix(1000, 0))
	if l.State(time.Unix(1000, 0)).Any() {
		t.Error("expected invalid heading to be ignored")
	}
}
