package input

import (
	"testing"

	"github.com/pthm-cable/tilestep/components"
)

func TestResolvePriority(t *testing.T) {
	tests := []struct {
		name   string
		state  State
		want   components.Heading
		wantOK bool
	}{
		{name: "none", state: State{}, wantOK: false},
		{name: "left only", state: State{Left: true}, want: components.Left, wantOK: true},
		{name: "down only", state: State{Down: true}, want: components.Down, wantOK: true},
		{name: "left beats right", state: State{Left: true, Right: true}, want: components.Left, wantOK: true},
		{name: "right beats up", state: State{Right: true, Up: true}, want: components.Right, wantOK: true},
		{name: "up beats down", state: State{Up: true, Down: true}, want: components.Up, wantOK: true},
		{name: "all pressed", state: State{Left: true, Right: true, Up: true, Down: true}, want: components.Left, wantOK: true},
		{name: "right up down", state: State{Right: true, Up: true, Down: true}, want: components.Right, wantOK: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.state.Resolve()
			if ok != tc.wantOK {
				t.Fatalf("expected ok=%v, got %v", tc.wantOK, ok)
			}
			if ok && got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
			if tc.state.Any() != tc.wantOK {
				t.Errorf("Any() disagrees with Resolve()")
			}
		})
	}
}

func TestPress(t *testing.T) {
	for h := components.Heading(0); h < components.HeadingCount; h++ {
		got, ok := Press(h).Resolve()
		if !ok || got != h {
			t.Errorf("Press(%s) resolved to %s (ok=%v)", h, got, ok)
		}
	}
}

func TestParseScript(t *testing.T) {
	sc, err := ParseScript("L, up  right\nDD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []components.Heading{components.Left, components.Up, components.Right, components.Down, components.Down}
	if sc.Len() != len(want) {
		t.Fatalf("expected %d steps, got %d", len(want), sc.Len())
	}
	for i, h := range want {
		got, ok := sc.Current().Resolve()
		if !ok || got != h {
			t.Errorf("step %d: expected %s, got %s", i, h, got)
		}
		sc.Advance()
	}

	if !sc.Done() {
		t.Error("expected script to be done")
	}
	if sc.Current().Any() {
		t.Error("exhausted script should press nothing")
	}
	sc.Advance() // no-op past the end
	if !sc.Done() {
		t.Error("advancing past the end should stay done")
	}
}

func TestParseScriptRejectsUnknown(t *testing.T) {
	if _, err := ParseScript("L X"); err == nil {
		t.Error("expected error for unknown token")
	}
}

func TestParseScriptEmpty(t *testing.T) {
	sc, err := ParseScript("  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sc.Done() {
		t.Error("empty script should be done immediately")
	}
}

func TestNewScript(t *testing.T) {
	steps := []components.Heading{components.Left, components.Up}
	sc := NewScript(steps...)
	steps[0] = components.Down

	if sc.Len() != 2 {
		t.Fatalf("expected 2 presses, got %d", sc.Len())
	}
	if got := sc.Current(); got != (State{Left: true}) {
		t.Errorf("expected script to own its steps, got %+v", got)
	}
	sc.Advance()
	sc.Advance()
	if !sc.Done() || sc.Current() != (State{}) {
		t.Error("expected exhausted script to report no press")
	}
}
