// Package input holds the directional pressed-state consumed by the intent system,
// and the sources hosts use to fill it.
package input

import "github.com/pthm-cable/tilestep/components"

// State is the four directional pressed-states sampled once per step.
type State struct {
	Left, Right, Up, Down bool
}

// Any reports whether at least one direction is pressed.
func (s State) Any() bool {
	return s.Left || s.Right || s.Up || s.Down
}

// Resolve returns the single honored direction.
// Simultaneous presses are resolved in the fixed order left, right, up, down.
func (s State) Resolve() (components.Heading, bool) {
	switch {
	case s.Left:
		return components.Left, true
	case s.Right:
		return components.Right, true
	case s.Up:
		return components.Up, true
	case s.Down:
		return components.Down, true
	}
	return 0, false
}

// Press returns a State with only the given direction pressed.
func Press(h components.Heading) State {
	var s State
	s.Set(h, true)
	return s
}

// Set updates the pressed-state of one direction.
func (s *State) Set(h components.Heading, pressed bool) {
	switch h {
	case components.Left:
		s.Left = pressed
	case components.Right:
		s.Right = pressed
	case components.Up:
		s.Up = pressed
	case components.Down:
		s.Down = pressed
	}
}
