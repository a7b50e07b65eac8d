// Package terminal runs the controller in a terminal using tcell.
package terminal

import (
	"time"

	"github.com/pthm-cable/tilestep/components"
	"github.com/pthm-cable/tilestep/input"
)

// KeyLatch turns key press events into held key state.
// Terminals only report presses (and autorepeats), so a direction counts as
// pressed for the hold window after its last event.
type KeyLatch struct {
	hold time.Duration
	last [components.HeadingCount]time.Time
}

// NewKeyLatch creates a latch with the given hold window.
func NewKeyLatch(hold time.Duration) *KeyLatch {
	return &KeyLatch{hold: hold}
}

// Press records a key event for direction h at time now.
func (l *KeyLatch) Press(h components.Heading, now time.Time) {
	if !h.Valid() {
		return
	}
	l.last[h] = now
}

// State returns the directions still within their hold window at time now.
func (l *KeyLatch) State(now time.Time) input.State {
	var s input.State
	for h := components.Heading(0); h < components.HeadingCount; h++ {
		t := l.last[h]
		if !t.IsZero() && now.Sub(t) < l.hold {
			s.Set(h, true)
		}
	}
	return s
}

// Clear releases every direction.
func (l *KeyLatch) Clear() {
	l.last = [components.HeadingCount]time.Time{}
}
