package input

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/tilestep/components"
)

// Script is a queue of directional presses for headless runs.
// The current press is held until the host reports that a move started,
// so a press made while the actor is still moving is not lost.
type Script struct {
	steps []components.Heading
	pos   int
}

// ParseScript parses a whitespace- or comma-separated list of headings,
// e.g. "L U U right". Single letters may also be run together ("LUUR").
func ParseScript(s string) (*Script, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})

	sc := &Script{}
	for _, f := range fields {
		if h, err := components.ParseHeading(f); err == nil {
			sc.steps = append(sc.steps, h)
			continue
		}
		// Run-together letters
		for _, r := range f {
			h, err := components.ParseHeading(string(r))
			if err != nil {
				return nil, fmt.Errorf("parsing script token %q: %w", f, err)
			}
			sc.steps = append(sc.steps, h)
		}
	}
	return sc, nil
}

// NewScript creates a script from a list of headings.
func NewScript(steps ...components.Heading) *Script {
	return &Script{steps: append([]components.Heading(nil), steps...)}
}

// Current returns the pressed-state for the pending press, or an empty State
// once the script is exhausted.
func (sc *Script) Current() State {
	if sc.Done() {
		return State{}
	}
	return Press(sc.steps[sc.pos])
}

// Advance consumes the pending press.
func (sc *Script) Advance() {
	if !sc.Done() {
		sc.pos++
	}
}

// Done reports whether every press has been consumed.
func (sc *Script) Done() bool {
	return sc.pos >= len(sc.steps)
}

// Len returns the total number of presses.
func (sc *Script) Len() int {
	return len(sc.steps)
}
