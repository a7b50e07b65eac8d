package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tilestep/components"
	"github.com/pthm-cable/tilestep/input"
)

// IntentResult summarizes what the intent system attached during one update.
type IntentResult struct {
	MovesStarted int
	TurnsStarted int
	Heading      components.Heading // heading of the last move started
}

// pendingIntent is a move resolved during the query, applied once the world is unlocked.
type pendingIntent struct {
	entity  ecs.Entity
	heading components.Heading
	turn    bool
}

// IntentSystem turns directional input into movement and rotation intents.
// It only considers actors that are not already moving, so presses made during a
// step are dropped rather than queued.
type IntentSystem struct {
	filter  *ecs.Filter1[components.Actor]
	moveMap *ecs.Map[components.MovementIntent]
	rotMap  *ecs.Map[components.RotationIntent]
	pending []pendingIntent
}

// NewIntentSystem creates a new intent system.
func NewIntentSystem(w *ecs.World) *IntentSystem {
	return &IntentSystem{
		filter:  ecs.NewFilter1[components.Actor](w).Without(ecs.C[components.MovementIntent]()),
		moveMap: ecs.NewMap[components.MovementIntent](w),
		rotMap:  ecs.NewMap[components.RotationIntent](w),
	}
}

// Update resolves the input for every idle actor.
func (s *IntentSystem) Update(in input.State) IntentResult {
	var res IntentResult

	heading, ok := in.Resolve()
	if !ok {
		return res
	}
	target := heading.Angle()

	s.pending = s.pending[:0]
	query := s.filter.Query()
	for query.Next() {
		actor := query.Get()
		s.pending = append(s.pending, pendingIntent{
			entity:  query.Entity(),
			heading: heading,
			turn:    target != actor.Heading,
		})
	}

	// Components can only be attached once the query has released the world
	for _, p := range s.pending {
		s.moveMap.Add(p.entity, &components.MovementIntent{Remaining: 1, Heading: p.heading})
		res.MovesStarted++
		res.Heading = p.heading

		if !p.turn {
			continue
		}
		if s.rotMap.Has(p.entity) {
			// A half turn can outlast a tile step; retarget the turn in flight
			s.rotMap.Get(p.entity).Target = target
		} else {
			s.rotMap.Add(p.entity, &components.RotationIntent{Target: target})
		}
		res.TurnsStarted++
	}

	return res
}
