package systems

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tilestep/components"
)

// RotationSystem turns actors toward their target heading at a constant angular rate,
// always along the shorter arc.
type RotationSystem struct {
	filter   *ecs.Filter2[components.Actor, components.RotationIntent]
	rotMap   *ecs.Map[components.RotationIntent]
	turnRate float32 // radians per second
	finished []ecs.Entity
}

// NewRotationSystem creates a new rotation system turning at turnRate radians per second.
func NewRotationSystem(w *ecs.World, turnRate float32) *RotationSystem {
	if turnRate <= 0 {
		panic(fmt.Sprintf("systems: turn rate must be positive, got %f", turnRate))
	}
	return &RotationSystem{
		filter:   ecs.NewFilter2[components.Actor, components.RotationIntent](w),
		rotMap:   ecs.NewMap[components.RotationIntent](w),
		turnRate: turnRate,
	}
}

// Update turns every rotating actor by dt seconds worth of angle.
// It returns the entities whose turn completed this update; the slice is reused
// by the next call.
func (s *RotationSystem) Update(dt float32) []ecs.Entity {
	angularStep := dt * s.turnRate

	s.finished = s.finished[:0]
	query := s.filter.Query()
	for query.Next() {
		actor, rot := query.Get()
		if AdvanceTurn(actor, rot.Target, angularStep) {
			s.finished = append(s.finished, query.Entity())
		}
	}

	for _, e := range s.finished {
		s.rotMap.Remove(e)
	}
	return s.finished
}

// AdvanceTurn rotates the actor toward target by at most angularStep radians.
// When the remaining arc fits in the step the heading is set to target exactly.
// Returns true when the turn is complete.
func AdvanceTurn(actor *components.Actor, target, angularStep float32) bool {
	delta := shortestDelta(actor.Heading, target)

	if abs32(delta) <= angularStep {
		actor.Heading = target
		return true
	}

	actor.Heading += copysign(angularStep, delta)
	return false
}
