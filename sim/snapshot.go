package sim

import (
	"fmt"

	"github.com/pthm-cable/tilestep/components"
	"github.com/pthm-cable/tilestep/telemetry"
)

// Snapshot is a read-only view of the actor for presentation.
type Snapshot struct {
	Tick     int64
	Position components.Position
	Offset   components.Position // position relative to spawn, in world units
	Heading  float32             // continuous orientation, radians
	Facing   components.Heading  // nearest cardinal to Heading

	Moving      bool
	MoveHeading components.Heading
	Remaining   float32 // tiles left in the current move
	Turning     bool
	Target      float32 // target orientation of the current turn
	Selected    bool
}

// Snapshot returns the actor's current state.
func (s *Sim) Snapshot() Snapshot {
	pos := *s.posMap.Get(s.actor)
	heading := s.actorMap.Get(s.actor).Heading
	spawn := s.params.Spawn.Position

	snap := Snapshot{
		Tick:     s.tick,
		Position: pos,
		Offset: components.Position{
			X: pos.X - spawn.X,
			Y: pos.Y - spawn.Y,
			Z: pos.Z - spawn.Z,
		},
		Heading:  heading,
		Facing:   components.NearestHeading(heading),
		Selected: s.selMap.Has(s.actor),
	}

	if s.moveMap.Has(s.actor) {
		move := s.moveMap.Get(s.actor)
		snap.Moving = true
		snap.MoveHeading = move.Heading
		snap.Remaining = move.Remaining
	}
	if s.rotMap.Has(s.actor) {
		snap.Turning = true
		snap.Target = s.rotMap.Get(s.actor).Target
	}

	return snap
}

// TraceRecord converts the snapshot into a trace row for a step of dt seconds.
func (snap Snapshot) TraceRecord(dt float32) telemetry.TraceRecord {
	return telemetry.TraceRecord{
		Tick:      snap.Tick,
		Dt:        dt,
		X:         snap.Position.X,
		Y:         snap.Position.Y,
		Z:         snap.Position.Z,
		Heading:   snap.Heading,
		Moving:    snap.Moving,
		Turning:   snap.Turning,
		Remaining: snap.Remaining,
		Target:    snap.Target,
	}
}

// ActorState converts the snapshot into the persisted actor state.
func (snap Snapshot) ActorState() telemetry.ActorState {
	st := telemetry.ActorState{
		X:       snap.Position.X,
		Y:       snap.Position.Y,
		Z:       snap.Position.Z,
		Heading: snap.Heading,
		Moving:  snap.Moving,
		Turning: snap.Turning,
	}
	if snap.Moving {
		st.MoveHeading = uint8(snap.MoveHeading)
		st.Remaining = snap.Remaining
	}
	if snap.Turning {
		st.Target = snap.Target
	}
	return st
}

// Restore replaces the actor's transform and in-flight intents with st
// and sets the step counter to tick.
func (s *Sim) Restore(st telemetry.ActorState, tick int64) error {
	moveHeading := components.Heading(st.MoveHeading)
	if st.Moving {
		if !moveHeading.Valid() {
			return fmt.Errorf("restore: invalid move heading %d", st.MoveHeading)
		}
		if st.Remaining <= 0 || st.Remaining > 1 {
			return fmt.Errorf("restore: remaining %v outside (0, 1]", st.Remaining)
		}
	}

	*s.posMap.Get(s.actor) = components.Position{X: st.X, Y: st.Y, Z: st.Z}
	s.actorMap.Get(s.actor).Heading = st.Heading

	if s.moveMap.Has(s.actor) {
		s.moveMap.Remove(s.actor)
	}
	if st.Moving {
		s.moveMap.Add(s.actor, &components.MovementIntent{Remaining: st.Remaining, Heading: moveHeading})
	}

	if s.rotMap.Has(s.actor) {
		s.rotMap.Remove(s.actor)
	}
	if st.Turning && st.Target != st.Heading {
		s.rotMap.Add(s.actor, &components.RotationIntent{Target: st.Target})
	}

	s.tick = tick
	if s.collector != nil {
		s.collector.SetTick(tick)
	}
	return nil
}
