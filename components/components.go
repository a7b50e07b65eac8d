// Package components defines ECS components for the motion controller.
package components

// Actor marks the player-controlled entity and holds its authoritative orientation.
// Heading is in radians around the vertical axis. It is only written by the rotation
// system and is never renormalized, so it may drift outside [0, 2pi) over many turns.
type Actor struct {
	Heading float32
}

// MovementIntent is attached while an actor is translating one tile.
// Presence of the component is the "moving" state.
type MovementIntent struct {
	Remaining float32 // tiles left in this step, starts at 1
	Heading   Heading
}

// RotationIntent is attached while an actor is turning toward Target.
// Presence of the component is the "turning" state.
type RotationIntent struct {
	Target float32 // absolute heading in radians
}

// Selected tag component for the actor highlighted in a graphical host.
type Selected struct{}
