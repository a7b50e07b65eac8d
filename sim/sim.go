// Package sim wires the motion systems into a single-actor world stepped by the hosts.
package sim

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tilestep/components"
	"github.com/pthm-cable/tilestep/config"
	"github.com/pthm-cable/tilestep/input"
	"github.com/pthm-cable/tilestep/systems"
	"github.com/pthm-cable/tilestep/telemetry"
)

// Params holds the tuning data the systems are built with.
type Params struct {
	TileDuration float32 // seconds per tile
	TurnRate     float32 // radians per second
	Spawn        components.Spawn
}

// ParamsFromConfig builds Params from a loaded configuration.
func ParamsFromConfig(cfg *config.Config) (Params, error) {
	h, err := components.ParseHeading(cfg.Actor.Heading)
	if err != nil {
		return Params{}, fmt.Errorf("actor heading: %w", err)
	}
	return Params{
		TileDuration: cfg.Derived.TileDuration32,
		TurnRate:     cfg.Derived.TurnRate32,
		Spawn: components.Spawn{
			Position: components.Position{
				X: float32(cfg.Actor.SpawnX),
				Y: float32(cfg.Actor.SpawnY),
				Z: float32(cfg.Actor.SpawnZ),
			},
			Heading: h.Angle(),
		},
	}, nil
}

// Events reports what changed during one step.
type Events struct {
	MoveStarted  bool
	TurnStarted  bool
	MoveFinished bool
	TurnFinished bool
	IgnoredPress bool               // a direction was held while a move was in progress
	Heading      components.Heading // direction of the move started this step
}

// Sim owns the ECS world and the player actor.
type Sim struct {
	world  *ecs.World
	actor  ecs.Entity
	params Params

	// Component mappers
	actorMapper *ecs.Map3[components.Position, components.Actor, components.Spawn]
	posMap      *ecs.Map[components.Position]
	actorMap    *ecs.Map[components.Actor]
	moveMap     *ecs.Map[components.MovementIntent]
	rotMap      *ecs.Map[components.RotationIntent]
	selMap      *ecs.Map[components.Selected]

	// Systems, in run order
	intent      *systems.IntentSystem
	translation *systems.TranslationSystem
	rotation    *systems.RotationSystem

	// Telemetry (optional)
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector

	tick        int64
	warnedNegDt bool
}

// New creates a world with one actor at the spawn point.
func New(p Params) *Sim {
	world := ecs.NewWorld()

	s := &Sim{
		world:       world,
		params:      p,
		actorMapper: ecs.NewMap3[components.Position, components.Actor, components.Spawn](world),
		posMap:      ecs.NewMap[components.Position](world),
		actorMap:    ecs.NewMap[components.Actor](world),
		moveMap:     ecs.NewMap[components.MovementIntent](world),
		rotMap:      ecs.NewMap[components.RotationIntent](world),
		selMap:      ecs.NewMap[components.Selected](world),
		intent:      systems.NewIntentSystem(world),
		translation: systems.NewTranslationSystem(world, p.TileDuration),
		rotation:    systems.NewRotationSystem(world, p.TurnRate),
	}

	pos := p.Spawn.Position
	actor := components.Actor{Heading: p.Spawn.Heading}
	spawn := p.Spawn
	s.actor = s.actorMapper.NewEntity(&pos, &actor, &spawn)

	return s
}

// AttachTelemetry enables event and timing collection. Either argument may be nil.
func (s *Sim) AttachTelemetry(collector *telemetry.Collector, perf *telemetry.PerfCollector) {
	s.collector = collector
	s.perf = perf
	if collector != nil {
		collector.SetTick(s.tick)
	}
}

// Step advances the simulation by dt seconds with the given input.
// The same dt is passed to both integrators.
func (s *Sim) Step(dt float32, in input.State) Events {
	if dt < 0 {
		if !s.warnedNegDt {
			slog.Debug("negative elapsed time clamped to zero", "dt", dt, "tick", s.tick)
			s.warnedNegDt = true
		}
		dt = 0
	}

	if s.perf != nil {
		s.perf.StartTick()
		s.perf.StartPhase(telemetry.PhaseIntent)
	}

	var ev Events
	ev.IgnoredPress = in.Any() && s.moveMap.Has(s.actor)

	res := s.intent.Update(in)
	ev.MoveStarted = res.MovesStarted > 0
	ev.TurnStarted = res.TurnsStarted > 0
	ev.Heading = res.Heading

	if s.perf != nil {
		s.perf.StartPhase(telemetry.PhaseTranslation)
	}
	ev.MoveFinished = len(s.translation.Update(dt)) > 0

	if s.perf != nil {
		s.perf.StartPhase(telemetry.PhaseRotation)
	}
	ev.TurnFinished = len(s.rotation.Update(dt)) > 0

	if s.perf != nil {
		s.perf.StartPhase(telemetry.PhaseTelemetry)
	}
	s.record(dt, ev)

	s.tick++

	if s.perf != nil {
		s.perf.EndTick()
	}
	return ev
}

// record feeds the step's events to the collector in the order it expects.
func (s *Sim) record(dt float32, ev Events) {
	c := s.collector
	if c == nil {
		return
	}
	if ev.MoveStarted {
		c.RecordMoveStarted()
	}
	if ev.TurnStarted {
		c.RecordTurnStarted()
	}
	if ev.IgnoredPress {
		c.RecordIgnoredPress()
	}
	c.RecordStep(dt)
	if ev.MoveFinished {
		c.RecordMoveFinished()
	}
	if ev.TurnFinished {
		c.RecordTurnFinished()
	}
}

// Reset puts the actor back on its spawn point and cancels any move or turn.
func (s *Sim) Reset() {
	if s.moveMap.Has(s.actor) {
		s.moveMap.Remove(s.actor)
	}
	if s.rotMap.Has(s.actor) {
		s.rotMap.Remove(s.actor)
	}
	*s.posMap.Get(s.actor) = s.params.Spawn.Position
	s.actorMap.Get(s.actor).Heading = s.params.Spawn.Heading
}

// SetSelected marks or unmarks the actor as selected.
func (s *Sim) SetSelected(selected bool) {
	has := s.selMap.Has(s.actor)
	switch {
	case selected && !has:
		s.selMap.Add(s.actor, &components.Selected{})
	case !selected && has:
		s.selMap.Remove(s.actor)
	}
}

// Selected reports whether the actor is selected.
func (s *Sim) Selected() bool {
	return s.selMap.Has(s.actor)
}

// Tick returns the number of steps taken.
func (s *Sim) Tick() int64 {
	return s.tick
}

// Params returns the parameters the simulation was built with.
func (s *Sim) Params() Params {
	return s.params
}
