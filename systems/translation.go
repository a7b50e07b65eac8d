package systems

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tilestep/components"
)

// TranslationSystem advances in-progress tile steps at a constant rate.
type TranslationSystem struct {
	filter       *ecs.Filter2[components.Position, components.MovementIntent]
	moveMap      *ecs.Map[components.MovementIntent]
	tileDuration float32
	finished     []ecs.Entity
}

// NewTranslationSystem creates a new translation system.
// tileDuration is the number of seconds one tile takes and must be positive.
func NewTranslationSystem(w *ecs.World, tileDuration float32) *TranslationSystem {
	if tileDuration <= 0 {
		panic(fmt.Sprintf("systems: tile duration must be positive, got %f", tileDuration))
	}
	return &TranslationSystem{
		filter:       ecs.NewFilter2[components.Position, components.MovementIntent](w),
		moveMap:      ecs.NewMap[components.MovementIntent](w),
		tileDuration: tileDuration,
	}
}

// Update advances every moving entity by dt seconds.
// It returns the entities whose step completed this update; the slice is reused
// by the next call.
func (s *TranslationSystem) Update(dt float32) []ecs.Entity {
	step := dt / s.tileDuration

	s.finished = s.finished[:0]
	query := s.filter.Query()
	for query.Next() {
		pos, move := query.Get()
		if AdvanceMove(pos, move, step) {
			s.finished = append(s.finished, query.Entity())
		}
	}

	for _, e := range s.finished {
		s.moveMap.Remove(e)
	}
	return s.finished
}

// AdvanceMove moves pos along the intent's axis by step tiles.
// On the final step it moves by exactly the remaining distance, so the entity lands
// on the tile boundary however the elapsed time was sliced. Returns true when the
// step is complete and the intent should be removed.
func AdvanceMove(pos *components.Position, move *components.MovementIntent, step float32) bool {
	var axis *float32
	sign := float32(1)
	switch move.Heading {
	case components.Right:
		axis = &pos.X
	case components.Left:
		axis = &pos.X
		sign = -1
	case components.Down:
		axis = &pos.Z
	case components.Up:
		axis = &pos.Z
		sign = -1
	default:
		panic(fmt.Sprintf("systems: movement intent with invalid heading %d", uint8(move.Heading)))
	}

	if move.Remaining > step {
		*axis += step * sign
		move.Remaining -= step
		return false
	}

	*axis += move.Remaining * sign
	move.Remaining = 0
	return true
}
