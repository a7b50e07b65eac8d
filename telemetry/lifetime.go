package telemetry

import "log/slog"

// LifetimeStats tracks what the actor has done since the run started.
type LifetimeStats struct {
	SimTimeSec     float64 `json:"sim_time_sec"`
	Steps          int64   `json:"steps"`
	TilesStarted   int     `json:"tiles_started"`
	TilesFinished  int     `json:"tiles_finished"`
	TilesByHeading [4]int  `json:"tiles_by_heading"` // indexed by heading: right, up, left, down
	Turns          int     `json:"turns"`
	IgnoredPresses int     `json:"ignored_presses"`
	Resets         int     `json:"resets"`
}

// LifetimeTracker accumulates LifetimeStats for the actor.
type LifetimeTracker struct {
	stats LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{}
}

// RecordStep adds one step of dt seconds.
func (lt *LifetimeTracker) RecordStep(dt float32) {
	lt.stats.Steps++
	lt.stats.SimTimeSec += float64(dt)
}

// RecordMoveStarted counts a tile step in the given heading index.
func (lt *LifetimeTracker) RecordMoveStarted(heading uint8) {
	lt.stats.TilesStarted++
	if int(heading) < len(lt.stats.TilesByHeading) {
		lt.stats.TilesByHeading[heading]++
	}
}

// RecordMoveFinished counts a completed tile step.
func (lt *LifetimeTracker) RecordMoveFinished() {
	lt.stats.TilesFinished++
}

// RecordTurn counts a started turn.
func (lt *LifetimeTracker) RecordTurn() {
	lt.stats.Turns++
}

// RecordIgnoredPress counts a press dropped during a move.
func (lt *LifetimeTracker) RecordIgnoredPress() {
	lt.stats.IgnoredPresses++
}

// RecordReset counts a reset to the spawn point.
func (lt *LifetimeTracker) RecordReset() {
	lt.stats.Resets++
}

// Stats returns a copy of the accumulated stats.
func (lt *LifetimeTracker) Stats() LifetimeStats {
	return lt.stats
}

// Restore replaces the accumulated stats, e.g. when resuming from a snapshot.
func (lt *LifetimeTracker) Restore(stats LifetimeStats) {
	lt.stats = stats
}

// LogValue implements slog.LogValuer for structured logging.
func (s LifetimeStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("sim_time_sec", s.SimTimeSec),
		slog.Int64("steps", s.Steps),
		slog.Int("tiles_started", s.TilesStarted),
		slog.Int("tiles_finished", s.TilesFinished),
		slog.Int("tiles_right", s.TilesByHeading[0]),
		slog.Int("tiles_up", s.TilesByHeading[1]),
		slog.Int("tiles_left", s.TilesByHeading[2]),
		slog.Int("tiles_down", s.TilesByHeading[3]),
		slog.Int("turns", s.Turns),
		slog.Int("ignored_presses", s.IgnoredPresses),
		slog.Int("resets", s.Resets),
	)
}
