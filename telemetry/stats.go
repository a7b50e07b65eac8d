package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of simulated time.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Steps           int     `csv:"steps"`

	// Events during window
	MovesStarted   int `csv:"moves_started"`
	MovesFinished  int `csv:"moves_finished"`
	TurnsStarted   int `csv:"turns_started"`
	TurnsFinished  int `csv:"turns_finished"`
	IgnoredPresses int `csv:"ignored_presses"`

	// Elapsed-time distribution (seconds per step)
	DtMean float64 `csv:"dt_mean"`
	DtStd  float64 `csv:"dt_std"`
	DtP50  float64 `csv:"dt_p50"`
	DtP90  float64 `csv:"dt_p90"`
	DtMax  float64 `csv:"dt_max"`

	// Steps needed per completed tile move
	TicksPerMoveMean float64 `csv:"ticks_per_move_mean"`
	TicksPerMoveStd  float64 `csv:"ticks_per_move_std"`
}

// SampleStats summarizes a sample of float64 values.
type SampleStats struct {
	Mean, Std     float64
	P50, P90, Max float64
}

// ComputeSampleStats calculates mean, population std, median, p90 and max.
// Returns zero stats for an empty sample.
func ComputeSampleStats(values []float64) SampleStats {
	n := len(values)
	if n == 0 {
		return SampleStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean := stat.Mean(sorted, nil)
	std := stat.PopStdDev(sorted, nil)

	return SampleStats{
		Mean: mean,
		Std:  std,
		P50:  stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.9, stat.Empirical, sorted, nil),
		Max:  sorted[n-1],
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("steps", s.Steps),
		slog.Int("moves_started", s.MovesStarted),
		slog.Int("moves_finished", s.MovesFinished),
		slog.Int("turns_started", s.TurnsStarted),
		slog.Int("turns_finished", s.TurnsFinished),
		slog.Int("ignored_presses", s.IgnoredPresses),
		slog.Float64("dt_mean", s.DtMean),
		slog.Float64("dt_std", s.DtStd),
		slog.Float64("dt_p50", s.DtP50),
		slog.Float64("dt_p90", s.DtP90),
		slog.Float64("dt_max", s.DtMax),
		slog.Float64("ticks_per_move_mean", s.TicksPerMoveMean),
		slog.Float64("ticks_per_move_std", s.TicksPerMoveStd),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
