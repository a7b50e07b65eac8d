package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/tilestep/sim"
	"github.com/pthm-cable/tilestep/telemetry"
)

// flushTelemetry checks if the stats window should be flushed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush() {
		return
	}
	g.writeStats(g.collector.Flush())
}

// writeStats hands a finished window to the callback, the log, the CSV output
// and the bookmark detector.
func (g *Game) writeStats(stats telemetry.WindowStats) {
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, b := range g.bookmarks.Check(stats) {
		b.LogBookmark()
		if g.snapshotDir != "" {
			g.saveSnapshot(&b)
		}
	}
}

// recordLifetime feeds one step's events to the lifetime tracker.
func (g *Game) recordLifetime(dt float32, ev sim.Events) {
	lt := g.lifetime
	lt.RecordStep(max(dt, 0))
	if ev.MoveStarted {
		lt.RecordMoveStarted(uint8(ev.Heading))
	}
	if ev.TurnStarted {
		lt.RecordTurn()
	}
	if ev.IgnoredPress {
		lt.RecordIgnoredPress()
	}
	if ev.MoveFinished {
		lt.RecordMoveFinished()
	}
}

// saveSnapshot writes the actor state to the snapshot dir, tagged with the bookmark.
func (g *Game) saveSnapshot(b *telemetry.Bookmark) {
	lifetime := g.lifetime.Stats()
	params := g.sim.Params()
	snapshot := &telemetry.Snapshot{
		Version:      telemetry.SnapshotVersion,
		Tick:         g.snap.Tick,
		TileDuration: params.TileDuration,
		TurnRate:     params.TurnRate,
		Actor:        g.snap.ActorState(),
		Lifetime:     &lifetime,
		Bookmark:     b,
	}

	path, err := telemetry.SaveSnapshot(snapshot, g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", snapshot.Tick)
}

// resume restores the actor and lifetime stats from a snapshot file.
func (g *Game) resume(path string) error {
	snapshot, err := telemetry.LoadSnapshot(path)
	if err != nil {
		return fmt.Errorf("resuming: %w", err)
	}

	params := g.sim.Params()
	if snapshot.TileDuration != params.TileDuration || snapshot.TurnRate != params.TurnRate {
		slog.Warn("snapshot motion tuning differs from config",
			"snapshot_tile_duration", snapshot.TileDuration,
			"snapshot_turn_rate", snapshot.TurnRate,
			"tile_duration", params.TileDuration,
			"turn_rate", params.TurnRate,
		)
	}

	if err := g.sim.Restore(snapshot.Actor, snapshot.Tick); err != nil {
		return fmt.Errorf("resuming: %w", err)
	}
	if snapshot.Lifetime != nil {
		g.lifetime.Restore(*snapshot.Lifetime)
	}

	slog.Info("resumed from snapshot", "path", path, "tick", snapshot.Tick)
	return nil
}
