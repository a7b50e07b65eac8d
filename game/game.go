// Package game hosts the simulation: a raylib window for interactive play and a
// headless loop driven by scripted input.
package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/tilestep/audio"
	"github.com/pthm-cable/tilestep/camera"
	"github.com/pthm-cable/tilestep/config"
	"github.com/pthm-cable/tilestep/input"
	"github.com/pthm-cable/tilestep/sim"
	"github.com/pthm-cable/tilestep/systems"
	"github.com/pthm-cable/tilestep/telemetry"
	"github.com/pthm-cable/tilestep/ui"
)

// Options configures a Game.
type Options struct {
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
	Script         *input.Script // headless input, nil for none
	FixedDt        float32       // headless step size in seconds
	SnapshotDir    string        // save a snapshot here on every bookmark, empty to disable
	ResumePath     string        // snapshot to resume from, empty for a fresh start
}

// Game holds the simulation and everything the host layers around it.
type Game struct {
	cfg *config.Config
	sim *sim.Sim

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	lifetime      *telemetry.LifetimeTracker
	bookmarks     *telemetry.BookmarkDetector
	snapshotDir   string
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	// Headless input
	script  *input.Script
	fixedDt float32

	// Graphics (nil in headless mode)
	camera    *camera.Camera
	sound     *audio.SoundManager
	registry  *systems.SystemRegistry
	overlays  *ui.OverlayRegistry
	hud       *ui.HUD
	controls  *ui.ControlsPanel
	perfPanel *ui.PerfPanel
	inspector *ui.Inspector

	// State
	headless       bool
	paused         bool
	stepsPerUpdate int
	screenWidth    float32
	screenHeight   float32
	snap           sim.Snapshot
}

// NewGameWithOptions creates a game from the global config.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	params, err := sim.ParamsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}
	fixedDt := opts.FixedDt
	if fixedDt <= 0 {
		fixedDt = 1 / float32(cfg.Screen.TargetFPS)
	}
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	g := &Game{
		cfg:            cfg,
		sim:            sim.New(params),
		collector:      telemetry.NewCollector(statsWindow),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		lifetime:       telemetry.NewLifetimeTracker(),
		bookmarks:      telemetry.NewBookmarkDetector(10),
		snapshotDir:    opts.SnapshotDir,
		logStats:       opts.LogStats,
		script:         opts.Script,
		fixedDt:        fixedDt,
		headless:       opts.Headless,
		stepsPerUpdate: steps,
		screenWidth:    cfg.Derived.ScreenW32,
		screenHeight:   cfg.Derived.ScreenH32,
	}
	g.sim.AttachTelemetry(g.collector, g.perfCollector)

	if opts.ResumePath != "" {
		if err := g.resume(opts.ResumePath); err != nil {
			return nil, err
		}
	}
	g.snap = g.sim.Snapshot()

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir, cfg.Telemetry.Trace)
		if err != nil {
			return nil, fmt.Errorf("creating output manager: %w", err)
		}
		if err := om.WriteConfig(cfg); err != nil {
			om.Close()
			return nil, fmt.Errorf("writing config snapshot: %w", err)
		}
		g.outputManager = om
		slog.Info("writing telemetry", "dir", om.Dir(), "trace", om.Tracing())
	}

	if !opts.Headless {
		g.initGraphics()
	}

	return g, nil
}

// initGraphics sets up the camera, sound and UI panels.
func (g *Game) initGraphics() {
	cfg := g.cfg

	g.camera = camera.New(float32(cfg.Camera.Distance), float32(cfg.Camera.Pitch), float32(cfg.Camera.Yaw))
	g.camera.SnapTo(g.snap.Position.X, g.snap.Position.Y, g.snap.Position.Z)

	g.sound = audio.NewSoundManager(cfg.Audio.FootstepHz, time.Duration(cfg.Audio.FootstepMs)*time.Millisecond)
	if cfg.Audio.Enabled {
		if err := g.sound.Initialize(); err != nil {
			slog.Warn("audio disabled", "error", err)
		}
	}

	g.registry = systems.NewSystemRegistry()
	g.overlays = ui.NewOverlayRegistry()
	g.hud = ui.NewHUD()
	g.controls = ui.NewControlsPanel(int32(g.screenWidth)-230, 10, 220)
	g.perfPanel = ui.NewPerfPanel(16, 110)
	g.inspector = ui.NewInspector(10, 110, 240)
}

// SetStatsCallback registers a function called with every flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// step advances the simulation once and runs the per-step host hooks.
func (g *Game) step(dt float32, in input.State) sim.Events {
	ev := g.sim.Step(dt, in)
	g.snap = g.sim.Snapshot()
	g.recordLifetime(dt, ev)

	if g.sound != nil {
		if ev.MoveFinished {
			g.sound.PlayFootstep()
		} else if ev.TurnFinished {
			g.sound.PlayTurn()
		}
	}

	if g.outputManager.Tracing() {
		if err := g.outputManager.WriteTrace(g.snap.TraceRecord(dt)); err != nil {
			slog.Error("failed to write trace", "error", err)
		}
	}

	g.flushTelemetry()
	return ev
}

// UpdateHeadless runs StepsPerUpdate fixed steps with scripted input.
// A scripted press is held until the move it asks for starts.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		var in input.State
		if g.script != nil {
			in = g.script.Current()
		}
		if ev := g.step(g.fixedDt, in); ev.MoveStarted && g.script != nil {
			g.script.Advance()
		}
	}
}

// Finished reports whether the script is exhausted and the actor has come to rest.
// Always false without a script.
func (g *Game) Finished() bool {
	if g.script == nil {
		return false
	}
	return g.script.Done() && !g.snap.Moving && !g.snap.Turning
}

// Reset puts the actor back on its spawn point.
func (g *Game) Reset() {
	g.sim.Reset()
	g.lifetime.RecordReset()
	g.snap = g.sim.Snapshot()
	if g.camera != nil {
		g.camera.SnapTo(g.snap.Position.X, g.snap.Position.Y, g.snap.Position.Z)
	}
	slog.Info("actor reset", "tick", g.snap.Tick)
}

// Snapshot returns the actor state after the last step.
func (g *Game) Snapshot() sim.Snapshot {
	return g.snap
}

// Tick returns the number of simulation steps taken.
func (g *Game) Tick() int64 {
	return g.sim.Tick()
}

// Unload releases resources and writes the final partial stats window.
func (g *Game) Unload() {
	if g.collector.WindowSteps() > 0 {
		g.writeStats(g.collector.Flush())
	}
	slog.Info("run summary", "tick", g.sim.Tick(), "lifetime", g.lifetime.Stats())
	if g.sound != nil {
		g.sound.Cleanup()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output files", "error", err)
	}
}
