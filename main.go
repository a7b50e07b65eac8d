package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tilestep/config"
	"github.com/pthm-cable/tilestep/game"
	"github.com/pthm-cable/tilestep/input"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call")
	script := flag.String("script", "", "Headless input, e.g. \"L U U R\" (headings or their initials)")
	dt := flag.Float64("dt", 0, "Headless step size in seconds (0 = 1/target_fps)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for bookmark snapshots (empty = disabled)")
	resume := flag.String("resume", "", "Resume from a snapshot file")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	opts := game.Options{
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
		FixedDt:        float32(*dt),
		SnapshotDir:    *snapshotDir,
		ResumePath:     *resume,
	}

	if *script != "" {
		sc, err := input.ParseScript(*script)
		if err != nil {
			slog.Error("invalid script", "error", err)
			os.Exit(1)
		}
		opts.Script = sc
	}

	if *headless {
		// Headless mode - no window is opened
		g, err := game.NewGameWithOptions(opts)
		if err != nil {
			slog.Error("failed to create game", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless simulation",
			"max_ticks", *maxTicks,
			"steps_per_update", *stepsPerUpdate,
			"script_len", scriptLen(opts.Script),
		)

		if opts.Script == nil && *maxTicks == 0 {
			slog.Warn("no script and no tick limit, running until interrupted")
		}

		for {
			g.UpdateHeadless()

			if g.Finished() {
				snap := g.Snapshot()
				slog.Info("script finished",
					"tick", snap.Tick,
					"x", snap.Position.X,
					"z", snap.Position.Z,
					"heading", snap.Heading,
				)
				return
			}
			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick())
				return
			}
		}
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "tilestep")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}

func scriptLen(sc *input.Script) int {
	if sc == nil {
		return 0
	}
	return sc.Len()
}
