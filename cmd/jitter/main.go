// Package main runs randomized move scripts with jittered frame times and
// reports how far the actor drifts from the tile lattice.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/tilestep/config"
	"github.com/pthm-cable/tilestep/sim"
)

// formatDuration formats a duration as MM:SS, or HH:MM:SS when over an hour.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	if err := run(); err != nil {
		slog.Error("jitter run failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	seeds := flag.Int("seeds", 8, "Number of randomized runs")
	moves := flag.Int("moves", 200, "Tile moves per run")
	dtMin := flag.Float64("dt-min", 1.0/240, "Smallest step size in seconds")
	dtMax := flag.Float64("dt-max", 1.0/20, "Largest step size in seconds")
	maxTicks := flag.Int64("max-ticks", 1_000_000, "Per-run tick cap")
	outputDir := flag.String("output", "", "Output directory for jitter.csv (empty = log only)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if *dtMin < 0 || *dtMax < *dtMin {
		return fmt.Errorf("invalid step range [%v, %v]", *dtMin, *dtMax)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	params, err := sim.ParamsFromConfig(cfg)
	if err != nil {
		return err
	}

	start := time.Now()

	// Runs are independent, one goroutine per seed
	results := make([]trialResult, *seeds)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = runTrial(params, trialConfig{
				Seed:     uint64(i*1000 + 42),
				Moves:    *moves,
				DtMin:    *dtMin,
				DtMax:    *dtMax,
				MaxTicks: *maxTicks,
			})
		}(i)
	}
	wg.Wait()

	var worst float64
	incomplete := 0
	for _, r := range results {
		slog.Info("trial",
			"seed", r.Seed,
			"ticks", r.Ticks,
			"completed", r.Completed,
			"drift_x", r.DriftX,
			"drift_z", r.DriftZ,
			"heading_err", r.HeadingErr,
			"ticks_per_move_mean", r.TicksPerMoveMean,
			"ticks_per_move_std", r.TicksPerMoveStd,
		)
		worst = max(worst, r.MaxDrift())
		if !r.Completed {
			incomplete++
		}
	}

	slog.Info("jitter summary",
		"runs", len(results),
		"incomplete", incomplete,
		"worst_drift", worst,
		"elapsed", formatDuration(time.Since(start)),
	)

	if *outputDir != "" {
		if err := os.MkdirAll(*outputDir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		path := filepath.Join(*outputDir, "jitter.csv")
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()
		if err := gocsv.MarshalFile(&results, f); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	if incomplete > 0 {
		return fmt.Errorf("%d runs hit the tick cap", incomplete)
	}
	return nil
}
