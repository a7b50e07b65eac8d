// Command tileterm runs the grid-step controller in a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/tilestep/audio"
	"github.com/pthm-cable/tilestep/config"
	"github.com/pthm-cable/tilestep/terminal"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logFile := flag.String("log-file", "tileterm.log", "Log destination; stdout belongs to the terminal UI")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := config.Cfg()

	f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()
	slog.SetDefault(slog.New(slog.NewTextHandler(f, nil)))

	var sound *audio.SoundManager
	if cfg.Audio.Enabled {
		sound = audio.NewSoundManager(cfg.Audio.FootstepHz, time.Duration(cfg.Audio.FootstepMs)*time.Millisecond)
		if err := sound.Initialize(); err != nil {
			// Non-fatal, the controller runs without sound
			slog.Warn("audio disabled", "error", err)
		}
		defer sound.Cleanup()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	app, err := terminal.NewApp(cfg, screen, sound)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("starting terminal host", "grid_width", cfg.Grid.Width, "grid_height", cfg.Grid.Height)
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
