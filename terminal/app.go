package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/tilestep/audio"
	"github.com/pthm-cable/tilestep/components"
	"github.com/pthm-cable/tilestep/config"
	"github.com/pthm-cable/tilestep/sim"
	"github.com/pthm-cable/tilestep/telemetry"
)

var (
	boardStyle  = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	actorStyle  = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	pauseStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// App is the terminal host.
type App struct {
	cfg       *config.Config
	screen    tcell.Screen
	sim       *sim.Sim
	latch     *KeyLatch
	sound     *audio.SoundManager
	collector *telemetry.Collector

	paused   bool
	lastTick time.Time
	snap     sim.Snapshot
}

// NewApp creates a terminal host drawing to an initialized screen.
// sound may be nil.
func NewApp(cfg *config.Config, screen tcell.Screen, sound *audio.SoundManager) (*App, error) {
	params, err := sim.ParamsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:       cfg,
		screen:    screen,
		sim:       sim.New(params),
		latch:     NewKeyLatch(time.Duration(cfg.Derived.HoldWindow32 * float32(time.Second))),
		sound:     sound,
		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow),
	}
	a.sim.AttachTelemetry(a.collector, nil)
	a.snap = a.sim.Snapshot()
	return a, nil
}

// pollEvents forwards screen events to out until the screen is finalized
// or done is closed.
func pollEvents(screen tcell.Screen, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			// Screen finalized
			close(out)
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

// Run processes events and steps the simulation until ctx is done or the user quits.
func (a *App) Run(ctx context.Context) error {
	fps := a.cfg.Screen.TargetFPS
	if fps < 1 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(a.screen, eventChan, done)

	a.lastTick = time.Now()
	a.draw()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-eventChan:
			if !ok {
				return nil
			}
			if !a.handleEvent(ev, time.Now()) {
				return nil
			}

		case now := <-ticker.C:
			a.tick(now)
			a.draw()
		}
	}
}

// handleEvent applies a tcell event. Returns false when the user asked to quit.
func (a *App) handleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			a.latch.Press(components.Left, now)
		case tcell.KeyRight:
			a.latch.Press(components.Right, now)
		case tcell.KeyUp:
			a.latch.Press(components.Up, now)
		case tcell.KeyDown:
			a.latch.Press(components.Down, now)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				a.paused = !a.paused
				a.latch.Clear()
			case 'r':
				a.sim.Reset()
				a.latch.Clear()
				a.snap = a.sim.Snapshot()
				slog.Info("actor reset", "tick", a.snap.Tick)
			}
		}

	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

// tick steps the simulation by the wall time since the previous tick.
func (a *App) tick(now time.Time) {
	dt := float32(now.Sub(a.lastTick).Seconds())
	a.lastTick = now
	if a.paused {
		return
	}

	ev := a.sim.Step(dt, a.latch.State(now))
	a.snap = a.sim.Snapshot()

	if a.sound != nil {
		if ev.MoveFinished {
			a.sound.PlayFootstep()
		} else if ev.TurnFinished {
			a.sound.PlayTurn()
		}
	}

	if a.collector.ShouldFlush() {
		a.collector.Flush().LogStats()
	}
}

// draw renders the board and status lines.
func (a *App) draw() {
	a.screen.Clear()

	board := RenderBoard(a.snap, a.cfg.Grid.Width, a.cfg.Grid.Height, float32(a.cfg.Grid.TileSize))
	for y, row := range board.Rows {
		for x, r := range row {
			style := boardStyle
			if r == glyph(a.snap.Facing) {
				style = actorStyle
			}
			a.screen.SetContent(x+2, y+1, r, nil, style)
		}
	}

	statusY := board.Height + 2
	dx, dz := tileOffset(a.snap, float32(a.cfg.Grid.TileSize))
	a.drawText(2, statusY, statusStyle, fmt.Sprintf("tile (%d, %d)  facing %s  heading %.2f", dx, dz, a.snap.Facing, a.snap.Heading))
	a.drawText(2, statusY+1, statusStyle, fmt.Sprintf("tick %d  %s", a.snap.Tick, motionLabel(a.snap)))
	a.drawText(2, statusY+2, statusStyle, "arrows: move  space: pause  r: reset  q: quit")
	if a.paused {
		a.drawText(2, 0, pauseStyle, "PAUSED")
	}

	a.screen.Show()
}

func (a *App) drawText(x, y int, style tcell.Style, s string) {
	for i, r := range []rune(s) {
		a.screen.SetContent(x+i, y, r, nil, style)
	}
}

func motionLabel(snap sim.Snapshot) string {
	switch {
	case snap.Moving && snap.Turning:
		return fmt.Sprintf("moving %s (%.2f left), turning", snap.MoveHeading, snap.Remaining)
	case snap.Moving:
		return fmt.Sprintf("moving %s (%.2f left)", snap.MoveHeading, snap.Remaining)
	case snap.Turning:
		return "turning"
	}
	return "idle"
}
