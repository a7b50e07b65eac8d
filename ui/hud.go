package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tilestep/systems"
	"github.com/pthm-cable/tilestep/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Tick         int64
	Speed        int
	FPS          int32
	Paused       bool
	TileX, TileZ int    // tiles from spawn
	Facing       string // nearest cardinal heading
	Moving       bool
	Turning      bool
}

// HUD renders the main heads-up display.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Tile: (%d, %d) | Facing: %s", data.TileX, data.TileZ, data.Facing),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", data.Tick, data.Speed, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	statusText := "Idle"
	switch {
	case data.Paused:
		statusText = "PAUSED"
	case data.Moving && data.Turning:
		statusText = "Moving, turning"
	case data.Moving:
		statusText = "Moving"
	case data.Turning:
		statusText = "Turning"
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	Stats    telemetry.PerfStats
	Registry *systems.SystemRegistry
}

// PerfPanel renders the system performance panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(data PerfPanelData) {
	x := p.x
	y := p.y
	s := data.Stats

	p.renderer.DrawPanel(x-6, y-6, 260, 40+int32(len(telemetry.Phases))*14+20)

	rl.DrawText("System Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(
		fmt.Sprintf("Step: %s | Frame: %s", s.AvgTickDuration.Round(time.Microsecond), s.FrameDuration.Round(time.Microsecond)),
		x, y, 14, rl.Yellow,
	)
	y += 16

	for _, phase := range telemetry.Phases {
		avg := s.PhaseAvg[phase]
		pct := s.PhasePct[phase]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 30 {
			color = rl.Orange
		}

		displayName := phase
		if data.Registry != nil {
			displayName = data.Registry.GetName(phase)
		}

		rl.DrawText(
			fmt.Sprintf("%-12s %6s %5.1f%%", displayName, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
