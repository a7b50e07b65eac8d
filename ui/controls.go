package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState is what the controls panel shows and edits.
type ControlsState struct {
	Paused bool
	Speed  int // steps per frame, 1-10
}

// ControlsResult reports the actions taken in the panel this frame.
type ControlsResult struct {
	TogglePause bool
	Reset       bool
	Speed       int
}

// ControlsPanel renders the right-side panel with pause, reset, speed and overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Bounds returns the screen rectangle the panel occupies for the given registry.
func (c *ControlsPanel) Bounds(overlays *OverlayRegistry) rl.Rectangle {
	return rl.Rectangle{
		X:      float32(c.x),
		Y:      float32(c.y),
		Width:  float32(c.width),
		Height: float32(c.height(overlays)),
	}
}

func (c *ControlsPanel) height(overlays *OverlayRegistry) int32 {
	padding := c.renderer.Theme.Padding
	// Title, buttons row, slider row, then one row per overlay
	return padding*2 + 24 + 36 + 40 + int32(len(overlays.All()))*22
}

// Draw renders the panel and returns the actions taken.
func (c *ControlsPanel) Draw(state ControlsState, overlays *OverlayRegistry) ControlsResult {
	r := c.renderer
	padding := r.Theme.Padding
	res := ControlsResult{Speed: state.Speed}

	r.DrawPanel(c.x, c.y, c.width, c.height(overlays))

	x := float32(c.x + padding)
	y := float32(c.y + padding)
	inner := float32(c.width - padding*2)

	rl.DrawText("Controls", int32(x), int32(y), 16, rl.White)
	y += 24

	half := (inner - 10) / 2
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 28}, toggleText(state.Paused, "Resume", "Pause")) {
		res.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + half + 10, Y: y, Width: half, Height: 28}, "Reset") {
		res.Reset = true
	}
	y += 36

	rl.DrawText(fmt.Sprintf("Speed: %dx", state.Speed), int32(x), int32(y), 12, rl.LightGray)
	y += 14
	speed := gui.SliderBar(
		rl.Rectangle{X: x + 16, Y: y, Width: inner - 40, Height: 16},
		"1", "10",
		float32(state.Speed), 1, 10,
	)
	if s := int(speed + 0.5); s != state.Speed {
		res.Speed = s
	}
	y += 26

	for _, desc := range overlays.All() {
		label := fmt.Sprintf("%s [%s]", desc.Name, desc.KeyLabel)
		enabled := overlays.IsEnabled(desc.ID)
		if checked := gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 14, Height: 14}, label, enabled); checked != enabled {
			overlays.SetEnabled(desc.ID, checked)
		}
		y += 22
	}

	return res
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
