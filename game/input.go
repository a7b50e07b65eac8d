package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tilestep/input"
)

// readArrows samples the arrow keys once for this frame.
func readArrows() input.State {
	return input.State{
		Left:  rl.IsKeyDown(rl.KeyLeft),
		Right: rl.IsKeyDown(rl.KeyRight),
		Up:    rl.IsKeyDown(rl.KeyUp),
		Down:  rl.IsKeyDown(rl.KeyDown),
	}
}

// handleInput processes non-movement keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.Reset()
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	for _, desc := range g.overlays.All() {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			g.overlays.Toggle(desc.ID)
		}
	}

	g.handleCameraInput()
	g.handleSelection()
}

// handleResize checks for window resize and moves the docked panels.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.controls.SetPosition(int32(w)-230, 10)
}

// handleCameraInput processes orbit and zoom controls.
// The arrow keys drive the actor, so the orbit uses WASD.
func (g *Game) handleCameraInput() {
	dt := rl.GetFrameTime()
	orbit := float32(g.cfg.Camera.OrbitSpeed) * dt

	if rl.IsKeyDown(rl.KeyA) {
		g.camera.Orbit(-orbit, 0)
	}
	if rl.IsKeyDown(rl.KeyD) {
		g.camera.Orbit(orbit, 0)
	}
	if rl.IsKeyDown(rl.KeyW) {
		g.camera.Orbit(0, orbit)
	}
	if rl.IsKeyDown(rl.KeyS) {
		g.camera.Orbit(0, -orbit)
	}

	// Zoom controls: mouse wheel or +/- keys
	if wheelMove := rl.GetMouseWheelMove(); wheelMove != 0 {
		g.camera.ZoomBy(1 - wheelMove*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(1.25)
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
