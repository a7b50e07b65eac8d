package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tilestep/ui"
)

var (
	tileLight   = rl.Color{R: 70, G: 82, B: 70, A: 255}
	tileDark    = rl.Color{R: 58, G: 68, B: 58, A: 255}
	actorColor  = rl.Color{R: 230, G: 140, B: 60, A: 255}
	noseColor   = rl.Color{R: 250, G: 230, B: 200, A: 255}
	outline     = rl.Color{R: 255, G: 220, B: 40, A: 255}
	ghostColor  = rl.Color{R: 255, G: 255, B: 255, A: 60}
	controlHelp = "Arrows: move | WASD: orbit | Wheel: zoom | Space: pause | R: reset | </>: speed | Click: select"
)

// Update samples input and runs StepsPerUpdate steps of one frame's elapsed time.
func (g *Game) Update() {
	g.handleInput()
	g.perfCollector.RecordFrame()

	if !g.paused {
		dt := rl.GetFrameTime()
		in := readArrows()
		for i := 0; i < g.stepsPerUpdate; i++ {
			g.step(dt, in)
		}
	}

	g.camera.Follow(g.snap.Position.X, g.snap.Position.Y, g.snap.Position.Z, rl.GetFrameTime())
}

// camera3D converts the orbit camera into a raylib camera.
func (g *Game) camera3D() rl.Camera3D {
	ex, ey, ez := g.camera.Eye()
	return rl.Camera3D{
		Position:   rl.NewVector3(ex, ey, ez),
		Target:     rl.NewVector3(g.camera.TargetX, g.camera.TargetY, g.camera.TargetZ),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}

// Draw renders the scene and the UI.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 24, G: 28, B: 34, A: 255})

	rl.BeginMode3D(g.camera3D())
	g.drawGrid()
	g.drawActor()
	if g.overlays.IsEnabled(ui.OverlayDestination) {
		g.drawDestination()
	}
	if g.overlays.IsEnabled(ui.OverlayAxes) {
		g.drawAxes()
	}
	rl.EndMode3D()

	g.drawUI()

	rl.EndDrawing()
}

// gridOrigin returns the world-space corner of the tile grid. The grid is centered
// on the spawn tile so the actor starts in the middle of it.
func (g *Game) gridOrigin() (x, z float32) {
	ts := float32(g.cfg.Grid.TileSize)
	spawn := g.sim.Params().Spawn.Position
	cx := float32(math.Floor(float64(spawn.X/ts))) * ts
	cz := float32(math.Floor(float64(spawn.Z/ts))) * ts
	return cx - float32(g.cfg.Grid.Width/2)*ts, cz - float32(g.cfg.Grid.Height/2)*ts
}

// drawGrid draws a checkerboard of tiles on the ground plane.
func (g *Game) drawGrid() {
	ts := float32(g.cfg.Grid.TileSize)
	ox, oz := g.gridOrigin()

	for i := 0; i < g.cfg.Grid.Width; i++ {
		for j := 0; j < g.cfg.Grid.Height; j++ {
			color := tileLight
			if (i+j)%2 == 1 {
				color = tileDark
			}
			center := rl.NewVector3(ox+(float32(i)+0.5)*ts, 0, oz+(float32(j)+0.5)*ts)
			rl.DrawPlane(center, rl.NewVector2(ts, ts), color)
		}
	}
}

// facing returns the unit vector the actor looks along for heading h.
func facing(h float32) rl.Vector3 {
	return rl.NewVector3(float32(math.Cos(float64(h))), 0, -float32(math.Sin(float64(h))))
}

// drawActor draws the actor cube with a marker on its facing side.
func (g *Game) drawActor() {
	size := float32(g.cfg.Actor.Scale)
	pos := rl.NewVector3(g.snap.Position.X, g.snap.Position.Y, g.snap.Position.Z)

	rl.DrawCube(pos, size, size, size, actorColor)
	rl.DrawCubeWires(pos, size, size, size, rl.Black)

	nose := rl.Vector3Add(pos, rl.Vector3Scale(facing(g.snap.Heading), size*0.6))
	rl.DrawSphere(nose, size*0.12, noseColor)

	if g.snap.Selected {
		s := size * 1.15
		rl.DrawCubeWires(pos, s, s, s, outline)
	}
}

// drawDestination draws the tile the current move ends on and the target heading.
func (g *Game) drawDestination() {
	snap := g.snap
	size := float32(g.cfg.Actor.Scale)

	if snap.Moving {
		dir := facing(snap.MoveHeading.Angle())
		dest := rl.NewVector3(
			snap.Position.X+dir.X*snap.Remaining*float32(g.cfg.Grid.TileSize),
			snap.Position.Y,
			snap.Position.Z+dir.Z*snap.Remaining*float32(g.cfg.Grid.TileSize),
		)
		rl.DrawCubeWires(dest, size, size, size, ghostColor)
	}
	if snap.Turning {
		pos := rl.NewVector3(snap.Position.X, snap.Position.Y, snap.Position.Z)
		rl.DrawLine3D(pos, rl.Vector3Add(pos, facing(snap.Target)), outline)
	}
}

// drawAxes draws the world axes through the actor.
func (g *Game) drawAxes() {
	p := rl.NewVector3(g.snap.Position.X, g.snap.Position.Y, g.snap.Position.Z)
	rl.DrawLine3D(p, rl.Vector3Add(p, rl.NewVector3(1, 0, 0)), rl.Red)
	rl.DrawLine3D(p, rl.Vector3Add(p, rl.NewVector3(0, 1, 0)), rl.Green)
	rl.DrawLine3D(p, rl.Vector3Add(p, rl.NewVector3(0, 0, 1)), rl.Blue)
}

// tileOffset returns the actor's position in whole tiles from spawn.
func (g *Game) tileOffset() (int, int) {
	ts := float64(g.cfg.Grid.TileSize)
	return int(math.Round(float64(g.snap.Offset.X) / ts)), int(math.Round(float64(g.snap.Offset.Z) / ts))
}

// drawUI draws the HUD and enabled panels.
func (g *Game) drawUI() {
	tx, tz := g.tileOffset()
	g.hud.Draw(ui.HUDData{
		Title:   "tilestep",
		Tick:    g.snap.Tick,
		Speed:   g.stepsPerUpdate,
		FPS:     rl.GetFPS(),
		Paused:  g.paused,
		TileX:   tx,
		TileZ:   tz,
		Facing:  g.snap.Facing.String(),
		Moving:  g.snap.Moving,
		Turning: g.snap.Turning,
	})
	g.hud.DrawControls(int32(g.screenHeight), controlHelp)

	y := int32(110)
	if g.overlays.IsEnabled(ui.OverlayInspector) && g.snap.Selected {
		g.inspector.SetPosition(10, y)
		y = g.inspector.Draw(g.snap) + 16
	}
	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.SetPosition(16, y)
		g.perfPanel.Draw(ui.PerfPanelData{Stats: g.perfCollector.Stats(), Registry: g.registry})
	}

	if g.overlays.IsEnabled(ui.OverlayControls) {
		res := g.controls.Draw(ui.ControlsState{Paused: g.paused, Speed: g.stepsPerUpdate}, g.overlays)
		if res.TogglePause {
			g.paused = !g.paused
		}
		if res.Reset {
			g.Reset()
		}
		g.stepsPerUpdate = res.Speed
	}

	if g.paused {
		msg := "PAUSED"
		w := rl.MeasureText(msg, 30)
		rl.DrawText(msg, int32(g.screenWidth)/2-w/2, 20, 30, rl.Yellow)
	}
}
