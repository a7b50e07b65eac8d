package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tilestep/components"
	"github.com/pthm-cable/tilestep/ui"
)

// actorBounds returns the axis-aligned box of the actor cube.
func (g *Game) actorBounds(pos components.Position) rl.BoundingBox {
	half := float32(g.cfg.Actor.Scale) / 2
	return rl.NewBoundingBox(
		rl.NewVector3(pos.X-half, pos.Y-half, pos.Z-half),
		rl.NewVector3(pos.X+half, pos.Y+half, pos.Z+half),
	)
}

// handleSelection toggles the actor highlight on left click.
// Clicking anywhere other than the actor clears the selection.
func (g *Game) handleSelection() {
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	mouse := rl.GetMousePosition()
	if g.overlays.IsEnabled(ui.OverlayControls) && rl.CheckCollisionPointRec(mouse, g.controls.Bounds(g.overlays)) {
		return
	}

	ray := rl.GetScreenToWorldRay(mouse, g.camera3D())
	hit := rl.GetRayCollisionBox(ray, g.actorBounds(g.snap.Position)).Hit
	g.sim.SetSelected(hit)
	g.snap.Selected = hit
}
