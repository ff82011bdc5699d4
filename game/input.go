package game

import (
	"github.com/pthm-cable/tensai/geom"
	"github.com/pthm-cable/tensai/physics"
)

// SelectAt selects the body under the screen point, or clears the selection
// when there is none. It reports whether a body was selected.
func (g *Game) SelectAt(screen geom.Vec2) bool {
	world := g.gfx.ScreenToWorld(screen)

	g.hasSelection = false
	closest := float32(-1)
	query := g.bodyFilter.Query()
	for query.Next() {
		body, shape := query.Get()
		if !physics.PointInCircle(world, body.Position, shape.Radius) {
			continue
		}
		d := world.Sub(body.Position).LengthSq()
		if closest < 0 || d < closest {
			closest = d
			g.selected = query.Entity()
			g.hasSelection = true
		}
	}
	return g.hasSelection
}

// ClearSelection deselects the current body.
func (g *Game) ClearSelection() {
	g.hasSelection = false
}

// TogglePause pauses or resumes the simulation.
func (g *Game) TogglePause() {
	g.paused = !g.paused
}

// ShowVelocity toggles velocity vectors.
func (g *Game) ShowVelocity(show bool) {
	g.render.ShowVelocity = show
}
