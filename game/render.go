package game

import (
	"fmt"

	"github.com/pthm-cable/tensai/geom"
	"github.com/pthm-cable/tensai/physics"
)

var (
	groundColor    = geom.RGBA(46, 52, 64, 255)
	groundEdge     = geom.RGBA(94, 129, 172, 255)
	selectionColor = geom.RGBA(235, 203, 139, 255)
	hudColor       = geom.RGBA(216, 222, 233, 255)
)

// fitCamera centers the world on the target and zooms so it fits, then
// applies the configured zoom and rotation on top.
func (g *Game) fitCamera() {
	w, h := g.gfx.Size()
	zoom := min(float32(w)/g.width, float32(h)/g.height) * float32(g.cfg.Camera.Zoom)

	cam := g.gfx.Camera()
	cam.Reset()
	cam.LookAt(geom.V2(g.width/2, g.height/2))
	cam.Scale = geom.V2(zoom, zoom)
	cam.Rotation = float32(g.cfg.Camera.Rotation)
	g.gfx.SetCamera(cam)
}

// drawGround draws the ground strip below the physics bounds.
func (g *Game) drawGround() {
	pts := make([]geom.Vec2, len(g.ground))
	for i, p := range g.ground {
		pts[i] = g.gfx.WorldToScreen(p)
	}

	g.gfx.SetColor(groundColor)
	g.gfx.DrawPolygon(pts, true)
	g.gfx.SetColor(groundEdge)
	g.gfx.SetLineWidth(1)
	g.gfx.DrawLine(pts[0], pts[1])
}

// drawSelection outlines the screen-space box around the selected body's
// world bounds.
func (g *Game) drawSelection() {
	if !g.hasSelection || !g.world.Alive(g.selected) {
		return
	}
	body, shape := g.bodies.Get(g.selected)

	lo, hi := g.selectionBox(shape.Bounds(body.Position))
	g.gfx.SetColor(selectionColor)
	g.gfx.DrawRect(lo, hi.Sub(lo), false)

	info := fmt.Sprintf("%s m=%.1f v=%.0f", shape.Kind, body.Mass, body.Velocity.Length())
	if body.Kinematic {
		info = fmt.Sprintf("%s kinematic", shape.Kind)
	}
	g.gfx.DrawText(info, geom.V2(hi.X+4, lo.Y), selectionColor)
}

// selectionBox maps a world AABB to the screen box enclosing its corners,
// padded by two pixels.
func (g *Game) selectionBox(box physics.AABB) (lo, hi geom.Vec2) {
	corners := [4]geom.Vec2{
		box.Min,
		geom.V2(box.Max.X, box.Min.Y),
		box.Max,
		geom.V2(box.Min.X, box.Max.Y),
	}
	lo = g.gfx.WorldToScreen(corners[0])
	hi = lo
	for _, c := range corners[1:] {
		p := g.gfx.WorldToScreen(c)
		lo = geom.V2(min(lo.X, p.X), min(lo.Y, p.Y))
		hi = geom.V2(max(hi.X, p.X), max(hi.Y, p.Y))
	}
	pad := geom.V2(2, 2)
	return lo.Sub(pad), hi.Add(pad)
}

// drawHUD draws frame rate and scene counters in the top-left corner.
func (g *Game) drawHUD() {
	text := fmt.Sprintf("%.0f fps  %d bodies  tick %d", g.timer.FPS(), g.BodyCount(), g.tick)
	if g.paused {
		text += "  [paused]"
	}
	g.gfx.DrawText(text, geom.V2(8, 8), hudColor)
}
