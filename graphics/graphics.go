// Package graphics is an immediate-mode 2D rasterizer over an abstract
// Target. Shapes are tessellated or scan-converted here and reach the target
// as points, lines, rectangles and texture copies.
//
// Draw calls take screen coordinates. The bound camera is used only by the
// coordinate helpers (WorldToScreen, ScreenToWorld); callers convert world
// positions themselves.
package graphics

import (
	"image"

	"github.com/pthm-cable/tensai/camera"
	"github.com/pthm-cable/tensai/geom"
)

// Graphics holds draw state for one Target. It is not safe for concurrent
// use.
type Graphics struct {
	target Target

	color     geom.Color
	lineWidth float32
	font      Optional[Font]

	cam   camera.Camera
	stack []camera.Camera

	// err latches the first backend failure.
	err error

	// Scratch buffers reused across draw calls.
	points []image.Point
	xs     []float32
}

// New binds a Graphics to target. The draw color starts white and is pushed
// to the target so both agree.
func New(target Target) (*Graphics, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	g := &Graphics{
		target:    target,
		lineWidth: 1,
		cam:       camera.New(),
	}
	g.SetColor(geom.White)
	if g.err != nil {
		return nil, g.err
	}
	return g, nil
}

// Target returns the bound raster target.
func (g *Graphics) Target() Target { return g.target }

// Size returns the target's size in pixels.
func (g *Graphics) Size() (w, h int) { return g.target.Size() }

// SetColor sets the draw color for subsequent primitives.
func (g *Graphics) SetColor(c geom.Color) {
	g.color = c
	if g.err != nil {
		return
	}
	g.check("set draw color", g.target.SetDrawColor(c))
}

// Color returns the current draw color.
func (g *Graphics) Color() geom.Color { return g.color }

// SetLineWidth sets the width used by DrawLine. Widths of 1 or less draw
// single-pixel lines.
func (g *Graphics) SetLineWidth(w float32) { g.lineWidth = w }

// LineWidth returns the current line width.
func (g *Graphics) LineWidth() float32 { return g.lineWidth }

// SetFont sets the font used by DrawText. Pass None to disable text.
func (g *Graphics) SetFont(f Optional[Font]) { g.font = f }

// Clear fills the target with c. The draw color is left unchanged.
func (g *Graphics) Clear(c geom.Color) {
	if g.err != nil {
		return
	}
	g.check("clear", g.target.Clear(c))
}

// ClearDefault clears to opaque black.
func (g *Graphics) ClearDefault() {
	g.Clear(geom.Black)
}

// Present shows the frame. It returns the first backend error seen by this
// Graphics, if any; once an error is latched nothing more is sent to the
// target.
func (g *Graphics) Present() error {
	if g.err != nil {
		return g.err
	}
	g.check("present", g.target.Present())
	return g.err
}

// Err returns the latched backend error.
func (g *Graphics) Err() error { return g.err }

// check latches err and reports whether the call succeeded.
func (g *Graphics) check(op string, err error) bool {
	if err == nil {
		return true
	}
	if g.err == nil {
		g.err = &BackendError{Op: op, Err: err}
		Logger().Error("backend failure", "op", op, "error", err)
	}
	return false
}

// Camera returns a copy of the bound camera.
func (g *Graphics) Camera() camera.Camera { return g.cam }

// SetCamera replaces the bound camera.
func (g *Graphics) SetCamera(c camera.Camera) { g.cam = c }

// PushMatrix saves the camera so a later PopMatrix can restore it.
func (g *Graphics) PushMatrix() {
	g.stack = append(g.stack, g.cam)
}

// PopMatrix restores the most recently pushed camera. It does nothing when
// the stack is empty.
func (g *Graphics) PopMatrix() {
	n := len(g.stack)
	if n == 0 {
		return
	}
	g.cam = g.stack[n-1]
	g.stack = g.stack[:n-1]
}

// Translate moves the camera by -offset, so world content shifts by offset.
func (g *Graphics) Translate(offset geom.Vec2) {
	g.cam.Translate(offset.Neg())
}

// Rotate turns the camera by -angle radians.
func (g *Graphics) Rotate(angle float32) {
	g.cam.Rotate(-angle)
}

// Scale divides the camera scale by s per axis, matching the inverse
// convention of Translate and Rotate.
func (g *Graphics) Scale(s geom.Vec2) {
	g.cam.Scale = g.cam.Scale.Mul(geom.V2(1/s.X, 1/s.Y))
}

// WorldToScreen maps a world point through the bound camera.
func (g *Graphics) WorldToScreen(p geom.Vec2) geom.Vec2 {
	w, h := g.target.Size()
	return g.cam.WorldToScreen(p, w, h)
}

// ScreenToWorld maps a screen point back through the bound camera.
func (g *Graphics) ScreenToWorld(p geom.Vec2) geom.Vec2 {
	w, h := g.target.Size()
	return g.cam.ScreenToWorld(p, w, h)
}
