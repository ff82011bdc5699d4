// Package camera provides a 2D camera for viewport control.
package camera

import (
	"math"

	"github.com/pthm-cable/tensai/geom"
)

// Camera controls the viewport into the world.
// Supports pan, rotation and zoom.
type Camera struct {
	// Position is the world point shown at the screen center
	Position geom.Vec2

	// Rotation in radians, accumulated without wrapping
	Rotation float32

	// Scale is the zoom per axis (1.0 = 1:1, 2.0 = 2x magnification)
	Scale geom.Vec2
}

// New creates an identity camera: origin at the screen center, no rotation, 1:1 zoom.
func New() Camera {
	return Camera{Scale: geom.V2(1, 1)}
}

// Translate moves the camera by offset in world units.
func (c *Camera) Translate(offset geom.Vec2) {
	c.Position = c.Position.Add(offset)
}

// Rotate adds angle radians to the rotation.
func (c *Camera) Rotate(angle float32) {
	c.Rotation += angle
}

// Zoom multiplies the scale on both axes by factor.
func (c *Camera) Zoom(factor float32) {
	c.Scale = c.Scale.Scale(factor)
}

// LookAt centers the camera on target.
func (c *Camera) LookAt(target geom.Vec2) {
	c.Position = target
}

// WorldToScreen converts world coordinates to screen coordinates for a
// screen of the given size.
func (c Camera) WorldToScreen(world geom.Vec2, screenW, screenH int) geom.Vec2 {
	// Relative to camera, undo camera rotation, then zoom
	rel := world.Sub(c.Position)
	rotated := rel.Rotate(-c.Rotation)
	scaled := rotated.Mul(c.Scale)

	// Center on viewport
	return scaled.Add(center(screenW, screenH))
}

// ScreenToWorld converts screen coordinates to world coordinates.
// It is the inverse of WorldToScreen when neither scale component is zero.
func (c Camera) ScreenToWorld(screen geom.Vec2, screenW, screenH int) geom.Vec2 {
	// Reverse the viewport centering and zoom
	centered := screen.Sub(center(screenW, screenH))
	unscaled := geom.V2(centered.X/c.Scale.X, centered.Y/c.Scale.Y)

	// Reapply camera rotation and offset
	return unscaled.Rotate(c.Rotation).Add(c.Position)
}

// VisibleWorldBounds returns the axis-aligned world bounds of the visible
// area. With a rotated camera the bounds enclose the rotated viewport.
func (c Camera) VisibleWorldBounds(screenW, screenH int) (min, max geom.Vec2) {
	corners := [4]geom.Vec2{
		c.ScreenToWorld(geom.V2(0, 0), screenW, screenH),
		c.ScreenToWorld(geom.V2(float32(screenW), 0), screenW, screenH),
		c.ScreenToWorld(geom.V2(0, float32(screenH)), screenW, screenH),
		c.ScreenToWorld(geom.V2(float32(screenW), float32(screenH)), screenW, screenH),
	}
	min, max = corners[0], corners[0]
	for _, p := range corners[1:] {
		min.X = minf(min.X, p.X)
		min.Y = minf(min.Y, p.Y)
		max.X = maxf(max.X, p.X)
		max.Y = maxf(max.Y, p.Y)
	}
	return min, max
}

// IsVisible returns true if a circle at world position p with the given
// radius could be visible on screen (conservative check for culling).
func (c Camera) IsVisible(p geom.Vec2, radius float32, screenW, screenH int) bool {
	min, max := c.VisibleWorldBounds(screenW, screenH)
	return p.X+radius >= min.X && p.X-radius <= max.X &&
		p.Y+radius >= min.Y && p.Y-radius <= max.Y
}

// Reset returns the camera to identity.
func (c *Camera) Reset() {
	*c = New()
}

// center returns the screen center using integer halving of the screen size.
func center(screenW, screenH int) geom.Vec2 {
	return geom.V2(float32(screenW/2), float32(screenH/2))
}

func minf(a, b float32) float32 {
	return float32(math.Min(float64(a), float64(b)))
}

func maxf(a, b float32) float32 {
	return float32(math.Max(float64(a), float64(b)))
}
