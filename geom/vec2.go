// Package geom provides the value types shared by the camera, graphics and
// physics packages: 2D vectors, colors and textured-quad transforms.
package geom

import "math"

// Vec2 is a 2D vector. All methods return a new value.
type Vec2 struct {
	X, Y float32
}

// V2 is shorthand for Vec2{X: x, Y: y}.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by k.
func (v Vec2) Scale(k float32) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Mul is the componentwise (Hadamard) product, used for non-uniform scaling.
// It is not a dot product; see Dot.
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{X: v.X * o.X, Y: v.Y * o.Y}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float32 {
	return v.X*o.X + v.Y*o.Y
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Perp returns v rotated a quarter turn: (-y, x).
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// LengthSq returns the squared length.
func (v Vec2) LengthSq() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Length returns sqrt(x² + y²).
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Normalize returns the unit vector in the direction of v.
// A zero-length vector normalizes to (0, 0).
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l > 0 {
		return Vec2{X: v.X / l, Y: v.Y / l}
	}
	return Vec2{}
}

// Rotate rotates v counter-clockwise (in a y-up frame) by angle radians.
func (v Vec2) Rotate(angle float32) Vec2 {
	s, c := math.Sincos(float64(angle))
	x, y := float64(v.X), float64(v.Y)
	return Vec2{X: float32(x*c - y*s), Y: float32(x*s + y*c)}
}
