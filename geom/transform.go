package geom

import (
	"image"
	"math"
)

// AngleUnit tags the unit an Angle value is stored in.
type AngleUnit uint8

const (
	Radians AngleUnit = iota
	Degrees
)

// Angle is a rotation magnitude tagged with its unit.
type Angle struct {
	Value float32
	Unit  AngleUnit
}

// Rad builds an angle in radians.
func Rad(v float32) Angle { return Angle{Value: v, Unit: Radians} }

// Deg builds an angle in degrees.
func Deg(v float32) Angle { return Angle{Value: v, Unit: Degrees} }

// Degrees returns the angle in degrees.
func (a Angle) Degrees() float64 {
	if a.Unit == Degrees {
		return float64(a.Value)
	}
	return float64(a.Value) * 180.0 / math.Pi
}

// Radians returns the angle in radians.
func (a Angle) Radians() float64 {
	if a.Unit == Radians {
		return float64(a.Value)
	}
	return float64(a.Value) * math.Pi / 180.0
}

// IsZero reports whether the stored magnitude is exactly zero, in either unit.
func (a Angle) IsZero() bool {
	return a.Value == 0
}

// Transform places a textured quad: Position is where Origin lands,
// Origin is the pivot in texture pixels before scaling.
type Transform struct {
	Position Vec2
	Scale    Vec2
	Rotation Angle
	Origin   Vec2
}

// NewTransform returns a transform at pos with unit scale and no rotation.
func NewTransform(pos Vec2) Transform {
	return Transform{Position: pos, Scale: Vec2{1, 1}}
}

// Pivot returns the origin truncated to integer pixel coordinates.
func (t Transform) Pivot() image.Point {
	return image.Point{X: int(t.Origin.X), Y: int(t.Origin.Y)}
}

// RotationDegrees returns the rotation in degrees regardless of how it was set.
func (t Transform) RotationDegrees() float64 {
	return t.Rotation.Degrees()
}

// SetRotation stores a rotation in radians.
func (t *Transform) SetRotation(radians float32) {
	t.Rotation = Rad(radians)
}

// SetRotationDegrees stores a rotation in degrees.
func (t *Transform) SetRotationDegrees(degrees float32) {
	t.Rotation = Deg(degrees)
}
