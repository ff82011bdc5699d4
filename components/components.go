// Package components defines ECS components for the demo scene.
package components

import (
	"github.com/pthm-cable/tensai/geom"
	"github.com/pthm-cable/tensai/physics"
)

// Body is the physical state of a scene entity.
type Body struct {
	physics.Body
}

// ShapeKind selects how a body is drawn. Collision always uses the
// bounding circle.
type ShapeKind uint8

const (
	ShapeCircle  ShapeKind = iota
	ShapeSquare            // polygon inscribed in the bounding circle, turned to face the velocity
	ShapeCapsule           // axis-aligned ellipse, 0.6 times as tall as it is wide
)

// Shape holds the visual and collision extent of an entity.
type Shape struct {
	Kind   ShapeKind
	Radius float32
	Color  geom.Color
}

// Bounds returns the axis-aligned box around the bounding circle at pos.
func (s Shape) Bounds(pos geom.Vec2) physics.AABB {
	return physics.AABBFromCircle(pos, s.Radius)
}

// String implements fmt.Stringer.
func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapeSquare:
		return "square"
	case ShapeCapsule:
		return "capsule"
	default:
		return "unknown"
	}
}
