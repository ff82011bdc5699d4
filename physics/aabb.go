package physics

import "github.com/pthm-cable/tensai/geom"

// AABB is an axis-aligned bounding box. Min must not exceed Max on either
// axis; this is not checked.
type AABB struct {
	Min, Max geom.Vec2
}

// AABBFromCircle returns the bounds of a circle.
func AABBFromCircle(center geom.Vec2, radius float32) AABB {
	r := geom.V2(radius, radius)
	return AABB{Min: center.Sub(r), Max: center.Add(r)}
}

// Intersects reports whether a and o overlap. Shared edges count.
func (a AABB) Intersects(o AABB) bool {
	return a.Max.X >= o.Min.X && a.Min.X <= o.Max.X &&
		a.Max.Y >= o.Min.Y && a.Min.Y <= o.Max.Y
}

// Contains reports whether p lies inside a, bounds included.
func (a AABB) Contains(p geom.Vec2) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y
}

// Size returns the extent of a.
func (a AABB) Size() geom.Vec2 {
	return a.Max.Sub(a.Min)
}
