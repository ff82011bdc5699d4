// Package physics integrates point-mass bodies and resolves pairwise
// contacts with a normal-only impulse solver.
//
// Broad-phase pair selection is left to the caller: these functions
// operate only on the bodies and shapes passed to them.
package physics

import (
	"math"

	"github.com/pthm-cable/tensai/geom"
)

// Body is a point mass integrated with semi-implicit Euler.
type Body struct {
	Position     geom.Vec2
	Velocity     geom.Vec2
	Acceleration geom.Vec2 // per-step force accumulator, cleared by UpdateBody

	Mass        float32 // must be > 0
	Friction    float32 // linear damping per second, nominally [0, 1]
	Restitution float32 // bounciness, nominally [0, 1]
	Kinematic   bool    // externally driven; ignored by UpdateBody
}

// NewBody returns a dynamic unit-mass body at pos with no friction and
// perfectly elastic restitution.
func NewBody(pos geom.Vec2) Body {
	return Body{
		Position:    pos,
		Mass:        1,
		Friction:    0,
		Restitution: 1,
	}
}

// UpdateBody advances b by dt seconds. Kinematic bodies are left untouched.
//
// Friction is applied as v *= (1 - friction*dt); when friction*dt exceeds 1
// the velocity flips direction. Acceleration is zeroed afterwards, so forces
// must be reapplied every step.
func UpdateBody(b *Body, dt float32) {
	if b.Kinematic {
		return
	}

	b.Velocity = b.Velocity.Add(b.Acceleration.Scale(dt))
	b.Velocity = b.Velocity.Scale(1 - b.Friction*dt)
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
	b.Acceleration = geom.Vec2{}
}

// ApplyForce accumulates force/mass into the body's acceleration.
func ApplyForce(b *Body, force geom.Vec2) {
	b.Acceleration = b.Acceleration.Add(force.Scale(1 / b.Mass))
}

// ResolveCollision applies an impulse along normal (unit length, pointing
// from a towards b) so the pair separates with restitution min(ea, eb).
// Contacts that are already separating are left alone. There is no
// positional correction and no angular response.
func ResolveCollision(a, b *Body, normal geom.Vec2) {
	relVel := b.Velocity.Sub(a.Velocity)
	velAlongNormal := relVel.Dot(normal)

	// Separating
	if velAlongNormal > 0 {
		return
	}

	e := min(a.Restitution, b.Restitution)
	j := -(1 + e) * velAlongNormal
	j /= 1/a.Mass + 1/b.Mass

	impulse := normal.Scale(j)
	a.Velocity = a.Velocity.Sub(impulse.Scale(1 / a.Mass))
	b.Velocity = b.Velocity.Add(impulse.Scale(1 / b.Mass))
}

// CircleCircleCollision reports whether two circles overlap. Exactly
// touching circles do not count.
func CircleCircleCollision(c1 geom.Vec2, r1 float32, c2 geom.Vec2, r2 float32) bool {
	dx := c2.X - c1.X
	dy := c2.Y - c1.Y
	distance := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	return distance < r1+r2
}

// PointInCircle reports whether p lies inside or on the circle.
func PointInCircle(p, center geom.Vec2, radius float32) bool {
	dx := p.X - center.X
	dy := p.Y - center.Y
	return dx*dx+dy*dy <= radius*radius
}

// CircleNormal returns the unit contact normal pointing from c1 to c2,
// or zero for coincident centers.
func CircleNormal(c1, c2 geom.Vec2) geom.Vec2 {
	return c2.Sub(c1).Normalize()
}
