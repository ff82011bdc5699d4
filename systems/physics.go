package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tensai/components"
	"github.com/pthm-cable/tensai/geom"
	"github.com/pthm-cable/tensai/physics"
)

// Bounds represents the area bodies are kept inside.
type Bounds struct {
	Width, Height float32
}

// PhysicsSystem integrates bodies and bounces them off the bounds.
type PhysicsSystem struct {
	filter ecs.Filter2[components.Body, components.Shape]
	bounds Bounds

	Gravity         float32 // downward acceleration, world units/s²
	WallRestitution float32 // velocity kept when bouncing off a wall
	MaxSpeed        float32 // speed cap for dynamic bodies, 0 = none
}

// NewPhysicsSystem creates a new physics system.
func NewPhysicsSystem(w *ecs.World, bounds Bounds) *PhysicsSystem {
	return &PhysicsSystem{
		filter:          *ecs.NewFilter2[components.Body, components.Shape](w),
		bounds:          bounds,
		WallRestitution: 1,
	}
}

// Bounds returns the area bodies are kept inside.
func (s *PhysicsSystem) Bounds() Bounds {
	return s.bounds
}

// Update advances every body by dt seconds and returns the number of wall
// bounces. Kinematic bodies move at constant velocity and bounce without
// losing speed.
func (s *PhysicsSystem) Update(dt float32) int {
	hits := 0
	query := s.filter.Query()
	for query.Next() {
		body, shape := query.Get()
		b := &body.Body

		if b.Kinematic {
			b.Position = b.Position.Add(b.Velocity.Scale(dt))
		} else {
			physics.ApplyForce(b, geom.V2(0, s.Gravity*b.Mass))
			physics.UpdateBody(b, dt)

			// Limit velocity
			if s.MaxSpeed > 0 {
				if speed := b.Velocity.Length(); speed > s.MaxSpeed {
					b.Velocity = b.Velocity.Scale(s.MaxSpeed / speed)
				}
			}
		}

		if s.bounce(b, shape.Radius) {
			hits++
		}
	}
	return hits
}

// bounce clamps b into the bounds shrunk by r and reflects any velocity
// component pointing out of them. It reports whether a reflection happened.
func (s *PhysicsSystem) bounce(b *physics.Body, r float32) bool {
	inner := physics.AABB{
		Min: geom.V2(r, r),
		Max: geom.V2(s.bounds.Width-r, s.bounds.Height-r),
	}
	if inner.Contains(b.Position) {
		return false
	}

	e := s.WallRestitution
	if b.Kinematic {
		e = 1
	}

	hit := false
	if b.Position.X < inner.Min.X {
		b.Position.X = inner.Min.X
		if b.Velocity.X < 0 {
			b.Velocity.X = -b.Velocity.X * e
			hit = true
		}
	} else if b.Position.X > inner.Max.X {
		b.Position.X = inner.Max.X
		if b.Velocity.X > 0 {
			b.Velocity.X = -b.Velocity.X * e
			hit = true
		}
	}
	if b.Position.Y < inner.Min.Y {
		b.Position.Y = inner.Min.Y
		if b.Velocity.Y < 0 {
			b.Velocity.Y = -b.Velocity.Y * e
			hit = true
		}
	} else if b.Position.Y > inner.Max.Y {
		b.Position.Y = inner.Max.Y
		if b.Velocity.Y > 0 {
			b.Velocity.Y = -b.Velocity.Y * e
			hit = true
		}
	}
	return hit
}
