package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tensai/components"
	"github.com/pthm-cable/tensai/geom"
	"github.com/pthm-cable/tensai/physics"
)

type collider struct {
	body   *physics.Body
	radius float32
}

// CollisionSystem finds overlapping bodies through a SpatialGrid and
// resolves each contact with an impulse.
type CollisionSystem struct {
	filter     ecs.Filter2[components.Body, components.Shape]
	grid       *SpatialGrid
	colliders  []collider
	candidates []int
}

// NewCollisionSystem creates a collision system for the given bounds.
// cellSize should be at least the largest body diameter.
func NewCollisionSystem(w *ecs.World, bounds Bounds, cellSize float32) *CollisionSystem {
	return &CollisionSystem{
		filter: *ecs.NewFilter2[components.Body, components.Shape](w),
		grid:   NewSpatialGrid(bounds.Width, bounds.Height, cellSize),
	}
}

// Update resolves all contacts and returns how many there were.
func (s *CollisionSystem) Update() int {
	s.colliders = s.colliders[:0]
	s.grid.Clear()

	var maxRadius float32
	query := s.filter.Query()
	for query.Next() {
		body, shape := query.Get()
		s.grid.Insert(len(s.colliders), body.Position)
		s.colliders = append(s.colliders, collider{body: &body.Body, radius: shape.Radius})
		maxRadius = max(maxRadius, shape.Radius)
	}

	contacts := 0
	for i, a := range s.colliders {
		s.candidates = s.grid.QueryRadiusInto(s.candidates[:0], a.body.Position, a.radius+maxRadius)
		for _, j := range s.candidates {
			if j <= i {
				continue
			}
			b := s.colliders[j]
			if Collide(a.body, a.radius, b.body, b.radius) {
				contacts++
			}
		}
	}
	return contacts
}

// Collide resolves a contact between two circles and reports whether they
// overlapped. Kinematic bodies keep their velocity and are never pushed;
// two kinematic bodies pass through each other.
func Collide(a *physics.Body, ra float32, b *physics.Body, rb float32) bool {
	if a.Kinematic && b.Kinematic {
		return false
	}
	if !physics.CircleCircleCollision(a.Position, ra, b.Position, rb) {
		return false
	}

	n := physics.CircleNormal(a.Position, b.Position)
	if n == (geom.Vec2{}) {
		n = geom.V2(1, 0)
	}

	va, vb := a.Velocity, b.Velocity
	physics.ResolveCollision(a, b, n)
	if a.Kinematic {
		a.Velocity = va
	}
	if b.Kinematic {
		b.Velocity = vb
	}

	separate(a, ra, b, rb, n)
	return true
}

// separate pushes the pair apart along n until they just touch.
func separate(a *physics.Body, ra float32, b *physics.Body, rb float32, n geom.Vec2) {
	overlap := ra + rb - b.Position.Sub(a.Position).Length()
	if overlap <= 0 {
		return
	}
	switch {
	case a.Kinematic:
		b.Position = b.Position.Add(n.Scale(overlap))
	case b.Kinematic:
		a.Position = a.Position.Sub(n.Scale(overlap))
	default:
		half := n.Scale(overlap / 2)
		a.Position = a.Position.Sub(half)
		b.Position = b.Position.Add(half)
	}
}
