package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tensai/components"
	"github.com/pthm-cable/tensai/geom"
	"github.com/pthm-cable/tensai/physics"
)

// spawnBody creates one random body inside the physics bounds.
func (g *Game) spawnBody() ecs.Entity {
	sc := g.cfg.Scene
	bounds := g.physics.Bounds()

	r := g.rng.Float(float32(sc.MinRadius), float32(sc.MaxRadius))
	pos := g.rng.Vec2(geom.V2(r, r), geom.V2(max(r, bounds.Width-r), max(r, bounds.Height-r)))
	speed := g.rng.Float(0, float32(sc.MaxSpeed))
	heading := g.rng.Float(0, 2*math.Pi)

	body := physics.NewBody(pos)
	body.Velocity = geom.V2(speed, 0).Rotate(heading)
	body.Mass = r * r / 100 // proportional to area
	body.Friction = float32(g.cfg.Physics.Friction)
	body.Restitution = float32(g.cfg.Physics.Restitution)
	if g.rng.Float01() < float32(sc.KinematicFraction) {
		body.Kinematic = true
		body.Mass = kinematicMass
	}

	shape := components.Shape{
		Kind:   components.ShapeKind(g.rng.Int(0, int(components.ShapeCapsule))),
		Radius: r,
		Color:  g.rng.Color(80),
	}
	return g.bodies.NewEntity(&components.Body{Body: body}, &shape)
}

// Reset removes every body and spawns a fresh set.
func (g *Game) Reset() {
	var entities []ecs.Entity
	query := g.bodyFilter.Query()
	for query.Next() {
		entities = append(entities, query.Entity())
	}
	for _, e := range entities {
		g.bodies.Remove(e)
	}
	g.hasSelection = false
	g.Load()
}

// groundPolygon returns a strip from top down to the world bottom with a
// jagged lower edge.
func groundPolygon(width, height, top float32) []geom.Vec2 {
	const teeth = 16
	pts := []geom.Vec2{geom.V2(0, top), geom.V2(width, top)}
	step := width / teeth
	depth := (height - top) * 0.3
	for i := teeth; i >= 0; i-- {
		y := height
		if i%2 == 1 {
			y -= depth
		}
		pts = append(pts, geom.V2(float32(i)*step, y))
	}
	return pts
}
