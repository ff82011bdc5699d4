package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tensai/components"
	"github.com/pthm-cable/tensai/geom"
	"github.com/pthm-cable/tensai/graphics"
)

// RenderSystem draws every body through a Graphics context, mapping world
// positions to the screen with the context's camera.
type RenderSystem struct {
	filter ecs.Filter2[components.Body, components.Shape]
	gfx    *graphics.Graphics
	poly   []geom.Vec2

	ShowVelocity  bool
	VelocityScale float32 // seconds of travel drawn as the velocity line
	VelocityColor geom.Color
	LineWidth     float32
}

// NewRenderSystem creates a render system drawing into gfx.
func NewRenderSystem(w *ecs.World, gfx *graphics.Graphics) *RenderSystem {
	return &RenderSystem{
		filter:        *ecs.NewFilter2[components.Body, components.Shape](w),
		gfx:           gfx,
		ShowVelocity:  true,
		VelocityScale: 0.1,
		VelocityColor: geom.RGBA(255, 255, 255, 160),
		LineWidth:     1,
		poly:          make([]geom.Vec2, 0, 4),
	}
}

// Draw renders all visible bodies and returns how many were drawn.
// Dynamic bodies are filled, kinematic ones outlined.
func (s *RenderSystem) Draw() int {
	cam := s.gfx.Camera()
	w, h := s.gfx.Size()
	zoom := cam.Scale.X

	drawn := 0
	query := s.filter.Query()
	for query.Next() {
		body, shape := query.Get()
		pos := body.Position
		if !cam.IsVisible(pos, shape.Radius, w, h) {
			continue
		}
		drawn++

		screen := s.gfx.WorldToScreen(pos)
		r := shape.Radius * zoom
		filled := !body.Kinematic

		s.gfx.SetColor(shape.Color)
		switch shape.Kind {
		case components.ShapeSquare:
			s.gfx.DrawPolygon(s.square(pos, body.Velocity, shape.Radius), filled)
		case components.ShapeCapsule:
			s.gfx.DrawEllipse(screen, geom.V2(r, r*0.6), filled)
		default:
			s.gfx.DrawCircle(screen, r, filled)
		}

		if s.ShowVelocity && body.Velocity.LengthSq() > 0 {
			tip := s.gfx.WorldToScreen(pos.Add(body.Velocity.Scale(s.VelocityScale)))
			s.gfx.SetColor(s.VelocityColor)
			s.gfx.SetLineWidth(s.LineWidth)
			s.gfx.DrawLine(screen, tip)
		}
	}
	return drawn
}

// square returns the screen corners of a square inscribed in the circle at
// pos, turned to face vel.
func (s *RenderSystem) square(pos, vel geom.Vec2, radius float32) []geom.Vec2 {
	heading := float32(math.Atan2(float64(vel.Y), float64(vel.X)))
	s.poly = s.poly[:0]
	for i := range 4 {
		corner := geom.V2(radius, 0).Rotate(heading + math.Pi/4 + float32(i)*math.Pi/2)
		s.poly = append(s.poly, s.gfx.WorldToScreen(pos.Add(corner)))
	}
	return s.poly
}
