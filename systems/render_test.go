package systems

import (
	"image/color"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tensai/camera"
	"github.com/pthm-cable/tensai/components"
	"github.com/pthm-cable/tensai/geom"
	"github.com/pthm-cable/tensai/graphics"
	"github.com/pthm-cable/tensai/physics"
	"github.com/pthm-cable/tensai/renderer"
)

func TestRenderSystem_Draw(t *testing.T) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap2[components.Body, components.Shape](w)

	visible := physics.NewBody(geom.V2(50, 50))
	mapper.NewEntity(&components.Body{Body: visible}, &components.Shape{Radius: 5, Color: geom.Red})

	outline := physics.NewBody(geom.V2(20, 20))
	outline.Kinematic = true
	mapper.NewEntity(&components.Body{Body: outline}, &components.Shape{Kind: components.ShapeCapsule, Radius: 6, Color: geom.Blue})

	square := physics.NewBody(geom.V2(80, 30))
	square.Velocity = geom.V2(0, 20)
	mapper.NewEntity(&components.Body{Body: square}, &components.Shape{Kind: components.ShapeSquare, Radius: 6, Color: geom.Green})

	offscreen := physics.NewBody(geom.V2(500, 500))
	mapper.NewEntity(&components.Body{Body: offscreen}, &components.Shape{Radius: 5, Color: geom.Green})

	canvas := renderer.NewCanvas(100, 100)
	gfx, err := graphics.New(canvas)
	if err != nil {
		t.Fatalf("graphics.New: %v", err)
	}
	cam := camera.New()
	cam.LookAt(geom.V2(50, 50))
	gfx.SetCamera(cam)

	sys := NewRenderSystem(w, gfx)
	if drawn := sys.Draw(); drawn != 3 {
		t.Errorf("expected 3 visible bodies, got %d", drawn)
	}
	if err := gfx.Err(); err != nil {
		t.Fatalf("graphics error: %v", err)
	}

	img := canvas.Image()
	if got := img.RGBAAt(50, 50); got != (color.RGBA{230, 41, 55, 255}) {
		t.Errorf("filled body center = %v, want red", got)
	}
	if got := img.RGBAAt(20, 20); got.A != 0 {
		t.Errorf("kinematic body should be outlined, center is %v", got)
	}
	// Above the velocity line, which starts at the center.
	if got := img.RGBAAt(80, 28); got != (color.RGBA{0, 228, 48, 255}) {
		t.Errorf("square body = %v, want green", got)
	}
	if got := img.RGBAAt(80, 31); got != (color.RGBA{160, 160, 160, 160}) {
		t.Errorf("velocity line = %v, want translucent white", got)
	}
}
