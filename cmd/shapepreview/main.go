// Shape preview tool - every Graphics primitive on a raylib window, with
// sliders for the parameters.
//
// Usage: go run ./cmd/shapepreview
package main

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tensai/camera"
	"github.com/pthm-cable/tensai/geom"
	"github.com/pthm-cable/tensai/graphics"
	"github.com/pthm-cable/tensai/renderer"
	"github.com/pthm-cable/tensai/renderer/rlbackend"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 680
	panelWidth   = windowWidth - previewSize - 30
)

// ShapeParams holds the values driven by the sliders.
type ShapeParams struct {
	LineWidth   float32
	Radius      float32
	EllipseRX   float32
	EllipseRY   float32
	Sides       int
	Zoom        float32
	Rotation    float32 // camera, degrees
	TexRotation float32 // texture, degrees
	Filled      bool
}

func defaultParams() ShapeParams {
	return ShapeParams{
		LineWidth:   3,
		Radius:      60,
		EllipseRX:   80,
		EllipseRY:   40,
		Sides:       5,
		Zoom:        1,
		Rotation:    0,
		TexRotation: 30,
		Filled:      true,
	}
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	graphics.SetLogger(logger)

	target := rlbackend.Open(windowWidth, windowHeight, "Shape Preview", 30)
	defer target.Close()

	gfx, err := graphics.New(target)
	if err != nil {
		slog.Error("creating graphics", "error", err)
		os.Exit(1)
	}

	font, err := renderer.DefaultFont(18)
	if err != nil {
		slog.Error("loading font", "error", err)
		os.Exit(1)
	}
	defer font.Close()
	gfx.SetFont(graphics.Some[graphics.Font](font))

	tex, err := target.UploadImage(checkerboard(64, 8))
	if err != nil {
		slog.Error("uploading texture", "error", err)
		os.Exit(1)
	}
	defer tex.Release()

	params := defaultParams()

	for !target.ShouldClose() {
		gfx.Clear(geom.RGBA(245, 245, 245, 255))

		drawPreview(gfx, params, tex)
		params = drawPanel(gfx, params)

		if err := gfx.Present(); err != nil {
			slog.Error("present failed", "error", err)
			os.Exit(1)
		}
	}
}

// drawPreview draws one of each primitive in a world centered on the
// preview square.
func drawPreview(gfx *graphics.Graphics, p ShapeParams, tex graphics.Texture) {
	rotation := p.Rotation * math.Pi / 180
	cam := camera.New()
	cam.Zoom(p.Zoom)
	cam.Rotate(rotation)
	// World origin lands on the preview center rather than the window center.
	offset := float32(windowWidth/2 - (10 + previewSize/2))
	cam.LookAt(geom.V2(offset/p.Zoom, 0).Rotate(rotation))
	gfx.SetCamera(cam)

	gfx.SetLineWidth(p.LineWidth)
	at := func(x, y float32) geom.Vec2 { return gfx.WorldToScreen(geom.V2(x, y)) }

	// Circle
	gfx.SetColor(geom.Red)
	gfx.DrawCircle(at(-170, -170), p.Radius*p.Zoom, p.Filled)

	// Ellipse
	gfx.SetColor(geom.Blue)
	gfx.DrawEllipse(at(130, -170), geom.V2(p.EllipseRX, p.EllipseRY).Scale(p.Zoom), p.Filled)

	// Regular polygon
	poly := make([]geom.Vec2, p.Sides)
	for i := range poly {
		a := float32(i) * 2 * math.Pi / float32(p.Sides)
		poly[i] = at(-170+p.Radius*float32(math.Cos(float64(a))), 60+p.Radius*float32(math.Sin(float64(a))))
	}
	gfx.SetColor(geom.Green)
	gfx.DrawPolygon(poly, p.Filled)

	// Rect and lines, drawn in a pushed frame shifted right
	gfx.PushMatrix()
	gfx.Translate(geom.V2(100, 40))
	gfx.SetColor(geom.Gray)
	gfx.DrawRect(gfx.WorldToScreen(geom.V2(0, 0)), geom.V2(120, 70).Scale(p.Zoom), p.Filled)
	gfx.SetColor(geom.Black)
	for i := 0; i < 5; i++ {
		y := float32(i) * 18
		gfx.DrawLine(gfx.WorldToScreen(geom.V2(0, 90+y)), gfx.WorldToScreen(geom.V2(120, 100+y)))
	}
	gfx.PopMatrix()

	// Points
	for x := float32(-250); x <= 250; x += 10 {
		gfx.DrawPoint(at(x, 290))
	}

	// Texture
	t := geom.NewTransform(at(-20, 200))
	t.Origin = geom.V2(32, 32)
	t.Scale = geom.V2(p.Zoom, p.Zoom)
	t.SetRotationDegrees(p.TexRotation)
	gfx.DrawTexture(graphics.Some(tex), t, geom.White)

	gfx.DrawText("tensai shape preview", at(-250, -300), geom.Black)

	rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)
}

// drawPanel draws the sliders and returns the updated parameters.
func drawPanel(gfx *graphics.Graphics, p ShapeParams) ShapeParams {
	panelX := float32(previewSize + 20)
	panelY := float32(10)

	rl.DrawText("Shape Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
	panelY += 35

	slider := func(label string, value, lo, hi float32, format string) float32 {
		rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		v := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"", "",
			value, lo, hi,
		)
		rl.DrawText(fmt.Sprintf(format, v), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 35
		return v
	}

	p.LineWidth = slider("Line width", p.LineWidth, 1, 20, "%.1f")
	p.Radius = slider("Radius", p.Radius, 5, 120, "%.0f")
	p.EllipseRX = slider("Ellipse X radius", p.EllipseRX, 5, 150, "%.0f")
	p.EllipseRY = slider("Ellipse Y radius", p.EllipseRY, 5, 150, "%.0f")
	p.Sides = int(slider("Polygon sides", float32(p.Sides), 3, 12, "%.0f"))
	p.Zoom = slider("Camera zoom", p.Zoom, 0.25, 3, "%.2f")
	p.Rotation = slider("Camera rotation", p.Rotation, -180, 180, "%.0f")
	p.TexRotation = slider("Texture rotation", p.TexRotation, -180, 180, "%.0f")

	panelY += 10
	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(p.Filled, "Outline", "Fill")) {
		p.Filled = !p.Filled
	}
	if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
		p = defaultParams()
	}
	panelY += 45

	w, h := gfx.Size()
	rl.DrawText(fmt.Sprintf("Circle segments: %d", graphics.CircleSegments(p.Radius*p.Zoom)), int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	rl.DrawText(fmt.Sprintf("Ellipse segments: %d", graphics.EllipseSegments(geom.V2(p.EllipseRX, p.EllipseRY).Scale(p.Zoom))), int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	rl.DrawText(fmt.Sprintf("Window: %dx%d  FPS: %d", w, h, rl.GetFPS()), int32(panelX), int32(panelY), 14, rl.Gray)

	return p
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// checkerboard returns a size×size image of cell-sized squares.
func checkerboard(size, cell int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	dark := color.RGBA{40, 40, 60, 255}
	light := color.RGBA{230, 200, 90, 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := light
			if (x/cell+y/cell)%2 == 0 {
				c = dark
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
