// Package rlbackend draws graphics calls into a raylib window.
package rlbackend

import (
	"errors"
	"image"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tensai/geom"
	"github.com/pthm-cable/tensai/graphics"
	"github.com/pthm-cable/tensai/renderer"
)

var (
	ErrWindowClosed   = errors.New("rlbackend: window not open")
	ErrForeignTexture = errors.New("rlbackend: texture was not created by raylib")
	ErrUpload         = errors.New("rlbackend: texture upload failed")
)

// Target is a graphics.Target over the raylib immediate-mode API. Clear
// opens a frame if none is open and Present closes it.
type Target struct {
	color   color.RGBA
	drawing bool
	open    bool
}

var _ graphics.Target = (*Target)(nil)

// Open creates the window. Call Close when done.
func Open(width, height int, title string, targetFPS int) *Target {
	rl.InitWindow(int32(width), int32(height), title)
	if targetFPS > 0 {
		rl.SetTargetFPS(int32(targetFPS))
	}
	return &Target{color: rl.White, open: true}
}

// Attach wraps a window that the caller already opened.
func Attach() *Target {
	return &Target{color: rl.White, open: true}
}

// Close ends any open frame and closes the window.
func (t *Target) Close() {
	if !t.open {
		return
	}
	if t.drawing {
		rl.EndDrawing()
		t.drawing = false
	}
	rl.CloseWindow()
	t.open = false
}

// ShouldClose reports whether the user asked to close the window.
func (t *Target) ShouldClose() bool {
	return !t.open || rl.WindowShouldClose()
}

// BeginFrame opens a frame without clearing.
func (t *Target) BeginFrame() {
	if !t.drawing {
		rl.BeginDrawing()
		t.drawing = true
	}
}

func (t *Target) Size() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

func (t *Target) SetDrawColor(c geom.Color) error {
	t.color = rlColor(c)
	return nil
}

func (t *Target) Clear(c geom.Color) error {
	if !t.open {
		return ErrWindowClosed
	}
	t.BeginFrame()
	rl.ClearBackground(rlColor(c))
	return nil
}

func (t *Target) Present() error {
	if !t.open {
		return ErrWindowClosed
	}
	t.BeginFrame()
	rl.EndDrawing()
	t.drawing = false
	return nil
}

func (t *Target) DrawPoint(x, y int) error {
	rl.DrawPixel(int32(x), int32(y), t.color)
	return nil
}

func (t *Target) DrawLine(x1, y1, x2, y2 int) error {
	rl.DrawLine(int32(x1), int32(y1), int32(x2), int32(y2), t.color)
	return nil
}

func (t *Target) DrawLines(points []image.Point) error {
	if len(points) < 2 {
		return nil
	}
	strip := make([]rl.Vector2, len(points))
	for i, p := range points {
		// Pixel centers, matching DrawLine's rasterization.
		strip[i] = rl.NewVector2(float32(p.X)+0.5, float32(p.Y)+0.5)
	}
	rl.DrawLineStrip(strip, t.color)
	return nil
}

func (t *Target) DrawRect(r image.Rectangle) error {
	if r.Empty() {
		return nil
	}
	rl.DrawRectangleLines(int32(r.Min.X), int32(r.Min.Y), int32(r.Dx()), int32(r.Dy()), t.color)
	return nil
}

func (t *Target) FillRect(r image.Rectangle) error {
	if r.Empty() {
		return nil
	}
	rl.DrawRectangle(int32(r.Min.X), int32(r.Min.Y), int32(r.Dx()), int32(r.Dy()), t.color)
	return nil
}

func (t *Target) CopyTexture(tex graphics.Texture, dst image.Rectangle, tint geom.Color) error {
	return t.CopyTextureRotated(tex, dst, 0, image.Point{}, tint)
}

// CopyTextureRotated positions the quad at dst.Min+pivot with the pivot as
// raylib's rotation origin, which rotates clockwise about that point.
func (t *Target) CopyTextureRotated(tex graphics.Texture, dst image.Rectangle, degrees float64, pivot image.Point, tint geom.Color) error {
	rt, ok := tex.(*Texture)
	if !ok {
		return ErrForeignTexture
	}
	if !rt.Valid() || dst.Empty() {
		return nil
	}
	src := rl.NewRectangle(0, 0, float32(rt.tex.Width), float32(rt.tex.Height))
	dest := rl.NewRectangle(
		float32(dst.Min.X+pivot.X),
		float32(dst.Min.Y+pivot.Y),
		float32(dst.Dx()),
		float32(dst.Dy()),
	)
	origin := rl.NewVector2(float32(pivot.X), float32(pivot.Y))
	rl.DrawTexturePro(rt.tex, src, dest, origin, float32(degrees), rlColor(tint))
	return nil
}

// UploadImage copies img into GPU memory.
func (t *Target) UploadImage(img image.Image) (graphics.Texture, error) {
	if !t.open {
		return nil, ErrWindowClosed
	}
	// raylib reads pixels from (0, 0); rebase arbitrary bounds first.
	rimg := rl.NewImageFromImage(renderer.NewTexture(img).Image())
	defer rl.UnloadImage(rimg)

	tex := rl.LoadTextureFromImage(rimg)
	if !rl.IsTextureValid(tex) {
		return nil, ErrUpload
	}
	return &Texture{tex: tex, valid: true}, nil
}

// LoadTexture decodes a PNG or JPEG file and uploads it.
func (t *Target) LoadTexture(path string) (graphics.Texture, error) {
	img, err := renderer.DecodeImage(path)
	if err != nil {
		return nil, err
	}
	return t.UploadImage(img)
}

// Texture is a raylib GPU texture.
type Texture struct {
	tex   rl.Texture2D
	valid bool
}

func (t *Texture) Size() (int, int) {
	return int(t.tex.Width), int(t.tex.Height)
}

func (t *Texture) Valid() bool { return t != nil && t.valid }

func (t *Texture) Release() {
	if !t.valid {
		return
	}
	rl.UnloadTexture(t.tex)
	t.valid = false
}

func rlColor(c geom.Color) color.RGBA {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
