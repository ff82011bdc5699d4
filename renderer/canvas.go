// Package renderer provides raster targets and fonts for the graphics
// package. Canvas is a software target backed by an *image.RGBA; the
// rlbackend and tcellbackend subpackages present frames on a window or a
// terminal.
package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register decoder for LoadTexture
	"image/png"
	"math"
	"os"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/pthm-cable/tensai/geom"
	"github.com/pthm-cable/tensai/graphics"
)

var (
	// ErrForeignTexture is returned when a texture from another target is
	// copied onto a Canvas.
	ErrForeignTexture = errors.New("renderer: texture was not created by a canvas")

	// ErrReleasedTexture is returned when copying a released texture.
	ErrReleasedTexture = errors.New("renderer: texture released")
)

// Canvas is a software raster target. Primitives replace pixels with the
// draw color without blending; textures are composited over the canvas.
type Canvas struct {
	img    *image.RGBA
	color  color.RGBA
	frames int
}

var _ graphics.Target = (*Canvas)(nil)

// NewCanvas creates a w×h canvas cleared to transparent black.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{
		img:   image.NewRGBA(image.Rect(0, 0, w, h)),
		color: color.RGBA{255, 255, 255, 255},
	}
}

// Resize replaces the backing image with a cleared w×h one. The draw color
// and frame count carry over.
func (c *Canvas) Resize(w, h int) {
	c.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

// Image returns the backing image. It is live: later draws modify it.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Frames returns the number of presented frames.
func (c *Canvas) Frames() int { return c.frames }

func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) SetDrawColor(col geom.Color) error {
	c.color = premultiply(col)
	return nil
}

func (c *Canvas) Clear(col geom.Color) error {
	xdraw.Draw(c.img, c.img.Bounds(), image.NewUniform(col.NRGBA()), image.Point{}, xdraw.Src)
	return nil
}

func (c *Canvas) Present() error {
	c.frames++
	return nil
}

func (c *Canvas) DrawPoint(x, y int) error {
	c.plot(x, y)
	return nil
}

// DrawLine draws a Bresenham line including both endpoints.
func (c *Canvas) DrawLine(x1, y1, x2, y2 int) error {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	e := dx + dy
	for {
		c.plot(x1, y1)
		if x1 == x2 && y1 == y2 {
			return nil
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x1 += sx
		}
		if e2 <= dx {
			e += dx
			y1 += sy
		}
	}
}

func (c *Canvas) DrawLines(points []image.Point) error {
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		if err := c.DrawLine(a.X, a.Y, b.X, b.Y); err != nil {
			return err
		}
	}
	return nil
}

// DrawRect outlines the pixels of r. Empty rectangles draw nothing.
func (c *Canvas) DrawRect(r image.Rectangle) error {
	if r.Empty() {
		return nil
	}
	right, bottom := r.Max.X-1, r.Max.Y-1
	for x := r.Min.X; x <= right; x++ {
		c.plot(x, r.Min.Y)
		c.plot(x, bottom)
	}
	for y := r.Min.Y; y <= bottom; y++ {
		c.plot(r.Min.X, y)
		c.plot(right, y)
	}
	return nil
}

func (c *Canvas) FillRect(r image.Rectangle) error {
	if r.Empty() {
		return nil
	}
	xdraw.Draw(c.img, r.Intersect(c.img.Bounds()), &image.Uniform{C: c.color}, image.Point{}, xdraw.Src)
	return nil
}

func (c *Canvas) CopyTexture(tex graphics.Texture, dst image.Rectangle, tint geom.Color) error {
	src, err := c.source(tex, tint)
	if err != nil || dst.Empty() {
		return err
	}
	xdraw.NearestNeighbor.Scale(c.img, dst, src, src.Bounds(), xdraw.Over, nil)
	return nil
}

// CopyTextureRotated scales the texture into dst and rotates it clockwise by
// degrees about dst.Min+pivot.
func (c *Canvas) CopyTextureRotated(tex graphics.Texture, dst image.Rectangle, degrees float64, pivot image.Point, tint geom.Color) error {
	src, err := c.source(tex, tint)
	if err != nil || dst.Empty() {
		return err
	}
	sb := src.Bounds()
	xdraw.NearestNeighbor.Transform(c.img, rotation(sb, dst, degrees, pivot), src, sb, xdraw.Over, nil)
	return nil
}

// rotation maps source pixels into dst, then rotates about dst.Min+pivot.
func rotation(sb, dst image.Rectangle, degrees float64, pivot image.Point) f64.Aff3 {
	kx := float64(dst.Dx()) / float64(sb.Dx())
	ky := float64(dst.Dy()) / float64(sb.Dy())
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	px, py := float64(pivot.X), float64(pivot.Y)
	ox, oy := float64(dst.Min.X)+px, float64(dst.Min.Y)+py
	return f64.Aff3{
		cos * kx, -sin * ky, -cos*px + sin*py + ox,
		sin * kx, cos * ky, -sin*px - cos*py + oy,
	}
}

// source returns the texture pixels with tint applied.
func (c *Canvas) source(tex graphics.Texture, tint geom.Color) (image.Image, error) {
	ct, ok := tex.(*CanvasTexture)
	if !ok {
		return nil, ErrForeignTexture
	}
	if !ct.Valid() {
		return nil, ErrReleasedTexture
	}
	return ct.tinted(tint), nil
}

func (c *Canvas) UploadImage(img image.Image) (graphics.Texture, error) {
	return NewTexture(img), nil
}

// SavePNG writes the current canvas to path.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	if err := png.Encode(f, c.img); err != nil {
		f.Close()
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return f.Close()
}

// LoadTexture decodes a PNG or JPEG file into a texture.
func (c *Canvas) LoadTexture(path string) (graphics.Texture, error) {
	img, err := DecodeImage(path)
	if err != nil {
		return nil, err
	}
	return c.UploadImage(img)
}

// DecodeImage reads a PNG or JPEG file.
func DecodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

func (c *Canvas) plot(x, y int) {
	if !(image.Point{x, y}.In(c.img.Rect)) {
		return
	}
	c.img.SetRGBA(x, y, c.color)
}

func premultiply(col geom.Color) color.RGBA {
	return color.RGBAModel.Convert(col.NRGBA()).(color.RGBA)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
