package graphics

import (
	"image"

	"github.com/pthm-cable/tensai/geom"
)

// Target is the raster device Graphics draws on. Every method reports
// device failure as an error; Graphics treats any such error as fatal for
// the frame.
//
// Rectangles passed to Target are never canonicalized: a rectangle with
// Max below Min on either axis is empty and draws nothing.
type Target interface {
	// Size returns the drawable area in pixels.
	Size() (w, h int)

	// SetDrawColor sets the color used by the point, line and rect calls.
	SetDrawColor(c geom.Color) error

	// Clear fills the whole target with c without changing the draw color.
	Clear(c geom.Color) error

	// Present shows everything drawn since the last Clear.
	Present() error

	DrawPoint(x, y int) error
	DrawLine(x1, y1, x2, y2 int) error

	// DrawLines connects consecutive points with single-pixel lines.
	DrawLines(points []image.Point) error

	DrawRect(r image.Rectangle) error
	FillRect(r image.Rectangle) error

	// CopyTexture blits tex scaled into dst, modulated by tint.
	CopyTexture(tex Texture, dst image.Rectangle, tint geom.Color) error

	// CopyTextureRotated is CopyTexture rotated clockwise by degrees about
	// pivot, given relative to dst.Min.
	CopyTextureRotated(tex Texture, dst image.Rectangle, degrees float64, pivot image.Point, tint geom.Color) error

	// UploadImage creates a texture owned by the caller.
	UploadImage(img image.Image) (Texture, error)
}

// Texture is a device image created by a Target.
type Texture interface {
	Size() (w, h int)

	// Valid reports whether the texture can still be drawn.
	Valid() bool

	// Release frees the device resources; the texture becomes invalid.
	Release()
}

// Font renders text to a glyph raster.
type Font interface {
	// RenderSolid renders text in c without antialiasing. The raster's
	// bounds start at (0, 0) and its size is the text's native size.
	RenderSolid(text string, c geom.Color) (*image.RGBA, error)
}
