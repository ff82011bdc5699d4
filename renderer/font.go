package renderer

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/pthm-cable/tensai/geom"
	"github.com/pthm-cable/tensai/graphics"
)

// ErrEmptyText is returned when text renders to zero width.
var ErrEmptyText = errors.New("renderer: text has zero width")

// solidThreshold is the coverage at or above which a glyph pixel is set.
const solidThreshold = 128

// Font rasterizes text from a font.Face.
type Font struct {
	face font.Face
}

var _ graphics.Font = (*Font)(nil)

// NewBasicFont returns the fixed 7x13 bitmap font. It needs no font data.
func NewBasicFont() *Font {
	return &Font{face: basicfont.Face7x13}
}

// LoadFont parses TrueType or OpenType data at the given pixel size.
func LoadFont(data []byte, size float64) (*Font, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating face: %w", err)
	}
	return &Font{face: face}, nil
}

// DefaultFont returns Go Regular at the given pixel size.
func DefaultFont(size float64) (*Font, error) {
	return LoadFont(goregular.TTF, size)
}

// Close releases the face.
func (f *Font) Close() error {
	return f.face.Close()
}

// LineHeight returns the height of one rendered line in pixels.
func (f *Font) LineHeight() int {
	m := f.face.Metrics()
	return (m.Ascent + m.Descent).Ceil()
}

// RenderSolid renders text in c with hard glyph edges: coverage below half
// is dropped, everything else takes c unchanged.
func (f *Font) RenderSolid(text string, c geom.Color) (*image.RGBA, error) {
	width := font.MeasureString(f.face, text).Ceil()
	if width <= 0 {
		return nil, ErrEmptyText
	}
	m := f.face.Metrics()
	height := (m.Ascent + m.Descent).Ceil()

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: f.face,
		Dot:  fixed.P(0, m.Ascent.Ceil()),
	}
	d.DrawString(text)

	out := image.NewRGBA(mask.Rect)
	fill := premultiply(c)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if mask.AlphaAt(x, y).A >= solidThreshold {
				out.SetRGBA(x, y, fill)
			}
		}
	}
	return out, nil
}
