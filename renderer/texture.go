package renderer

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/pthm-cable/tensai/geom"
)

// CanvasTexture is an in-memory texture. Its pixels are stored
// non-premultiplied so tinting can scale each channel directly.
type CanvasTexture struct {
	img *image.NRGBA

	// Last tinted copy, rebuilt when the tint changes.
	tint  geom.Color
	cache *image.NRGBA
}

// NewTexture copies img into a texture whose bounds start at (0, 0).
func NewTexture(img image.Image) *CanvasTexture {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return &CanvasTexture{img: dst}
}

func (t *CanvasTexture) Size() (int, int) {
	if t.img == nil {
		return 0, 0
	}
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

func (t *CanvasTexture) Valid() bool {
	return t != nil && t.img != nil
}

func (t *CanvasTexture) Release() {
	t.img = nil
	t.cache = nil
}

// Image returns the untinted pixels, or nil after Release.
func (t *CanvasTexture) Image() *image.NRGBA { return t.img }

// tinted returns the pixels with every channel modulated by tint.
func (t *CanvasTexture) tinted(tint geom.Color) *image.NRGBA {
	if tint == geom.White {
		return t.img
	}
	if t.cache != nil && t.tint == tint {
		return t.cache
	}

	out := image.NewNRGBA(t.img.Rect)
	for i := 0; i+3 < len(t.img.Pix); i += 4 {
		p := geom.RGBA(t.img.Pix[i], t.img.Pix[i+1], t.img.Pix[i+2], t.img.Pix[i+3]).Modulate(tint)
		out.Pix[i], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = p.R, p.G, p.B, p.A
	}
	t.tint, t.cache = tint, out
	return out
}
