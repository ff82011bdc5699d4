package graphics

import (
	"image"

	"github.com/pthm-cable/tensai/geom"
)

// DrawTexture copies tex under transform t, modulated by tint. An absent or
// invalid texture draws nothing.
//
// The destination rectangle starts at Position - Origin*Scale and has the
// texture's size times Scale. A zero rotation takes the axis-aligned path;
// otherwise the copy rotates about t.Pivot().
func (g *Graphics) DrawTexture(tex Optional[Texture], t geom.Transform, tint geom.Color) {
	if g.err != nil {
		return
	}
	texture, ok := tex.Get()
	if !ok || texture == nil || !texture.Valid() {
		Logger().Debug("skipping texture draw", "present", ok)
		return
	}

	w, h := texture.Size()
	topLeft := image.Pt(
		int(t.Position.X-t.Origin.X*t.Scale.X),
		int(t.Position.Y-t.Origin.Y*t.Scale.Y),
	)
	dst := image.Rectangle{
		Min: topLeft,
		Max: topLeft.Add(image.Pt(int(float32(w)*t.Scale.X), int(float32(h)*t.Scale.Y))),
	}

	if t.Rotation.IsZero() {
		g.check("copy texture", g.target.CopyTexture(texture, dst, tint))
		return
	}
	g.check("copy texture rotated",
		g.target.CopyTextureRotated(texture, dst, t.RotationDegrees(), t.Pivot(), tint))
}

// DrawText renders text at pos in c using the current font. Without a font
// nothing is drawn. Failing to render or upload the glyphs logs a warning
// and skips the text; a failed copy is a backend error.
func (g *Graphics) DrawText(text string, pos geom.Vec2, c geom.Color) {
	if g.err != nil {
		return
	}
	font, ok := g.font.Get()
	if !ok || font == nil {
		Logger().Debug("skipping text draw without font")
		return
	}

	raster, err := font.RenderSolid(text, c)
	if err != nil {
		Logger().Warn("rendering text", "text", text, "error", err)
		return
	}
	tex, err := g.target.UploadImage(raster)
	if err != nil {
		Logger().Warn("uploading text raster", "text", text, "error", err)
		return
	}
	defer tex.Release()

	size := raster.Bounds().Size()
	topLeft := image.Pt(int(pos.X), int(pos.Y))
	dst := image.Rectangle{Min: topLeft, Max: topLeft.Add(size)}
	g.check("copy text", g.target.CopyTexture(tex, dst, geom.White))
}
