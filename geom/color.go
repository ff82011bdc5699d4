package geom

import "image/color"

// Color is a straight (non-premultiplied) RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	White = Color{255, 255, 255, 255}
	Black = Color{0, 0, 0, 255}
	Red   = Color{230, 41, 55, 255}
	Green = Color{0, 228, 48, 255}
	Blue  = Color{0, 121, 241, 255}
	Gray  = Color{130, 130, 130, 255}
)

// RGBA builds a color from its channels.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// NRGBA converts c to the standard library's non-premultiplied color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Modulate multiplies each channel of c by the matching channel of tint,
// treating 255 as 1.0.
func (c Color) Modulate(tint Color) Color {
	return Color{
		R: mod8(c.R, tint.R),
		G: mod8(c.G, tint.G),
		B: mod8(c.B, tint.B),
		A: mod8(c.A, tint.A),
	}
}

// ColorFrom converts any standard library color.
func ColorFrom(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

func mod8(a, b uint8) uint8 {
	return uint8((uint16(a)*uint16(b) + 127) / 255)
}
