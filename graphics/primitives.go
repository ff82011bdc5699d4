package graphics

import (
	"image"
	"math"
	"slices"

	"github.com/pthm-cable/tensai/geom"
)

// DrawPoint plots one pixel at the truncated position.
func (g *Graphics) DrawPoint(p geom.Vec2) {
	if g.err != nil {
		return
	}
	g.check("draw point", g.target.DrawPoint(int(p.X), int(p.Y)))
}

// DrawLine draws from a to b. With a line width above 1 the line becomes the
// outline of a quad that wide, centered on the segment; it is not filled.
func (g *Graphics) DrawLine(a, b geom.Vec2) {
	if g.err != nil {
		return
	}
	if g.lineWidth <= 1 {
		g.check("draw line", g.target.DrawLine(int(a.X), int(a.Y), int(b.X), int(b.Y)))
		return
	}

	dir := b.Sub(a).Normalize()
	off := dir.Perp().Scale(g.lineWidth / 2)
	g.points = append(g.points[:0],
		truncate(a.Add(off)),
		truncate(a.Sub(off)),
		truncate(b.Sub(off)),
		truncate(b.Add(off)),
		truncate(a.Add(off)),
	)
	g.check("draw thick line", g.target.DrawLines(g.points))
}

// DrawRect draws the rectangle at pos with the given size.
func (g *Graphics) DrawRect(pos, size geom.Vec2, filled bool) {
	if g.err != nil {
		return
	}
	x, y := int(pos.X), int(pos.Y)
	r := image.Rectangle{
		Min: image.Pt(x, y),
		Max: image.Pt(x+int(size.X), y+int(size.Y)),
	}
	if filled {
		g.check("fill rect", g.target.FillRect(r))
	} else {
		g.check("draw rect", g.target.DrawRect(r))
	}
}

// CircleSegments returns the tessellation count used for a circle of radius r.
func CircleSegments(r float32) int {
	return max(8, int(r*0.5))
}

// EllipseSegments returns the tessellation count used for an ellipse.
func EllipseSegments(radii geom.Vec2) int {
	return max(16, int((radii.X+radii.Y)*0.25))
}

// DrawCircle draws a circle outline, or when filled, every pixel whose
// integer offset (x, y) from the truncated center satisfies x²+y² <= r².
func (g *Graphics) DrawCircle(c geom.Vec2, r float32, filled bool) {
	if g.err != nil {
		return
	}
	if filled {
		cx, cy := int(c.X), int(c.Y)
		rr := r * r
		for y := int(-r); y <= int(r); y++ {
			for x := int(-r); x <= int(r); x++ {
				if float32(x*x+y*y) > rr {
					continue
				}
				if !g.check("fill circle", g.target.DrawPoint(cx+x, cy+y)) {
					return
				}
			}
		}
		return
	}
	g.tessellate(c, geom.V2(r, r), CircleSegments(r))
	g.check("draw circle", g.target.DrawLines(g.points))
}

// DrawEllipse draws an ellipse outline. Filled ellipses are drawn as a fan of
// triangle outlines from the center, one per segment except the last.
func (g *Graphics) DrawEllipse(c geom.Vec2, radii geom.Vec2, filled bool) {
	if g.err != nil {
		return
	}
	segments := EllipseSegments(radii)
	g.tessellate(c, radii, segments)
	if !filled {
		g.check("draw ellipse", g.target.DrawLines(g.points))
		return
	}

	center := truncate(c)
	var tri [4]image.Point
	for i := 1; i < segments; i++ {
		tri = [4]image.Point{center, g.points[i-1], g.points[i], center}
		if !g.check("fill ellipse", g.target.DrawLines(tri[:])) {
			return
		}
	}
}

// tessellate fills g.points with segments+1 truncated points around the
// ellipse; the first and last coincide.
func (g *Graphics) tessellate(c, radii geom.Vec2, segments int) {
	g.points = g.points[:0]
	for i := 0; i <= segments; i++ {
		angle := float32(2 * math.Pi * float64(i) / float64(segments))
		s, co := math.Sincos(float64(angle))
		g.points = append(g.points, image.Pt(
			int(c.X+radii.X*float32(co)),
			int(c.Y+radii.Y*float32(s)),
		))
	}
}

// DrawPolygon outlines or fills the polygon through vertices. Fewer than
// three vertices draw nothing. Fill uses the even-odd rule: each integer
// scanline between the extreme y values is intersected with the edges, and
// spans between consecutive pairs of crossings are drawn.
func (g *Graphics) DrawPolygon(vertices []geom.Vec2, filled bool) {
	if g.err != nil || len(vertices) < 3 {
		return
	}
	if !filled {
		g.points = g.points[:0]
		for _, v := range vertices {
			g.points = append(g.points, truncate(v))
		}
		g.points = append(g.points, g.points[0])
		g.check("draw polygon", g.target.DrawLines(g.points))
		return
	}

	minY, maxY := vertices[0].Y, vertices[0].Y
	for _, v := range vertices {
		minY = min(minY, v.Y)
		maxY = max(maxY, v.Y)
	}

	n := len(vertices)
	for y := int(minY); y <= int(maxY); y++ {
		fy := float32(y)
		g.xs = g.xs[:0]
		for i := range vertices {
			p1, p2 := vertices[i], vertices[(i+1)%n]
			if !((p1.Y <= fy && p2.Y > fy) || (p2.Y <= fy && p1.Y > fy)) {
				continue
			}
			if p1.Y == p2.Y {
				continue
			}
			g.xs = append(g.xs, p1.X+(fy-p1.Y)*(p2.X-p1.X)/(p2.Y-p1.Y))
		}
		slices.Sort(g.xs)
		for i := 0; i+1 < len(g.xs); i += 2 {
			if !g.check("fill polygon", g.target.DrawLine(int(g.xs[i]), y, int(g.xs[i+1]), y)) {
				return
			}
		}
	}
}

func truncate(v geom.Vec2) image.Point {
	return image.Pt(int(v.X), int(v.Y))
}
