package geom

import (
	"image"
	"math"
	"testing"
)

func approx(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestVec2Arithmetic(t *testing.T) {
	a := V2(3, 4)
	b := V2(1, -2)

	if got := a.Add(b); got != V2(4, 2) {
		t.Errorf("Add = %v, want (4, 2)", got)
	}
	if got := a.Sub(b); got != V2(2, 6) {
		t.Errorf("Sub = %v, want (2, 6)", got)
	}
	if got := a.Scale(2); got != V2(6, 8) {
		t.Errorf("Scale = %v, want (6, 8)", got)
	}
	if got := a.Mul(b); got != V2(3, -8) {
		t.Errorf("Mul = %v, want (3, -8)", got)
	}
	if got := a.Dot(b); got != -5 {
		t.Errorf("Dot = %f, want -5", got)
	}
	if got := a.Length(); got != 5 {
		t.Errorf("Length = %f, want 5", got)
	}
	if got := a.Perp(); got != V2(-4, 3) {
		t.Errorf("Perp = %v, want (-4, 3)", got)
	}
}

func TestNormalize(t *testing.T) {
	n := V2(3, 4).Normalize()
	if !approx(float64(n.X), 0.6, 1e-6) || !approx(float64(n.Y), 0.8, 1e-6) {
		t.Errorf("Normalize(3,4) = %v, want (0.6, 0.8)", n)
	}
	if !approx(float64(n.Length()), 1, 1e-6) {
		t.Errorf("normalized length = %f, want 1", n.Length())
	}
}

func TestNormalizeZero(t *testing.T) {
	if got := V2(0, 0).Normalize(); got != (Vec2{}) {
		t.Errorf("Normalize(0,0) = %v, want (0, 0)", got)
	}
}

func TestRotate(t *testing.T) {
	r := V2(1, 0).Rotate(math.Pi / 2)
	if !approx(float64(r.X), 0, 1e-6) || !approx(float64(r.Y), 1, 1e-6) {
		t.Errorf("Rotate((1,0), pi/2) = %v, want (0, 1)", r)
	}
}

func TestColorModulate(t *testing.T) {
	c := RGBA(200, 100, 50, 255)
	if got := c.Modulate(White); got != c {
		t.Errorf("Modulate(white) = %v, want %v", got, c)
	}
	if got := c.Modulate(RGBA(0, 0, 0, 0)); got != (Color{}) {
		t.Errorf("Modulate(zero) = %v, want zero", got)
	}
	half := c.Modulate(RGBA(128, 128, 128, 128))
	if half.R < 99 || half.R > 101 {
		t.Errorf("half red = %d, want ~100", half.R)
	}
}

func TestTransformRotationUnits(t *testing.T) {
	tr := NewTransform(V2(0, 0))

	tr.SetRotation(math.Pi)
	if !approx(tr.RotationDegrees(), 180, 1e-4) {
		t.Errorf("radians pi -> %f degrees, want 180", tr.RotationDegrees())
	}

	tr.SetRotationDegrees(45)
	if tr.Rotation.Unit != Degrees {
		t.Errorf("expected degrees tag after SetRotationDegrees")
	}
	if tr.RotationDegrees() != 45 {
		t.Errorf("degrees 45 -> %f, want 45", tr.RotationDegrees())
	}

	// Last setter wins.
	tr.SetRotation(0.5)
	if tr.Rotation.Unit != Radians {
		t.Errorf("expected radians tag after SetRotation")
	}
	if !approx(tr.RotationDegrees(), 0.5*180/math.Pi, 1e-4) {
		t.Errorf("radians 0.5 -> %f degrees", tr.RotationDegrees())
	}
}

func TestTransformUnwrappedRotation(t *testing.T) {
	tr := NewTransform(V2(0, 0))
	tr.SetRotationDegrees(725)
	if tr.RotationDegrees() != 725 {
		t.Errorf("rotation should not be wrapped, got %f", tr.RotationDegrees())
	}
}

func TestPivotTruncates(t *testing.T) {
	tr := NewTransform(V2(0, 0))
	tr.Origin = V2(15.9, 7.2)
	if got := tr.Pivot(); got != (image.Point{X: 15, Y: 7}) {
		t.Errorf("Pivot = %v, want (15, 7)", got)
	}
}
