package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tensai/components"
	"github.com/pthm-cable/tensai/geom"
	"github.com/pthm-cable/tensai/physics"
	"github.com/pthm-cable/tensai/random"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func TestCollide(t *testing.T) {
	tests := []struct {
		name      string
		a, b      physics.Body
		wantHit   bool
		wantVA    geom.Vec2
		wantVB    geom.Vec2
		wantMoved bool // a stays put while b is pushed out
	}{
		{
			name:    "head on swaps velocities",
			a:       physics.Body{Position: geom.V2(0, 0), Velocity: geom.V2(1, 0), Mass: 1, Restitution: 1},
			b:       physics.Body{Position: geom.V2(1.5, 0), Velocity: geom.V2(-1, 0), Mass: 1, Restitution: 1},
			wantHit: true,
			wantVA:  geom.V2(-1, 0),
			wantVB:  geom.V2(1, 0),
		},
		{
			name:    "no overlap",
			a:       physics.Body{Position: geom.V2(0, 0), Velocity: geom.V2(1, 0), Mass: 1, Restitution: 1},
			b:       physics.Body{Position: geom.V2(3, 0), Velocity: geom.V2(-1, 0), Mass: 1, Restitution: 1},
			wantHit: false,
			wantVA:  geom.V2(1, 0),
			wantVB:  geom.V2(-1, 0),
		},
		{
			name:    "separating keeps velocities",
			a:       physics.Body{Position: geom.V2(0, 0), Velocity: geom.V2(-1, 0), Mass: 1, Restitution: 1},
			b:       physics.Body{Position: geom.V2(1.5, 0), Velocity: geom.V2(1, 0), Mass: 1, Restitution: 1},
			wantHit: true,
			wantVA:  geom.V2(-1, 0),
			wantVB:  geom.V2(1, 0),
		},
		{
			name:      "kinematic is immovable",
			a:         physics.Body{Position: geom.V2(0, 0), Mass: 1e6, Restitution: 1, Kinematic: true},
			b:         physics.Body{Position: geom.V2(1.5, 0), Velocity: geom.V2(-2, 0), Mass: 1, Restitution: 1},
			wantHit:   true,
			wantVA:    geom.V2(0, 0),
			wantVB:    geom.V2(2, 0),
			wantMoved: true,
		},
		{
			name:    "kinematic pair passes through",
			a:       physics.Body{Position: geom.V2(0, 0), Velocity: geom.V2(1, 0), Mass: 1, Kinematic: true},
			b:       physics.Body{Position: geom.V2(1, 0), Velocity: geom.V2(-1, 0), Mass: 1, Kinematic: true},
			wantHit: false,
			wantVA:  geom.V2(1, 0),
			wantVB:  geom.V2(-1, 0),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, b := tc.a, tc.b
			hit := Collide(&a, 1, &b, 1)

			if hit != tc.wantHit {
				t.Fatalf("Collide = %v, want %v", hit, tc.wantHit)
			}
			if !approx(a.Velocity.X, tc.wantVA.X) || !approx(a.Velocity.Y, tc.wantVA.Y) {
				t.Errorf("a velocity = %+v, want %+v", a.Velocity, tc.wantVA)
			}
			if !approx(b.Velocity.X, tc.wantVB.X) || !approx(b.Velocity.Y, tc.wantVB.Y) {
				t.Errorf("b velocity = %+v, want %+v", b.Velocity, tc.wantVB)
			}
			if tc.wantHit {
				if d := b.Position.Sub(a.Position).Length(); !approx(d, 2) {
					t.Errorf("bodies should just touch after separation, distance %f", d)
				}
			}
			if tc.wantMoved && a.Position != tc.a.Position {
				t.Errorf("kinematic body moved to %+v", a.Position)
			}
		})
	}
}

func TestCollideCoincidentCenters(t *testing.T) {
	a := physics.Body{Position: geom.V2(5, 5), Velocity: geom.V2(1, 0), Mass: 1, Restitution: 1}
	b := physics.Body{Position: geom.V2(5, 5), Mass: 1, Restitution: 1}

	if !Collide(&a, 1, &b, 1) {
		t.Fatal("coincident circles should collide")
	}
	if a.Position == b.Position {
		t.Error("coincident bodies should be pushed apart")
	}
}

func TestCollisionSystem(t *testing.T) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap2[components.Body, components.Shape](w)

	spawn := func(x, y, vx float32) ecs.Entity {
		b := physics.NewBody(geom.V2(x, y))
		b.Velocity = geom.V2(vx, 0)
		return mapper.NewEntity(&components.Body{Body: b}, &components.Shape{Radius: 5})
	}
	left := spawn(50, 50, 10)
	right := spawn(58, 50, -10)
	far := spawn(150, 150, 0)

	sys := NewCollisionSystem(w, Bounds{Width: 200, Height: 200}, 10)
	if contacts := sys.Update(); contacts != 1 {
		t.Fatalf("expected 1 contact, got %d", contacts)
	}

	lb, _ := mapper.Get(left)
	rb, _ := mapper.Get(right)
	fb, _ := mapper.Get(far)
	if lb.Velocity.X >= 0 || rb.Velocity.X <= 0 {
		t.Errorf("pair should bounce apart: left %+v right %+v", lb.Velocity, rb.Velocity)
	}
	if fb.Velocity != (geom.Vec2{}) {
		t.Errorf("distant body should be untouched: %+v", fb.Velocity)
	}

	if contacts := sys.Update(); contacts != 0 {
		t.Errorf("separated pair should not collide again, got %d", contacts)
	}
}

// TestSpatialGridFindsAllNeighbors compares grid candidates with a brute
// force distance check.
func TestSpatialGridFindsAllNeighbors(t *testing.T) {
	rng := random.New(7)
	const n = 200
	points := make([]geom.Vec2, n)
	grid := NewSpatialGrid(300, 200, 25)
	for i := range points {
		// Some points fall outside the grid and get clamped.
		points[i] = rng.Vec2(geom.V2(-20, -20), geom.V2(320, 220))
		grid.Insert(i, points[i])
	}

	const radius = 30
	var candidates []int
	for i, p := range points {
		candidates = grid.QueryRadiusInto(candidates[:0], p, radius)
		found := make(map[int]bool, len(candidates))
		for _, j := range candidates {
			if found[j] {
				t.Fatalf("index %d returned twice", j)
			}
			found[j] = true
		}
		for j, q := range points {
			if q.Sub(p).Length() <= radius && !found[j] {
				t.Fatalf("point %d within radius of %d was not returned", j, i)
			}
		}
	}

	grid.Clear()
	if got := grid.QueryRadiusInto(nil, geom.V2(100, 100), 500); len(got) != 0 {
		t.Errorf("cleared grid returned %d candidates", len(got))
	}
}
