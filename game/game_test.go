package game

import (
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/tensai/components"
	"github.com/pthm-cable/tensai/config"
	"github.com/pthm-cable/tensai/geom"
	"github.com/pthm-cable/tensai/graphics"
	"github.com/pthm-cable/tensai/renderer"
)

const testYAML = `
screen:
  width: 200
  height: 100
render:
  backend: software
scene:
  bodies: %BODIES%
  min_radius: 3
  max_radius: 6
  seed: 42
telemetry:
  window: 10
  log_interval: 0.1
`

func loadConfig(t *testing.T, bodies string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.yaml")
	data := strings.ReplaceAll(testYAML, "%BODIES%", bodies)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return cfg
}

func newGame(t *testing.T, bodies string, opts Options) (*Game, *renderer.Canvas) {
	t.Helper()
	cfg := loadConfig(t, bodies)
	canvas := renderer.NewCanvas(cfg.Screen.Width, cfg.Screen.Height)
	g, err := New(cfg, canvas, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { g.Close() })
	g.Load()
	return g, canvas
}

func TestGameRunsHeadless(t *testing.T) {
	g, canvas := newGame(t, "10", Options{})
	if n := g.BodyCount(); n != 10 {
		t.Fatalf("expected 10 bodies, got %d", n)
	}

	for i := 0; i < 30; i++ {
		if err := g.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if g.Tick() != 30 {
		t.Errorf("expected tick 30, got %d", g.Tick())
	}
	if canvas.Frames() != 30 {
		t.Errorf("expected 30 presented frames, got %d", canvas.Frames())
	}
	if s := g.FrameStats(); s.Frames != 30 || s.Samples != 10 {
		t.Errorf("unexpected frame stats %+v", s)
	}

	// Collisions may push a body past a wall by up to one radius.
	const slack = 6
	bounds := g.physics.Bounds()
	query := g.bodyFilter.Query()
	for query.Next() {
		body, _ := query.Get()
		p := body.Position
		if p.X < -slack || p.X > bounds.Width+slack || p.Y < -slack || p.Y > bounds.Height+slack {
			t.Errorf("body escaped the bounds: %+v", p)
		}
	}
}

func TestGameDeterministic(t *testing.T) {
	positions := func() []geom.Vec2 {
		g, _ := newGame(t, "8", Options{Seed: 7})
		for i := 0; i < 20; i++ {
			g.Update()
		}
		var out []geom.Vec2
		query := g.bodyFilter.Query()
		for query.Next() {
			body, _ := query.Get()
			out = append(out, body.Position)
		}
		return out
	}

	a, b := positions(), positions()
	if len(a) != len(b) {
		t.Fatalf("body counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("body %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestDrawEmptyScene(t *testing.T) {
	g, canvas := newGame(t, "0", Options{})
	if err := g.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	img := canvas.Image()
	clear := g.cfg.Derived.ClearColor
	if got := img.RGBAAt(100, 50); got != (color.RGBA{clear.R, clear.G, clear.B, clear.A}) {
		t.Errorf("background = %v, want clear color %+v", got, clear)
	}
	if got := img.RGBAAt(100, 95); got != (color.RGBA{groundColor.R, groundColor.G, groundColor.B, 255}) {
		t.Errorf("ground = %v, want %+v", got, groundColor)
	}

	// The HUD starts at (8, 8); some pixel in its first line must be lit.
	lit := false
	for y := 8; y < 21 && !lit; y++ {
		for x := 8; x < 60; x++ {
			if img.RGBAAt(x, y) == (color.RGBA{hudColor.R, hudColor.G, hudColor.B, 255}) {
				lit = true
				break
			}
		}
	}
	if !lit {
		t.Error("HUD text not drawn")
	}
}

func TestTelemetryOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	g, _ := newGame(t, "5", Options{OutputDir: dir})

	// 0.1s windows at 60 ticks/s flush every 6 ticks.
	for i := 0; i < 20; i++ {
		if err := g.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if err := g.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	for _, name := range []string{"scene.csv", "frames.csv"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 4 {
			t.Errorf("%s: expected header and 3 rows, got %d lines", name, len(lines))
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot missing: %v", err)
	}
}

func TestSelectAt(t *testing.T) {
	g, _ := newGame(t, "3", Options{})

	query := g.bodyFilter.Query()
	query.Next()
	body, _ := query.Get()
	target := query.Entity()
	pos := body.Position
	query.Close()

	if !g.SelectAt(g.gfx.WorldToScreen(pos)) {
		t.Fatal("expected a body under its own center")
	}
	if g.selected != target {
		t.Error("expected the body under the point to be selected")
	}
	if err := g.Draw(); err != nil {
		t.Fatalf("Draw with selection: %v", err)
	}

	if g.SelectAt(geom.V2(-500, -500)) {
		t.Error("nothing should be selected off screen")
	}
	if g.hasSelection {
		t.Error("miss should clear the selection")
	}
}

func TestSelectionBoxEnclosesBounds(t *testing.T) {
	g, _ := newGame(t, "1", Options{})

	// The 200x100 world fills the 200x100 canvas one to one.
	shape := components.Shape{Radius: 10}
	lo, hi := g.selectionBox(shape.Bounds(geom.V2(20, 30)))

	wantLo, wantHi := geom.V2(8, 18), geom.V2(32, 42)
	if !near(lo, wantLo) || !near(hi, wantHi) {
		t.Errorf("box = %v..%v, want %v..%v", lo, hi, wantLo, wantHi)
	}
}

func near(a, b geom.Vec2) bool {
	return math.Abs(float64(a.X-b.X)) < 1e-3 && math.Abs(float64(a.Y-b.Y)) < 1e-3
}

func TestPauseAndReset(t *testing.T) {
	g, _ := newGame(t, "4", Options{})

	g.TogglePause()
	g.Update()
	if g.Tick() != 0 {
		t.Errorf("paused game advanced to tick %d", g.Tick())
	}
	g.TogglePause()
	g.Update()
	if g.Tick() != 1 {
		t.Errorf("expected tick 1 after resume, got %d", g.Tick())
	}

	g.SelectAt(geom.V2(100, 50))
	g.Reset()
	if g.BodyCount() != 4 {
		t.Errorf("expected 4 bodies after reset, got %d", g.BodyCount())
	}
	if g.hasSelection {
		t.Error("reset should clear the selection")
	}
}

func TestApplyConfig(t *testing.T) {
	g, _ := newGame(t, "4", Options{})

	next := loadConfig(t, "99")
	next.Physics.Gravity = 0
	next.Physics.Friction = 0.5
	next.Screen.Width = 999
	next.Derived.Gravity32 = 0
	next.Physics.DT = 0.5
	next.Derived.DT32 = 0.5
	startDT := g.cfg.Derived.DT32

	g.ApplyConfig(next)

	// Telemetry windows are sized from the startup time step.
	if g.cfg.Physics.DT == 0.5 || g.cfg.Derived.DT32 != startDT {
		t.Errorf("time step changed on reload: %v, want %v", g.cfg.Derived.DT32, startDT)
	}

	if g.physics.Gravity != 0 {
		t.Errorf("gravity not applied: %v", g.physics.Gravity)
	}
	if g.cfg.Screen.Width != 200 || g.cfg.Scene.Bodies != 4 {
		t.Errorf("startup values should be kept: %+v %+v", g.cfg.Screen, g.cfg.Scene)
	}
	query := g.bodyFilter.Query()
	for query.Next() {
		body, _ := query.Get()
		if body.Friction != 0.5 {
			t.Errorf("body friction = %v, want 0.5", body.Friction)
		}
	}
}

// failingTarget fails every present.
type failingTarget struct {
	*renderer.Canvas
}

var errLost = errors.New("device lost")

func (failingTarget) Present() error { return errLost }

func TestDrawReturnsBackendError(t *testing.T) {
	cfg := loadConfig(t, "2")
	g, err := New(cfg, failingTarget{renderer.NewCanvas(200, 100)}, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer g.Close()
	g.Load()

	err = g.Step()
	if !errors.Is(err, graphics.ErrBackend) || !errors.Is(err, errLost) {
		t.Fatalf("expected wrapped backend error, got %v", err)
	}
	if err := g.Step(); !errors.Is(err, errLost) {
		t.Errorf("error should stay sticky, got %v", err)
	}
}

func TestSnapshotCapturesBodies(t *testing.T) {
	g, _ := newGame(t, "7", Options{})
	for i := 0; i < 3; i++ {
		if err := g.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}

	snapshot := g.Snapshot()
	if snapshot.Tick != g.Tick() {
		t.Errorf("tick = %d, want %d", snapshot.Tick, g.Tick())
	}
	if snapshot.Seed != 42 {
		t.Errorf("seed = %d, want 42", snapshot.Seed)
	}
	if len(snapshot.Bodies) != g.BodyCount() {
		t.Fatalf("got %d bodies, want %d", len(snapshot.Bodies), g.BodyCount())
	}
	for _, b := range snapshot.Bodies {
		if b.X < 0 || b.X > snapshot.WorldWidth || b.Y < 0 || b.Y > snapshot.WorldHeight {
			t.Errorf("body %d at (%v, %v) outside %vx%v", b.ID, b.X, b.Y, snapshot.WorldWidth, snapshot.WorldHeight)
		}
		if b.Radius < 3 || b.Radius > 6 {
			t.Errorf("body %d radius %v outside [3, 6]", b.ID, b.Radius)
		}
	}
}
