// Package game drives the demo scene: circle bodies bouncing under gravity,
// drawn through a graphics.Graphics on whatever Target the caller supplies.
package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tensai/components"
	"github.com/pthm-cable/tensai/config"
	"github.com/pthm-cable/tensai/geom"
	"github.com/pthm-cable/tensai/graphics"
	"github.com/pthm-cable/tensai/random"
	"github.com/pthm-cable/tensai/renderer"
	"github.com/pthm-cable/tensai/systems"
	"github.com/pthm-cable/tensai/telemetry"
	"github.com/pthm-cable/tensai/timer"
)

// Scene layout
const (
	groundFraction = 0.08 // share of the world height taken by the ground strip
	kinematicMass  = 1e6  // effectively immovable in impulse resolution

	bookmarkHistory = 10 // stats windows kept for bookmark detection
)

// Options holds per-run settings that are not part of the config file.
type Options struct {
	Seed      uint64 // overrides scene.seed when non-zero
	OutputDir string // overrides telemetry.output_dir when non-empty
	LogStats  bool   // log window and frame stats via slog
}

// Game holds the complete scene state.
type Game struct {
	cfg *config.Config

	world      *ecs.World
	bodies     *ecs.Map2[components.Body, components.Shape]
	bodyFilter *ecs.Filter2[components.Body, components.Shape]

	physics   *systems.PhysicsSystem
	collision *systems.CollisionSystem
	render    *systems.RenderSystem

	gfx   *graphics.Graphics
	font  *renderer.Font
	timer *timer.Timer
	rng   *random.Random

	frames    *telemetry.FrameCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	bookmarks *telemetry.BookmarkDetector
	logStats  bool

	reloads chan *config.Config

	// State
	seed         uint64 // zero when seeded from the clock
	tick         int64
	paused       bool
	selected     ecs.Entity
	hasSelection bool

	// World dimensions
	width, height float32
	ground        []geom.Vec2
}

// New creates a game drawing into target. Call Load to spawn the bodies.
func New(cfg *config.Config, target graphics.Target, opts Options) (*Game, error) {
	gfx, err := graphics.New(target)
	if err != nil {
		return nil, fmt.Errorf("creating graphics: %w", err)
	}

	font, err := loadFont(cfg.Render)
	if err != nil {
		return nil, fmt.Errorf("loading font: %w", err)
	}
	gfx.SetFont(graphics.Some[graphics.Font](font))

	seed := cfg.Scene.Seed
	if opts.Seed != 0 {
		seed = opts.Seed
	}
	rng := random.NewFromTime()
	if seed != 0 {
		rng = random.New(seed)
	}

	outputDir := cfg.Telemetry.OutputDir
	if opts.OutputDir != "" {
		outputDir = opts.OutputDir
	}
	output, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g := &Game{
		cfg:       cfg,
		world:     ecs.NewWorld(),
		gfx:       gfx,
		font:      font,
		timer:     timer.New(),
		rng:       rng,
		frames:    telemetry.NewFrameCollector(cfg.Telemetry.Window),
		collector: telemetry.NewCollector(cfg.Telemetry.LogInterval, cfg.Derived.DT32),
		output:    output,
		bookmarks: telemetry.NewBookmarkDetector(bookmarkHistory),
		logStats:  opts.LogStats,
		seed:      seed,
		reloads:   make(chan *config.Config, 1),
		width:     cfg.Derived.ScreenW32,
		height:    cfg.Derived.ScreenH32,
	}
	g.bodies = ecs.NewMap2[components.Body, components.Shape](g.world)
	g.bodyFilter = ecs.NewFilter2[components.Body, components.Shape](g.world)

	groundTop := g.height * (1 - groundFraction)
	bounds := systems.Bounds{Width: g.width, Height: groundTop}
	g.ground = groundPolygon(g.width, g.height, groundTop)

	g.physics = systems.NewPhysicsSystem(g.world, bounds)
	g.collision = systems.NewCollisionSystem(g.world, bounds, float32(2*cfg.Scene.MaxRadius))
	g.render = systems.NewRenderSystem(g.world, gfx)
	g.applyParams()
	g.fitCamera()

	slog.Info("game created",
		"seed", seed,
		"world_w", g.width,
		"world_h", g.height,
		"output_dir", output.Dir(),
	)
	return g, nil
}

// Load spawns scene.bodies bodies at random positions inside the bounds.
func (g *Game) Load() {
	for i := 0; i < g.cfg.Scene.Bodies; i++ {
		g.spawnBody()
	}
}

// Update advances the simulation by one fixed step. Pending config reloads
// are applied first.
func (g *Game) Update() {
	g.timer.Update()
	g.frames.StartFrame()

	select {
	case cfg := <-g.reloads:
		g.ApplyConfig(cfg)
	default:
	}

	if g.paused {
		return
	}

	g.frames.StartPhase(telemetry.PhaseIntegrate)
	g.collector.RecordWallHits(g.physics.Update(g.cfg.Derived.DT32))

	g.frames.StartPhase(telemetry.PhaseCollide)
	g.collector.RecordContacts(g.collision.Update())

	g.tick++
	g.flushTelemetry()
}

// Draw renders the scene and presents it. A backend failure is returned
// and stays sticky on the graphics context.
func (g *Game) Draw() error {
	g.frames.StartPhase(telemetry.PhaseDraw)
	g.fitCamera()

	g.gfx.Clear(g.cfg.Derived.ClearColor)
	g.drawGround()
	g.render.Draw()
	g.drawSelection()
	g.drawHUD()

	g.frames.StartPhase(telemetry.PhasePresent)
	err := g.gfx.Present()
	g.frames.EndFrame()
	return err
}

// Step runs Update followed by Draw.
func (g *Game) Step() error {
	g.Update()
	return g.Draw()
}

// Tick returns the number of simulation steps taken.
func (g *Game) Tick() int64 {
	return g.tick
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// Graphics returns the drawing context.
func (g *Game) Graphics() *graphics.Graphics {
	return g.gfx
}

// BodyCount returns the number of live bodies.
func (g *Game) BodyCount() int {
	n := 0
	query := g.bodyFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

// FrameStats returns frame timing over the telemetry window.
func (g *Game) FrameStats() telemetry.FrameStats {
	return g.frames.Stats()
}

// Close flushes telemetry output and releases the font.
func (g *Game) Close() error {
	if err := g.font.Close(); err != nil {
		slog.Warn("closing font", "error", err)
	}
	return g.output.Close()
}
