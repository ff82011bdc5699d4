package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tensai/config"
	"github.com/pthm-cable/tensai/game"
	"github.com/pthm-cable/tensai/geom"
	"github.com/pthm-cable/tensai/graphics"
	"github.com/pthm-cable/tensai/renderer"
	"github.com/pthm-cable/tensai/renderer/rlbackend"
	"github.com/pthm-cable/tensai/renderer/tcellbackend"
)

// runOptions holds the loop settings shared by every backend.
type runOptions struct {
	configPath string
	watch      bool
	maxTicks   int
	snapshot   string
	game       game.Options
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml or config.toml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run on the software canvas without a window")
	backend := flag.String("backend", "", "Render backend: software, raylib or terminal (empty = use config)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	snapshot := flag.String("snapshot", "", "PNG written after a software run (empty = use config)")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = use config, then time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	watch := flag.Bool("watch", false, "Reload the config file when it changes")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	be := cfg.Render.Backend
	if *backend != "" {
		be = *backend
	}
	if *headless {
		be = config.BackendSoftware
	}

	// Set up slog (JSON for structured logging). The terminal backend owns
	// stdout, so its logs go to stderr.
	logOut := os.Stdout
	if be == config.BackendTerminal {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewJSONHandler(logOut, nil))
	slog.SetDefault(logger)
	graphics.SetLogger(logger)

	opts := runOptions{
		configPath: *configPath,
		watch:      *watch && *configPath != "",
		maxTicks:   *maxTicks,
		snapshot:   cfg.Render.SnapshotPath,
		game: game.Options{
			Seed:      *seed,
			OutputDir: *outputDir,
			LogStats:  *logStats,
		},
	}
	if *snapshot != "" {
		opts.snapshot = *snapshot
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("starting",
		"backend", be,
		"seed", *seed,
		"max_ticks", *maxTicks,
		"watch", opts.watch,
	)

	var err error
	switch be {
	case config.BackendSoftware:
		err = runSoftware(ctx, cfg, opts)
	case config.BackendRaylib:
		err = runRaylib(ctx, cfg, opts)
	case config.BackendTerminal:
		err = runTerminal(ctx, cfg, opts)
	default:
		err = fmt.Errorf("unknown backend %q", be)
	}
	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// start creates the game on target, spawns the scene and starts the config
// watcher when requested.
func start(ctx context.Context, cfg *config.Config, target graphics.Target, opts runOptions) (*game.Game, error) {
	g, err := game.New(cfg, target, opts.game)
	if err != nil {
		return nil, err
	}
	g.Load()
	if opts.watch {
		g.WatchConfig(ctx, opts.configPath)
	}
	return g, nil
}

func done(g *game.Game, opts runOptions) bool {
	if opts.maxTicks > 0 && int(g.Tick()) >= opts.maxTicks {
		slog.Info("max ticks reached", "tick", g.Tick())
		return true
	}
	return false
}

// runSoftware steps the scene on an in-memory canvas as fast as possible
// and saves the last frame when a snapshot path is set.
func runSoftware(ctx context.Context, cfg *config.Config, opts runOptions) error {
	canvas := renderer.NewCanvas(cfg.Screen.Width, cfg.Screen.Height)
	g, err := start(ctx, cfg, canvas, opts)
	if err != nil {
		return err
	}
	defer g.Close()

	for ctx.Err() == nil && !done(g, opts) {
		if err := g.Step(); err != nil {
			return err
		}
	}

	if opts.snapshot != "" {
		if err := canvas.SavePNG(opts.snapshot); err != nil {
			return fmt.Errorf("saving snapshot: %w", err)
		}
		slog.Info("snapshot saved", "path", opts.snapshot, "frames", canvas.Frames())
	}
	return nil
}

// runRaylib opens a window and runs the scene at the target frame rate.
// Space pauses, R respawns, V toggles velocity vectors and a left click
// selects a body.
func runRaylib(ctx context.Context, cfg *config.Config, opts runOptions) error {
	target := rlbackend.Open(cfg.Screen.Width, cfg.Screen.Height, cfg.Screen.Title, cfg.Screen.TargetFPS)
	defer target.Close()

	g, err := start(ctx, cfg, target, opts)
	if err != nil {
		return err
	}
	defer g.Close()

	showVelocity := true
	for !target.ShouldClose() && ctx.Err() == nil && !done(g, opts) {
		if rl.IsKeyPressed(rl.KeySpace) {
			g.TogglePause()
		}
		if rl.IsKeyPressed(rl.KeyR) {
			g.Reset()
		}
		if rl.IsKeyPressed(rl.KeyV) {
			showVelocity = !showVelocity
			g.ShowVelocity(showVelocity)
		}
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			m := rl.GetMousePosition()
			g.SelectAt(geom.V2(m.X, m.Y))
		}

		if err := g.Step(); err != nil {
			return err
		}
	}
	return nil
}

// runTerminal draws the scene into the terminal, one cell per pixel.
// p pauses, r respawns; Esc, q or Ctrl-C quit.
func runTerminal(ctx context.Context, cfg *config.Config, opts runOptions) error {
	target, err := tcellbackend.Open()
	if err != nil {
		return err
	}
	defer target.Close()

	g, err := start(ctx, cfg, target, opts)
	if err != nil {
		return err
	}
	defer g.Close()

	fps := max(cfg.Screen.TargetFPS, 1)
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	events := target.Events()
	for !done(g, opts) {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || target.HandleEvent(ev) {
				return nil
			}
			if key, isKey := ev.(*tcell.EventKey); isKey && key.Key() == tcell.KeyRune {
				switch key.Rune() {
				case 'p':
					g.TogglePause()
				case 'r':
					g.Reset()
				}
			}
		case <-ticker.C:
			if err := g.Step(); err != nil {
				return err
			}
		}
	}
	return nil
}
