package game

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pthm-cable/tensai/config"
	"github.com/pthm-cable/tensai/renderer"
)

// loadFont picks the HUD font: the 7x13 bitmap font when no size is set,
// otherwise font_path or Go Regular at font_size.
func loadFont(r config.RenderConfig) (*renderer.Font, error) {
	switch {
	case r.FontSize <= 0:
		return renderer.NewBasicFont(), nil
	case r.FontPath == "":
		return renderer.DefaultFont(r.FontSize)
	default:
		data, err := os.ReadFile(r.FontPath)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", r.FontPath, err)
		}
		return renderer.LoadFont(data, r.FontSize)
	}
}

// applyParams pushes tunable config values into the systems.
func (g *Game) applyParams() {
	g.physics.Gravity = g.cfg.Derived.Gravity32
	g.physics.WallRestitution = float32(g.cfg.Physics.WallRestitution)
	g.physics.MaxSpeed = float32(g.cfg.Scene.MaxSpeed)
	g.render.LineWidth = g.cfg.Derived.LineWidth32
}

// ApplyConfig switches to cfg for the values that can change while running,
// such as physics parameters, clear color, line width and camera. Screen
// size, body count, radii, backend, time step and telemetry keep their
// startup values.
func (g *Game) ApplyConfig(cfg *config.Config) {
	keep := g.cfg
	cfg.Screen = keep.Screen
	cfg.Scene.Bodies = keep.Scene.Bodies
	cfg.Scene.MaxRadius = keep.Scene.MaxRadius
	cfg.Render.Backend = keep.Render.Backend
	cfg.Telemetry = keep.Telemetry
	cfg.Physics.DT = keep.Physics.DT
	cfg.Derived.DT32 = keep.Derived.DT32
	cfg.Derived.ScreenW32 = keep.Derived.ScreenW32
	cfg.Derived.ScreenH32 = keep.Derived.ScreenH32
	g.cfg = cfg
	g.applyParams()

	friction := float32(cfg.Physics.Friction)
	restitution := float32(cfg.Physics.Restitution)
	query := g.bodyFilter.Query()
	for query.Next() {
		body, _ := query.Get()
		body.Friction = friction
		body.Restitution = restitution
	}

	slog.Info("config applied",
		"gravity", cfg.Physics.Gravity,
		"friction", cfg.Physics.Friction,
		"restitution", cfg.Physics.Restitution,
		"wall_restitution", cfg.Physics.WallRestitution,
	)
}

// WatchConfig reloads path whenever it changes until ctx is done. Reloaded
// configs are applied at the start of the next Update; invalid ones are
// logged and ignored.
func (g *Game) WatchConfig(ctx context.Context, path string) {
	go func() {
		err := config.Watch(ctx, path, func(cfg *config.Config, err error) {
			if err != nil {
				slog.Warn("config reload failed", "path", path, "error", err)
				return
			}
			// Keep only the newest pending config.
			select {
			case <-g.reloads:
			default:
			}
			g.reloads <- cfg
		})
		if err != nil {
			slog.Error("config watcher stopped", "path", path, "error", err)
		}
	}()
}
