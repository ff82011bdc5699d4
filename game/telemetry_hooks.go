package game

import (
	"log/slog"

	"github.com/pthm-cable/tensai/telemetry"
)

// flushTelemetry closes the stats window when it is due, logging and
// writing the window and frame stats.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	sample := g.sampleScene()
	stats := g.collector.Flush(g.tick, sample)
	frameStats := g.frames.Stats()

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		frameStats.LogStats(sample.Bodies)
	}

	for _, b := range g.bookmarks.Check(stats) {
		b.LogBookmark()
		if g.output == nil {
			continue
		}
		if err := g.output.WriteBookmark(b); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		snapshot := g.Snapshot()
		snapshot.Bookmark = &b
		if _, err := telemetry.SaveSnapshot(snapshot, g.output.SnapshotDir()); err != nil {
			slog.Error("failed to save snapshot", "error", err)
		}
	}

	// Write to CSV if output manager is enabled
	if g.output != nil {
		if err := g.output.WriteScene(stats); err != nil {
			slog.Error("failed to write scene stats", "error", err)
		}
		if err := g.output.WriteFrames(frameStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write frame stats", "error", err)
		}
	}
}

// sampleScene collects body counts, speeds, kinetic energy and momentum.
// Kinematic bodies are counted but excluded from the dynamic totals.
func (g *Game) sampleScene() telemetry.SceneSample {
	var s telemetry.SceneSample
	query := g.bodyFilter.Query()
	for query.Next() {
		body, _ := query.Get()
		s.Bodies++
		if body.Kinematic {
			s.Kinematic++
			continue
		}

		speed := float64(body.Velocity.Length())
		mass := float64(body.Mass)
		s.Speeds = append(s.Speeds, speed)
		s.Energy += 0.5 * mass * speed * speed
		s.MomentumX += mass * float64(body.Velocity.X)
		s.MomentumY += mass * float64(body.Velocity.Y)
	}
	return s
}

// Snapshot captures every body's state at the current tick.
func (g *Game) Snapshot() *telemetry.Snapshot {
	bounds := g.physics.Bounds()
	snapshot := &telemetry.Snapshot{
		Version:     telemetry.SnapshotVersion,
		Seed:        g.seed,
		WorldWidth:  bounds.Width,
		WorldHeight: bounds.Height,
		Tick:        g.tick,
	}

	query := g.bodyFilter.Query()
	for query.Next() {
		body, shape := query.Get()
		c := shape.Color
		snapshot.Bodies = append(snapshot.Bodies, telemetry.BodyState{
			ID:          uint32(query.Entity().ID()),
			Shape:       shape.Kind.String(),
			X:           body.Position.X,
			Y:           body.Position.Y,
			VelX:        body.Velocity.X,
			VelY:        body.Velocity.Y,
			Radius:      shape.Radius,
			Mass:        body.Mass,
			Friction:    body.Friction,
			Restitution: body.Restitution,
			Kinematic:   body.Kinematic,
			Color:       [4]uint8{c.R, c.G, c.B, c.A},
		})
	}
	return snapshot
}
