package telemetry

import "math"

// Collector accumulates scene events within time windows and produces
// WindowStats.
type Collector struct {
	windowDurationTicks int64
	dt                  float64

	// Current window tracking
	windowStartTick int64

	// Event counters for current window
	contacts int
	wallHits int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int64(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationTicks: ticksPerWindow,
		dt:                  float64(dt),
	}
}

// RecordContacts adds n resolved body-body contacts.
func (c *Collector) RecordContacts(n int) {
	c.contacts += n
}

// RecordWallHits adds n bounces off the scene bounds.
func (c *Collector) RecordWallHits(n int) {
	c.wallHits += n
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// SceneSample is the body state sampled when a window closes.
type SceneSample struct {
	Bodies    int
	Kinematic int
	Speeds    []float64 // Dynamic bodies only
	Energy    float64   // Sum of ½mv² over dynamic bodies
	MomentumX float64
	MomentumY float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int64, sample SceneSample) WindowStats {
	mean, std, p50, p90 := ComputeDistribution(sample.Speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Bodies:    sample.Bodies,
		Kinematic: sample.Kinematic,

		Contacts: c.contacts,
		WallHits: c.wallHits,

		SpeedMean: mean,
		SpeedStd:  std,
		SpeedP50:  p50,
		SpeedP90:  p90,

		KineticEnergy: sample.Energy,
		MomentumX:     sample.MomentumX,
		MomentumY:     sample.MomentumY,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.contacts = 0
	c.wallHits = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
