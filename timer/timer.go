// Package timer tracks frame delta, elapsed time and frames per second.
package timer

import "time"

// Timer measures frame timing. Call Update once per frame.
type Timer struct {
	now func() time.Time

	start     time.Time
	lastFrame time.Time

	delta time.Duration
	total time.Duration

	frames      int    // frames since the last FPS sample
	totalFrames uint64 // frames since start
	fps         float64
	fpsWindow   time.Duration
}

// New creates a timer started at the current wall-clock time.
func New() *Timer {
	return NewWithClock(time.Now)
}

// NewWithClock creates a timer that reads time from now.
func NewWithClock(now func() time.Time) *Timer {
	t := &Timer{now: now}
	t.start = now()
	t.lastFrame = t.start
	return t
}

// Update records a frame boundary. FPS is resampled once at least a second
// of frame time has accumulated.
func (t *Timer) Update() {
	current := t.now()
	t.delta = current.Sub(t.lastFrame)
	t.total = current.Sub(t.start)
	t.lastFrame = current
	t.frames++
	t.totalFrames++

	t.fpsWindow += t.delta
	if t.fpsWindow >= time.Second {
		t.fps = float64(t.frames) / t.fpsWindow.Seconds()
		t.frames = 0
		t.fpsWindow = 0
	}
}

// Delta returns the duration of the last frame in seconds.
func (t *Timer) Delta() float64 { return t.delta.Seconds() }

// DeltaDuration returns the duration of the last frame.
func (t *Timer) DeltaDuration() time.Duration { return t.delta }

// Time returns seconds elapsed between construction and the last Update.
func (t *Timer) Time() float64 { return t.total.Seconds() }

// FPS returns the most recent frames-per-second sample, 0 until the first
// full second.
func (t *Timer) FPS() float64 { return t.fps }

// Frames returns the number of Update calls.
func (t *Timer) Frames() uint64 { return t.totalFrames }

// Sleep blocks for the given number of seconds.
func (t *Timer) Sleep(seconds float64) {
	time.Sleep(time.Duration(seconds * float64(time.Second)))
}
