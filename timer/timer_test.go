package timer

import (
	"math"
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newFake() (*Timer, *fakeClock) {
	c := &fakeClock{t: time.Unix(1000, 0)}
	return NewWithClock(c.now), c
}

func TestDeltaAndTime(t *testing.T) {
	tm, clock := newFake()

	clock.advance(16 * time.Millisecond)
	tm.Update()
	if math.Abs(tm.Delta()-0.016) > 1e-9 {
		t.Errorf("expected delta 0.016, got %f", tm.Delta())
	}

	clock.advance(34 * time.Millisecond)
	tm.Update()
	if math.Abs(tm.Delta()-0.034) > 1e-9 {
		t.Errorf("expected delta 0.034, got %f", tm.Delta())
	}
	if math.Abs(tm.Time()-0.05) > 1e-9 {
		t.Errorf("expected total 0.05, got %f", tm.Time())
	}
	if tm.Frames() != 2 {
		t.Errorf("expected 2 frames, got %d", tm.Frames())
	}
}

func TestFPSZeroBeforeFirstSecond(t *testing.T) {
	tm, clock := newFake()
	for i := 0; i < 30; i++ {
		clock.advance(10 * time.Millisecond)
		tm.Update()
	}
	if tm.FPS() != 0 {
		t.Errorf("expected FPS 0 before a full second, got %f", tm.FPS())
	}
}

func TestFPSSampledPerSecond(t *testing.T) {
	tm, clock := newFake()

	// 60 frames of 1/60s reach the one-second window exactly.
	for i := 0; i < 60; i++ {
		clock.advance(time.Second / 60)
		tm.Update()
	}
	// time.Second/60 truncates, so allow for the window closing one frame late.
	if tm.FPS() == 0 {
		clock.advance(time.Second / 60)
		tm.Update()
	}
	if tm.FPS() < 59 || tm.FPS() > 61 {
		t.Errorf("expected ~60 FPS, got %f", tm.FPS())
	}

	// Slow frames update the sample once the next second elapses.
	for i := 0; i < 4; i++ {
		clock.advance(250 * time.Millisecond)
		tm.Update()
	}
	if math.Abs(tm.FPS()-4) > 1e-9 {
		t.Errorf("expected 4 FPS, got %f", tm.FPS())
	}
}

func TestSleep(t *testing.T) {
	tm := New()
	start := time.Now()
	tm.Sleep(0.01)
	if time.Since(start) < 10*time.Millisecond {
		t.Error("Sleep returned early")
	}
}
