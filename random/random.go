// Package random provides a caller-owned, seedable random source with the
// helpers a game loop needs.
package random

import (
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pthm-cable/tensai/geom"
)

// Random is a deterministic PRNG for a given seed. It is not safe for
// concurrent use.
type Random struct {
	src *rand.PCG
	rng *rand.Rand
}

// New creates a generator seeded with seed.
func New(seed uint64) *Random {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &Random{src: src, rng: rand.New(src)}
}

// NewFromTime creates a generator seeded from the wall clock.
func NewFromTime() *Random {
	return New(uint64(time.Now().UnixNano()))
}

// SetSeed restarts the sequence from seed.
func (r *Random) SetSeed(seed uint64) {
	r.src.Seed(seed, seed^0x9e3779b97f4a7c15)
}

// Int returns a uniform integer in [min, max], both ends inclusive.
// min must not exceed max.
func (r *Random) Int(min, max int) int {
	return min + r.rng.IntN(max-min+1)
}

// Float returns a uniform value in [min, max).
func (r *Random) Float(min, max float32) float32 {
	if min == max {
		return min
	}
	u := distuv.Uniform{Min: float64(min), Max: float64(max), Src: r.src}
	v := float32(u.Rand())
	// Narrowing to float32 may round up onto max.
	if v >= max {
		return min
	}
	return v
}

// Float01 returns a uniform value in [0, 1).
func (r *Random) Float01() float32 {
	return r.Float(0, 1)
}

// Bool returns true with probability one half.
func (r *Random) Bool() bool {
	return r.Float01() < 0.5
}

// Vec2 returns a vector with each component uniform in [min, max).
func (r *Random) Vec2(min, max geom.Vec2) geom.Vec2 {
	return geom.V2(r.Float(min.X, max.X), r.Float(min.Y, max.Y))
}

// Color returns an opaque color with random channels in [lo, 255].
func (r *Random) Color(lo uint8) geom.Color {
	c := func() uint8 { return uint8(r.Int(int(lo), 255)) }
	return geom.RGBA(c(), c(), c(), 255)
}
