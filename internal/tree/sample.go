// Package tree builds the animated layers of the tree: the needle cloud, the
// instanced ornaments, the topper and the sparkles. Every layer samples its
// endpoints once at construction and afterwards only interpolates between them.
package tree

import (
	"math"
	"math/rand/v2"

	"github.com/olivier-w/winston/internal/geom"
)

// NewRand returns a deterministic source for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// ConePoint returns a random point inside an upright cone whose base sits on
// y=0. Height is uniform in [0, height); the radius shrinks linearly to zero
// at the apex.
func ConePoint(rng *rand.Rand, height, maxRadius float64) geom.Vec3 {
	h := rng.Float64() * height
	radius := (1 - h/height) * maxRadius
	angle := rng.Float64() * 2 * math.Pi
	s, c := math.Sincos(angle)
	return geom.Vec3{X: c * radius, Y: h, Z: s * radius}
}

// ScatterPoint returns a random point in an axis-aligned cube of the given
// edge length, centred on (0, yOffset, 0).
func ScatterPoint(rng *rand.Rand, extent, yOffset float64) geom.Vec3 {
	return geom.Vec3{
		X: (rng.Float64() - 0.5) * extent,
		Y: (rng.Float64()-0.5)*extent + yOffset,
		Z: (rng.Float64() - 0.5) * extent,
	}
}
