package scene

import (
	"math"
	"math/rand/v2"

	"github.com/olivier-w/winston/internal/geom"
	"github.com/olivier-w/winston/internal/morph"
)

// AmbientSpec configures the background dust. It is driven by wall time and
// the discrete state only; morph progress never reaches it.
type AmbientSpec struct {
	ScatteredCount int     `toml:"scattered_count" yaml:"scattered_count"`
	AssembledCount int     `toml:"assembled_count" yaml:"assembled_count"`
	Color          string  `toml:"color" yaml:"color"`
	Spread         float64 `toml:"spread" yaml:"spread"`
	MinY           float64 `toml:"min_y" yaml:"min_y"`
	MaxY           float64 `toml:"max_y" yaml:"max_y"`
	RotationSpeed  float64 `toml:"rotation_speed" yaml:"rotation_speed"`
	BobSpeed       float64 `toml:"bob_speed" yaml:"bob_speed"`
	BobAmplitude   float64 `toml:"bob_amplitude" yaml:"bob_amplitude"`
}

// DefaultAmbientSpec returns the stock background field.
func DefaultAmbientSpec() AmbientSpec {
	return AmbientSpec{
		ScatteredCount: 600,
		AssembledCount: 150,
		Color:          "#d4af37",
		Spread:         20,
		MinY:           -5,
		MaxY:           10,
		RotationSpeed:  0.06,
		BobSpeed:       0.5,
		BobAmplitude:   0.2,
	}
}

// Count returns the configured particle count for a state.
func (s AmbientSpec) Count(st morph.State) int {
	if st == morph.Assembled {
		return s.AssembledCount
	}
	return s.ScatteredCount
}

// Ambient is the slowly turning particle field behind the tree.
type Ambient struct {
	spec     AmbientSpec
	rng      *rand.Rand
	base     []geom.Vec3
	out      []geom.Vec3
	rotation float64
}

// NewAmbient builds the field with count particles.
func NewAmbient(spec AmbientSpec, rng *rand.Rand, count int) *Ambient {
	a := &Ambient{spec: spec, rng: rng}
	a.SetCount(count)
	return a
}

// Len returns the current particle count.
func (a *Ambient) Len() int { return len(a.base) }

// Rotation returns the accumulated rotation about Y.
func (a *Ambient) Rotation() float64 { return a.rotation }

// SetCount regenerates the field when n differs from the current count.
func (a *Ambient) SetCount(n int) {
	n = max(n, 0)
	if n == len(a.base) && a.out != nil {
		return
	}
	a.base = make([]geom.Vec3, n)
	a.out = make([]geom.Vec3, n)
	for i := range n {
		a.base[i] = geom.Vec3{
			X: (a.rng.Float64() - 0.5) * a.spec.Spread,
			Y: a.spec.MinY + a.rng.Float64()*(a.spec.MaxY-a.spec.MinY),
			Z: (a.rng.Float64() - 0.5) * a.spec.Spread,
		}
	}
}

// retune swaps motion parameters without touching the sampled points.
func (a *Ambient) retune(spec AmbientSpec) {
	spec.ScatteredCount = a.spec.ScatteredCount
	spec.AssembledCount = a.spec.AssembledCount
	spec.Spread, spec.MinY, spec.MaxY = a.spec.Spread, a.spec.MinY, a.spec.MaxY
	a.spec = spec
}

// Update turns the field by dt and applies the vertical oscillation.
func (a *Ambient) Update(elapsed, dt float64) []geom.Vec3 {
	if dt > 0 {
		a.rotation = math.Mod(a.rotation+a.spec.RotationSpeed*dt, 2*math.Pi)
	}
	bob := math.Sin(elapsed*a.spec.BobSpeed) * a.spec.BobAmplitude
	for i, p := range a.base {
		q := geom.RotateY(p, a.rotation)
		q.Y += bob
		a.out[i] = q
	}
	return a.out
}
