package tree

import (
	"math"
	"math/rand/v2"

	"github.com/olivier-w/winston/internal/geom"
)

// NeedleSpec configures the foliage point cloud.
type NeedleSpec struct {
	Count           int     `toml:"count" yaml:"count"`
	Color           string  `toml:"color" yaml:"color"`
	ScatterExtent   float64 `toml:"scatter_extent" yaml:"scatter_extent"`
	ScatterYOffset  float64 `toml:"scatter_y_offset" yaml:"scatter_y_offset"`
	Height          float64 `toml:"height" yaml:"height"`
	Radius          float64 `toml:"radius" yaml:"radius"`
	WeightBase      float64 `toml:"weight_base" yaml:"weight_base"`
	WeightSpan      float64 `toml:"weight_span" yaml:"weight_span"`
	JitterThreshold float64 `toml:"jitter_threshold" yaml:"jitter_threshold"`
	JitterAmplitude float64 `toml:"jitter_amplitude" yaml:"jitter_amplitude"`
	JitterFrequency float64 `toml:"jitter_frequency" yaml:"jitter_frequency"`
	JitterPhase     float64 `toml:"jitter_phase" yaml:"jitter_phase"`
}

// DefaultNeedleSpec returns the stock foliage settings.
func DefaultNeedleSpec() NeedleSpec {
	return NeedleSpec{
		Count:           4000,
		Color:           "#043927",
		ScatterExtent:   15,
		ScatterYOffset:  5,
		Height:          5,
		Radius:          2.2,
		WeightBase:      0.5,
		WeightSpan:      1,
		JitterThreshold: 0.1,
		JitterAmplitude: 0.02,
		JitterFrequency: 2,
		JitterPhase:     10,
	}
}

// Needles is the foliage layer. Its endpoints are fixed at construction; the
// position buffer is rewritten on every Update.
type Needles struct {
	spec    NeedleSpec
	scatter []geom.Vec3
	cone    []geom.Vec3
	weights []float64
	pos     []geom.Vec3
}

// NewNeedles samples spec.Count scatter points, cone points and weights.
func NewNeedles(spec NeedleSpec, rng *rand.Rand) *Needles {
	n := max(spec.Count, 0)
	l := &Needles{
		spec:    spec,
		scatter: make([]geom.Vec3, n),
		cone:    make([]geom.Vec3, n),
		weights: make([]float64, n),
		pos:     make([]geom.Vec3, n),
	}
	for i := range n {
		l.scatter[i] = ScatterPoint(rng, spec.ScatterExtent, spec.ScatterYOffset)
		l.cone[i] = ConePoint(rng, spec.Height, spec.Radius)
		l.weights[i] = spec.WeightBase + rng.Float64()*spec.WeightSpan
	}
	copy(l.pos, l.scatter)
	return l
}

// Len returns the fixed number of needles.
func (l *Needles) Len() int { return len(l.pos) }

// Spec returns the settings the layer was built with.
func (l *Needles) Spec() NeedleSpec { return l.spec }

// Endpoints returns the scatter point, cone point and weight of needle i.
func (l *Needles) Endpoints(i int) (scatter, cone geom.Vec3, weight float64) {
	return l.scatter[i], l.cone[i], l.weights[i]
}

// Update writes every needle's position for the given progress and elapsed
// time and returns the buffer. The slice is reused by the next call.
func (l *Needles) Update(progress, elapsed float64) []geom.Vec3 {
	for i := range l.pos {
		l.pos[i] = NeedlePosition(l.spec, l.scatter[i], l.cone[i], l.weights[i], progress, elapsed)
	}
	return l.pos
}

// Positions returns the buffer written by the last Update.
func (l *Needles) Positions() []geom.Vec3 { return l.pos }

// NeedlePosition interpolates one needle. Past the jitter threshold a small
// breathing offset, scaled by progress, is added to x and y.
func NeedlePosition(spec NeedleSpec, scatter, cone geom.Vec3, weight, progress, elapsed float64) geom.Vec3 {
	p := geom.LerpVec(scatter, cone, progress)
	if progress > spec.JitterThreshold {
		j := math.Sin(elapsed*spec.JitterFrequency+weight*spec.JitterPhase) * spec.JitterAmplitude * progress
		p.X += j
		p.Y += j
	}
	return p
}
