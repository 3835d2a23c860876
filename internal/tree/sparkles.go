package tree

import (
	"math"
	"math/rand/v2"

	"github.com/olivier-w/winston/internal/geom"
)

// SparkleSpec configures the twinkling points around the tree.
type SparkleSpec struct {
	ScatteredCount int     `toml:"scattered_count" yaml:"scattered_count"`
	AssembledCount int     `toml:"assembled_count" yaml:"assembled_count"`
	Color          string  `toml:"color" yaml:"color"`
	Extent         float64 `toml:"extent" yaml:"extent"`
	CenterY        float64 `toml:"center_y" yaml:"center_y"`
	Speed          float64 `toml:"speed" yaml:"speed"`
}

// DefaultSparkleSpec returns the stock sparkle settings.
func DefaultSparkleSpec() SparkleSpec {
	return SparkleSpec{
		ScatteredCount: 20,
		AssembledCount: 80,
		Color:          "#f9d71c",
		Extent:         6,
		CenterY:        2.5,
		Speed:          0.3,
	}
}

// Sparkle is one point with its brightness for the frame.
type Sparkle struct {
	Position   geom.Vec3
	Brightness float64
}

// Sparkles is a small field whose size depends on the morph state.
// Changing the count resamples every point.
type Sparkles struct {
	spec   SparkleSpec
	rng    *rand.Rand
	points []geom.Vec3
	phases []float64
	drift  []float64
	out    []Sparkle
}

// NewSparkles builds the field with count points.
func NewSparkles(spec SparkleSpec, rng *rand.Rand, count int) *Sparkles {
	s := &Sparkles{spec: spec, rng: rng}
	s.SetCount(count)
	return s
}

// Len returns the current number of sparkles.
func (s *Sparkles) Len() int { return len(s.points) }

// SetCount resamples the field when n differs from the current size.
func (s *Sparkles) SetCount(n int) {
	n = max(n, 0)
	if n == len(s.points) && s.out != nil {
		return
	}
	s.points = make([]geom.Vec3, n)
	s.phases = make([]float64, n)
	s.drift = make([]float64, n)
	s.out = make([]Sparkle, n)
	for i := range n {
		s.points[i] = ScatterPoint(s.rng, s.spec.Extent, s.spec.CenterY)
		s.phases[i] = s.rng.Float64() * 2 * math.Pi
		s.drift[i] = 0.5 + s.rng.Float64()
	}
}

// Update returns every sparkle with its brightness at elapsed. Points drift
// slowly upward and wrap inside the field.
func (s *Sparkles) Update(elapsed float64) []Sparkle {
	half := s.spec.Extent / 2
	for i, p := range s.points {
		rise := math.Mod(elapsed*s.spec.Speed*s.drift[i]*0.2, s.spec.Extent)
		y := p.Y + rise
		if y > s.spec.CenterY+half {
			y -= s.spec.Extent
		}
		s.out[i] = Sparkle{
			Position:   geom.Vec3{X: p.X, Y: y, Z: p.Z},
			Brightness: 0.5 + 0.5*math.Sin(elapsed*s.spec.Speed*10*s.drift[i]+s.phases[i]),
		}
	}
	return s.out
}
