package tree

import (
	"math"
	"math/rand/v2"

	"github.com/olivier-w/winston/internal/geom"
)

// Shape is the mesh an ornament layer draws for each instance.
type Shape string

const (
	ShapeSphere Shape = "sphere"
	ShapeBox    Shape = "box"
)

// OrnamentSpec configures one instanced ornament layer.
type OrnamentSpec struct {
	Name             string  `toml:"name" yaml:"name"`
	Count            int     `toml:"count" yaml:"count"`
	Shape            Shape   `toml:"shape" yaml:"shape"`
	Color            string  `toml:"color" yaml:"color"`
	WeightMultiplier float64 `toml:"weight_multiplier" yaml:"weight_multiplier"`
	Height           float64 `toml:"height" yaml:"height"`
	Radius           float64 `toml:"radius" yaml:"radius"`
	ScatterExtent    float64 `toml:"scatter_extent" yaml:"scatter_extent"`
	ScatterYOffset   float64 `toml:"scatter_y_offset" yaml:"scatter_y_offset"`
	BaseScale        float64 `toml:"base_scale" yaml:"base_scale"`
	ScaleFloor       float64 `toml:"scale_floor" yaml:"scale_floor"`
	Stagger          float64 `toml:"stagger" yaml:"stagger"`
	Spin             float64 `toml:"spin" yaml:"spin"`
}

// DefaultOrnamentSpecs returns the three stock layers: gold baubles, rose
// gold gift boxes and bright gold lights.
func DefaultOrnamentSpecs() []OrnamentSpec {
	base := OrnamentSpec{
		Shape:          ShapeSphere,
		Height:         4.5,
		Radius:         2.0,
		ScatterExtent:  12,
		ScatterYOffset: 5,
		BaseScale:      0.12,
		ScaleFloor:     0.01,
		Stagger:        1.5,
		Spin:           0.5,
	}

	baubles := base
	baubles.Name = "baubles"
	baubles.Count = 60
	baubles.Color = "#d4af37"
	baubles.WeightMultiplier = 1.2

	gifts := base
	gifts.Name = "gifts"
	gifts.Count = 15
	gifts.Shape = ShapeBox
	gifts.Color = "#e5c1cd"
	gifts.WeightMultiplier = 0.6
	gifts.Radius = 1.8
	gifts.BaseScale = 0.25

	lights := base
	lights.Name = "lights"
	lights.Count = 30
	lights.Color = "#f9d71c"
	lights.WeightMultiplier = 2.0

	return []OrnamentSpec{baubles, gifts, lights}
}

// Ornament is one element's fixed endpoints.
type Ornament struct {
	Scatter    geom.Vec3
	Target     geom.Vec3
	Weight     float64
	ScatterRot geom.Euler
}

// Instance is the placement of one drawn object for a frame.
type Instance struct {
	Position  geom.Vec3
	Rotation  geom.Euler
	Scale     float64
	Progress  float64
	Transform geom.Mat4
}

// Ornaments is an instanced layer: a fixed list of elements drawn with one
// shape and one colour.
type Ornaments struct {
	spec  OrnamentSpec
	items []Ornament
	out   []Instance
}

// NewOrnaments samples spec.Count elements.
func NewOrnaments(spec OrnamentSpec, rng *rand.Rand) *Ornaments {
	n := max(spec.Count, 0)
	l := &Ornaments{
		spec:  spec,
		items: make([]Ornament, n),
		out:   make([]Instance, n),
	}
	for i := range n {
		l.items[i] = Ornament{
			Scatter: ScatterPoint(rng, spec.ScatterExtent, spec.ScatterYOffset),
			Target:  ConePoint(rng, spec.Height, spec.Radius),
			Weight:  (0.2 + rng.Float64()*0.8) * spec.WeightMultiplier,
			ScatterRot: geom.Euler{
				X: rng.Float64() * math.Pi,
				Y: rng.Float64() * math.Pi,
			},
		}
	}
	return l
}

// Spec returns the settings the layer was built with.
func (l *Ornaments) Spec() OrnamentSpec { return l.spec }

// Retune changes the layer's colour and spin rate. Positions and counts
// are left alone.
func (l *Ornaments) Retune(color string, spin float64) {
	l.spec.Color = color
	l.spec.Spin = spin
}

// Len returns the fixed number of elements.
func (l *Ornaments) Len() int { return len(l.items) }

// Item returns element i's endpoints.
func (l *Ornaments) Item(i int) Ornament { return l.items[i] }

// Update places every element for the shared progress and returns the
// instance buffer. The slice is reused by the next call.
func (l *Ornaments) Update(shared, elapsed float64) []Instance {
	for i, it := range l.items {
		l.out[i] = Place(l.spec, it, shared, elapsed)
	}
	return l.out
}

// Instances returns the buffer written by the last Update.
func (l *Ornaments) Instances() []Instance { return l.out }

// IndividualProgress is clamp(shared*weight*k, 0, 1). Heavier elements arrive
// sooner, which staggers the assembly.
func IndividualProgress(shared, weight, k float64) float64 {
	return geom.Clamp01(shared * weight * k)
}

// Place computes one element's instance. Position, rotation and uniform
// scale are interpolated independently and composed into Transform.
func Place(spec OrnamentSpec, it Ornament, shared, elapsed float64) Instance {
	p := IndividualProgress(shared, it.Weight, spec.Stagger)
	rot := geom.LerpEuler(it.ScatterRot, geom.Euler{Y: elapsed * spec.Spin}, p)
	scale := geom.Lerp(spec.ScaleFloor, spec.BaseScale, p)
	pos := geom.LerpVec(it.Scatter, it.Target, p)
	return Instance{
		Position:  pos,
		Rotation:  rot,
		Scale:     scale,
		Progress:  p,
		Transform: geom.Compose(pos, geom.QuatFromEuler(rot), geom.Vec3{X: scale, Y: scale, Z: scale}),
	}
}
