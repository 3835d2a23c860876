package tree

import (
	"math"

	"github.com/olivier-w/winston/internal/geom"
)

// TopperSpec configures the star on top of the tree.
type TopperSpec struct {
	Color          string    `toml:"color" yaml:"color"`
	Scatter        geom.Vec3 `toml:"scatter" yaml:"scatter"`
	Target         geom.Vec3 `toml:"target" yaml:"target"`
	ScaleFloor     float64   `toml:"scale_floor" yaml:"scale_floor"`
	Size           float64   `toml:"size" yaml:"size"`
	SpinRate       float64   `toml:"spin_rate" yaml:"spin_rate"`
	FloatSpeed     float64   `toml:"float_speed" yaml:"float_speed"`
	FloatAmplitude float64   `toml:"float_amplitude" yaml:"float_amplitude"`
}

// DefaultTopperSpec returns the stock topper settings.
func DefaultTopperSpec() TopperSpec {
	return TopperSpec{
		Color:          "#f9d71c",
		Scatter:        geom.V(0, 10, 0),
		Target:         geom.V(0, 5.2, 0),
		ScaleFloor:     0.01,
		Size:           1,
		SpinRate:       0.6,
		FloatSpeed:     4,
		FloatAmplitude: 0.1,
	}
}

// Topper animates the single star. Its spin advances with wall time and is
// independent of morph progress.
type Topper struct {
	spec TopperSpec
	spin float64
}

// NewTopper returns a topper at its scatter position.
func NewTopper(spec TopperSpec) *Topper {
	return &Topper{spec: spec}
}

// Spec returns the settings the topper was built with.
func (t *Topper) Spec() TopperSpec { return t.spec }

// Spin returns the accumulated self-rotation in radians.
func (t *Topper) Spin() float64 { return t.spin }

// Update advances the spin by dt and places the topper for progress.
func (t *Topper) Update(progress, elapsed, dt float64) Instance {
	if dt > 0 {
		t.spin = math.Mod(t.spin+t.spec.SpinRate*dt, 2*math.Pi)
	}
	return PlaceTopper(t.spec, progress, elapsed, t.spin)
}

// PlaceTopper computes the topper's instance for a progress value and spin angle.
func PlaceTopper(spec TopperSpec, progress, elapsed, spin float64) Instance {
	pos := geom.LerpVec(spec.Scatter, spec.Target, progress)
	pos.Y += math.Sin(elapsed*spec.FloatSpeed) * spec.FloatAmplitude
	scale := geom.Lerp(spec.ScaleFloor, spec.Size, progress)
	rot := geom.Euler{Y: spin}
	return Instance{
		Position:  pos,
		Rotation:  rot,
		Scale:     scale,
		Progress:  progress,
		Transform: geom.Compose(pos, geom.QuatFromEuler(rot), geom.Vec3{X: scale, Y: scale, Z: scale}),
	}
}
