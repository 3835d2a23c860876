package tree

import (
	"math/rand/v2"
	"slices"

	"github.com/olivier-w/winston/internal/geom"
	"github.com/olivier-w/winston/internal/morph"
)

// Spec gathers the settings of every tree layer.
type Spec struct {
	Needles   NeedleSpec     `toml:"needles" yaml:"needles"`
	Ornaments []OrnamentSpec `toml:"ornaments" yaml:"ornaments"`
	Topper    TopperSpec     `toml:"topper" yaml:"topper"`
	Sparkles  SparkleSpec    `toml:"sparkles" yaml:"sparkles"`
}

// DefaultSpec returns the stock tree.
func DefaultSpec() Spec {
	return Spec{
		Needles:   DefaultNeedleSpec(),
		Ornaments: DefaultOrnamentSpecs(),
		Topper:    DefaultTopperSpec(),
		Sparkles:  DefaultSparkleSpec(),
	}
}

// SparkleCount returns the configured sparkle count for a state.
func (s SparkleSpec) SparkleCount(st morph.State) int {
	if st == morph.Assembled {
		return s.AssembledCount
	}
	return s.ScatteredCount
}

// Tree owns every layer that morphs with the shared progress.
type Tree struct {
	spec      Spec
	needles   *Needles
	ornaments []*Ornaments
	topper    *Topper
	sparkles  *Sparkles
	frame     Layers
}

// New samples every layer from rng. The sparkle field starts at its
// scattered size.
func New(spec Spec, rng *rand.Rand) *Tree {
	spec.Ornaments = slices.Clone(spec.Ornaments)
	t := &Tree{
		spec:    spec,
		needles: NewNeedles(spec.Needles, rng),
		topper:  NewTopper(spec.Topper),
	}
	for _, os := range spec.Ornaments {
		t.ornaments = append(t.ornaments, NewOrnaments(os, rng))
	}
	t.sparkles = NewSparkles(spec.Sparkles, rng, spec.Sparkles.ScatteredCount)
	t.frame.Ornaments = make([]OrnamentFrame, len(t.ornaments))
	return t
}

// Spec returns the settings the tree was built with.
func (t *Tree) Spec() Spec { return t.spec }

func (t *Tree) Needles() *Needles { return t.needles }
func (t *Tree) Ornaments() []*Ornaments { return t.ornaments }
func (t *Tree) Topper() *Topper { return t.topper }
func (t *Tree) Sparkles() *Sparkles { return t.sparkles }

// Retune copies colour and spin from the layers in spec whose names match
// existing layers. Unknown names are ignored; nothing is resampled.
func (t *Tree) Retune(spec Spec) {
	byName := make(map[string]OrnamentSpec, len(spec.Ornaments))
	for _, os := range spec.Ornaments {
		byName[os.Name] = os
	}
	for i, l := range t.ornaments {
		os, ok := byName[l.Spec().Name]
		if !ok {
			continue
		}
		l.Retune(os.Color, os.Spin)
		t.spec.Ornaments[i] = l.Spec()
	}
}

// Layers is one frame's output of every tree layer. The slices alias the
// layers' buffers and are valid until the next Update.
type Layers struct {
	Needles   []geom.Vec3
	Ornaments []OrnamentFrame
	Topper    Instance
	Sparkles  []Sparkle
}

// OrnamentFrame pairs an ornament layer's instances with its look.
type OrnamentFrame struct {
	Name      string
	Shape     Shape
	Color     string
	Instances []Instance
}

// Update runs every layer once, in a fixed order: needles, ornaments,
// topper, sparkles.
func (t *Tree) Update(st morph.State, progress, elapsed, dt float64) Layers {
	t.frame.Needles = t.needles.Update(progress, elapsed)
	for i, l := range t.ornaments {
		spec := l.Spec()
		t.frame.Ornaments[i] = OrnamentFrame{
			Name:      spec.Name,
			Shape:     spec.Shape,
			Color:     spec.Color,
			Instances: l.Update(progress, elapsed),
		}
	}
	t.frame.Topper = t.topper.Update(progress, elapsed, dt)
	t.sparkles.SetCount(t.spec.Sparkles.SparkleCount(st))
	t.frame.Sparkles = t.sparkles.Update(elapsed)
	return t.frame
}
