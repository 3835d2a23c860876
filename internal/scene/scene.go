// Package scene is the root of the animated view. It owns the morph
// controller, the tree layers, the ambient field and the camera orbit, and
// turns one tick of wall time into one Frame.
package scene

import (
	"math"
	"slices"

	"github.com/olivier-w/winston/internal/geom"
	"github.com/olivier-w/winston/internal/morph"
	"github.com/olivier-w/winston/internal/tree"
)

// Spec configures a scene.
type Spec struct {
	Tree      tree.Spec   `toml:"tree" yaml:"tree"`
	Ambient   AmbientSpec `toml:"ambient" yaml:"ambient"`
	Camera    CameraSpec  `toml:"camera" yaml:"camera"`
	MorphRate float64     `toml:"morph_rate" yaml:"morph_rate"`
	GroupSpin float64     `toml:"group_spin" yaml:"group_spin"`
}

// DefaultSpec returns the stock scene.
func DefaultSpec() Spec {
	return Spec{
		Tree:      tree.DefaultSpec(),
		Ambient:   DefaultAmbientSpec(),
		Camera:    DefaultCameraSpec(),
		MorphRate: morph.DefaultRate,
		GroupSpin: 0.12,
	}
}

// Frame is everything a renderer needs for one tick. Slices alias scene
// buffers and stay valid until the next Step.
type Frame struct {
	State         morph.State
	Progress      float64
	Elapsed       float64
	Delta         float64
	GroupRotation float64

	Needles      []geom.Vec3
	NeedleColor  string
	Ornaments    []tree.OrnamentFrame
	Topper       tree.Instance
	TopperColor  string
	Sparkles     []tree.Sparkle
	SparkleColor string
	Ambient      []geom.Vec3
	AmbientColor string

	Camera View
}

// Renderer draws frames. The scene never depends on how.
type Renderer interface {
	Render(f *Frame, cols, rows int) string
}

// Scene is advanced from a single goroutine, once per displayed frame.
type Scene struct {
	spec       Spec
	controller *morph.Controller
	tree       *tree.Tree
	ambient    *Ambient
	orbit      *Orbit
	elapsed    float64
	groupRot   float64
	frame      Frame
}

// New samples every layer from seed. fps sets the camera spring's step.
func New(spec Spec, seed uint64, fps int) *Scene {
	rng := tree.NewRand(seed)
	s := &Scene{
		spec:       spec,
		controller: morph.NewController(spec.MorphRate),
		tree:       tree.New(spec.Tree, rng),
		orbit:      NewOrbit(spec.Camera, fps),
	}
	s.ambient = NewAmbient(spec.Ambient, rng, spec.Ambient.Count(morph.Scattered))
	return s
}

// Spec returns the settings the scene currently runs with.
func (s *Scene) Spec() Spec { return s.spec }

// Tree exposes the tree layers.
func (s *Scene) Tree() *tree.Tree { return s.tree }

// Ambient exposes the background field.
func (s *Scene) Ambient() *Ambient { return s.ambient }

// Orbit exposes the camera orbit.
func (s *Scene) Orbit() *Orbit { return s.orbit }

// Progress returns the shared morph progress.
func (s *Scene) Progress() float64 { return s.controller.Progress() }

// Elapsed returns total simulated seconds.
func (s *Scene) Elapsed() float64 { return s.elapsed }

// SetProgress jumps the morph progress. Used for still renders.
func (s *Scene) SetProgress(p float64) { s.controller.Reset(p) }

// Zoom moves the camera closer (negative) or further away.
func (s *Scene) Zoom(delta float64) { s.orbit.Zoom(delta) }

// SetFPS matches the camera spring to a new frame rate.
func (s *Scene) SetFPS(fps int) {
	if fps != s.orbit.FPS() {
		s.orbit.SetFPS(fps)
	}
}

// Retune applies the parts of spec that can change while running: easing
// rate, spin speeds, colours (ornament layers are matched by name) and
// ambient motion. Element counts and sampled
// positions are fixed for the scene's lifetime and are left alone.
func (s *Scene) Retune(spec Spec) {
	s.controller.SetRate(spec.MorphRate)
	s.ambient.retune(spec.Ambient)
	s.orbit.spec.AutoRotateSpeed = spec.Camera.AutoRotateSpeed
	s.orbit.spec.FOV = spec.Camera.FOV
	s.tree.Retune(spec.Tree)

	kept := s.spec
	kept.MorphRate = spec.MorphRate
	kept.GroupSpin = spec.GroupSpin
	kept.Ambient = s.ambient.spec
	kept.Camera.AutoRotateSpeed = spec.Camera.AutoRotateSpeed
	kept.Camera.FOV = spec.Camera.FOV
	kept.Tree.Needles.Color = spec.Tree.Needles.Color
	kept.Tree.Topper.Color = spec.Tree.Topper.Color
	kept.Tree.Sparkles.Color = spec.Tree.Sparkles.Color
	kept.Tree.Ornaments = slices.Clone(s.tree.Spec().Ornaments)
	s.spec = kept
}

// Step advances the scene by dt seconds for the requested state and returns
// the frame. Components run in a fixed order: controller, tree layers,
// ambient field, camera.
func (s *Scene) Step(st morph.State, dt float64) *Frame {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	s.elapsed += dt
	p := s.controller.Advance(st, dt)
	if st == morph.Assembled {
		s.groupRot = math.Mod(s.groupRot+s.spec.GroupSpin*dt, 2*math.Pi)
	}

	layers := s.tree.Update(st, p, s.elapsed, dt)

	s.ambient.SetCount(s.spec.Ambient.Count(st))
	ambient := s.ambient.Update(s.elapsed, dt)

	s.orbit.Update(st == morph.Assembled, dt)

	s.frame = Frame{
		State:         st,
		Progress:      p,
		Elapsed:       s.elapsed,
		Delta:         dt,
		GroupRotation: s.groupRot,
		Needles:       layers.Needles,
		NeedleColor:   s.spec.Tree.Needles.Color,
		Ornaments:     layers.Ornaments,
		Topper:        layers.Topper,
		TopperColor:   s.spec.Tree.Topper.Color,
		Sparkles:      layers.Sparkles,
		SparkleColor:  s.spec.Tree.Sparkles.Color,
		Ambient:       ambient,
		AmbientColor:  s.spec.Ambient.Color,
		Camera:        s.orbit.View(),
	}
	return &s.frame
}
