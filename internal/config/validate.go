package config

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/olivier-w/winston/internal/render"
	"github.com/olivier-w/winston/internal/tree"
)

// Validate reports every problem in cfg, joined.
func (c *Config) Validate() error {
	var errs []error
	fail := func(field, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%s: %s", field, fmt.Sprintf(format, args...)))
	}
	color := func(field, hex string) {
		if _, err := colorful.Hex(hex); err != nil {
			fail(field, "invalid colour %q", hex)
		}
	}

	if c.FPS < 1 || c.FPS > 120 {
		fail("fps", "must be between 1 and 120, got %d", c.FPS)
	}

	s := c.Scene
	if s.MorphRate <= 0 {
		fail("scene.morph_rate", "must be positive")
	}

	n := s.Tree.Needles
	if n.Count < 0 {
		fail("scene.tree.needles.count", "must not be negative")
	}
	if n.Height <= 0 {
		fail("scene.tree.needles.height", "must be positive")
	}
	if n.Radius < 0 {
		fail("scene.tree.needles.radius", "must not be negative")
	}
	color("scene.tree.needles.color", n.Color)

	seen := make(map[string]bool)
	for i, o := range s.Tree.Ornaments {
		field := fmt.Sprintf("scene.tree.ornaments[%d]", i)
		if o.Name == "" {
			fail(field+".name", "must not be empty")
		} else if seen[o.Name] {
			fail(field+".name", "duplicate layer %q", o.Name)
		}
		seen[o.Name] = true
		if o.Count < 0 {
			fail(field+".count", "must not be negative")
		}
		if o.Shape != tree.ShapeSphere && o.Shape != tree.ShapeBox {
			fail(field+".shape", "must be %q or %q, got %q", tree.ShapeSphere, tree.ShapeBox, o.Shape)
		}
		if o.WeightMultiplier <= 0 {
			fail(field+".weight_multiplier", "must be positive")
		}
		if o.Height <= 0 {
			fail(field+".height", "must be positive")
		}
		if o.BaseScale < o.ScaleFloor {
			fail(field+".base_scale", "must not be below scale_floor")
		}
		color(field+".color", o.Color)
	}

	color("scene.tree.topper.color", s.Tree.Topper.Color)

	sp := s.Tree.Sparkles
	if sp.ScatteredCount < 0 || sp.AssembledCount < 0 {
		fail("scene.tree.sparkles", "counts must not be negative")
	}
	if sp.Extent <= 0 {
		fail("scene.tree.sparkles.extent", "must be positive")
	}
	color("scene.tree.sparkles.color", sp.Color)

	a := s.Ambient
	if a.ScatteredCount < 0 || a.AssembledCount < 0 {
		fail("scene.ambient", "counts must not be negative")
	}
	if a.Spread <= 0 {
		fail("scene.ambient.spread", "must be positive")
	}
	if a.MaxY <= a.MinY {
		fail("scene.ambient.max_y", "must be above min_y")
	}
	color("scene.ambient.color", a.Color)

	cam := s.Camera
	if cam.FOV <= 0 || cam.FOV >= 180 {
		fail("scene.camera.fov", "must be between 0 and 180 degrees")
	}
	if cam.MinDistance <= 0 || cam.MaxDistance <= cam.MinDistance {
		fail("scene.camera", "need 0 < min_distance < max_distance")
	}
	if cam.ZoomFrequency <= 0 {
		fail("scene.camera.zoom_frequency", "must be positive")
	}

	r := c.Render
	switch r.Mode {
	case render.ModeAuto, render.ModeHalfBlock, render.ModeBraille, render.ModeASCII:
	default:
		fail("render.mode", "unknown mode %q", r.Mode)
	}
	if r.FogFar <= r.FogNear {
		fail("render.fog_far", "must be beyond fog_near")
	}
	color("render.background", r.Background)

	g := c.Greeting
	if g.Model == "" {
		fail("greeting.model", "must not be empty")
	}
	if g.Timeout.Duration <= 0 {
		fail("greeting.timeout", "must be positive")
	}

	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		fail("logging.level", "%v", err)
	}

	return errors.Join(errs...)
}
