// Package render rasterises scene frames into terminal text. A frame is
// projected onto a depth-buffered pixel canvas and the canvas is encoded as
// colour half-blocks, braille dots or an ASCII brightness ramp.
package render

import (
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
	"github.com/olivier-w/winston/internal/geom"
	"github.com/olivier-w/winston/internal/scene"
	"github.com/olivier-w/winston/internal/tree"
)

// Mode selects the text encoding.
type Mode string

const (
	ModeAuto      Mode = "auto"
	ModeHalfBlock Mode = "halfblock"
	ModeBraille   Mode = "braille"
	ModeASCII     Mode = "ascii"
)

// Spec configures the look of rendered frames.
type Spec struct {
	Mode             Mode    `toml:"mode" yaml:"mode"`
	Background       string  `toml:"background" yaml:"background"`
	FogNear          float64 `toml:"fog_near" yaml:"fog_near"`
	FogFar           float64 `toml:"fog_far" yaml:"fog_far"`
	Vignette         float64 `toml:"vignette" yaml:"vignette"`
	Bloom            float64 `toml:"bloom" yaml:"bloom"`
	NeedleOpacity    float64 `toml:"needle_opacity" yaml:"needle_opacity"`
	AmbientOpacity   float64 `toml:"ambient_opacity" yaml:"ambient_opacity"`
	BrailleThreshold float64 `toml:"braille_threshold" yaml:"braille_threshold"`
}

// DefaultSpec returns the stock look.
func DefaultSpec() Spec {
	return Spec{
		Mode:             ModeAuto,
		Background:       "#021a12",
		FogNear:          15,
		FogFar:           35,
		Vignette:         0.6,
		Bloom:            1.5,
		NeedleOpacity:    0.8,
		AmbientOpacity:   0.6,
		BrailleThreshold: 0.12,
	}
}

// Terminal renders frames to strings. It is not safe for concurrent use;
// the UI loop owns it.
type Terminal struct {
	spec    Spec
	profile termenv.Profile
	canvas  *Canvas
	sb      strings.Builder
	colors  map[string]colorful.Color
}

// NewTerminal returns a renderer using the terminal's detected colour profile.
func NewTerminal(spec Spec) *Terminal {
	return NewTerminalWithProfile(spec, currentProfile())
}

// NewTerminalWithProfile returns a renderer for an explicit colour profile.
func NewTerminalWithProfile(spec Spec, p termenv.Profile) *Terminal {
	return &Terminal{
		spec:    spec,
		profile: p,
		canvas:  NewCanvas(1, 1),
		colors:  make(map[string]colorful.Color),
	}
}

// SetSpec swaps the look. Takes effect on the next Render.
func (t *Terminal) SetSpec(spec Spec) {
	t.spec = spec
}

// Mode returns the encoding Render will use.
func (t *Terminal) Mode() Mode {
	switch t.spec.Mode {
	case ModeHalfBlock, ModeBraille, ModeASCII:
		return t.spec.Mode
	}
	if t.profile == termenv.Ascii {
		return ModeBraille
	}
	return ModeHalfBlock
}

func (t *Terminal) color(hex string) colorful.Color {
	if c, ok := t.colors[hex]; ok {
		return c
	}
	c := parseColor(hex)
	t.colors[hex] = c
	return c
}

// Render draws f into a cols x rows block of text.
func (t *Terminal) Render(f *scene.Frame, cols, rows int) string {
	cols, rows = max(cols, 1), max(rows, 1)
	mode := t.Mode()
	switch mode {
	case ModeBraille:
		t.canvas.Resize(cols*2, rows*4)
	default:
		t.canvas.Resize(cols, rows*2)
	}

	t.draw(f)

	t.sb.Reset()
	switch mode {
	case ModeBraille:
		encodeBraille(&t.sb, t.canvas, t.profile, t.spec.BrailleThreshold)
	case ModeASCII:
		encodeASCII(&t.sb, t.canvas)
	default:
		encodeHalfBlock(&t.sb, t.canvas, t.profile)
	}
	return t.sb.String()
}

// Canvas returns the pixel grid of the last Render.
func (t *Terminal) Canvas() *Canvas { return t.canvas }

func (t *Terminal) fog(depth float64) float64 {
	span := t.spec.FogFar - t.spec.FogNear
	if span <= 0 {
		return 0
	}
	return clamp01((depth - t.spec.FogNear) / span)
}

// draw rasterises opaque instances first so they fill the depth buffer,
// then the additive layers, then the vignette.
func (t *Terminal) draw(f *scene.Frame) {
	c := t.canvas
	bg := t.color(t.spec.Background)
	c.Clear(bg)
	cam := NewCamera(f.Camera, c.Width, c.Height)
	rot := f.GroupRotation

	for _, layer := range f.Ornaments {
		base := t.color(layer.Color)
		for _, inst := range layer.Instances {
			t.drawOrnament(cam, layer.Shape, base, inst, rot, bg)
		}
	}
	t.drawTopper(cam, t.color(f.TopperColor), f.Topper, rot, bg)

	needle := scaleColor(t.color(f.NeedleColor), t.spec.NeedleOpacity*t.spec.Bloom)
	for _, p := range f.Needles {
		t.splat(cam, geom.RotateY(p, rot), needle)
	}

	sparkle := t.color(f.SparkleColor)
	for _, s := range f.Sparkles {
		t.splat(cam, geom.RotateY(s.Position, rot), scaleColor(sparkle, s.Brightness*t.spec.Bloom))
	}

	ambient := scaleColor(t.color(f.AmbientColor), t.spec.AmbientOpacity)
	for _, p := range f.Ambient {
		t.splat(cam, p, ambient)
	}

	c.Vignette(t.spec.Vignette)
}

func (t *Terminal) splat(cam Camera, p geom.Vec3, col colorful.Color) {
	x, y, depth, ok := cam.Project(p)
	if !ok {
		return
	}
	k := 1 - t.fog(depth)
	if k <= 0 {
		return
	}
	t.canvas.Add(int(math.Floor(x)), int(math.Floor(y)), depth, scaleColor(col, k))
}

func (t *Terminal) drawOrnament(cam Camera, shape tree.Shape, base colorful.Color, inst tree.Instance, rot float64, bg colorful.Color) {
	x, y, depth, ok := cam.Project(geom.RotateY(inst.Transform.Translation(), rot))
	if !ok {
		return
	}
	fog := t.fog(depth)
	shade := func(d float64) colorful.Color {
		// Bright centre falling off to a darker rim reads as polished metal.
		lit := scaleColor(base, 1.55-0.75*d)
		return lit.Clamped().BlendRgb(bg, fog)
	}

	switch shape {
	case tree.ShapeBox:
		r := cam.PixelRadius(inst.Transform.MaxScale()*0.5, depth)
		t.canvas.Square(x, y, r, inst.Rotation.Y+rot, depth, shade)
		t.canvas.Glow(x, y, r*2, depth+0.01, scaleColor(base, 0.15*(1-fog)))
	default:
		r := cam.PixelRadius(inst.Transform.MaxScale(), depth)
		t.canvas.Disc(x, y, r, depth, shade)
		t.canvas.Glow(x, y, r*2.2, depth+0.01, scaleColor(base, 0.2*(1-fog)))
	}
}

func (t *Terminal) drawTopper(cam Camera, base colorful.Color, inst tree.Instance, rot float64, bg colorful.Color) {
	x, y, depth, ok := cam.Project(geom.RotateY(inst.Transform.Translation(), rot))
	if !ok {
		return
	}
	fog := t.fog(depth)
	r := cam.PixelRadius(inst.Transform.MaxScale()*0.5, depth)
	shade := func(d float64) colorful.Color {
		return scaleColor(base, 1.6-0.6*d).Clamped().BlendRgb(bg, fog*0.5)
	}
	t.canvas.Diamond(x, y, r, math.Cos(inst.Rotation.Y+rot), depth, shade)
	t.canvas.Glow(x, y, r*5, depth+0.01, scaleColor(base, 0.6*inst.Progress))
}
