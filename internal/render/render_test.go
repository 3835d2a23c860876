package render

import (
	"math"
	"strings"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
	"github.com/olivier-w/winston/internal/geom"
	"github.com/olivier-w/winston/internal/morph"
	"github.com/olivier-w/winston/internal/scene"
	"github.com/olivier-w/winston/internal/tree"
)

func testFrame(t *testing.T, st morph.State, progress float64) *scene.Frame {
	t.Helper()
	spec := scene.DefaultSpec()
	spec.Tree.Needles.Count = 800
	s := scene.New(spec, 21, 30)
	s.SetProgress(progress)
	return s.Step(st, 0)
}

func TestCameraProjectsTargetToCentre(t *testing.T) {
	view := scene.View{Eye: geom.V(12, 6, 18), Target: geom.V(0, 2.5, 0), FOV: 30}
	cam := NewCamera(view, 80, 48)
	x, y, depth, ok := cam.Project(view.Target)
	if !ok {
		t.Fatal("expected target to be visible")
	}
	if math.Abs(x-40) > 1e-9 || math.Abs(y-24) > 1e-9 {
		t.Fatalf("expected centre (40,24), got (%v,%v)", x, y)
	}
	if want := view.Eye.Distance(view.Target); math.Abs(depth-want) > 1e-9 {
		t.Fatalf("expected depth %v, got %v", want, depth)
	}
}

func TestCameraRejectsPointsBehind(t *testing.T) {
	view := scene.View{Eye: geom.V(0, 0, 10), Target: geom.V(0, 0, 0), FOV: 30}
	cam := NewCamera(view, 40, 40)
	if _, _, _, ok := cam.Project(geom.V(0, 0, 20)); ok {
		t.Fatal("expected point behind the camera to be rejected")
	}
}

func TestCameraUpIsUp(t *testing.T) {
	view := scene.View{Eye: geom.V(0, 0, 10), Target: geom.V(0, 0, 0), FOV: 30}
	cam := NewCamera(view, 40, 40)
	_, yHigh, _, _ := cam.Project(geom.V(0, 1, 0))
	_, yLow, _, _ := cam.Project(geom.V(0, -1, 0))
	if yHigh >= yLow {
		t.Fatalf("expected higher points nearer the top: %v >= %v", yHigh, yLow)
	}
}

func TestRenderHalfBlockLineCount(t *testing.T) {
	r := NewTerminalWithProfile(DefaultSpec(), termenv.TrueColor)
	out := r.Render(testFrame(t, morph.Assembled, 1), 60, 20)
	if got := strings.Count(out, "\n") + 1; got != 20 {
		t.Fatalf("expected 20 lines, got %d", got)
	}
	if !strings.Contains(out, "▀") {
		t.Fatal("expected half-block cells")
	}
	if !strings.Contains(out, "\x1b[38;2;") {
		t.Fatal("expected truecolor sequences")
	}
}

func TestAutoModeFallsBackToBrailleWithoutColour(t *testing.T) {
	r := NewTerminalWithProfile(DefaultSpec(), termenv.Ascii)
	if r.Mode() != ModeBraille {
		t.Fatalf("expected braille mode, got %s", r.Mode())
	}
	out := r.Render(testFrame(t, morph.Assembled, 1), 40, 12)
	if strings.Contains(out, "\x1b[") {
		t.Fatal("expected no escape sequences without colour")
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 12 {
		t.Fatalf("expected 12 lines, got %d", len(lines))
	}
	var raised bool
	for _, r := range out {
		if r > 0x2800 && r <= 0x28ff {
			raised = true
			break
		}
	}
	if !raised {
		t.Fatal("expected at least one raised braille dot")
	}
}

func TestASCIIMode(t *testing.T) {
	spec := DefaultSpec()
	spec.Mode = ModeASCII
	r := NewTerminalWithProfile(spec, termenv.ANSI256)
	out := r.Render(testFrame(t, morph.Scattered, 0), 30, 10)
	for _, line := range strings.Split(out, "\n") {
		if len(line) != 30 {
			t.Fatalf("expected 30 columns, got %d in %q", len(line), line)
		}
		if strings.Trim(line, asciiRamp) != "" {
			t.Fatalf("unexpected characters in %q", line)
		}
	}
}

func TestRenderLightsTheTree(t *testing.T) {
	spec := DefaultSpec()
	spec.Vignette = 0
	r := NewTerminalWithProfile(spec, termenv.TrueColor)
	r.Render(testFrame(t, morph.Assembled, 1), 80, 30)

	bg := parseColor(spec.Background)
	c := r.Canvas()
	var lit int
	for y := range c.Height {
		for x := range c.Width {
			if luminance(c.At(x, y)) > luminance(bg)+0.05 {
				lit++
			}
		}
	}
	if lit < 50 {
		t.Fatalf("expected the tree to light pixels, got %d", lit)
	}
}

func TestCanvasDepthTest(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Clear(colorful.Color{})
	red := colorful.Color{R: 1}
	blue := colorful.Color{B: 1}

	c.Set(1, 1, 5, red)
	c.Set(1, 1, 7, blue)
	if c.At(1, 1) != red {
		t.Fatal("expected nearer colour to win")
	}
	c.Add(1, 1, 9, blue)
	if c.At(1, 1) != red {
		t.Fatal("expected additive point behind an opaque pixel to be hidden")
	}
	c.Add(2, 2, 9, blue)
	c.Add(2, 2, 9, blue)
	if c.At(2, 2).B != 2 {
		t.Fatalf("expected additive accumulation, got %v", c.At(2, 2))
	}
}

func TestColorSequenceCached(t *testing.T) {
	key := quantize(colorful.Color{R: 1, G: 0.5, B: 0})
	a := colorSequence(termenv.TrueColor, key, false)
	b := colorSequence(termenv.TrueColor, key, false)
	if a != b || a == "" {
		t.Fatalf("expected identical non-empty sequences, got %q and %q", a, b)
	}
	if bg := colorSequence(termenv.TrueColor, key, true); !strings.HasPrefix(bg, "\x1b[48;2;") {
		t.Fatalf("expected background sequence, got %q", bg)
	}
}

func TestSubPixelShapeOffCanvasIsDropped(t *testing.T) {
	bg := colorful.Color{}
	white := func(float64) colorful.Color { return colorful.Color{R: 1, G: 1, B: 1} }

	c := NewCanvas(4, 4)
	c.Clear(bg)
	c.Disc(-0.7, -0.7, 0.3, 1, white)
	if c.At(0, 0) != bg {
		t.Fatalf("shape left of and above the canvas lit (0,0): %v", c.At(0, 0))
	}

	c.Disc(1.6, 2.2, 0.3, 1, white)
	if c.At(1, 2) == bg {
		t.Fatal("expected sub-pixel shape to light its containing pixel")
	}
}

func TestOrnamentsDrawnFromTransform(t *testing.T) {
	view := scene.View{Eye: geom.V(12, 6, 18), Target: geom.V(0, 2.5, 0), FOV: 30}
	inst := tree.Instance{
		// Position and Scale are stale; the composed transform is authoritative.
		Transform: geom.Compose(view.Target, geom.QuatIdentity, geom.V(1, 1, 1)),
	}
	f := &scene.Frame{
		Camera:       view,
		NeedleColor:  "#000000",
		TopperColor:  "#000000",
		SparkleColor: "#000000",
		AmbientColor: "#000000",
		Ornaments: []tree.OrnamentFrame{{
			Name:      "baubles",
			Shape:     tree.ShapeSphere,
			Color:     "#ffffff",
			Instances: []tree.Instance{inst},
		}},
	}
	spec := DefaultSpec()
	spec.Mode = ModeHalfBlock
	spec.Background = "#000000"
	r := NewTerminalWithProfile(spec, termenv.TrueColor)
	r.Render(f, 40, 24)

	c := r.Canvas()
	if lum := luminance(c.At(20, 24)); lum < 0.3 {
		t.Fatalf("expected ornament at the projected translation, centre luminance %v", lum)
	}
}
