package render

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Canvas is an RGB pixel grid with a depth buffer. Colours are accumulated
// unclamped so additive layers can bloom past white; encoders clamp.
type Canvas struct {
	Width  int
	Height int
	pix    []colorful.Color
	depth  []float64
}

// NewCanvas allocates a width x height canvas.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize reallocates the buffers when the size changes.
func (c *Canvas) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if width == c.Width && height == c.Height {
		return
	}
	c.Width, c.Height = width, height
	c.pix = make([]colorful.Color, width*height)
	c.depth = make([]float64, width*height)
}

// Clear fills the canvas with bg and resets depth.
func (c *Canvas) Clear(bg colorful.Color) {
	for i := range c.pix {
		c.pix[i] = bg
		c.depth[i] = math.Inf(1)
	}
}

// At returns the colour at (x, y).
func (c *Canvas) At(x, y int) colorful.Color {
	return c.pix[y*c.Width+x]
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.Width && y < c.Height
}

// Add blends col additively at (x, y) if nothing opaque is in front of it.
func (c *Canvas) Add(x, y int, depth float64, col colorful.Color) {
	if !c.inside(x, y) {
		return
	}
	i := y*c.Width + x
	if depth > c.depth[i] {
		return
	}
	c.pix[i] = addColor(c.pix[i], col)
}

// Set writes col at (x, y) with a depth test.
func (c *Canvas) Set(x, y int, depth float64, col colorful.Color) {
	if !c.inside(x, y) {
		return
	}
	i := y*c.Width + x
	if depth >= c.depth[i] {
		return
	}
	c.depth[i] = depth
	c.pix[i] = col
}

// Shade returns the colour for a pixel of a solid shape; t is the
// normalised distance from the shape's centre.
type Shade func(t float64) colorful.Color

// Disc fills a circle of radius r centred at (cx, cy).
func (c *Canvas) Disc(cx, cy, r, depth float64, shade Shade) {
	c.fill(cx, cy, r, depth, shade, func(dx, dy float64) float64 {
		return math.Hypot(dx, dy)
	})
}

// Square fills an axis-aligned square of half-size r, rotated by angle.
func (c *Canvas) Square(cx, cy, r, angle, depth float64, shade Shade) {
	s, co := math.Sincos(angle)
	c.fill(cx, cy, r*math.Sqrt2, depth, shade, func(dx, dy float64) float64 {
		rx := dx*co + dy*s
		ry := -dx*s + dy*co
		return math.Max(math.Abs(rx), math.Abs(ry)) * math.Sqrt2
	})
}

// Diamond fills a rhombus with radius r, its horizontal half-width
// squeezed by squash to suggest rotation.
func (c *Canvas) Diamond(cx, cy, r, squash, depth float64, shade Shade) {
	squash = math.Max(math.Abs(squash), 0.25)
	c.fill(cx, cy, r, depth, shade, func(dx, dy float64) float64 {
		return math.Abs(dx)/squash + math.Abs(dy)
	})
}

// Glow adds a soft additive halo of radius r.
func (c *Canvas) Glow(cx, cy, r, depth float64, col colorful.Color) {
	if r <= 0 {
		return
	}
	x0, x1 := int(math.Floor(cx-r)), int(math.Ceil(cx+r))
	y0, y1 := int(math.Floor(cy-r)), int(math.Ceil(cy+r))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) / r
			if d >= 1 {
				continue
			}
			falloff := (1 - d) * (1 - d)
			c.Add(x, y, depth, scaleColor(col, falloff))
		}
	}
}

// fill rasterises any convex shape whose normalised distance function is
// dist(dx, dy)/r <= 1. Shapes smaller than a pixel still light their
// centre pixel.
func (c *Canvas) fill(cx, cy, r, depth float64, shade Shade, dist func(dx, dy float64) float64) {
	if r < 0.5 {
		c.Set(int(math.Floor(cx)), int(math.Floor(cy)), depth, shade(0))
		return
	}
	x0, x1 := int(math.Floor(cx-r)), int(math.Ceil(cx+r))
	y0, y1 := int(math.Floor(cy-r)), int(math.Ceil(cy+r))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			t := dist(float64(x)+0.5-cx, float64(y)+0.5-cy) / r
			if t > 1 {
				continue
			}
			c.Set(x, y, depth, shade(t))
		}
	}
}

// Vignette darkens the canvas toward its corners. strength 0 is a no-op.
func (c *Canvas) Vignette(strength float64) {
	if strength <= 0 {
		return
	}
	cx, cy := float64(c.Width)/2, float64(c.Height)/2
	for y := range c.Height {
		for x := range c.Width {
			dx := (float64(x) + 0.5 - cx) / cx
			dy := (float64(y) + 0.5 - cy) / cy
			r2 := (dx*dx + dy*dy) / 2
			k := clamp01(1 - strength*r2)
			i := y*c.Width + x
			c.pix[i] = scaleColor(c.pix[i], k)
		}
	}
}
