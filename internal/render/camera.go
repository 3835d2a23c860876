package render

import (
	"math"

	"github.com/olivier-w/winston/internal/geom"
	"github.com/olivier-w/winston/internal/scene"
)

const nearClip = 0.1

// Camera projects scene space onto a pixel grid of width x height. Pixels
// are assumed square: half-block cells and braille dots both come close.
type Camera struct {
	eye     geom.Vec3
	forward geom.Vec3
	right   geom.Vec3
	up      geom.Vec3
	focal   float64
	width   float64
	height  float64
}

// NewCamera builds a projector for view on a width x height grid.
func NewCamera(view scene.View, width, height int) Camera {
	forward := view.Target.Sub(view.Eye).Normalized()
	right := forward.Cross(geom.V(0, 1, 0)).Normalized()
	if right == (geom.Vec3{}) {
		right = geom.V(1, 0, 0)
	}
	up := right.Cross(forward)
	fov := view.FOV
	if fov <= 0 || fov >= 180 {
		fov = 30
	}
	return Camera{
		eye:     view.Eye,
		forward: forward,
		right:   right,
		up:      up,
		focal:   1 / math.Tan(fov*math.Pi/360),
		width:   float64(width),
		height:  float64(height),
	}
}

// Project returns the pixel position and view depth of p. ok is false for
// points behind the near plane.
func (c Camera) Project(p geom.Vec3) (x, y, depth float64, ok bool) {
	d := p.Sub(c.eye)
	depth = d.Dot(c.forward)
	if depth <= nearClip {
		return 0, 0, depth, false
	}
	aspect := c.width / c.height
	nx := d.Dot(c.right) * c.focal / (depth * aspect)
	ny := d.Dot(c.up) * c.focal / depth
	x = (nx + 1) / 2 * c.width
	y = (1 - ny) / 2 * c.height
	return x, y, depth, true
}

// PixelRadius converts a scene-space radius at depth to pixels.
func (c Camera) PixelRadius(r, depth float64) float64 {
	if depth <= nearClip {
		return 0
	}
	return r * c.focal / depth * c.height / 2
}
