package scene

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/olivier-w/winston/internal/geom"
)

// CameraSpec configures the orbiting viewpoint.
type CameraSpec struct {
	Position        geom.Vec3 `toml:"position" yaml:"position"`
	Target          geom.Vec3 `toml:"target" yaml:"target"`
	FOV             float64   `toml:"fov" yaml:"fov"`
	MinDistance     float64   `toml:"min_distance" yaml:"min_distance"`
	MaxDistance     float64   `toml:"max_distance" yaml:"max_distance"`
	AutoRotateSpeed float64   `toml:"auto_rotate_speed" yaml:"auto_rotate_speed"`
	ZoomFrequency   float64   `toml:"zoom_frequency" yaml:"zoom_frequency"`
	ZoomDamping     float64   `toml:"zoom_damping" yaml:"zoom_damping"`
}

// DefaultCameraSpec returns the stock viewpoint.
func DefaultCameraSpec() CameraSpec {
	return CameraSpec{
		Position:        geom.V(12, 6, 18),
		Target:          geom.V(0, 2.5, 0),
		FOV:             30,
		MinDistance:     10,
		MaxDistance:     30,
		AutoRotateSpeed: 2 * math.Pi / 60 * 0.5,
		ZoomFrequency:   6,
		ZoomDamping:     0.9,
	}
}

// View is the camera the renderer should use for a frame.
type View struct {
	Eye    geom.Vec3
	Target geom.Vec3
	FOV    float64
}

// Orbit keeps the camera on a sphere around its target. Zoom requests move a
// goal distance; the actual distance follows it on a spring.
type Orbit struct {
	spec      CameraSpec
	fps       int
	spring    harmonica.Spring
	azimuth   float64
	elevation float64
	distance  float64
	velocity  float64
	goal      float64
}

// NewOrbit derives azimuth, elevation and distance from spec.Position.
func NewOrbit(spec CameraSpec, fps int) *Orbit {
	off := spec.Position.Sub(spec.Target)
	d := off.Length()
	if d == 0 {
		d = spec.MinDistance
		off = geom.V(0, 0, d)
	}
	o := &Orbit{
		spec:      spec,
		azimuth:   math.Atan2(off.X, off.Z),
		elevation: math.Asin(geom.Clamp(off.Y/d, -1, 1)),
	}
	o.distance = o.clampDistance(d)
	o.goal = o.distance
	o.SetFPS(fps)
	return o
}

// SetFPS rebuilds the zoom spring for a new frame rate. Each Update is
// one frame of 1/fps seconds.
func (o *Orbit) SetFPS(fps int) {
	o.fps = max(fps, 1)
	o.spring = harmonica.NewSpring(harmonica.FPS(o.fps), o.spec.ZoomFrequency, o.spec.ZoomDamping)
}

// FPS returns the frame rate the spring steps at.
func (o *Orbit) FPS() int { return o.fps }

func (o *Orbit) clampDistance(d float64) float64 {
	lo, hi := o.spec.MinDistance, o.spec.MaxDistance
	if hi <= lo {
		return d
	}
	return geom.Clamp(d, lo, hi)
}

// Zoom moves the goal distance by delta (negative is closer).
func (o *Orbit) Zoom(delta float64) {
	o.goal = o.clampDistance(o.goal + delta)
}

// Distance returns the current smoothed distance.
func (o *Orbit) Distance() float64 { return o.distance }

// Goal returns the distance the spring is pulling toward.
func (o *Orbit) Goal() float64 { return o.goal }

// Azimuth returns the current angle about Y.
func (o *Orbit) Azimuth() float64 { return o.azimuth }

// Update advances auto-rotation and the zoom spring.
func (o *Orbit) Update(autoRotate bool, dt float64) {
	if autoRotate && dt > 0 {
		o.azimuth = math.Mod(o.azimuth+o.spec.AutoRotateSpeed*dt, 2*math.Pi)
	}
	o.distance, o.velocity = o.spring.Update(o.distance, o.velocity, o.goal)
}

// View returns the eye position for the current orbit.
func (o *Orbit) View() View {
	se, ce := math.Sincos(o.elevation)
	sa, ca := math.Sincos(o.azimuth)
	eye := geom.Vec3{
		X: o.distance * ce * sa,
		Y: o.distance * se,
		Z: o.distance * ce * ca,
	}
	return View{Eye: eye.Add(o.spec.Target), Target: o.spec.Target, FOV: o.spec.FOV}
}
