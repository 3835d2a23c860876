package morph

import "math"

// DefaultRate is the easing rate used when none is configured.
const DefaultRate = 2.0

// Controller owns the shared morph progress. It is advanced once per frame
// from the UI loop; every other component only reads Progress.
type Controller struct {
	progress float64
	rate     float64
}

// NewController returns a controller at progress 0 (scattered).
func NewController(rate float64) *Controller {
	c := &Controller{}
	c.SetRate(rate)
	return c
}

// SetRate changes the easing rate. Non-positive rates fall back to DefaultRate.
func (c *Controller) SetRate(rate float64) {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		rate = DefaultRate
	}
	c.rate = rate
}

// Rate returns the easing rate in 1/seconds.
func (c *Controller) Rate() float64 {
	return c.rate
}

// Progress returns the current value in [0, 1].
func (c *Controller) Progress() float64 {
	return c.progress
}

// Advance eases progress toward the state's target by dt seconds and returns
// the new value. The step factor is capped at 1 so a long frame lands on the
// target instead of overshooting it.
func (c *Controller) Advance(s State, dt float64) float64 {
	if dt <= 0 {
		return c.progress
	}
	k := c.rate * dt
	if k > 1 {
		k = 1
	}
	target := s.Target()
	c.progress += (target - c.progress) * k
	if c.progress < 0 {
		c.progress = 0
	} else if c.progress > 1 {
		c.progress = 1
	}
	return c.progress
}

// Settled reports whether progress is within eps of the state's target.
func (c *Controller) Settled(s State, eps float64) bool {
	return math.Abs(s.Target()-c.progress) < eps
}

// Reset puts progress back to an exact value, clamped to [0, 1].
func (c *Controller) Reset(progress float64) {
	c.progress = math.Max(0, math.Min(1, progress))
}
