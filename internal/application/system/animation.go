package system

import "math"

// Animation names the sprite state the renderer should show
type Animation struct {
	Name     string
	FlipX    bool
	Grounded bool
	Speed    float64
	// Blend is Speed over the configured top speed, clamped to [0, 1]
	Blend    float64
}

const runThreshold = 0.1

// Animation returns the animation flags, or the zero value when the
// animation feature is off.
func (c *Controller) Animation() Animation {
	if !c.cfg.Features.Animation {
		return Animation{}
	}

	vel := c.body.Velocity()
	a := Animation{
		FlipX:    c.state.Facing < 0,
		Grounded: c.state.Grounded,
		Speed:    math.Abs(vel.X),
	}
	if top := c.cfg.TopSpeed(); top > 0 {
		a.Blend = math.Min(a.Speed/top, 1)
	}

	switch {
	case c.state.Dashing:
		a.Name = "dash"
	case !c.state.Grounded && vel.Y > 0:
		a.Name = "jump"
	case !c.state.Grounded:
		a.Name = "fall"
	case a.Speed > runThreshold:
		a.Name = "run"
	default:
		a.Name = "idle"
	}
	return a
}
