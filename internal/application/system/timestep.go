package system

import "math"

// stepEpsilon absorbs float drift so 50 frames of 0.02s make 50 steps
const stepEpsilon = 1e-9

// FixedStepper converts variable frame times into whole fixed ticks
type FixedStepper struct {
	step     float64
	maxSteps int
	acc      float64
}

// NewFixedStepper creates a stepper; frames longer than maxSteps ticks drop the excess
func NewFixedStepper(step float64, maxSteps int) *FixedStepper {
	if maxSteps < 1 {
		maxSteps = 1
	}
	return &FixedStepper{step: step, maxSteps: maxSteps}
}

// Advance adds frame time and returns how many fixed ticks are due
func (s *FixedStepper) Advance(dt float64) int {
	if dt > 0 {
		s.acc += dt
	}

	n := 0
	for s.acc+stepEpsilon >= s.step && n < s.maxSteps {
		s.acc -= s.step
		n++
	}
	if s.acc+stepEpsilon >= s.step {
		s.acc = math.Mod(s.acc, s.step)
	}
	if s.acc < 0 {
		s.acc = 0
	}
	return n
}

// Step returns the fixed tick length in seconds
func (s *FixedStepper) Step() float64 {
	return s.step
}

// Alpha is how far the clock is into the next tick, in [0, 1)
func (s *FixedStepper) Alpha() float64 {
	return s.acc / s.step
}

// Reset drops accumulated time
func (s *FixedStepper) Reset() {
	s.acc = 0
}
