package config

// GameSettings is the root config for game.json
type GameSettings struct {
	Display  DisplayConfig   `json:"display"`
	Timestep TimestepConfig  `json:"timestep"`
	Physics  PhysicsSettings `json:"physics"`
}

type DisplayConfig struct {
	ScreenWidth   int     `json:"screenWidth"`
	ScreenHeight  int     `json:"screenHeight"`
	Scale         int     `json:"scale"`
	Framerate     int     `json:"framerate"`
	PixelsPerUnit float64 `json:"pixelsPerUnit"` // world units are tiles
}

// TimestepConfig configures the fixed-rate integration clock
type TimestepConfig struct {
	FixedHz       int     `json:"fixedHz"`
	MaxSubsteps   int     `json:"maxSubsteps"`
	MaxFrameDelta float64 `json:"maxFrameDelta"` // seconds; longer frames are clamped
}

type PhysicsSettings struct {
	Iterations int `json:"iterations"`
}

// FixedDelta returns the fixed tick length in seconds
func (t TimestepConfig) FixedDelta() float64 {
	if t.FixedHz <= 0 {
		return 1.0 / 50.0
	}
	return 1.0 / float64(t.FixedHz)
}
