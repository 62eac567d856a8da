package config

import (
	"errors"
	"fmt"
)

// Ground detection strategies
const (
	GroundContact = "contact"
	GroundRaycast = "raycast"
	GroundOverlap = "overlap"
)

// GroundLayer is the only layer the physics host reports ground on
const GroundLayer = "ground"


// ControllerConfig is the root config for controller.yaml.
// It is read once and never mutated; a reload replaces the whole value.
type ControllerConfig struct {
	Movement MovementConfig `yaml:"movement"`
	Jump     JumpConfig     `yaml:"jump"`
	Gravity  GravityConfig  `yaml:"gravity"`
	Dash     DashConfig     `yaml:"dash"`
	Sensing  SensingConfig  `yaml:"sensing"`
	Features FeatureFlags   `yaml:"features"`
	Unlocks  UnlockConfig   `yaml:"unlocks"`
	Respawn  RespawnConfig  `yaml:"respawn"`
	Effects  EffectNames    `yaml:"effects"`
}

type MovementConfig struct {
	WalkSpeed    float64 `yaml:"walk_speed"`
	RunSpeed     float64 `yaml:"run_speed"`
	Acceleration float64 `yaml:"acceleration"`
	Deceleration float64 `yaml:"deceleration"`
	Deadband     float64 `yaml:"deadband"`
}

type JumpConfig struct {
	Force                float64 `yaml:"force"`
	DoubleJumpMultiplier float64 `yaml:"double_jump_multiplier"`
}

// GravityConfig shapes the jump arc on top of the physics world gravity
type GravityConfig struct {
	WorldY            float64 `yaml:"world_y"`
	BaseScale         float64 `yaml:"base_scale"`
	FallMultiplier    float64 `yaml:"fall_multiplier"`
	LowJumpMultiplier float64 `yaml:"low_jump_multiplier"`
	HoldGravityFactor float64 `yaml:"hold_gravity_factor"`
}

type DashConfig struct {
	Strength float64 `yaml:"strength"`
	Duration float64 `yaml:"duration"`
	Cooldown float64 `yaml:"cooldown"`
}

type SensingConfig struct {
	GroundStrategy      string  `yaml:"ground_strategy"`
	GroundProbeDistance float64 `yaml:"ground_probe_distance"`
	WallProbeDistance   float64 `yaml:"wall_probe_distance"`
	FeetRadius          float64 `yaml:"feet_radius"`
	MinGroundNormalY    float64 `yaml:"min_ground_normal_y"`
	GroundLayer         string  `yaml:"ground_layer"`
}

// FeatureFlags switch controller sub-states in or out
type FeatureFlags struct {
	DoubleJump bool `yaml:"double_jump"`
	Dash       bool `yaml:"dash"`
	Run        bool `yaml:"run"`
	Animation  bool `yaml:"animation"`
}

// UnlockConfig is the unlock state the player spawns with
type UnlockConfig struct {
	DoubleJump bool `yaml:"double_jump"`
	Dash       bool `yaml:"dash"`
	SecretKey  bool `yaml:"secret_key"`
}

type RespawnConfig struct {
	HazardTags       []string `yaml:"hazard_tags"`
	CheckpointTag    string   `yaml:"checkpoint_tag"`
	ResetMotionState bool     `yaml:"reset_motion_state"`
}

// EffectNames refers to entries of entities.json effects
type EffectNames struct {
	DoubleJump string `yaml:"double_jump"`
	DashTrail  string `yaml:"dash_trail"`
}

var (
	ErrNonPositive     = errors.New("value must be positive")
	ErrGravityUp       = errors.New("world gravity must point down")
	ErrUnknownStrategy = errors.New("unknown ground strategy")
	ErrMissingTag      = errors.New("tag must not be empty")
	ErrUnknownLayer    = errors.New("unknown collision layer")
)

// Validate checks the invariants the controller relies on
func (c *ControllerConfig) Validate() error {
	type field struct {
		name  string
		value float64
	}
	positive := []field{
		{"movement.walk_speed", c.Movement.WalkSpeed},
		{"movement.acceleration", c.Movement.Acceleration},
		{"movement.deceleration", c.Movement.Deceleration},
		{"jump.force", c.Jump.Force},
		{"gravity.base_scale", c.Gravity.BaseScale},
		{"gravity.fall_multiplier", c.Gravity.FallMultiplier},
		{"gravity.low_jump_multiplier", c.Gravity.LowJumpMultiplier},
		{"sensing.wall_probe_distance", c.Sensing.WallProbeDistance},
	}
	if c.Features.Dash {
		positive = append(positive,
			field{"dash.strength", c.Dash.Strength},
			field{"dash.duration", c.Dash.Duration},
		)
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%s = %v: %w", p.name, p.value, ErrNonPositive)
		}
	}

	if c.Features.Run && c.Movement.RunSpeed <= 0 {
		return fmt.Errorf("movement.run_speed = %v: %w", c.Movement.RunSpeed, ErrNonPositive)
	}
	if c.Gravity.WorldY >= 0 {
		return fmt.Errorf("gravity.world_y = %v: %w", c.Gravity.WorldY, ErrGravityUp)
	}

	switch c.Sensing.GroundStrategy {
	case GroundContact:
	case GroundRaycast:
		if c.Sensing.GroundProbeDistance <= 0 {
			return fmt.Errorf("sensing.ground_probe_distance = %v: %w", c.Sensing.GroundProbeDistance, ErrNonPositive)
		}
	case GroundOverlap:
		if c.Sensing.FeetRadius <= 0 {
			return fmt.Errorf("sensing.feet_radius = %v: %w", c.Sensing.FeetRadius, ErrNonPositive)
		}
	default:
		return fmt.Errorf("sensing.ground_strategy %q: %w", c.Sensing.GroundStrategy, ErrUnknownStrategy)
	}

	if c.Sensing.GroundLayer != GroundLayer {
		return fmt.Errorf("sensing.ground_layer %q: %w", c.Sensing.GroundLayer, ErrUnknownLayer)
	}

	if c.Respawn.CheckpointTag == "" {
		return fmt.Errorf("respawn.checkpoint_tag: %w", ErrMissingTag)
	}
	for i, tag := range c.Respawn.HazardTags {
		if tag == "" {
			return fmt.Errorf("respawn.hazard_tags[%d]: %w", i, ErrMissingTag)
		}
	}
	return nil
}

// TopSpeed returns the fastest horizontal speed the integrator can target
func (c *ControllerConfig) TopSpeed() float64 {
	if c.Features.Run && c.Movement.RunSpeed > c.Movement.WalkSpeed {
		return c.Movement.RunSpeed
	}
	return c.Movement.WalkSpeed
}
