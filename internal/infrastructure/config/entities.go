package config

// EntitiesConfig is the root config for entities.json
type EntitiesConfig struct {
	Player  PlayerConfig            `json:"player"`
	Pickups map[string]PickupConfig `json:"pickups"`
	Effects map[string]EffectConfig `json:"effects"`
}

type PlayerConfig struct {
	ID     string       `json:"id"`
	Hitbox HitboxConfig `json:"hitbox"`
	Mass   float64      `json:"mass"`
	Color  string       `json:"color"`
}

// HitboxConfig sizes are in world units (tiles)
type HitboxConfig struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	FeetHeight float64 `json:"feetHeight"`
}

type PickupConfig struct {
	ID     string   `json:"id"`
	Size   float64  `json:"size"`
	Color  string   `json:"color"`
	Grants []string `json:"grants,omitempty"` // ability names unlocked on touch
	Key    bool     `json:"key,omitempty"`
}

// EffectConfig describes a visual effect the controller can fire
type EffectConfig struct {
	ID              string  `json:"id"`
	Duration        float64 `json:"duration"`
	MaxParticleLife float64 `json:"maxParticleLife"`
	Particles       int     `json:"particles,omitempty"`
	Color           string  `json:"color"`
	FadeOut         float64 `json:"fadeOut,omitempty"`
	SampleInterval  float64 `json:"sampleInterval,omitempty"`
}

// Lifetime is how long a one-shot effect lives before it is released
func (e EffectConfig) Lifetime() float64 {
	return e.Duration + e.MaxParticleLife
}
