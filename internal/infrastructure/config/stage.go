package config

// StageConfig is the root config for stage JSON files.
// Collision rows are listed top to bottom; world Y grows upward.
type StageConfig struct {
	ID          string                       `json:"id"`
	Name        string                       `json:"name"`
	Background  string                       `json:"background"`
	PlayerSpawn PositionConfig               `json:"playerSpawn"`
	Layers      LayersConfig                 `json:"layers"`
	TileMapping map[string]TileMappingConfig `json:"tileMapping"`
	Checkpoints []PositionConfig             `json:"checkpoints"`
	Hazards     []HazardConfig               `json:"hazards"`
	Pickups     []PickupSpawnConfig          `json:"pickups"`
	SecretWalls []RectConfig                 `json:"secretWalls"`
}

// PositionConfig is a tile coordinate in world space
type PositionConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type LayersConfig struct {
	Collision []string `json:"collision"`
}

type TileMappingConfig struct {
	Type  string `json:"type"` // ground, hazard, secret
	Solid bool   `json:"solid"`
	Tag   string `json:"tag,omitempty"`
}

type HazardConfig struct {
	Tag  string     `json:"tag"`
	Rect RectConfig `json:"rect"`
}

type PickupSpawnConfig struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type RectConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}
