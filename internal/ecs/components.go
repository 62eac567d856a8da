package ecs

// Position is the bottom-left corner of an entity's area, in world units
type Position struct {
	X, Y float64
}

// Area is the size of an entity's trigger volume
type Area struct {
	W, H float64
}

// TriggerKind says what happens when the player enters a trigger
type TriggerKind int

const (
	TriggerCheckpoint TriggerKind = iota
	TriggerHazard
	TriggerPickup
	TriggerSecretWall
)

func (k TriggerKind) String() string {
	switch k {
	case TriggerCheckpoint:
		return "checkpoint"
	case TriggerHazard:
		return "hazard"
	case TriggerPickup:
		return "pickup"
	case TriggerSecretWall:
		return "secret_wall"
	}
	return "unknown"
}

// Trigger marks an entity as a player trigger
type Trigger struct {
	Kind TriggerKind
	Tag  string
}

// Pickup is a one-shot item that grants abilities or the secret key
type Pickup struct {
	Type   string
	Grants []string
	Key    bool
}
