package system

import "github.com/younwookim/rooks/internal/domain/entity"

// Event is something the controller or trigger system did this frame
type Event interface {
	isEvent()
}

// JumpEvent is fired on a ground jump or a double jump
type JumpEvent struct {
	Double   bool
	Velocity float64
}

func (JumpEvent) isEvent() {}

// DashEvent is fired when a dash starts or ends
type DashEvent struct {
	Start     bool
	Direction float64 // -1 for left, 1 for right
}

func (DashEvent) isEvent() {}

// GroundEvent is fired when grounded changes
type GroundEvent struct {
	Grounded bool
}

func (GroundEvent) isEvent() {}

// CheckpointEvent is fired when the respawn target moves
type CheckpointEvent struct {
	Position entity.Vec2
}

func (CheckpointEvent) isEvent() {}

// RespawnEvent is fired after a hazard sent the player back
type RespawnEvent struct {
	Position entity.Vec2
	Tag      entity.Tag
}

func (RespawnEvent) isEvent() {}

// PickupEvent is fired when a pickup is collected
type PickupEvent struct {
	Type   string
	Grants []entity.Ability
	Key    bool
}

func (PickupEvent) isEvent() {}

// SecretWallEvent is fired when the secret wall opens
type SecretWallEvent struct {
	TilesCleared int
}

func (SecretWallEvent) isEvent() {}
