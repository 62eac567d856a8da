package entity

// JumpState is the vertical sub-state of the player
type JumpState int

const (
	Grounded JumpState = iota
	AirborneCanDoubleJump
	AirborneSpent
)

func (s JumpState) String() string {
	switch s {
	case Grounded:
		return "grounded"
	case AirborneCanDoubleJump:
		return "airborne_can_double_jump"
	case AirborneSpent:
		return "airborne_spent"
	}
	return "unknown"
}

// PlayerState is the mutable controller state. Velocity lives on the body.
type PlayerState struct {
	Grounded      bool
	OnWall        bool
	Facing        float64 // +1 right, -1 left
	CanDoubleJump bool
	Jump          JumpState

	Dashing             bool
	DashTimer           float64
	DashCooldown        float64
	StoredVerticalSpeed float64
	StoredGravityScale  float64

	Checkpoint    Vec2
	HasCheckpoint bool
	Respawn       Vec2

	// GroundContacts counts overlapping ground colliders under the feet
	GroundContacts int
}

// NewPlayerState creates the spawn state. The player starts airborne
// until the ground sensor reports otherwise.
func NewPlayerState(spawn Vec2) *PlayerState {
	return &PlayerState{
		Facing:  1,
		Jump:    AirborneSpent,
		Respawn: spawn,
	}
}

// SetCheckpoint records p as checkpoint and respawn target
func (s *PlayerState) SetCheckpoint(p Vec2) {
	s.Checkpoint = p
	s.HasCheckpoint = true
	s.Respawn = p
}
