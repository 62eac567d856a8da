package entity

// Ability is a gated controller capability
type Ability string

const (
	AbilityDoubleJump Ability = "double_jump"
	AbilityDash       Ability = "dash"
)

// UnlockState is the set of abilities the player has picked up,
// plus the secret key. Only pickups mutate it.
type UnlockState struct {
	abilities map[Ability]bool
	secretKey bool
}

func NewUnlockState() *UnlockState {
	return &UnlockState{abilities: make(map[Ability]bool)}
}

// Grant unlocks an ability; granting twice is a no-op
func (u *UnlockState) Grant(a Ability) {
	u.abilities[a] = true
}

func (u *UnlockState) Enabled(a Ability) bool {
	return u.abilities[a]
}

func (u *UnlockState) GrantKey() {
	u.secretKey = true
}

func (u *UnlockState) HasSecretKey() bool {
	return u.secretKey
}

// Abilities returns the unlocked abilities in a stable order
func (u *UnlockState) Abilities() []Ability {
	var out []Ability
	for _, a := range []Ability{AbilityDoubleJump, AbilityDash} {
		if u.abilities[a] {
			out = append(out, a)
		}
	}
	return out
}
