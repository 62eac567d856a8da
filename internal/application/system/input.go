package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState is one frame of abstract player input
type InputState struct {
	Horizontal  float64 // [-1, 1]
	JumpPressed bool    // jump went down this frame
	JumpHeld    bool
	DashPressed bool // dash went down this frame
	RunHeld     bool
}

// Sanitize clamps the axis to [-1, 1] and drops NaN
func (in InputState) Sanitize() InputState {
	switch {
	case math.IsNaN(in.Horizontal):
		in.Horizontal = 0
	case in.Horizontal > 1:
		in.Horizontal = 1
	case in.Horizontal < -1:
		in.Horizontal = -1
	}
	return in
}

// InputSource produces one input snapshot per frame
type InputSource interface {
	GetInput() InputState
}

// KeyBindings maps actions to keys; any bound key triggers the action
type KeyBindings struct {
	Left  []ebiten.Key
	Right []ebiten.Key
	Jump  []ebiten.Key
	Dash  []ebiten.Key
	Run   []ebiten.Key
}

// DefaultKeyBindings returns the keyboard layout used by the game
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Left:  []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
		Right: []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
		Jump:  []ebiten.Key{ebiten.KeySpace, ebiten.KeyW, ebiten.KeyArrowUp},
		Dash:  []ebiten.Key{ebiten.KeyShiftLeft},
		Run:   []ebiten.Key{ebiten.KeyControlLeft},
	}
}

// InputSystem reads player input from the keyboard
type InputSystem struct {
	keys KeyBindings
}

// NewInputSystem creates a new input system
func NewInputSystem(keys KeyBindings) *InputSystem {
	return &InputSystem{keys: keys}
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	return InputState{
		Horizontal:  Axis(anyPressed(s.keys.Left), anyPressed(s.keys.Right)),
		JumpPressed: anyJustPressed(s.keys.Jump),
		JumpHeld:    anyPressed(s.keys.Jump),
		DashPressed: anyJustPressed(s.keys.Dash),
		RunHeld:     anyPressed(s.keys.Run),
	}
}

// Axis folds two opposing digital inputs into [-1, 1]
func Axis(negative, positive bool) float64 {
	v := 0.0
	if negative {
		v--
	}
	if positive {
		v++
	}
	return v
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}
