// Package game provides the main game loop manager that handles Scene transitions.
package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/rooks/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int

	// Frame delta comes from the wall clock, clamped to maxDT.
	// The first frame has no previous time and uses defaultDT.
	now       func() time.Time
	last      time.Time
	defaultDT float64
	maxDT     float64
	fixedDT   float64
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		current:   initialScene,
		screenW:   screenW,
		screenH:   screenH,
		now:       time.Now,
		defaultDT: 1.0 / 60.0, // Default to 60 FPS
		maxDT:     0.1,
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	next, err := g.current.Update(g.frameDelta())
	if err != nil {
		return err
	}

	// Handle scene transition
	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT pins the delta time used for updates, bypassing the wall clock.
// Useful for testing or custom frame rates.
func (g *Game) SetDT(dt float64) {
	g.fixedDT = dt
}

// SetMaxFrameDelta caps the delta handed to scenes after a stall
func (g *Game) SetMaxFrameDelta(maxDT float64) {
	if maxDT > 0 {
		g.maxDT = maxDT
	}
}

func (g *Game) frameDelta() float64 {
	if g.fixedDT > 0 {
		return g.fixedDT
	}

	now := g.now()
	dt := g.defaultDT
	if !g.last.IsZero() {
		dt = now.Sub(g.last).Seconds()
	}
	g.last = now

	if dt < 0 {
		dt = 0
	}
	if dt > g.maxDT {
		dt = g.maxDT
	}
	return dt
}
