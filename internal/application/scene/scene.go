// Package scene holds the screen abstraction the game loop drives.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the game. The playing scene runs the controller
// session; pause and replay are states inside it, not separate scenes.
type Scene interface {
	// Update advances the scene by dt seconds of wall-clock time, already
	// clamped by the game loop. A non-nil next replaces the scene; an error
	// stops the game.
	Update(dt float64) (next Scene, err error)

	Draw(screen *ebiten.Image)

	// OnEnter runs each time the scene becomes current
	OnEnter()

	// OnExit flushes recordings and saved progress
	OnExit()
}
