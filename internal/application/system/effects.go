package system

import "github.com/younwookim/rooks/internal/domain/entity"

// Effects receives fire-and-forget visual cues from the controller
type Effects interface {
	// Burst spawns a one-shot particle effect released after lifetime seconds
	Burst(at entity.Vec2, lifetime float64)
	// StartTrail clears any previous trail and begins emitting
	StartTrail()
	// StopTrail stops emitting; the trail fades out on its own
	StopTrail()
}

type nopEffects struct{}

func (nopEffects) Burst(entity.Vec2, float64) {}
func (nopEffects) StartTrail()                {}
func (nopEffects) StopTrail()                 {}
