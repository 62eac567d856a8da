package system

import (
	"github.com/younwookim/rooks/internal/domain/entity"
	"github.com/younwookim/rooks/internal/infrastructure/config"
)

// Sensor answers geometry queries against one collision layer
type Sensor interface {
	// Raycast reports whether solid geometry lies within dist of origin along dir
	Raycast(origin, dir entity.Vec2, dist float64, layer entity.Layer) bool
	// OverlapCircle returns the surface normal of the nearest shape touching the circle
	OverlapCircle(center entity.Vec2, radius float64, layer entity.Layer) (entity.Vec2, bool)
}

var (
	left  = entity.Vec2{X: -1}
	right = entity.Vec2{X: 1}
	down  = entity.Vec2{Y: -1}
)

// probeGround runs the polled ground strategies. The contact strategy is
// driven by OnContactEnter/OnContactExit and is not polled.
func probeGround(s Sensor, cfg *config.SensingConfig, feet entity.Vec2) bool {
	layer := entity.Layer(cfg.GroundLayer)
	switch cfg.GroundStrategy {
	case config.GroundRaycast:
		return s.Raycast(feet, down, cfg.GroundProbeDistance, layer)
	case config.GroundOverlap:
		normal, ok := s.OverlapCircle(feet, cfg.FeetRadius, layer)
		return ok && normal.Dot(entity.Up) >= cfg.MinGroundNormalY
	}
	return false
}

// probeWalls casts left and right from the body center
func probeWalls(s Sensor, cfg *config.SensingConfig, center entity.Vec2, halfWidth float64) (wallLeft, wallRight bool) {
	layer := entity.Layer(cfg.GroundLayer)
	dist := halfWidth + cfg.WallProbeDistance
	return s.Raycast(center, left, dist, layer), s.Raycast(center, right, dist, layer)
}
