package playing

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/younwookim/rooks/internal/domain/entity"
)

// camera maps world units (Y up) to screen pixels (Y down)
type camera struct {
	x, y    float64 // world position of the bottom-left screen corner
	ppu     float64
	screenW int
	screenH int
}

// follow centers the camera on target, clamped to the stage
func (c *camera) follow(target entity.Vec2, stageW, stageH int) {
	viewW := float64(c.screenW) / c.ppu
	viewH := float64(c.screenH) / c.ppu

	c.x = clamp(target.X-viewW/2, 0, float64(stageW)-viewW)
	c.y = clamp(target.Y-viewH/2, 0, float64(stageH)-viewH)
}

func (c *camera) toScreen(p entity.Vec2) (float64, float64) {
	return (p.X - c.x) * c.ppu, float64(c.screenH) - (p.Y-c.y)*c.ppu
}

// rect converts a world rect to a screen rect anchored at its top-left
func (c *camera) rect(r entity.Rect) (x, y, w, h float64) {
	x, y = c.toScreen(entity.Vec2{X: r.X, Y: r.Y + r.H})
	return x, y, r.W * c.ppu, r.H * c.ppu
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// parseColor reads "#rrggbb" or "#rrggbbaa"
func parseColor(s string, fallback color.RGBA) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 && len(s) != 8 {
		return fallback
	}
	if len(s) == 6 {
		s += "ff"
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
}

// fade scales a color by alpha (pre-multiplied)
func fade(c color.RGBA, alpha float64) color.RGBA {
	alpha = clamp(alpha, 0, 1)
	return color.RGBA{
		uint8(float64(c.R) * alpha),
		uint8(float64(c.G) * alpha),
		uint8(float64(c.B) * alpha),
		uint8(float64(c.A) * alpha),
	}
}
