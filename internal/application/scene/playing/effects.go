package playing

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/younwookim/rooks/internal/domain/entity"
	"github.com/younwookim/rooks/internal/infrastructure/config"
)

const (
	defaultBurstParticles = 8
	defaultTrailFade      = 0.25
	defaultTrailInterval  = 0.02
	sparkSize             = 0.12
)

// spark is one particle of a double jump burst
type spark struct {
	pos   entity.Vec2
	vel   entity.Vec2
	fade  *gween.Tween
	alpha float64
}

// ghost is one sampled position of the dash trail
type ghost struct {
	pos   entity.Vec2
	fade  *gween.Tween
	alpha float64
}

// EffectsRenderer owns the double jump burst and the dash trail.
// Alpha of every spark and ghost is driven by a tween; finished ones are dropped.
type EffectsRenderer struct {
	burst config.EffectConfig
	trail config.EffectConfig
	rng   *rand.Rand

	sparks   []*spark
	ghosts   []*ghost
	emitting bool
	sampleIn float64

	burstColor color.RGBA
	trailColor color.RGBA
}

// NewEffectsRenderer creates a renderer; the trail starts off
func NewEffectsRenderer(burst, trail config.EffectConfig, seed int64) *EffectsRenderer {
	return &EffectsRenderer{
		burst:      burst,
		trail:      trail,
		rng:        rand.New(rand.NewSource(seed)),
		burstColor: parseColor(burst.Color, color.RGBA{255, 255, 255, 255}),
		trailColor: parseColor(trail.Color, color.RGBA{255, 96, 144, 255}),
	}
}

// Burst spawns a ring of sparks at a point. Each spark lives at most lifetime.
func (e *EffectsRenderer) Burst(at entity.Vec2, lifetime float64) {
	if lifetime <= 0 {
		lifetime = e.burst.Lifetime()
	}
	if lifetime <= 0 {
		return
	}

	n := e.burst.Particles
	if n <= 0 {
		n = defaultBurstParticles
	}
	for i := 0; i < n; i++ {
		angle := 2*math.Pi*float64(i)/float64(n) + (e.rng.Float64()-0.5)*0.4
		speed := 2 + e.rng.Float64()*2
		life := math.Min(e.burst.Duration+e.rng.Float64()*e.burst.MaxParticleLife, lifetime)
		if life <= 0 {
			life = lifetime
		}
		e.sparks = append(e.sparks, &spark{
			pos:   at,
			vel:   entity.Vec2{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed},
			fade:  gween.New(1, 0, float32(life), ease.Linear),
			alpha: 1,
		})
	}
}

// StartTrail drops the previous dash's ghosts and begins sampling on the
// next update
func (e *EffectsRenderer) StartTrail() {
	e.ghosts = e.ghosts[:0]
	e.emitting = true
	e.sampleIn = 0
}

// StopTrail stops sampling; existing ghosts fade out on their own
func (e *EffectsRenderer) StopTrail() {
	e.emitting = false
}

// Emitting reports whether the trail is sampling
func (e *EffectsRenderer) Emitting() bool {
	return e.emitting
}

// Update advances every tween by dt and samples the trail at anchor
func (e *EffectsRenderer) Update(dt float64, anchor entity.Vec2) {
	live := e.sparks[:0]
	for _, s := range e.sparks {
		a, done := s.fade.Update(float32(dt))
		if done {
			continue
		}
		s.alpha = float64(a)
		s.pos = s.pos.Add(s.vel.Scale(dt))
		live = append(live, s)
	}
	e.sparks = live

	ghosts := e.ghosts[:0]
	for _, g := range e.ghosts {
		a, done := g.fade.Update(float32(dt))
		if done {
			continue
		}
		g.alpha = float64(a)
		ghosts = append(ghosts, g)
	}
	e.ghosts = ghosts

	if !e.emitting {
		return
	}
	e.sampleIn -= dt
	if e.sampleIn > 0 {
		return
	}
	e.sampleIn = e.trailInterval()
	e.ghosts = append(e.ghosts, &ghost{
		pos:   anchor,
		fade:  gween.New(1, 0, float32(e.trailFade()), ease.OutQuad),
		alpha: 1,
	})
}

// SparkCount returns the number of live burst particles
func (e *EffectsRenderer) SparkCount() int {
	return len(e.sparks)
}

// GhostCount returns the number of visible trail samples
func (e *EffectsRenderer) GhostCount() int {
	return len(e.ghosts)
}

// Draw renders ghosts behind sparks
func (e *EffectsRenderer) Draw(screen *ebiten.Image, cam *camera, playerW, playerH float64) {
	for _, g := range e.ghosts {
		x, y, w, h := cam.rect(entity.RectAround(g.pos, playerW, playerH))
		ebitenutil.DrawRect(screen, x, y, w, h, fade(e.trailColor, g.alpha*0.5))
	}
	for _, s := range e.sparks {
		x, y, w, h := cam.rect(entity.RectAround(s.pos, sparkSize, sparkSize))
		ebitenutil.DrawRect(screen, x, y, w, h, fade(e.burstColor, s.alpha))
	}
}

func (e *EffectsRenderer) trailFade() float64 {
	if e.trail.FadeOut > 0 {
		return e.trail.FadeOut
	}
	return defaultTrailFade
}

func (e *EffectsRenderer) trailInterval() float64 {
	if e.trail.SampleInterval > 0 {
		return e.trail.SampleInterval
	}
	return defaultTrailInterval
}
