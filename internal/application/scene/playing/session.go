package playing

import (
	"fmt"

	"github.com/younwookim/rooks/internal/application/system"
	"github.com/younwookim/rooks/internal/domain/entity"
	"github.com/younwookim/rooks/internal/infrastructure/config"
	"github.com/younwookim/rooks/internal/infrastructure/save"
)

// Session is the simulation of one stage without rendering or devices.
// The playing scene and the headless replay runner both drive one.
type Session struct {
	cfg      *config.GameConfig
	stageCfg *config.StageConfig

	stage    *entity.Stage
	physics  *system.PhysicsSystem
	triggers *system.TriggerSystem
	body     *system.PhysicsBody
	ctrl     *system.Controller
	stepper  *system.FixedStepper
	effects  *EffectsRenderer

	// prevPos is the body position before the last fixed tick
	prevPos entity.Vec2
	frame   int
}

// NewSession builds the physics world, triggers and controller for a stage.
// seed drives the particle spread only.
func NewSession(cfg *config.GameConfig, stageCfg *config.StageConfig, seed int64) (*Session, error) {
	if cfg == nil || cfg.Settings == nil || cfg.Controller == nil || cfg.Entities == nil {
		return nil, fmt.Errorf("incomplete game config")
	}
	if stageCfg == nil {
		return nil, fmt.Errorf("stage config is required")
	}

	ctrlCfg := cfg.Controller
	playerCfg := cfg.Entities.Player
	stage := system.LoadStage(stageCfg)

	physics := system.NewPhysicsSystem(cfg.Settings.Physics, ctrlCfg.Gravity.WorldY, stage)
	body := physics.AddPlayer(stage.Spawn, playerCfg.Hitbox, playerCfg.Mass, ctrlCfg.Gravity.BaseScale)

	burst := cfg.Entities.Effects[ctrlCfg.Effects.DoubleJump]
	trail := cfg.Entities.Effects[ctrlCfg.Effects.DashTrail]
	effects := NewEffectsRenderer(burst, trail, seed)

	ctrl, err := system.NewController(ctrlCfg, system.ControllerDeps{
		Body:          body,
		Feet:          body.Feet(),
		Sensor:        physics,
		Effects:       effects,
		Spawn:         stage.Spawn,
		HalfWidth:     playerCfg.Hitbox.Width / 2,
		BurstLifetime: burst.Lifetime(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create controller: %w", err)
	}
	physics.SetContactListener(ctrl)

	triggers := system.NewTriggerSystem(stage, cfg.Entities, ctrlCfg.Respawn.CheckpointTag)
	triggers.Bind(ctrl, ctrl.Unlocks(), physics, playerCfg.Hitbox.Width, playerCfg.Hitbox.Height)

	ts := cfg.Settings.Timestep
	return &Session{
		cfg:      cfg,
		stageCfg: stageCfg,
		stage:    stage,
		physics:  physics,
		triggers: triggers,
		body:     body,
		ctrl:     ctrl,
		stepper:  system.NewFixedStepper(ts.FixedDelta(), ts.MaxSubsteps),
		effects:  effects,
		prevPos:  body.Position(),
	}, nil
}

// Tick runs one rendered frame: the variable tick, then every fixed tick
// due, then the effects. It returns the events raised during the frame.
func (s *Session) Tick(in system.InputState, dt float64) []system.Event {
	if dt < 0 {
		dt = 0
	}

	s.ctrl.Update(in, dt)
	for n := s.stepper.Advance(dt); n > 0; n-- {
		step := s.stepper.Step()
		s.prevPos = s.body.Position()
		s.ctrl.FixedUpdate(step)
		s.physics.Step(step)
		s.triggers.Update(s.body.Position())
	}
	s.effects.Update(dt, s.body.Position())
	s.frame++

	events := append(s.ctrl.Events(), s.triggers.Events()...)
	for _, ev := range events {
		if _, ok := ev.(system.RespawnEvent); ok {
			s.prevPos = s.body.Position()
		}
	}
	return events
}

// RenderPosition blends the last two fixed-tick positions by how far the
// clock is into the next tick. Respawns snap instead of sliding.
func (s *Session) RenderPosition() entity.Vec2 {
	cur := s.body.Position()
	alpha := s.stepper.Alpha()
	return s.prevPos.Add(cur.Sub(s.prevPos).Scale(alpha))
}

// Restore applies saved unlocks and sends the player to the saved checkpoint
func (s *Session) Restore(p *save.Progress) {
	if p == nil || p.StageID != s.StageID() {
		return
	}

	p.ApplyUnlocks(s.ctrl.Unlocks())
	s.triggers.ConsumeCollected(s.ctrl.Unlocks())
	if pos, ok := p.Checkpoint(); ok {
		s.ctrl.RestoreCheckpoint(pos)
		s.ctrl.Respawn()
	}
	s.stepper.Reset()
	s.prevPos = s.body.Position()
	_ = s.ctrl.Events()
}

// Progress snapshots what should survive a restart
func (s *Session) Progress() *save.Progress {
	return save.Capture(s.StageID(), s.ctrl.State(), s.ctrl.Unlocks())
}

// StageID returns the stage identifier used for saves and replays
func (s *Session) StageID() string {
	return s.stageCfg.ID
}

func (s *Session) Controller() *system.Controller {
	return s.ctrl
}

func (s *Session) Body() *system.PhysicsBody {
	return s.body
}

func (s *Session) Stage() *entity.Stage {
	return s.stage
}

func (s *Session) Effects() *EffectsRenderer {
	return s.effects
}

func (s *Session) Triggers() *system.TriggerSystem {
	return s.triggers
}

// Frame returns the number of frames ticked so far
func (s *Session) Frame() int {
	return s.frame
}
