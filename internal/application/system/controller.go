package system

import (
	"errors"
	"math"

	"github.com/younwookim/rooks/internal/domain/entity"
	"github.com/younwookim/rooks/internal/infrastructure/config"
)

var (
	ErrNilConfig = errors.New("controller: config is required")
	ErrNilBody   = errors.New("controller: rigid body is required")
	ErrNilFeet   = errors.New("controller: ground check transform is required")
	ErrNilSensor = errors.New("controller: sensor is required")
)

// Contact is a collision or trigger overlap reported by the host
type Contact struct {
	Layer    entity.Layer
	Tag      entity.Tag
	Position entity.Vec2
}

// ContactListener receives contact callbacks between ticks
type ContactListener interface {
	OnContactEnter(c Contact)
	OnContactExit(c Contact)
}

// ControllerDeps are the collaborators a controller drives or queries
type ControllerDeps struct {
	Body    entity.RigidBody2D // required
	Feet    entity.Transform   // required
	Sensor  Sensor             // required
	Unlocks *entity.UnlockState
	Effects Effects

	Spawn         entity.Vec2
	HalfWidth     float64 // wall probes start inside the body
	BurstLifetime float64
}

// Controller is the player movement state machine.
// Update runs once per rendered frame, FixedUpdate on the fixed clock.
type Controller struct {
	cfg     *config.ControllerConfig
	body    entity.RigidBody2D
	feet    entity.Transform
	sensor  Sensor
	unlocks *entity.UnlockState
	effects Effects

	hazards       entity.TagSet
	checkpointTag entity.Tag
	groundLayer   entity.Layer
	halfWidth     float64
	burstLifetime float64

	state     *entity.PlayerState
	moveInput float64
	runHeld   bool
	wallLeft  bool
	wallRight bool
	dashDir   float64

	// jumpQueued holds a jump pressed during a dash until the dash ends
	jumpQueued bool
	events     []Event
}

// NewController validates deps and places the body at the spawn point
func NewController(cfg *config.ControllerConfig, deps ControllerDeps) (*Controller, error) {
	switch {
	case cfg == nil:
		return nil, ErrNilConfig
	case deps.Body == nil:
		return nil, ErrNilBody
	case deps.Feet == nil:
		return nil, ErrNilFeet
	case deps.Sensor == nil:
		return nil, ErrNilSensor
	}

	unlocks := deps.Unlocks
	if unlocks == nil {
		unlocks = UnlocksFromConfig(cfg.Unlocks)
	}
	effects := deps.Effects
	if effects == nil {
		effects = nopEffects{}
	}

	c := &Controller{
		cfg:           cfg,
		body:          deps.Body,
		feet:          deps.Feet,
		sensor:        deps.Sensor,
		unlocks:       unlocks,
		effects:       effects,
		hazards:       entity.NewTagSet(cfg.Respawn.HazardTags...),
		checkpointTag: entity.Tag(cfg.Respawn.CheckpointTag),
		groundLayer:   entity.Layer(cfg.Sensing.GroundLayer),
		halfWidth:     deps.HalfWidth,
		burstLifetime: deps.BurstLifetime,
		state:         entity.NewPlayerState(deps.Spawn),
	}

	c.body.SetPosition(deps.Spawn)
	c.body.SetVelocity(entity.Vec2{})
	c.body.SetGravityScale(cfg.Gravity.BaseScale)
	c.effects.StopTrail()
	return c, nil
}

// UnlocksFromConfig builds the unlock state the player spawns with
func UnlocksFromConfig(cfg config.UnlockConfig) *entity.UnlockState {
	u := entity.NewUnlockState()
	if cfg.DoubleJump {
		u.Grant(entity.AbilityDoubleJump)
	}
	if cfg.Dash {
		u.Grant(entity.AbilityDash)
	}
	if cfg.SecretKey {
		u.GrantKey()
	}
	return u
}

// Update is the variable-rate tick: sensing, jump, dash entry, gravity shaping
func (c *Controller) Update(in InputState, dt float64) {
	in = in.Sanitize()
	c.moveInput = in.Horizontal
	c.runHeld = in.RunHeld
	if in.Horizontal != 0 {
		c.state.Facing = math.Copysign(1, in.Horizontal)
	}

	c.sense()

	if in.JumpPressed || c.jumpQueued {
		c.jumpQueued = c.state.Dashing
		if !c.state.Dashing {
			c.jump()
		}
	}

	if c.dashEnabled() {
		c.state.DashCooldown -= dt
		if in.DashPressed && c.state.DashCooldown <= 0 && !c.state.Dashing {
			c.startDash()
		}
	}

	if !c.state.Dashing {
		c.shapeGravity(in.JumpHeld, dt)
	}
}

// FixedUpdate is the fixed-rate tick: dash timer and horizontal integration
func (c *Controller) FixedUpdate(dt float64) {
	if c.state.Dashing {
		c.state.DashTimer -= dt
		if c.state.DashTimer <= 0 {
			c.endDash()
		}
		return
	}

	input := c.moveInput
	if c.state.OnWall && c.pushingIntoWall(input) {
		input = 0
	}

	speed := c.cfg.Movement.WalkSpeed
	if c.cfg.Features.Run && c.runHeld {
		speed = c.cfg.Movement.RunSpeed
	}
	target := input * speed

	rate := c.cfg.Movement.Deceleration
	if math.Abs(target) > c.cfg.Movement.Deadband {
		rate = c.cfg.Movement.Acceleration
	}

	vel := c.body.Velocity()
	vel.X = lerp(vel.X, target, clamp01(rate*dt))
	c.body.SetVelocity(vel)
}

// OnContactEnter handles ground contacts, checkpoints and hazards
func (c *Controller) OnContactEnter(ct Contact) {
	if ct.Layer == c.groundLayer && c.cfg.Sensing.GroundStrategy == config.GroundContact {
		c.state.GroundContacts++
		c.setGrounded(true)
	}

	switch {
	case ct.Tag == c.checkpointTag:
		c.touchCheckpoint(ct.Position)
	case c.hazards.Has(ct.Tag):
		c.respawn(ct.Tag)
	}
}

// OnContactExit ends ground contact once the last ground collider separates
func (c *Controller) OnContactExit(ct Contact) {
	if ct.Layer != c.groundLayer || c.cfg.Sensing.GroundStrategy != config.GroundContact {
		return
	}
	if c.state.GroundContacts > 0 {
		c.state.GroundContacts--
	}
	if c.state.GroundContacts == 0 {
		c.setGrounded(false)
	}
}

// Respawn sends the body back to the respawn position with zero velocity
func (c *Controller) Respawn() {
	c.respawn("")
}

func (c *Controller) respawn(tag entity.Tag) {
	if c.cfg.Respawn.ResetMotionState && c.state.Dashing {
		c.body.SetGravityScale(c.state.StoredGravityScale)
		c.state.Dashing = false
		c.state.DashTimer = 0
		c.effects.StopTrail()
	}

	c.jumpQueued = false
	c.body.SetPosition(c.state.Respawn)
	c.body.SetVelocity(entity.Vec2{})
	c.emit(RespawnEvent{Position: c.state.Respawn, Tag: tag})
}

func (c *Controller) touchCheckpoint(p entity.Vec2) {
	if c.state.HasCheckpoint && c.state.Checkpoint == p {
		return
	}
	c.state.SetCheckpoint(p)
	c.emit(CheckpointEvent{Position: p})
}

func (c *Controller) sense() {
	if c.cfg.Sensing.GroundStrategy != config.GroundContact {
		c.setGrounded(probeGround(c.sensor, &c.cfg.Sensing, c.feet.Position()))
	}
	c.wallLeft, c.wallRight = probeWalls(c.sensor, &c.cfg.Sensing, c.body.Position(), c.halfWidth)
	c.state.OnWall = (c.wallLeft || c.wallRight) && !c.state.Grounded
}

func (c *Controller) setGrounded(grounded bool) {
	if c.state.Grounded == grounded {
		return
	}
	c.state.Grounded = grounded

	if grounded {
		c.state.Jump = entity.Grounded
		c.state.CanDoubleJump = true
	} else if c.state.Jump == entity.Grounded {
		c.state.Jump = entity.AirborneSpent
		if c.state.CanDoubleJump {
			c.state.Jump = entity.AirborneCanDoubleJump
		}
	}
	c.emit(GroundEvent{Grounded: grounded})
}

func (c *Controller) jump() {
	vel := c.body.Velocity()

	if c.state.Grounded {
		vel.Y = c.cfg.Jump.Force
		c.body.SetVelocity(vel)
		c.state.CanDoubleJump = true
		c.state.Jump = entity.AirborneCanDoubleJump
		c.emit(JumpEvent{Velocity: vel.Y})
		return
	}

	if c.doubleJumpEnabled() && c.state.CanDoubleJump {
		vel.Y = c.cfg.Jump.Force * c.cfg.Jump.DoubleJumpMultiplier
		c.body.SetVelocity(vel)
		c.state.CanDoubleJump = false
		c.state.Jump = entity.AirborneSpent
		c.effects.Burst(c.feet.Position(), c.burstLifetime)
		c.emit(JumpEvent{Double: true, Velocity: vel.Y})
	}
}

func (c *Controller) startDash() {
	vel := c.body.Velocity()
	dir := c.state.Facing
	if c.moveInput != 0 {
		dir = math.Copysign(1, c.moveInput)
	}

	c.state.StoredVerticalSpeed = vel.Y
	c.state.StoredGravityScale = c.body.GravityScale()
	c.body.SetVelocity(entity.Vec2{X: c.cfg.Dash.Strength * dir, Y: vel.Y})
	c.body.SetGravityScale(0)

	c.dashDir = dir
	c.state.Dashing = true
	c.state.DashTimer = c.cfg.Dash.Duration
	c.state.DashCooldown = c.cfg.Dash.Cooldown
	c.effects.StartTrail()
	c.emit(DashEvent{Start: true, Direction: dir})
}

func (c *Controller) endDash() {
	c.body.SetGravityScale(c.state.StoredGravityScale)
	vel := c.body.Velocity()
	vel.Y = c.state.StoredVerticalSpeed
	c.body.SetVelocity(vel)

	c.state.Dashing = false
	c.state.DashTimer = 0
	c.effects.StopTrail()
	c.emit(DashEvent{Direction: c.dashDir})
}

// shapeGravity adds extra gravity on top of the physics world's:
// heavier when falling, lighter while a rising jump is held.
func (c *Controller) shapeGravity(jumpHeld bool, dt float64) {
	g := c.cfg.Gravity
	vel := c.body.Velocity()

	switch {
	case vel.Y < 0:
		vel.Y += g.WorldY * (g.FallMultiplier - 1) * dt
	case vel.Y > 0 && jumpHeld:
		vel.Y += g.WorldY * (g.FallMultiplier * g.HoldGravityFactor) * dt
	case vel.Y > 0:
		vel.Y += g.WorldY * (g.LowJumpMultiplier - 1) * dt
	default:
		return
	}
	c.body.SetVelocity(vel)
}

func (c *Controller) pushingIntoWall(input float64) bool {
	return (c.wallLeft && input < 0) || (c.wallRight && input > 0)
}

func (c *Controller) doubleJumpEnabled() bool {
	return c.cfg.Features.DoubleJump && c.unlocks.Enabled(entity.AbilityDoubleJump)
}

func (c *Controller) dashEnabled() bool {
	return c.cfg.Features.Dash && c.unlocks.Enabled(entity.AbilityDash)
}

func (c *Controller) emit(e Event) {
	c.events = append(c.events, e)
}

// Events returns and clears the events produced since the last call
func (c *Controller) Events() []Event {
	events := c.events
	c.events = nil
	return events
}

// State returns a copy of the controller state
func (c *Controller) State() entity.PlayerState {
	return *c.state
}

// Body returns the driven rigid body
func (c *Controller) Body() entity.RigidBody2D {
	return c.body
}

// Unlocks returns the player's unlock state
func (c *Controller) Unlocks() *entity.UnlockState {
	return c.unlocks
}

// Config returns the controller config
func (c *Controller) Config() *config.ControllerConfig {
	return c.cfg
}

// RestoreCheckpoint sets the respawn target without emitting an event.
// Used when loading saved progress.
func (c *Controller) RestoreCheckpoint(p entity.Vec2) {
	c.state.SetCheckpoint(p)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
