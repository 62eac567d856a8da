package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/rooks/internal/domain/entity"
	"github.com/younwookim/rooks/internal/infrastructure/config"
)

const fixedDT = 1.0 / 50.0

var testHitbox = config.HitboxConfig{Width: 0.8, Height: 0.9, FeetHeight: 0.1}

func createTestStage() *entity.Stage {
	return LoadStage(&config.StageConfig{
		ID:          "test",
		PlayerSpawn: config.PositionConfig{X: 2.5, Y: 1.5},
		Layers: config.LayersConfig{
			Collision: []string{
				"########",
				"#....S.#",
				"#....S.#",
				"#....S.#",
				"#....S.#",
				"########",
			},
		},
		TileMapping: map[string]config.TileMappingConfig{
			"#": {Type: "ground", Solid: true},
			"S": {Type: "secret", Solid: true},
		},
	})
}

type recordingListener struct {
	enters []Contact
	exits  []Contact
}

func (l *recordingListener) OnContactEnter(c Contact) { l.enters = append(l.enters, c) }
func (l *recordingListener) OnContactExit(c Contact)  { l.exits = append(l.exits, c) }

func createTestPhysics(t *testing.T) *PhysicsSystem {
	t.Helper()
	ps := NewPhysicsSystem(config.PhysicsSettings{Iterations: 10}, -9.81, createTestStage())
	require.NotNil(t, ps.Space())
	return ps
}

func TestPhysicsSystem_PlayerLandsOnFloor(t *testing.T) {
	ps := createTestPhysics(t)
	listener := &recordingListener{}
	ps.SetContactListener(listener)
	body := ps.AddPlayer(entity.Vec2{X: 2.5, Y: 3}, testHitbox, 1, 3)

	for i := 0; i < 100; i++ {
		ps.Step(fixedDT)
	}

	assert.InDelta(t, 1.45, body.Position().Y, 0.15, "resting on the floor")
	assert.InDelta(t, 0, body.Velocity().Y, 0.5)
	require.NotEmpty(t, listener.enters)
	assert.Equal(t, entity.LayerGround, listener.enters[0].Layer)
	assert.Greater(t, len(listener.enters), len(listener.exits), "feet still touching")
}

func TestPhysicsSystem_GravityScale(t *testing.T) {
	ps := createTestPhysics(t)
	body := ps.AddPlayer(entity.Vec2{X: 2.5, Y: 4}, testHitbox, 1, 0)

	for i := 0; i < 10; i++ {
		ps.Step(fixedDT)
	}
	assert.InDelta(t, 4.0, body.Position().Y, 1e-9, "zero gravity scale floats")

	body.SetGravityScale(3)
	ps.Step(fixedDT)
	assert.InDelta(t, -9.81*3*fixedDT, body.Velocity().Y, 1e-9)
	assert.Equal(t, 3.0, body.GravityScale())
}

func TestPhysicsSystem_BodyAdapter(t *testing.T) {
	ps := createTestPhysics(t)
	body := ps.AddPlayer(entity.Vec2{X: 2.5, Y: 3}, testHitbox, 1, 3)

	body.SetPosition(entity.Vec2{X: 3, Y: 2})
	body.SetVelocity(entity.Vec2{X: -16, Y: 2})

	assert.Equal(t, entity.Vec2{X: 3, Y: 2}, body.Position())
	assert.Equal(t, entity.Vec2{X: -16, Y: 2}, body.Velocity())
	assert.InDelta(t, 1.55, body.Feet().Position().Y, 1e-9)
}

func TestPhysicsSystem_Raycast(t *testing.T) {
	ps := createTestPhysics(t)

	tests := []struct {
		name   string
		origin entity.Vec2
		dir    entity.Vec2
		dist   float64
		layer  entity.Layer
		want   bool
	}{
		{"floor in reach", entity.Vec2{X: 2.5, Y: 1.5}, down, 1, entity.LayerGround, true},
		{"floor out of reach", entity.Vec2{X: 2.5, Y: 1.5}, down, 0.4, entity.LayerGround, false},
		{"left wall", entity.Vec2{X: 2.5, Y: 2}, left, 2, entity.LayerGround, true},
		{"left wall out of reach", entity.Vec2{X: 2.5, Y: 2}, left, 1, entity.LayerGround, false},
		{"secret wall", entity.Vec2{X: 4.5, Y: 2}, right, 1, entity.LayerGround, true},
		{"other layer", entity.Vec2{X: 2.5, Y: 1.5}, down, 1, entity.LayerTrigger, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ps.Raycast(tt.origin, tt.dir, tt.dist, tt.layer))
		})
	}
}

func TestPhysicsSystem_OverlapCircle(t *testing.T) {
	ps := createTestPhysics(t)

	normal, ok := ps.OverlapCircle(entity.Vec2{X: 2.5, Y: 1.1}, 0.15, entity.LayerGround)
	require.True(t, ok)
	assert.InDelta(t, 0, normal.X, 1e-6)
	assert.InDelta(t, 1, normal.Y, 1e-6)

	_, ok = ps.OverlapCircle(entity.Vec2{X: 2.5, Y: 1.5}, 0.15, entity.LayerGround)
	assert.False(t, ok)

	normal, ok = ps.OverlapCircle(entity.Vec2{X: 1.1, Y: 2.5}, 0.15, entity.LayerGround)
	require.True(t, ok)
	assert.InDelta(t, 1, normal.X, 1e-6, "wall faces right")
}

func TestPhysicsSystem_IgnoresPlayerInQueries(t *testing.T) {
	ps := createTestPhysics(t)
	ps.AddPlayer(entity.Vec2{X: 3.5, Y: 2.5}, testHitbox, 1, 0)

	assert.False(t, ps.Raycast(entity.Vec2{X: 2.5, Y: 2.5}, right, 1.5, entity.LayerGround))
}

func TestPhysicsSystem_ClearSecretWalls(t *testing.T) {
	ps := createTestPhysics(t)

	cleared := ps.ClearSecretWalls()

	assert.Equal(t, 4, cleared)
	assert.False(t, ps.Raycast(entity.Vec2{X: 4.5, Y: 2}, right, 1, entity.LayerGround))
	assert.Equal(t, entity.TileEmpty, ps.stage.GetTile(5, 2).Type)
	assert.Equal(t, 0, ps.ClearSecretWalls())
}

func TestPhysicsSystem_DrivesController(t *testing.T) {
	ps := createTestPhysics(t)
	body := ps.AddPlayer(entity.Vec2{X: 2.5, Y: 2}, testHitbox, 1, 3)
	ctrl, err := NewController(createTestConfig(), ControllerDeps{
		Body:      body,
		Feet:      body.Feet(),
		Sensor:    ps,
		Spawn:     entity.Vec2{X: 2.5, Y: 2},
		HalfWidth: testHitbox.Width / 2,
	})
	require.NoError(t, err)
	ps.SetContactListener(ctrl)

	tick := func(in InputState) {
		ctrl.Update(in, fixedDT)
		ctrl.FixedUpdate(fixedDT)
		ps.Step(fixedDT)
	}

	for i := 0; i < 60; i++ {
		tick(InputState{})
	}
	require.True(t, ctrl.State().Grounded)

	tick(InputState{JumpPressed: true, JumpHeld: true})
	peak := body.Position().Y
	for i := 0; i < 10; i++ {
		tick(InputState{JumpHeld: true})
		if body.Position().Y > peak {
			peak = body.Position().Y
		}
	}
	assert.False(t, ctrl.State().Grounded)
	assert.Greater(t, peak, 2.0, "left the floor")

	for i := 0; i < 120; i++ {
		tick(InputState{})
	}
	assert.True(t, ctrl.State().Grounded, "landed again")
	assert.Equal(t, entity.Grounded, ctrl.State().Jump)

	for i := 0; i < 50; i++ {
		tick(InputState{Horizontal: 1})
	}
	assert.Greater(t, body.Position().X, 3.0, "walked right")
	assert.Less(t, body.Position().X, 4.75, "stopped by the secret wall")
}
