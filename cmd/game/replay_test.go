package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/rooks/internal/application/replay"
	"github.com/younwookim/rooks/internal/application/scene/playing"
	"github.com/younwookim/rooks/internal/application/system"
	"github.com/younwookim/rooks/internal/domain/entity"
	"github.com/younwookim/rooks/internal/infrastructure/config"
)

const frameDT = 1.0 / 60.0

func loadEmbedded(t *testing.T) (*config.GameConfig, *config.StageConfig) {
	t.Helper()
	loader, err := newLoader("")
	require.NoError(t, err)
	cfg, err := loader.LoadAll()
	require.NoError(t, err)
	stageCfg, err := loader.LoadStage("rooks")
	require.NoError(t, err)
	return cfg, stageCfg
}

func createReplay(frames []replay.FrameInput) *replay.ReplayData {
	data := replay.CreateTestReplayData(len(frames), frameDT)
	data.Stage = "rooks"
	for i, f := range frames {
		f.F = i
		f.DT = frameDT
		data.Frames[i] = f
	}
	return &data
}

func idleFrames(n int) []replay.FrameInput {
	return make([]replay.FrameInput, n)
}

func TestNewLoader_Embedded(t *testing.T) {
	cfg, stageCfg := loadEmbedded(t)

	assert.Equal(t, "rooks", stageCfg.ID)
	assert.NotNil(t, cfg.Controller)
}

func TestNewLoader_Directory(t *testing.T) {
	loader, err := newLoader("configs")
	require.NoError(t, err)

	_, err = loader.LoadAll()
	assert.NoError(t, err)
	assert.Equal(t, "configs", loader.BasePath())
}

func TestReplayIdlePlayer_Settles(t *testing.T) {
	cfg, stageCfg := loadEmbedded(t)

	result, err := RunReplay(cfg, stageCfg, createReplay(idleFrames(120)))
	require.NoError(t, err)

	assert.Equal(t, 120, result.Frames)
	assert.True(t, result.State.Grounded)
	assert.InDelta(t, 2.5, result.Position.X, 1e-6, "no horizontal drift")
	assert.InDelta(t, 0, result.Velocity.Y, 0.5)
	assert.Equal(t, 1, result.Events["checkpoint"])
	assert.Zero(t, result.Events["jump"])
}

func TestReplayDeterminism(t *testing.T) {
	cfg, stageCfg := loadEmbedded(t)
	frames := idleFrames(20)
	for i := 0; i < 40; i++ {
		frames = append(frames, replay.FrameInput{H: 1, J: i < 12, JP: i == 0, RN: i > 20})
	}
	frames = append(frames, idleFrames(30)...)
	data := createReplay(frames)

	first, err := RunReplay(cfg, stageCfg, data)
	require.NoError(t, err)
	second, err := RunReplay(cfg, stageCfg, data)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first.String(), second.String())
}

func TestReplayWithMovement(t *testing.T) {
	cfg, stageCfg := loadEmbedded(t)
	frames := idleFrames(20)
	for i := 0; i < 30; i++ {
		frames = append(frames, replay.FrameInput{H: 1})
	}

	result, err := RunReplay(cfg, stageCfg, createReplay(frames))
	require.NoError(t, err)

	assert.Greater(t, result.Position.X, 5.0, "walked right")
	assert.Greater(t, result.Velocity.X, 0.0)
	assert.Equal(t, "run", mustAnimation(t, cfg, stageCfg, frames).Name)
}

func mustAnimation(t *testing.T, cfg *config.GameConfig, stageCfg *config.StageConfig, frames []replay.FrameInput) system.Animation {
	t.Helper()
	session, err := playing.NewSession(cfg, stageCfg, 1)
	require.NoError(t, err)
	for _, f := range frames {
		session.Tick(f.Input(), frameDT)
	}
	return session.Controller().Animation()
}

func TestReplayHazardRespawn(t *testing.T) {
	cfg, stageCfg := loadEmbedded(t)
	frames := idleFrames(20)
	for i := 0; i < 90; i++ {
		frames = append(frames, replay.FrameInput{H: 1})
	}

	result, err := RunReplay(cfg, stageCfg, createReplay(frames))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.Events["respawn"], 1)
	assert.Equal(t, entity.Vec2{X: 3, Y: 1.5}, result.State.Respawn)
}

func TestRecorderAndReplayer(t *testing.T) {
	cfg, stageCfg := loadEmbedded(t)
	inputs := []system.InputState{{}, {}, {}, {Horizontal: -1}, {Horizontal: -1, JumpPressed: true, JumpHeld: true}}
	for i := 0; i < 20; i++ {
		inputs = append(inputs, system.InputState{JumpHeld: i < 5})
	}

	live, err := playing.NewSession(cfg, stageCfg, 9)
	require.NoError(t, err)
	rec := playing.NewRecorder(9, stageCfg.ID)
	for _, in := range inputs {
		rec.RecordFrame(frameDT, in)
		live.Tick(in, frameDT)
	}
	data := rec.GetData()

	result, err := RunReplay(cfg, stageCfg, &data)
	require.NoError(t, err)

	assert.Equal(t, live.Body().Position(), result.Position)
	assert.Equal(t, live.Controller().State(), result.State)
	assert.Equal(t, 1, result.Events["jump"])
}

func TestRunReplay_Errors(t *testing.T) {
	cfg, stageCfg := loadEmbedded(t)

	_, err := RunReplay(cfg, stageCfg, nil)
	assert.Error(t, err)

	other := createReplay(idleFrames(1))
	other.Stage = "elsewhere"
	_, err = RunReplay(cfg, stageCfg, other)
	assert.Error(t, err)
}

func TestReplayResult_String(t *testing.T) {
	r := &ReplayResult{
		Stage:    "rooks",
		Frames:   3,
		Position: entity.Vec2{X: 1, Y: 2},
		State:    entity.PlayerState{Jump: entity.Grounded, Grounded: true},
		Unlocks:  []entity.Ability{entity.AbilityDash},
		Events:   map[string]int{"landed": 1, "checkpoint": 2},
	}

	out := r.String()

	assert.Contains(t, out, "frames:    3")
	assert.Contains(t, out, "position:  (1.0000, 2.0000)")
	assert.Contains(t, out, "jump:      grounded")
	assert.Contains(t, out, "unlocks:   [dash]")
	assert.Regexp(t, `(?s)checkpoint:\s+2.*landed:\s+1`, out, "events sorted by name")
}

func TestEventName(t *testing.T) {
	assert.Equal(t, "double_jump", eventName(system.JumpEvent{Double: true}))
	assert.Equal(t, "dash_start", eventName(system.DashEvent{Start: true}))
	assert.Equal(t, "left_ground", eventName(system.GroundEvent{}))
	assert.Equal(t, "secret_wall", eventName(system.SecretWallEvent{}))
}
