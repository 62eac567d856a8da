package replay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/rooks/internal/application/system"
)

func createTestRecording() ReplayData {
	return ReplayData{
		Version: Version,
		Seed:    42,
		Stage:   "test",
		Frames: []FrameInput{
			{F: 0, DT: 1.0 / 60, H: -1},
			{F: 1, DT: 1.0 / 60, H: 1, JP: true, J: true},
			{F: 2, DT: 1.0 / 30, J: true, DP: true, RN: true},
		},
	}
}

func TestFrameInput_RoundTrip(t *testing.T) {
	in := system.InputState{Horizontal: 0.5, JumpPressed: true, JumpHeld: true, DashPressed: true, RunHeld: true}

	fi := NewFrameInput(7, 0.02, in)

	assert.Equal(t, 7, fi.F)
	assert.Equal(t, 0.02, fi.DT)
	assert.Equal(t, in, fi.Input())
}

func TestReplayer_GetInput(t *testing.T) {
	replayer := NewReplayer(createTestRecording())

	// Frame 0
	input := replayer.GetInput()
	assert.Equal(t, -1.0, input.Horizontal)
	assert.False(t, input.JumpPressed)
	assert.InDelta(t, 1.0/60, replayer.FrameDelta(), 1e-12)
	assert.Equal(t, 1, replayer.CurrentFrame())

	// Frame 1
	input = replayer.GetInput()
	assert.Equal(t, 1.0, input.Horizontal)
	assert.True(t, input.JumpPressed)
	assert.True(t, input.JumpHeld)

	// Frame 2
	input = replayer.GetInput()
	assert.True(t, input.DashPressed)
	assert.True(t, input.RunHeld)
	assert.InDelta(t, 1.0/30, replayer.FrameDelta(), 1e-12)
	assert.True(t, replayer.Done())

	// Past the end
	input = replayer.GetInput()
	assert.Equal(t, system.InputState{}, input)
	assert.Zero(t, replayer.FrameDelta())
}

func TestReplayer_ImplementsInputSource(t *testing.T) {
	var src system.InputSource = NewReplayer(createTestRecording())

	assert.Equal(t, -1.0, src.GetInput().Horizontal)
}

func TestReplayer_Next(t *testing.T) {
	replayer := NewReplayer(createTestRecording())

	for i := 0; i < 3; i++ {
		fi, ok := replayer.Next()
		require.True(t, ok)
		assert.Equal(t, i, fi.F)
	}
	_, ok := replayer.Next()
	assert.False(t, ok)
}

func TestReplayer_Reset(t *testing.T) {
	replayer := NewReplayer(createTestRecording())
	replayer.GetInput()
	replayer.GetInput()

	replayer.Reset()

	assert.Equal(t, 0, replayer.CurrentFrame())
	assert.False(t, replayer.Done())
	assert.Zero(t, replayer.FrameDelta())
}

func TestReplayer_Metadata(t *testing.T) {
	replayer := NewReplayer(createTestRecording())

	assert.Equal(t, 3, replayer.TotalFrames())
	assert.Equal(t, int64(42), replayer.Seed())
	assert.Equal(t, "test", replayer.Stage())
}

func TestSaveLoadReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replay.json")
	data := createTestRecording()

	require.NoError(t, SaveReplay(path, data))

	loaded, err := LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, data, *loaded)
}

func TestSaveReplay_Empty(t *testing.T) {
	err := SaveReplay(filepath.Join(t.TempDir(), "empty.json"), ReplayData{})
	assert.Error(t, err)
}

func TestLoadReplay_Errors(t *testing.T) {
	_, err := LoadReplay(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{frames"), 0o644))
	_, err = LoadReplay(bad)
	assert.Error(t, err)
}

func TestCreateTestReplayData(t *testing.T) {
	data := CreateTestReplayData(10, 0.02)

	assert.Equal(t, Version, data.Version)
	require.Len(t, data.Frames, 10)
	assert.Equal(t, 9, data.Frames[9].F)
	assert.Equal(t, 0.02, data.Frames[9].DT)
}
