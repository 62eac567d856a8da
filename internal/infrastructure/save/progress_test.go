package save

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/rooks/internal/domain/entity"
)

type fakeItems struct {
	data map[string][]byte
	err  error
}

func newFakeItems() *fakeItems {
	return &fakeItems{data: make(map[string][]byte)}
}

func (f *fakeItems) LoadItem(key string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.data[key], nil
}

func (f *fakeItems) SaveItem(key string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.data[key] = data
	return nil
}

func createTestProgress() *Progress {
	state := *entity.NewPlayerState(entity.Vec2{X: 2.5, Y: 1.5})
	state.SetCheckpoint(entity.Vec2{X: 24, Y: 1.5})

	unlocks := entity.NewUnlockState()
	unlocks.Grant(entity.AbilityDash)
	unlocks.GrantKey()

	return Capture("rooks", state, unlocks)
}

func TestCapture(t *testing.T) {
	p := createTestProgress()

	assert.Equal(t, "rooks", p.StageID)
	pos, ok := p.Checkpoint()
	assert.True(t, ok)
	assert.Equal(t, entity.Vec2{X: 24, Y: 1.5}, pos)
	assert.Equal(t, []string{"dash"}, p.Abilities)
	assert.True(t, p.SecretKey)
}

func TestCapture_NoCheckpoint(t *testing.T) {
	p := Capture("rooks", *entity.NewPlayerState(entity.Vec2{}), nil)

	_, ok := p.Checkpoint()
	assert.False(t, ok)
	assert.Empty(t, p.Abilities)
}

func TestProgress_ApplyUnlocks(t *testing.T) {
	u := entity.NewUnlockState()
	u.Grant(entity.AbilityDoubleJump)

	createTestProgress().ApplyUnlocks(u)

	assert.True(t, u.Enabled(entity.AbilityDoubleJump), "existing unlocks kept")
	assert.True(t, u.Enabled(entity.AbilityDash))
	assert.True(t, u.HasSecretKey())
}

func TestStore_SaveLoad(t *testing.T) {
	items := newFakeItems()
	s := &Store{items: items}

	require.NoError(t, s.Save(createTestProgress()))
	assert.Contains(t, items.data, "progress_rooks")

	got, err := s.Load("rooks")
	require.NoError(t, err)
	assert.Equal(t, createTestProgress(), got)

	other, err := s.Load("other")
	require.NoError(t, err)
	assert.Nil(t, other, "nothing saved for this stage")
}

func TestStore_Clear(t *testing.T) {
	s := &Store{items: newFakeItems()}
	require.NoError(t, s.Save(createTestProgress()))

	require.NoError(t, s.Clear("rooks"))

	got, err := s.Load("rooks")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_Errors(t *testing.T) {
	boom := errors.New("disk full")
	s := &Store{items: &fakeItems{data: map[string][]byte{}, err: boom}}

	_, err := s.Load("rooks")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, s.Save(createTestProgress()), boom)
	assert.ErrorIs(t, s.Clear("rooks"), boom)

	corrupt := &Store{items: &fakeItems{data: map[string][]byte{"progress_rooks": []byte("{")}}}
	_, err = corrupt.Load("rooks")
	assert.Error(t, err)
}

func TestStore_Nil(t *testing.T) {
	var s *Store

	p, err := s.Load("rooks")
	assert.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, s.Save(createTestProgress()))
	assert.NoError(t, s.Clear("rooks"))
}
