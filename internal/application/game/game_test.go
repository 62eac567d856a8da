package game

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/rooks/internal/application/scene"
)

// mockScene records lifecycle calls into a log shared between scenes
type mockScene struct {
	name      string
	log       *[]string
	next      scene.Scene
	updateErr error
	deltas    []float64
	draws     int
}

func newMockScene(name string, log *[]string) *mockScene {
	return &mockScene{name: name, log: log}
}

func (m *mockScene) record(call string) {
	if m.log != nil {
		*m.log = append(*m.log, m.name+"."+call)
	}
}

func (m *mockScene) Update(dt float64) (scene.Scene, error) {
	m.record("update")
	m.deltas = append(m.deltas, dt)
	next := m.next
	m.next = nil
	return next, m.updateErr
}

func (m *mockScene) Draw(screen *ebiten.Image) {
	m.draws++
}

func (m *mockScene) OnEnter() { m.record("enter") }
func (m *mockScene) OnExit()  { m.record("exit") }

func TestNew_EntersInitialScene(t *testing.T) {
	var log []string
	g := New(newMockScene("play", &log), 320, 240)

	require.NotNil(t, g)
	assert.Equal(t, []string{"play.enter"}, log)
}

func TestGame_Lifecycle(t *testing.T) {
	var log []string
	play := newMockScene("play", &log)
	done := newMockScene("done", &log)
	play.next = done

	g := New(play, 320, 240)
	g.SetDT(0.02)

	require.NoError(t, g.Update())
	require.NoError(t, g.Update())
	require.NoError(t, g.Update())

	assert.Equal(t, []string{
		"play.enter",
		"play.update",
		"play.exit",
		"done.enter",
		"done.update",
		"done.update",
	}, log)
}

func TestGame_DrawAndLayout(t *testing.T) {
	s := newMockScene("play", nil)
	g := New(s, 640, 360)

	g.Draw(ebiten.NewImage(640, 360))
	w, h := g.Layout(1280, 720)

	assert.Equal(t, 1, s.draws)
	assert.Equal(t, 640, w)
	assert.Equal(t, 360, h)
}

func TestGame_UpdateError(t *testing.T) {
	var log []string
	s := newMockScene("play", &log)
	s.updateErr = assert.AnError
	s.next = newMockScene("never", &log)

	g := New(s, 320, 240)

	assert.ErrorIs(t, g.Update(), assert.AnError)
	assert.NotContains(t, log, "play.exit", "a failing scene stays current")
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestGame_FrameDelta(t *testing.T) {
	s := &mockScene{}
	clock := &fakeClock{t: time.Unix(1000, 0)}
	g := New(s, 320, 240)
	g.now = clock.now
	g.SetMaxFrameDelta(0.1)

	assert.NoError(t, g.Update())
	clock.advance(20 * time.Millisecond)
	assert.NoError(t, g.Update())
	clock.advance(2 * time.Second)
	assert.NoError(t, g.Update())

	assert.Len(t, s.deltas, 3)
	assert.InDelta(t, 1.0/60, s.deltas[0], 1e-9, "first frame uses the default")
	assert.InDelta(t, 0.02, s.deltas[1], 1e-9)
	assert.InDelta(t, 0.1, s.deltas[2], 1e-9, "stall is clamped")
}

func TestGame_SetDT(t *testing.T) {
	s := &mockScene{}
	g := New(s, 320, 240)
	g.SetDT(0.02)

	for i := 0; i < 3; i++ {
		assert.NoError(t, g.Update())
	}

	assert.Equal(t, []float64{0.02, 0.02, 0.02}, s.deltas)
}

func TestGame_SetMaxFrameDelta_IgnoresNonPositive(t *testing.T) {
	g := New(&mockScene{}, 320, 240)

	g.SetMaxFrameDelta(0)

	assert.Equal(t, 0.1, g.maxDT)
}
