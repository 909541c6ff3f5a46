package game

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gstrike/internal/briefing"
	"gstrike/internal/config"
	"gstrike/internal/data"
	"gstrike/internal/sim"
)

type fakeSounds struct {
	events []sim.Event
	muted  bool
}

func (f *fakeSounds) Handle(events []sim.Event) { f.events = append(f.events, events...) }

func (f *fakeSounds) ToggleMute() bool {
	f.muted = !f.muted
	return f.muted
}

type staticSource struct {
	b briefing.Briefing
}

func (s staticSource) Fetch(context.Context) (briefing.Briefing, error) { return s.b, nil }

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen, *fakeSounds) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(100, 40)

	cfg := config.Default()
	world, err := sim.NewWorld(cfg, data.MustDefaults(), rand.New(rand.NewSource(3)), zap.NewNop())
	require.NoError(t, err)

	sounds := &fakeSounds{}
	a := New(screen, world, sounds, staticSource{b: briefing.Fallback}, cfg, zap.NewNop())
	t.Cleanup(a.Close)
	return a, screen, sounds
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestNewSizesWorldFromTerminal(t *testing.T) {
	a, _, _ := newTestApp(t)
	assert.Equal(t, 800.0, a.world.Width())
	assert.Equal(t, 640.0, a.world.Height())
	assert.Equal(t, StatusMenu, a.Status())
	assert.Nil(t, a.tickC(), "no ticks outside a run")
}

func TestSpaceStartsRun(t *testing.T) {
	a, _, _ := newTestApp(t)

	quit := a.handleEvent(runeKey(' '))

	assert.False(t, quit)
	assert.Equal(t, StatusPlaying, a.Status())
	assert.NotNil(t, a.tickC())
	assert.Equal(t, 100, a.hud.HP)
}

func TestEscapeQuits(t *testing.T) {
	a, _, _ := newTestApp(t)
	assert.True(t, a.handleEvent(key(tcell.KeyEscape)))
}

func TestHeldKeysDriveThePlayer(t *testing.T) {
	a, _, _ := newTestApp(t)
	a.handleEvent(runeKey(' '))
	startX := a.world.Player().Pos.X

	a.handleEvent(key(tcell.KeyRight))
	a.tick(time.Now())

	assert.True(t, a.input.Right)
	assert.Greater(t, a.world.Player().Pos.X, startX)

	// Without repeats the key is released once the timeout passes.
	a.tick(time.Now().Add(2 * keyTimeout))
	assert.False(t, a.input.Right)
}

func TestMovementKeysIgnoredInMenu(t *testing.T) {
	a, _, _ := newTestApp(t)
	a.handleEvent(key(tcell.KeyLeft))
	a.handleEvent(runeKey(' '))

	a.tick(time.Now())

	assert.False(t, a.input.Left)
}

func TestFireProducesShotSounds(t *testing.T) {
	a, _, sounds := newTestApp(t)
	a.handleEvent(runeKey(' '))

	for i := 0; i < 10; i++ {
		a.handleEvent(runeKey(' '))
		a.tick(time.Now())
	}

	require.NotEmpty(t, sounds.events)
	assert.Equal(t, sim.EventShot, sounds.events[0].Kind)
}

func TestUpJumpsOncePerPress(t *testing.T) {
	a, _, _ := newTestApp(t)
	a.handleEvent(runeKey(' '))

	a.handleEvent(key(tcell.KeyUp))
	a.tick(time.Now())
	assert.Less(t, a.world.Player().Vel.Y, 0.0)
	assert.True(t, a.input.Jump)
}

func TestGameOverStopsTicksAndEnterReturnsToMenu(t *testing.T) {
	a, _, _ := newTestApp(t)
	a.handleEvent(runeKey(' '))
	a.tick(time.Now())

	a.setStatus(StatusGameOver)
	assert.Nil(t, a.tickC())

	frame := a.world.Frame()
	a.tick(time.Now())
	assert.Equal(t, frame, a.world.Frame(), "no ticks after game over")

	a.handleEvent(runeKey(' '))
	assert.Equal(t, StatusGameOver, a.Status(), "space does not skip the game over screen")

	a.handleEvent(key(tcell.KeyEnter))
	assert.Equal(t, StatusMenu, a.Status())
}

func TestResizeRelaysWorld(t *testing.T) {
	a, screen, _ := newTestApp(t)
	oldRun := a.world.RunID()

	screen.SetSize(120, 30)
	a.handleEvent(tcell.NewEventResize(120, 30))

	assert.Equal(t, 960.0, a.world.Width())
	assert.Equal(t, 480.0, a.world.Height())
	assert.NotEqual(t, oldRun, a.world.RunID())
}

func TestMuteToggles(t *testing.T) {
	a, _, sounds := newTestApp(t)
	a.handleEvent(runeKey('m'))
	assert.True(t, sounds.muted)
	a.handleEvent(runeKey('M'))
	assert.False(t, sounds.muted)
}

func TestDrawMenuShowsBriefing(t *testing.T) {
	a, screen, _ := newTestApp(t)
	a.briefing = &briefing.Briefing{Codename: "OPERATION TEST", Objective: "Obj.", Intel: "Intel."}

	a.draw()

	var text strings.Builder
	_, h := screen.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < 100; x++ {
			ch, _, _, _ := screen.GetContent(x, y)
			text.WriteRune(ch)
		}
		text.WriteByte('\n')
	}
	assert.Contains(t, text.String(), "OPERATION TEST")
}

func TestRunQuitsOnEscape(t *testing.T) {
	a, screen, _ := newTestApp(t)

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after ESC")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
