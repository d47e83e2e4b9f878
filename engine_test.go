package tenkai

import (
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine(t *testing.T, edit func(*EngineConfig)) (*Engine, *Scheduler) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Log.Level = "error"
	cfg.EnableScroll = true
	cfg.EnableZoom = true
	if edit != nil {
		edit(&cfg)
	}
	sched := NewScheduler()
	e, err := newEngine(cfg, fstest.MapFS{}, sched)
	require.NoError(t, err)
	return e, sched
}

// record subscribes to name and collects the arguments of every call.
func record(t *testing.T, e *Engine, name string) *[][]any {
	t.Helper()
	var calls [][]any
	_, err := e.Events.On(name, func(args ...any) { calls = append(calls, args) })
	require.NoError(t, err)
	return &calls
}

func TestNewEngineRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scale = -1
	_, err := NewEngine(cfg, fstest.MapFS{})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.Log.Level = "shouty"
	_, err = NewEngine(cfg, fstest.MapFS{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestEngineStartRunsInitAndTriggersRunning(t *testing.T) {
	e, sched := testEngine(t, nil)
	running := record(t, e, EventRunning)

	initCalled := false
	require.NoError(t, e.Start(func(got *Engine) error {
		initCalled = got == e
		return nil
	}))
	assert.True(t, initCalled)
	assert.True(t, e.Running())
	assert.Empty(t, *running)

	sched.Update(0)
	require.Len(t, *running, 1)
	assert.Same(t, e, (*running)[0][0])
}

func TestEngineStartInitError(t *testing.T) {
	e, _ := testEngine(t, nil)
	boom := errors.New("boom")
	err := e.Start(func(*Engine) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, e.Running())
}

func TestEngineStartReportsAllLoadFailures(t *testing.T) {
	e, _ := testEngine(t, nil)
	e.AddAsset("tiles", "missing/tiles.png")
	e.AddAsset("hero", "missing/hero.png")

	called := false
	err := e.Start(func(*Engine) error { called = true; return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tiles")
	assert.Contains(t, err.Error(), "hero")
	assert.False(t, called)
	assert.False(t, e.Running())
}

func TestEngineAssetLookup(t *testing.T) {
	e, _ := testEngine(t, nil)
	a := e.AddAsset("tiles", "tiles.png")
	got, err := e.Asset("tiles")
	require.NoError(t, err)
	assert.Same(t, a, got)
	assert.Equal(t, []string{"tiles"}, e.AssetNames())

	_, err = e.Asset("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = e.Audio("nope")
	assert.ErrorIs(t, err, ErrNotFound)

	snd := e.AddAudio("theme", "theme.mp3", "audio/mpeg")
	gotSnd, err := e.Audio("theme")
	require.NoError(t, err)
	assert.Same(t, snd, gotSnd)
}

func TestEngineRenderAppliesViewportThenTree(t *testing.T) {
	e, sched := testEngine(t, nil)
	e.Viewport.Scale = 2
	e.Viewport.X, e.Viewport.Y = 5, 6

	world := NewScene(SceneConfig{})
	world.AddEntity("hero", testEntity("hero", 0, sched))
	e.AddScene("world", world)
	e.AddEntity("cursor", testEntity("cursor", 0, sched))

	surf := &recordingSurface{}
	e.render(surf)
	assert.Equal(t, []string{"save", "scale(2,2)", "translate(5,6)"}, surf.ops[:3])
	assert.Equal(t, []string{"hero", "cursor"}, surf.drawn())
	assert.Equal(t, 0, surf.depth)

	// Every frame repaints the whole tree.
	surf.reset()
	e.render(surf)
	assert.Equal(t, []string{"hero", "cursor"}, surf.drawn())
}

func TestEngineRemoveRedrawsTree(t *testing.T) {
	e, sched := testEngine(t, nil)
	e.AddEntity("a", testEntity("a", 0, sched))
	b := e.AddEntity("b", testEntity("b", 0, sched))
	b.Draw(&recordingSurface{})
	require.False(t, b.Dirty())

	e.RemoveEntity("a")
	assert.True(t, b.Dirty())
	_, err := e.EntityByName("a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEngineStop(t *testing.T) {
	e, _ := testEngine(t, nil)
	require.NoError(t, e.Start(nil))
	require.True(t, e.Running())

	p := newFakePlayer()
	snd := e.AddAudio("theme", "theme.wav", "audio/wav")
	snd.Attach(p, 10*time.Second)
	snd.Play()

	surf, err := NewEbitenSurface(nil)
	require.NoError(t, err)
	e.surface = surf

	e.Stop()
	assert.False(t, e.Running())
	assert.False(t, p.playing)

	assert.ErrorIs(t, e.Update(), ebiten.Termination)
	assert.Nil(t, e.surface)
	assert.ErrorIs(t, e.Update(), ebiten.Termination)
	e.Stop()
}

func TestEngineLayoutFixed(t *testing.T) {
	e, _ := testEngine(t, func(c *EngineConfig) { c.Width, c.Height = 320, 240 })
	w, h := e.Layout(1920, 1080)
	assert.Equal(t, 320, w)
	assert.Equal(t, 240, h)
}

func TestEngineLayoutFullscreenDebouncesResize(t *testing.T) {
	e, sched := testEngine(t, func(c *EngineConfig) { c.Fullscreen = true })
	resized := record(t, e, EventResize)

	w, h := e.Layout(1000, 500)
	assert.Equal(t, 1000, w)
	assert.Equal(t, 500, h)
	assert.Equal(t, 1000.0, e.Viewport.Width)

	sched.Update(50 * time.Millisecond)
	e.Layout(1200, 600)
	sched.Update(50 * time.Millisecond)
	sched.Update(0)
	assert.Empty(t, *resized)

	sched.Update(50 * time.Millisecond)
	sched.Update(0)
	assert.Len(t, *resized, 1)
	assert.Equal(t, 1200, e.Viewport.ScreenWidth)

	// Same size again does not re-trigger.
	e.Layout(1200, 600)
	sched.Update(time.Second)
	sched.Update(0)
	assert.Len(t, *resized, 1)
}

// --- Input ---

func TestEngineWheelScrollsAndZooms(t *testing.T) {
	e, _ := testEngine(t, nil)

	e.InjectWheel(0, -1, false)
	e.processInput(e.nextInput())
	assert.Equal(t, 40.0, e.Viewport.Y)

	e.InjectWheel(0, -2.5, true)
	e.processInput(e.nextInput())
	assert.Equal(t, 2.0, e.Viewport.Scale)
}

func TestEngineMouseEvents(t *testing.T) {
	e, sched := testEngine(t, nil)
	e.Viewport.Scale = 2
	moves := record(t, e, EventMouseMove)
	downs := record(t, e, EventMouseDown)
	ups := record(t, e, EventMouseUp)

	e.InjectMove(100, 50)
	e.InjectClick(100, 50, ebiten.MouseButtonRight)
	for range 3 {
		e.processInput(e.nextInput())
	}
	sched.Update(0)

	require.Len(t, *moves, 1)
	require.Len(t, *downs, 1)
	require.Len(t, *ups, 1)

	ev := (*downs)[0][1].(MouseEvent)
	assert.Equal(t, 100, ev.ScreenX)
	assert.Equal(t, 50.0, ev.X)
	assert.Equal(t, 25.0, ev.Y)
	assert.Equal(t, ebiten.MouseButtonRight, ev.Button)
	assert.Equal(t, 50.0, e.Viewport.MouseX)
}

func TestEngineKeyUp(t *testing.T) {
	e, sched := testEngine(t, nil)
	var keys []ebiten.Key
	e.KeyUp = func(k ebiten.Key) { keys = append(keys, k) }
	events := record(t, e, EventKeyUp)

	e.InjectKeyUp(ebiten.KeySpace)
	e.processInput(e.nextInput())
	assert.Equal(t, []ebiten.Key{ebiten.KeySpace}, keys)

	sched.Update(0)
	require.Len(t, *events, 1)
	assert.Equal(t, ebiten.KeySpace, (*events)[0][1])
}

func TestEngineTickAdvancesAnimations(t *testing.T) {
	e, sched := testEngine(t, nil)
	m := twoFrameMob(sched)
	e.AddEntity("m", m)
	require.NoError(t, m.AnimateStart(AnimationOptions{Name: "a", Delay: 10 * time.Millisecond}))

	e.tick(10 * time.Millisecond)
	assert.False(t, m.Animating())
}
