package tenkai

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/sirupsen/logrus"
)

// Engine events. Handlers receive the *Engine as their first argument;
// mouse events add a MouseEvent, keyup the ebiten.Key and screenshot the
// file path.
const (
	EventRunning    = "running"
	EventMouseDown  = "mousedown"
	EventMouseUp    = "mouseup"
	EventMouseMove  = "mousemove"
	EventResize     = "resize"
	EventKeyUp      = "keyup"
	EventScreenshot = "screenshot"
)

// resizeWait is how long a fullscreen resize must settle before the resize
// event fires.
const resizeWait = 100 * time.Millisecond

// Engine hosts a tree of scenes and entities as an ebiten.Game. Run it with
// Run, or hand it to ebiten.RunGame yourself.
type Engine struct {
	Config   EngineConfig
	Viewport *Viewport
	Events   *Events
	Log      *logrus.Logger

	// KeyUp, when set, is called for every key released.
	KeyUp func(k ebiten.Key)

	sched    *Scheduler
	fsys     fs.FS
	scenes   Container[SceneNode]
	entities Container[*Entity]

	assetNames []string
	assets     map[string]*Asset
	audioNames []string
	audio      map[string]*Audio
	audioCtx   *audio.Context

	surface *EbitenSurface
	resize  *Debounced
	running bool
	stopped bool
	stats   frameStats

	cursorSeen       bool
	cursorX, cursorY int
	live             inputFrame
	injected         inputFrame
	injectQueue      []inputFrame
	script           *Script
	screenshots      []string
}

// NewEngine creates an engine that loads assets and audio from fsys (the
// AssetRoot directory of cfg when nil) and ticks DefaultScheduler.
func NewEngine(cfg EngineConfig, fsys fs.FS) (*Engine, error) {
	return newEngine(cfg, fsys, DefaultScheduler())
}

func newEngine(cfg EngineConfig, fsys fs.FS, sched *Scheduler) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log, err := NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	if fsys == nil {
		fsys = os.DirFS(cfg.AssetRoot)
	}

	e := &Engine{
		Config:   cfg,
		Viewport: NewViewport(cfg),
		Events:   NewEvents(sched, EventRunning, EventMouseDown, EventMouseUp, EventMouseMove, EventResize, EventKeyUp, EventScreenshot),
		Log:      log,
		sched:    sched,
		fsys:     fsys,
		assets:   make(map[string]*Asset),
		audio:    make(map[string]*Audio),
	}
	e.scenes = newContainer[SceneNode]("scene", e)
	e.entities = newContainer[*Entity]("entity", e)
	e.resize = Debounce(sched, resizeWait, e.resized)
	if log.IsLevelEnabled(logrus.DebugLevel) {
		e.stats.log = e.logFrameStats
	}
	return e, nil
}

// Scheduler returns the scheduler the engine ticks.
func (e *Engine) Scheduler() *Scheduler { return e.sched }

// Running reports whether Start has completed and Stop has not been called.
func (e *Engine) Running() bool { return e.running }

// Stop halts every sound and ends the game loop: the next Update returns
// ebiten.Termination.
func (e *Engine) Stop() {
	if e.stopped {
		return
	}
	e.running = false
	e.stopped = true
	for _, name := range e.audioNames {
		e.audio[name].Stop()
	}
	e.Log.Info("engine stopped")
}

// shutdown releases the drawing surface.
func (e *Engine) shutdown() {
	if e.surface != nil {
		e.surface.Close()
		e.surface = nil
	}
}

// --- Assets and audio ---

// AddAsset registers an image to load on Start and returns it.
func (e *Engine) AddAsset(name, path string) *Asset {
	if _, ok := e.assets[name]; !ok {
		e.assetNames = append(e.assetNames, name)
	}
	a := NewAsset(name, path)
	e.assets[name] = a
	return a
}

// Asset returns the image registered under name.
func (e *Engine) Asset(name string) (*Asset, error) {
	a, ok := e.assets[name]
	if !ok {
		return nil, &NotFoundError{Kind: "asset", Name: name}
	}
	return a, nil
}

// AddAudio registers a sound to load on Start and returns it.
func (e *Engine) AddAudio(name, path, mime string) *Audio {
	if _, ok := e.audio[name]; !ok {
		e.audioNames = append(e.audioNames, name)
	}
	a := NewAudio(name, path, mime, e.sched)
	e.audio[name] = a
	return a
}

// Audio returns the sound registered under name.
func (e *Engine) Audio(name string) (*Audio, error) {
	a, ok := e.audio[name]
	if !ok {
		return nil, &NotFoundError{Kind: "audio", Name: name}
	}
	return a, nil
}

// Start loads every registered asset and sound, calls init, marks the engine
// running and triggers EventRunning. Load failures are reported together and
// leave the engine stopped.
func (e *Engine) Start(init func(*Engine) error) error {
	e.Log.Debug("starting engine")

	var errs []error
	for _, name := range e.assetNames {
		a := e.assets[name]
		if err := a.load(e.fsys); err != nil {
			errs = append(errs, err)
			continue
		}
		e.Log.WithFields(logrus.Fields{"asset": name, "path": a.Path}).Debug("asset loaded")
	}
	if len(e.audioNames) > 0 {
		ctx := audio.CurrentContext()
		if ctx == nil {
			ctx = audio.NewContext(SampleRate)
		}
		e.audioCtx = ctx
		for _, name := range e.audioNames {
			a := e.audio[name]
			if err := a.load(ctx, e.fsys); err != nil {
				errs = append(errs, err)
				continue
			}
			e.Log.WithFields(logrus.Fields{"audio": name, "duration": a.Duration}).Debug("audio loaded")
		}
	}
	if err := errors.Join(errs...); err != nil {
		e.Log.WithError(err).Error("error while starting")
		return err
	}

	if init != nil {
		if err := init(e); err != nil {
			e.Log.WithError(err).Error("init failed")
			return fmt.Errorf("init: %w", err)
		}
	}

	e.running = true
	e.Redraw()
	e.Log.Info("engine running")
	return e.Events.Trigger(EventRunning, e)
}

// Run opens the window and runs the game loop until it is closed.
func (e *Engine) Run() error {
	ebiten.SetWindowTitle(e.Config.Title)
	if e.Config.Fullscreen {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
		ebiten.SetFullscreen(true)
	} else {
		ebiten.SetWindowSize(e.Config.Width, e.Config.Height)
	}
	defer e.shutdown()
	return ebiten.RunGame(e)
}

// --- Tree ---

// Redraw marks every scene and entity in the engine dirty.
func (e *Engine) Redraw() {
	e.scenes.RedrawAll()
	e.entities.RedrawAll()
}

// Scenes returns the root scene container.
func (e *Engine) Scenes() *Container[SceneNode] { return &e.scenes }

// Entities returns the root entity container.
func (e *Engine) Entities() *Container[*Entity] { return &e.entities }

// AddScene registers s under name and returns it.
func (e *Engine) AddScene(name string, s SceneNode) SceneNode { return e.scenes.Add(name, s) }

// RemoveScene removes the scene registered under name.
func (e *Engine) RemoveScene(name string) { e.scenes.Remove(name) }

// SceneByName returns the scene registered under name.
func (e *Engine) SceneByName(name string) (SceneNode, error) { return e.scenes.Get(name) }

// AddEntity registers ent under name and returns it.
func (e *Engine) AddEntity(name string, ent *Entity) *Entity { return e.entities.Add(name, ent) }

// RemoveEntity removes the entity registered under name.
func (e *Engine) RemoveEntity(name string) { e.entities.Remove(name) }

// EntityByName returns the entity registered under name.
func (e *Engine) EntityByName(name string) (*Entity, error) { return e.entities.Get(name) }

// --- ebiten.Game ---

// Update advances the scheduler by one tick, any viewport scroll, audio, an
// attached script and input. Once stopped it returns ebiten.Termination.
func (e *Engine) Update() error {
	if e.stopped {
		e.shutdown()
		return ebiten.Termination
	}
	dt := time.Second / time.Duration(ebiten.TPS())
	e.tick(dt)
	if e.script != nil {
		e.script.step(e)
	}
	e.processInput(e.nextInput())
	return nil
}

func (e *Engine) tick(dt time.Duration) {
	e.sched.Update(dt)
	if e.Viewport.Update(float32(dt.Seconds())) {
		e.Redraw()
	}
	for _, name := range e.audioNames {
		e.audio[name].Update()
	}
}

// Draw repaints the whole tree onto screen.
func (e *Engine) Draw(screen *ebiten.Image) {
	start := time.Now()
	if e.surface == nil {
		s, err := NewEbitenSurface(screen)
		if err != nil {
			e.Log.WithError(err).Error("surface")
			return
		}
		e.surface = s
	}
	e.surface.Reset(screen)
	e.surface.Alpha = float32(e.Config.GlobalAlpha)

	screen.Fill(color.Black)
	e.render(e.surface)
	if e.Config.ShowHUD {
		e.drawHUD(screen)
	}
	e.flushScreenshots(screen)
	e.stats.record(time.Since(start))
}

// render draws the tree onto s under the viewport transform.
func (e *Engine) render(s Surface) {
	e.Redraw()
	v := e.Viewport
	s.Save()
	s.Scale(v.Scale, v.Scale)
	s.Translate(v.X, v.Y)
	e.scenes.DrawAll(s)
	e.entities.DrawAll(s)
	s.Restore()
}

// Layout reports the logical screen size. In fullscreen mode it follows the
// window and fires EventResize once the size settles.
func (e *Engine) Layout(outsideWidth, outsideHeight int) (int, int) {
	if !e.Config.Fullscreen {
		return e.Config.Width, e.Config.Height
	}
	if outsideWidth != e.Viewport.ScreenWidth || outsideHeight != e.Viewport.ScreenHeight {
		e.Viewport.Resize(outsideWidth, outsideHeight)
		e.resize.Call()
	}
	return outsideWidth, outsideHeight
}

func (e *Engine) resized() {
	e.Log.WithFields(logrus.Fields{
		"width":  e.Viewport.ScreenWidth,
		"height": e.Viewport.ScreenHeight,
	}).Debug("resized")
	e.Redraw()
	_ = e.Events.Trigger(EventResize, e)
}

// AssetNames returns the registered asset names in registration order.
func (e *Engine) AssetNames() []string { return slices.Clone(e.assetNames) }

// AudioNames returns the registered sound names in registration order.
func (e *Engine) AudioNames() []string { return slices.Clone(e.audioNames) }
