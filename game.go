package theworld

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrGameDisposed is returned when a disposed Game is run or stepped.
	ErrGameDisposed = errors.New("theworld: game is disposed")
	// ErrGameRunning is returned when Run is called on a running Game.
	ErrGameRunning = errors.New("theworld: game is already running")
	// ErrGameNotRunning is returned when Step is called before Run.
	ErrGameNotRunning = errors.New("theworld: game is not running")
	// ErrNoCamera is returned when the scene has no active camera after it
	// is built or after a frame step.
	ErrNoCamera = errors.New("theworld: no active camera in scene")
)

// Bootstrapper supplies the initial scene. Build is called once by Run; the
// returned builders are built as scene roots and activated as one group.
type Bootstrapper interface {
	Build(g *Game) []*GameObjectBuilder
}

// BootstrapperFunc adapts a plain function to Bootstrapper.
type BootstrapperFunc func(g *Game) []*GameObjectBuilder

// Build calls f(g).
func (f BootstrapperFunc) Build(g *Game) []*GameObjectBuilder { return f(g) }

// Game drives one scene. It owns the scheduling context (scene processor,
// coroutine processor, transform matrix processor) so several games can live
// in one process without sharing state. A Game is single-threaded: Run,
// Step and every component callback happen on the caller's goroutine.
type Game struct {
	cfg    Config
	logger *zap.Logger
	sink   EventSink
	debug  bool

	renderer Renderer
	physics  Physics2D
	input    *InputHandler

	time           Time
	scene          *Scene
	sceneProcessor *SceneProcessor
	coroutines     *CoroutineProcessor
	matrices       *TransformMatrixProcessor
	cameras        []*Camera
	frameEnd       EventContainer[*Time]

	objectIDCounter uint32
	running         bool
	disposed        bool
}

// NewGame creates a game with the given configuration. The logger defaults
// to a no-op logger; see SetLogger and NewLogger.
func NewGame(cfg Config) *Game {
	g := &Game{
		cfg:            cfg,
		logger:         zap.NewNop(),
		debug:          cfg.Debug,
		input:          NewInputHandler(),
		sceneProcessor: newSceneProcessor(),
		coroutines:     newCoroutineProcessor(),
		matrices:       newTransformMatrixProcessor(),
	}
	g.time.maxDeltaTime = cfg.Loop.MaxDeltaTime
	g.scene = newScene(g)
	return g
}

func (g *Game) nextObjectID() uint32 {
	g.objectIDCounter++
	return g.objectIDCounter
}

// Config returns the configuration the game was created with.
func (g *Game) Config() Config { return g.cfg }

// Logger returns the game's logger.
func (g *Game) Logger() *zap.Logger { return g.logger }

// SetLogger replaces the game's logger. nil restores the no-op logger.
func (g *Game) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	g.logger = l
}

// SetRenderer sets the renderer collaborator.
func (g *Game) SetRenderer(r Renderer) { g.renderer = r }

// SetPhysics sets the physics collaborator.
func (g *Game) SetPhysics(p Physics2D) { g.physics = p }

// SetEventSink sets the optional ECS bridge.
func (g *Game) SetEventSink(sink EventSink) { g.sink = sink }

// SetDebugMode enables per-frame phase timing and tree-shape warnings,
// logged at debug and warn level.
func (g *Game) SetDebugMode(enabled bool) { g.debug = enabled }

// Input returns the game's input handler.
func (g *Game) Input() *InputHandler { return g.input }

// Time returns the game clock.
func (g *Game) Time() *Time { return &g.time }

// Scene returns the scene tree.
func (g *Game) Scene() *Scene { return g.scene }

// SceneProcessor returns the component event scheduler.
func (g *Game) SceneProcessor() *SceneProcessor { return g.sceneProcessor }

// Coroutines returns the coroutine processor.
func (g *Game) Coroutines() *CoroutineProcessor { return g.coroutines }

// Matrices returns the transform matrix processor.
func (g *Game) Matrices() *TransformMatrixProcessor { return g.matrices }

// OnFrameEnd returns the event invoked at the very end of every Step, after
// WaitForEndOfFrame coroutines have resumed.
func (g *Game) OnFrameEnd() *EventContainer[*Time] { return &g.frameEnd }

// Running reports whether Run succeeded and the game is not disposed.
func (g *Game) Running() bool { return g.running }

// Camera returns the enabled camera with the highest priority, or nil.
// Ties go to the camera enabled first.
func (g *Game) Camera() *Camera {
	var best *Camera
	for _, c := range g.cameras {
		if best == nil || c.Priority > best.Priority {
			best = c
		}
	}
	return best
}

// Cameras returns every enabled camera. The returned slice MUST NOT be mutated.
func (g *Game) Cameras() []*Camera { return g.cameras }

func (g *Game) registerCamera(c *Camera) {
	for _, existing := range g.cameras {
		if existing == c {
			return
		}
	}
	g.cameras = append(g.cameras, c)
}

func (g *Game) unregisterCamera(c *Camera) {
	for i, existing := range g.cameras {
		if existing == c {
			copy(g.cameras[i:], g.cameras[i+1:])
			g.cameras[len(g.cameras)-1] = nil
			g.cameras = g.cameras[:len(g.cameras)-1]
			return
		}
	}
}

// Run builds the bootstrapper's scene, activates it, and verifies that an
// active camera exists. Frames are then advanced with Step.
func (g *Game) Run(b Bootstrapper) error {
	if g.disposed {
		return fmt.Errorf("run: %w", ErrGameDisposed)
	}
	if g.running {
		return fmt.Errorf("run: %w", ErrGameRunning)
	}
	builders := b.Build(g)
	for _, builder := range builders {
		builder.Build(nil)
	}
	g.processEventByGroup(builders)
	if g.Camera() == nil {
		return fmt.Errorf("run: %w", ErrNoCamera)
	}
	g.running = true
	g.logger.Info("game started",
		zap.Int("roots", len(g.scene.roots)),
		zap.Int("objects", g.scene.ObjectCount()))
	return nil
}

// processEventByGroup activates built subtrees as one group: Awake for every
// active and enabled component first, then OnEnable/Start/Update
// registration, then one synced drain.
func (g *Game) processEventByGroup(builders []*GameObjectBuilder) {
	var objs []*GameObject
	for _, b := range builders {
		objs = b.collectObjects(objs)
	}
	var comps []*BaseComponent
	for _, obj := range objs {
		obj.inScene = true
		if obj.transform.parent == nil {
			g.scene.addRoot(obj)
		}
		if obj.activeInHierarchy && !obj.destroyed {
			comps = appendEnabledComponents(comps, obj)
		}
	}
	g.activateComponents(comps)
}

func (g *Game) activateComponents(comps []*BaseComponent) {
	for _, c := range comps {
		if c.ActiveAndEnabled() {
			c.events.tryCallAwake()
		}
	}
	for _, c := range comps {
		if c.ActiveAndEnabled() {
			c.registerActivation()
		}
	}
	g.sceneProcessor.tryStartProcessSyncedEvent()
}

// Step advances the game by one frame of dt seconds:
//
//  1. advance time
//  2. run pending Start and Update callbacks
//  3. step physics
//  4. resume coroutines
//  5. check that a camera exists
//  6. detach destroyed objects
//  7. recompute world matrices and swap render buffers
//  8. render
//  9. flush the render buffer
//  10. resume WaitForEndOfFrame coroutines
func (g *Game) Step(dt float64) error {
	if g.disposed {
		return fmt.Errorf("step: %w", ErrGameDisposed)
	}
	if !g.running {
		return fmt.Errorf("step: %w", ErrGameNotRunning)
	}

	var stats frameStats
	var t0 time.Time
	if g.debug {
		t0 = time.Now()
	}

	dt = g.time.advance(dt)
	g.sceneProcessor.startProcessNonSyncedEvent()
	if g.debug {
		stats.updateTime = time.Since(t0)
		t0 = time.Now()
	}

	if g.physics != nil {
		g.physics.Update(dt)
	}
	if g.debug {
		stats.physicsTime = time.Since(t0)
		t0 = time.Now()
	}

	g.coroutines.updateAfterProcess(dt)
	if g.debug {
		stats.coroutineTime = time.Since(t0)
		t0 = time.Now()
	}

	cam := g.Camera()
	if cam == nil {
		return fmt.Errorf("step frame %d: %w", g.time.frameCount, ErrNoCamera)
	}

	g.scene.processRemovals()
	objects := g.matrices.update()
	if g.debug {
		stats.matrixTime = time.Since(t0)
		stats.renderObjects = len(objects)
		t0 = time.Now()
	}

	if g.renderer != nil {
		g.renderer.Render(objects, g.scene, cam)
	}
	g.matrices.flush()
	if g.debug {
		stats.renderTime = time.Since(t0)
	}

	g.coroutines.endFrameAfterProcess()
	g.frameEnd.Invoke(&g.time)

	if g.debug {
		stats.coroutines = g.coroutines.Count()
		g.debugLog(stats)
	}
	return nil
}

// Dispose destroys the scene, stops every coroutine and disposes the input
// handler. A disposed game cannot be run again.
func (g *Game) Dispose() {
	if g.disposed {
		return
	}
	for _, root := range append([]*GameObject(nil), g.scene.roots...) {
		root.Destroy()
	}
	g.scene.processRemovals()
	for i := range g.coroutines.slots {
		if c := g.coroutines.slots[i].co; c != nil {
			g.coroutines.removeCoroutine(c)
		}
	}
	g.input.Dispose()
	g.frameEnd.Clear()
	g.running = false
	g.disposed = true
	_ = g.logger.Sync()
}
