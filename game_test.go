package theworld

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// testConfig disables delta clamping so tests control dt exactly.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Loop.MaxDeltaTime = 0
	return cfg
}

// cameraBuilder returns a builder for a 640x480 camera centered on the
// viewport.
func cameraBuilder(g *Game) *GameObjectBuilder {
	return NewGameObjectBuilder(g, "camera").
		Position(Vec3{320, 240, 0}).
		WithComponent(NewCamera(Rect{Width: 640, Height: 480}))
}

// newRunningGame runs a game whose scene holds only a camera.
func newRunningGame(t *testing.T) *Game {
	t.Helper()
	g := NewGame(testConfig())
	err := g.Run(BootstrapperFunc(func(g *Game) []*GameObjectBuilder {
		return []*GameObjectBuilder{cameraBuilder(g)}
	}))
	require.NoError(t, err)
	return g
}

// observedGame attaches an observer logger at level to a new game.
func observedGame(level zapcore.Level) (*Game, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	g := NewGame(testConfig())
	g.SetLogger(zap.New(core))
	return g, logs
}

// recordRenderer copies every render set it receives.
type recordRenderer struct {
	frames [][]RenderObject
}

func (r *recordRenderer) Render(objects []RenderObject, _ *Scene, _ *Camera) {
	r.frames = append(r.frames, slices.Clone(objects))
}

func (r *recordRenderer) last() []RenderObject {
	if len(r.frames) == 0 {
		return nil
	}
	return r.frames[len(r.frames)-1]
}

func TestGameRun_CameraOnlyScene(t *testing.T) {
	g := newRunningGame(t)
	require.True(t, g.Running())

	cam := g.Camera()
	require.NotNil(t, cam)
	assert.True(t, cam.Awakened())

	require.NoError(t, g.Step(1.0/60))
	assert.Equal(t, uint64(1), g.Time().FrameCount())
	// Only the camera's own Update is scheduled.
	assert.Equal(t, 1, g.SceneProcessor().PendingNonSynced())
	assert.Equal(t, 0, g.SceneProcessor().PendingSynced())
}

func TestGameRun_NoCamera(t *testing.T) {
	g := NewGame(testConfig())
	err := g.Run(BootstrapperFunc(func(g *Game) []*GameObjectBuilder {
		return []*GameObjectBuilder{NewGameObjectBuilder(g, "lonely")}
	}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoCamera))
	assert.False(t, g.Running())
}

func TestGameRun_Twice(t *testing.T) {
	g := newRunningGame(t)
	err := g.Run(BootstrapperFunc(func(g *Game) []*GameObjectBuilder { return nil }))
	assert.ErrorIs(t, err, ErrGameRunning)
}

func TestGameRun_Disposed(t *testing.T) {
	g := newRunningGame(t)
	g.Dispose()
	err := g.Run(BootstrapperFunc(func(g *Game) []*GameObjectBuilder { return nil }))
	assert.ErrorIs(t, err, ErrGameDisposed)
	assert.ErrorIs(t, g.Step(1.0/60), ErrGameDisposed)
}

func TestGameStep_BeforeRun(t *testing.T) {
	g := NewGame(testConfig())
	assert.ErrorIs(t, g.Step(1.0/60), ErrGameNotRunning)
}

func TestGameStep_CameraDestroyed(t *testing.T) {
	g := newRunningGame(t)
	g.Camera().GameObject().Destroy()
	err := g.Step(1.0 / 60)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoCamera)
}

func TestGameStep_ClampsDeltaTime(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Loop.MaxDeltaTime = 0.1
	g := NewGame(cfg)
	require.NoError(t, g.Run(BootstrapperFunc(func(g *Game) []*GameObjectBuilder {
		return []*GameObjectBuilder{cameraBuilder(g)}
	})))

	require.NoError(t, g.Step(5))
	assert.Equal(t, 0.1, g.Time().DeltaTime())
	require.NoError(t, g.Step(-1))
	assert.Equal(t, 0.0, g.Time().DeltaTime())
	assert.InDelta(t, 0.1, g.Time().Elapsed(), 1e-12)
}

func TestGameStep_PipelineOrder(t *testing.T) {
	g := newRunningGame(t)
	var order []string

	c := &hookComponent{onUpdate: func() { order = append(order, "update") }}
	g.Scene().AddChildFromBuilder(NewGameObjectBuilder(g, "obj").WithComponent(c))

	g.SetPhysics(PhysicsFunc(func(dt float64) { order = append(order, "physics") }))
	g.SetRenderer(rendererFunc(func() { order = append(order, "render") }))
	g.OnFrameEnd().AddListener(func(*Time) { order = append(order, "frame end") })

	c.StartCoroutine(func(yield func(YieldInstruction) bool) {
		for {
			if !yield(nil) {
				return
			}
			order = append(order, "coroutine")
			if !yield(WaitForEndOfFrame{}) {
				return
			}
			order = append(order, "end of frame")
		}
	})

	require.NoError(t, g.Step(1.0/60))
	assert.Equal(t, []string{"update", "physics", "coroutine", "render", "end of frame", "frame end"}, order)
}

type rendererFunc func()

func (f rendererFunc) Render([]RenderObject, *Scene, *Camera) { f() }

func TestGameDispose_DestroysScene(t *testing.T) {
	g := newRunningGame(t)
	rec := &recorder{}
	c := &testComponent{name: "c", rec: rec}
	g.Scene().AddChildFromBuilder(NewGameObjectBuilder(g, "obj").WithComponent(c))
	c.StartCoroutine(func(yield func(YieldInstruction) bool) {
		for yield(nil) {
		}
	})
	require.NoError(t, g.Input().StartHandling())

	g.Dispose()

	assert.Equal(t, []string{"c.awake", "c.onEnable", "c.onDisable", "c.onDestroy"}, rec.log)
	assert.Empty(t, g.Scene().Roots())
	assert.Equal(t, 0, g.Coroutines().Count())
	assert.False(t, g.Input().Handling())
	assert.ErrorIs(t, g.Input().StartHandling(), ErrInputDisposed)
	g.Dispose() // idempotent
}

func TestGameCamera_Priority(t *testing.T) {
	g := newRunningGame(t)
	primary := g.Camera()

	second := NewCamera(Rect{Width: 100, Height: 100})
	second.Priority = 5
	g.Scene().AddChildFromBuilder(NewGameObjectBuilder(g, "minimap").WithComponent(second))
	assert.Same(t, second, g.Camera())
	assert.Len(t, g.Cameras(), 2)

	second.SetEnabled(false)
	assert.Same(t, primary, g.Camera())
	assert.Len(t, g.Cameras(), 1)
}

func TestGameDebugMode_LogsFrame(t *testing.T) {
	g, logs := observedGame(zapcore.DebugLevel)
	g.SetDebugMode(true)
	require.NoError(t, g.Run(BootstrapperFunc(func(g *Game) []*GameObjectBuilder {
		return []*GameObjectBuilder{cameraBuilder(g)}
	})))
	require.NoError(t, g.Step(1.0/60))

	frames := logs.FilterMessage("frame").All()
	require.Len(t, frames, 1)
	assert.Equal(t, uint64(1), frames[0].ContextMap()["frame"])
}

func TestGameDebugMode_TreeDepthWarning(t *testing.T) {
	g, logs := observedGame(zapcore.WarnLevel)
	g.SetDebugMode(true)

	root := NewGameObjectBuilder(g, "level0")
	b := root
	for i := 1; i <= debugMaxTreeDepth; i++ {
		child := NewGameObjectBuilder(g, "deep")
		b.WithChild(child)
		b = child
	}
	root.Build(nil)

	assert.Equal(t, 1, logs.FilterMessage("tree depth exceeds threshold").Len())
}

func TestGameSeparateInstances(t *testing.T) {
	a := newRunningGame(t)
	b := newRunningGame(t)

	ca := &counterComponent{}
	a.Scene().AddChildFromBuilder(NewGameObjectBuilder(a, "a").WithComponent(ca))
	require.NoError(t, b.Step(1.0/60))
	assert.Equal(t, 0, ca.updates, "stepping one game must not run another game's components")
	require.NoError(t, a.Step(1.0/60))
	assert.Equal(t, 1, ca.updates)
}
