package theworld

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
)

func TestCamera_WorldToScreen(t *testing.T) {
	g := newRunningGame(t)
	cam := g.Camera()

	tests := []struct {
		name         string
		zoom         float64
		wx, wy       float64
		wantX, wantY float64
	}{
		{"center", 1, 320, 240, 320, 240},
		{"origin", 1, 0, 0, 0, 0},
		{"zoom in", 2, 330, 250, 340, 260},
		{"zoom out", 0.5, 420, 240, 370, 240},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam.Zoom = tt.zoom
			sx, sy := cam.WorldToScreen(tt.wx, tt.wy)
			assert.InDelta(t, tt.wantX, sx, 1e-9)
			assert.InDelta(t, tt.wantY, sy, 1e-9)

			wx, wy := cam.ScreenToWorld(sx, sy)
			assert.InDelta(t, tt.wx, wx, 1e-9)
			assert.InDelta(t, tt.wy, wy, 1e-9)
		})
	}
}

func TestCamera_Rotation(t *testing.T) {
	g := newRunningGame(t)
	cam := g.Camera()
	cam.Transform().SetRotationZ(math.Pi / 2)

	sx, sy := cam.WorldToScreen(330, 240)
	assert.InDelta(t, 320, sx, 1e-9)
	assert.InDelta(t, 230, sy, 1e-9)
}

func TestCamera_VisibleBounds(t *testing.T) {
	g := newRunningGame(t)
	cam := g.Camera()

	b := cam.VisibleBounds()
	assert.InDelta(t, 0, b.X, 1e-9)
	assert.InDelta(t, 0, b.Y, 1e-9)
	assert.InDelta(t, 640, b.Width, 1e-9)
	assert.InDelta(t, 480, b.Height, 1e-9)

	cam.Zoom = 2
	b = cam.VisibleBounds()
	assert.InDelta(t, 160, b.X, 1e-9)
	assert.InDelta(t, 120, b.Y, 1e-9)
	assert.InDelta(t, 320, b.Width, 1e-9)
	assert.InDelta(t, 240, b.Height, 1e-9)
}

func TestCamera_BoundsClamp(t *testing.T) {
	g := newRunningGame(t)
	cam := g.Camera()
	cam.Transform().SetPositionXYZ(0, 0, 0)
	cam.SetBounds(Rect{Width: 1000, Height: 1000})

	require.NoError(t, g.Step(1.0/60))
	pos := cam.Transform().Position()
	assert.Equal(t, 320.0, pos[0])
	assert.Equal(t, 240.0, pos[1])

	// Bounds narrower than the view center the camera.
	cam.SetBounds(Rect{X: 100, Width: 200, Height: 1000})
	require.NoError(t, g.Step(1.0/60))
	assert.Equal(t, 200.0, cam.Transform().Position()[0])

	cam.ClearBounds()
	cam.Transform().SetPositionXYZ(-50, -50, 0)
	require.NoError(t, g.Step(1.0/60))
	assert.Equal(t, -50.0, cam.Transform().Position()[0])
}

func TestCamera_Follow(t *testing.T) {
	g := newRunningGame(t)
	cam := g.Camera()
	var target *GameObject
	g.Scene().AddChildFromBuilder(NewGameObjectBuilder(g, "target").
		Ref(&target).
		Position(Vec3{500, 400, 0}))
	require.NoError(t, g.Step(1.0/60))

	cam.Follow(target.Transform(), 10, 0, 1)
	require.NoError(t, g.Step(1.0/60))
	pos := cam.Transform().Position()
	assert.InDelta(t, 510, pos[0], 1e-9)
	assert.InDelta(t, 400, pos[1], 1e-9)

	target.Destroy()
	require.NoError(t, g.Step(1.0/60))
	assert.Nil(t, cam.followTarget, "destroyed targets are dropped")

	cam.Follow(target.Transform(), 0, 0, 1)
	cam.Unfollow()
	assert.Nil(t, cam.followTarget)
}

func TestCamera_ScrollTo(t *testing.T) {
	g := newRunningGame(t)
	cam := g.Camera()

	co := cam.ScrollTo(420, 240, 1, ease.Linear)
	require.NoError(t, g.Step(0.5))
	assert.InDelta(t, 370, cam.Transform().Position()[0], 1e-3)
	assert.False(t, co.Done())

	require.NoError(t, g.Step(0.5))
	assert.InDelta(t, 420, cam.Transform().Position()[0], 1e-3)
	assert.True(t, co.Done())
}

func TestCamera_ScrollToReplacesPrevious(t *testing.T) {
	g := newRunningGame(t)
	cam := g.Camera()

	first := cam.ScrollTo(1000, 240, 10, ease.Linear)
	second := cam.ScrollToTile(2, 3, 32, 32, 1, ease.Linear)
	assert.True(t, first.Done())
	assert.Equal(t, 1, g.Coroutines().Count())

	require.NoError(t, g.Step(1))
	assert.True(t, second.Done())
	pos := cam.Transform().Position()
	assert.InDelta(t, 80, pos[0], 1e-3)
	assert.InDelta(t, 112, pos[1], 1e-3)
}
