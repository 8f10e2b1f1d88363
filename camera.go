package theworld

import (
	"iter"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
)

// Camera is the component that defines the view into the scene. Its
// position and z rotation come from the owning GameObject's transform.
// A scene needs at least one enabled camera; the one with the highest
// Priority is handed to the renderer.
type Camera struct {
	BaseComponent

	// Priority selects the render camera when several are enabled.
	Priority int
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect
	// BackgroundColor is the clear color used by the renderer.
	BackgroundColor Color

	// BoundsEnabled clamps the camera position so the visible area stays
	// within Bounds.
	BoundsEnabled bool
	// Bounds is the world-space rectangle the camera is clamped to when
	// BoundsEnabled is true.
	Bounds Rect

	followTarget  *Transform
	followOffsetX float64
	followOffsetY float64
	followLerp    float64

	scroll *Coroutine
}

// NewCamera creates a camera with zoom 1 and the given viewport.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		Zoom:            1.0,
		Viewport:        viewport,
		BackgroundColor: ColorBlack,
	}
}

// DisallowMultipleComponent keeps one camera per GameObject.
func (c *Camera) DisallowMultipleComponent() bool { return true }

// OnEnable registers the camera with the game.
func (c *Camera) OnEnable() {
	c.Game().registerCamera(c)
}

// OnDisable unregisters the camera.
func (c *Camera) OnDisable() {
	c.Game().unregisterCamera(c)
}

// Update advances follow and bounds clamping.
func (c *Camera) Update() {
	t := c.Transform()
	pos := t.Position()
	x, y := pos[0], pos[1]

	if c.followTarget != nil {
		if c.followTarget.gameObject.destroyed {
			c.followTarget = nil
		} else {
			target := c.followTarget.WorldPosition()
			x += (target[0] + c.followOffsetX - x) * c.followLerp
			y += (target[1] + c.followOffsetY - y) * c.followLerp
		}
	}
	if c.BoundsEnabled {
		x, y = c.clampToBounds(x, y)
	}
	if x != pos[0] || y != pos[1] {
		t.SetPositionXYZ(x, y, pos[2])
	}
}

// Follow makes the camera track target with the given offset and lerp
// factor. A lerp of 1.0 snaps immediately; lower values give smoother
// following.
func (c *Camera) Follow(target *Transform, offsetX, offsetY, lerp float64) {
	c.followTarget = target
	c.followOffsetX = offsetX
	c.followOffsetY = offsetY
	c.followLerp = lerp
}

// Unfollow stops tracking the current target.
func (c *Camera) Unfollow() {
	c.followTarget = nil
}

// ScrollTo animates the camera to the given world position over duration
// seconds. The animation runs as a coroutine owned by the camera; a second
// call replaces the first.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) *Coroutine {
	if c.scroll != nil {
		c.StopCoroutine(c.scroll)
	}
	c.scroll = c.StartCoroutine(c.scrollTo(x, y, duration, easeFn))
	return c.scroll
}

func (c *Camera) scrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) iter.Seq[YieldInstruction] {
	return func(yield func(YieldInstruction) bool) {
		yield(TweenPosition(c.Transform(), Vec3{x, y, c.Transform().Position()[2]}, duration, easeFn))
	}
}

// ScrollToTile scrolls to the center of the given tile in a tile-based layout.
func (c *Camera) ScrollToTile(tileX, tileY int, tileW, tileH float64, duration float32, easeFn ease.TweenFunc) *Coroutine {
	worldX := float64(tileX)*tileW + tileW/2
	worldY := float64(tileY)*tileH + tileH/2
	return c.ScrollTo(worldX, worldY, duration, easeFn)
}

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables camera bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// clampToBounds restricts (x, y) so the visible area stays within Bounds.
func (c *Camera) clampToBounds(x, y float64) (float64, float64) {
	halfW := c.Viewport.Width / (2 * c.Zoom)
	halfH := c.Viewport.Height / (2 * c.Zoom)

	minX := c.Bounds.X + halfW
	maxX := c.Bounds.X + c.Bounds.Width - halfW
	minY := c.Bounds.Y + halfH
	maxY := c.Bounds.Y + c.Bounds.Height - halfH

	// If bounds are smaller than visible area, center the camera.
	if minX > maxX {
		x = c.Bounds.X + c.Bounds.Width/2
	} else {
		x = math.Max(minX, math.Min(x, maxX))
	}
	if minY > maxY {
		y = c.Bounds.Y + c.Bounds.Height/2
	} else {
		y = math.Max(minY, math.Min(y, maxY))
	}
	return x, y
}

// ViewMatrix maps world space to screen space:
//
//	Translate(cx, cy) * Scale(zoom) * Rotate(-rotation) * Translate(-x, -y)
//
// where (cx, cy) is the viewport center and (x, y, rotation) come from the
// camera's world transform.
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	world := c.Transform().ComputeWorldMatrix()
	x, y := world.At(0, 3), world.At(1, 3)
	rot := math.Atan2(world.At(1, 0), world.At(0, 0))

	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	z := c.Zoom

	return mgl64.Translate3D(cx, cy, 0).
		Mul4(mgl64.Scale3D(z, z, 1)).
		Mul4(mgl64.HomogRotate3DZ(-rot)).
		Mul4(mgl64.Translate3D(-x, -y, 0))
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	p := mgl64.TransformCoordinate(Vec3{wx, wy, 0}, c.ViewMatrix())
	return p[0], p[1]
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	p := mgl64.TransformCoordinate(Vec3{sx, sy, 0}, c.ViewMatrix().Inv())
	return p[0], p[1]
}

// VisibleBounds returns the axis-aligned bounding rect of the camera's visible
// area in world space.
func (c *Camera) VisibleBounds() Rect {
	inv := c.ViewMatrix().Inv()

	vx := c.Viewport.X
	vy := c.Viewport.Y
	vr := vx + c.Viewport.Width
	vb := vy + c.Viewport.Height

	// Transform the four viewport corners to world space.
	p0 := mgl64.TransformCoordinate(Vec3{vx, vy, 0}, inv)
	p1 := mgl64.TransformCoordinate(Vec3{vr, vy, 0}, inv)
	p2 := mgl64.TransformCoordinate(Vec3{vr, vb, 0}, inv)
	p3 := mgl64.TransformCoordinate(Vec3{vx, vb, 0}, inv)

	minX := math.Min(math.Min(p0[0], p1[0]), math.Min(p2[0], p3[0]))
	minY := math.Min(math.Min(p0[1], p1[1]), math.Min(p2[1], p3[1]))
	maxX := math.Max(math.Max(p0[0], p1[0]), math.Max(p2[0], p3[0]))
	maxY := math.Max(math.Max(p0[1], p1[1]), math.Max(p2[1], p3[1]))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
