package theworld

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float values of a Transform simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenRotationZ) and either call Update(dt) each frame or yield it from a
// coroutine, which updates it with the frame delta and resumes once it is
// Done. If the target GameObject is destroyed, the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	values [4]float64
	apply  func(t *Transform, v [4]float64)
	target *Transform
	Done   bool
}

func (*TweenGroup) yieldInstruction() {}

// Update advances all tweens by dt seconds and writes the values to the
// target transform, which marks it dirty. If the target GameObject has been
// destroyed, Done is set to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target == nil || g.target.gameObject.destroyed {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.values[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	g.apply(g.target, g.values)
}

// TweenPosition creates a TweenGroup that animates the local position of t
// to the given target over the specified duration using the easing function.
func TweenPosition(t *Transform, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := t.Position()
	g := &TweenGroup{count: 3, target: t, apply: func(t *Transform, v [4]float64) {
		t.SetPosition(Vec3{v[0], v[1], v[2]})
	}}
	for i := 0; i < 3; i++ {
		g.tweens[i] = gween.New(float32(from[i]), float32(to[i]), duration, fn)
	}
	return g
}

// TweenScale creates a TweenGroup that animates the local scale of t to the
// given target over the specified duration using the easing function.
func TweenScale(t *Transform, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := t.Scale()
	g := &TweenGroup{count: 3, target: t, apply: func(t *Transform, v [4]float64) {
		t.SetScale(Vec3{v[0], v[1], v[2]})
	}}
	for i := 0; i < 3; i++ {
		g.tweens[i] = gween.New(float32(from[i]), float32(to[i]), duration, fn)
	}
	return g
}

// TweenRotationZ creates a TweenGroup that animates the z rotation of t to
// the target angle in radians over the specified duration.
func TweenRotationZ(t *Transform, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: t, apply: func(t *Transform, v [4]float64) {
		t.SetRotationZ(v[0])
	}}
	g.tweens[0] = gween.New(float32(t.RotationZ()), float32(to), duration, fn)
	return g
}
