package theworld

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildPair(g *Game) (parent, child *GameObject) {
	NewGameObjectBuilder(g, "parent").
		Ref(&parent).
		WithChild(NewGameObjectBuilder(g, "child").Ref(&child)).
		Build(nil)
	return parent, child
}

func TestTransform_WorldTranslateAndScale(t *testing.T) {
	g := NewGame(testConfig())
	parent, child := buildPair(g)

	parent.Transform().SetPosition(Vec3{10, 0, 0})
	parent.Transform().SetScale(Vec3{2, 2, 1})
	child.Transform().SetPosition(Vec3{5, 3, 0})
	g.matrices.update()

	wp := child.Transform().WorldPosition()
	assert.InDelta(t, 20, wp[0], 1e-9)
	assert.InDelta(t, 6, wp[1], 1e-9)
	assert.True(t, child.Transform().WorldMatrix().ApproxEqual(child.Transform().ComputeWorldMatrix()))
}

func TestTransform_WorldRotation(t *testing.T) {
	g := NewGame(testConfig())
	parent, child := buildPair(g)

	parent.Transform().SetRotationZ(math.Pi / 2)
	child.Transform().SetPosition(Vec3{1, 0, 0})
	g.matrices.update()

	wp := child.Transform().WorldPosition()
	assert.InDelta(t, 0, wp[0], 1e-9)
	assert.InDelta(t, 1, wp[1], 1e-9)
	assert.InDelta(t, math.Pi/2, parent.Transform().RotationZ(), 1e-9)
}

func TestTransform_LocalWorldRoundTrip(t *testing.T) {
	g := NewGame(testConfig())
	parent, child := buildPair(g)
	parent.Transform().SetPosition(Vec3{-4, 7, 0})
	parent.Transform().SetRotationZ(0.3)
	child.Transform().SetScale(Vec3{3, 0.5, 1})
	g.matrices.update()

	p := Vec3{2, -1, 0}
	back := child.Transform().WorldToLocal(child.Transform().LocalToWorld(p))
	assert.True(t, back.ApproxEqualThreshold(p, 1e-9), "got %v", back)
}

func TestTransform_ParentChangePropagatesNextUpdate(t *testing.T) {
	g := NewGame(testConfig())
	parent, child := buildPair(g)
	child.Transform().SetPosition(Vec3{1, 1, 0})
	g.matrices.update()

	parent.Transform().Translate(Vec3{100, 0, 0})
	assert.InDelta(t, 1, child.Transform().WorldPosition()[0], 1e-9, "world matrix is cached until update")
	g.matrices.update()
	assert.InDelta(t, 101, child.Transform().WorldPosition()[0], 1e-9)
}

func TestTransform_DirtyRegistrationIsIdempotent(t *testing.T) {
	g := NewGame(testConfig())
	obj := NewGameObjectBuilder(g, "obj").Build(nil)
	g.matrices.update()
	require.Equal(t, 0, g.Matrices().PendingTransforms())

	obj.Transform().SetPosition(Vec3{1, 0, 0})
	obj.Transform().SetScale(Vec3{2, 2, 2})
	obj.Transform().MarkDirty()
	assert.Equal(t, 1, g.Matrices().PendingTransforms())

	g.matrices.update()
	assert.Equal(t, 0, g.Matrices().PendingTransforms())
	assert.False(t, obj.Transform().isRegisteredToProcessor)
}

func TestTransform_ZSortableNotifiedOnChange(t *testing.T) {
	g := NewGame(testConfig())
	z := &zComponent{}
	obj := NewGameObjectBuilder(g, "obj").WithComponent(z).Build(nil)
	g.matrices.update()
	assert.Equal(t, 0, z.calls, "z did not change")

	obj.Transform().SetPositionXYZ(0, 0, 3)
	g.matrices.update()
	assert.Equal(t, 1, z.calls)
	assert.Equal(t, 3.0, z.z)

	obj.Transform().SetPositionXYZ(5, 5, 3)
	g.matrices.update()
	assert.Equal(t, 1, z.calls)
}

func TestTransform_SetParentCyclePanics(t *testing.T) {
	g := NewGame(testConfig())
	parent, child := buildPair(g)

	assert.PanicsWithValue(t, "theworld: setting parent would create a cycle", func() {
		parent.Transform().SetParent(child.Transform())
	})
	assert.PanicsWithValue(t, "theworld: setting parent would create a cycle", func() {
		parent.Transform().SetParent(parent.Transform())
	})
}

func TestTransform_SetParentToRoot(t *testing.T) {
	g := newRunningGame(t)
	var parent, child *GameObject
	g.Scene().AddChildFromBuilder(NewGameObjectBuilder(g, "parent").
		Ref(&parent).
		WithChild(NewGameObjectBuilder(g, "child").Ref(&child)))
	require.Len(t, g.Scene().Roots(), 2)

	child.Transform().SetParent(nil)
	assert.Nil(t, child.Parent())
	assert.Equal(t, 0, parent.Transform().ChildCount())
	assert.Len(t, g.Scene().Roots(), 3)

	child.Transform().SetParent(parent.Transform())
	assert.Same(t, parent, child.Parent())
	assert.Len(t, g.Scene().Roots(), 2)
}

func TestTransform_SetParentUnderInactive(t *testing.T) {
	g := newRunningGame(t)
	rec := &recorder{}
	var hidden, obj *GameObject
	g.Scene().AddChildFromBuilder(NewGameObjectBuilder(g, "hidden").Ref(&hidden).Active(false))
	g.Scene().AddChildFromBuilder(NewGameObjectBuilder(g, "obj").
		Ref(&obj).
		WithComponent(&testComponent{name: "c", rec: rec}))
	rec.log = nil

	obj.Transform().SetParent(hidden.Transform())
	assert.False(t, obj.ActiveInHierarchy())
	assert.True(t, obj.ActiveSelf())
	assert.Equal(t, []string{"c.onDisable"}, rec.log)

	obj.Transform().SetParent(nil)
	assert.True(t, obj.ActiveInHierarchy())
	assert.Equal(t, []string{"c.onDisable", "c.onEnable"}, rec.log)
}
