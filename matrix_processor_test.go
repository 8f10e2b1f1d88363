package theworld

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSprite is a minimal render object.
type testSprite struct {
	BaseComponent
	hidden bool
}

func (s *testSprite) Visible() bool { return !s.hidden }

func TestMatrixProcessor_DoubleBuffer(t *testing.T) {
	p := newTransformMatrixProcessor()
	a, b := &testSprite{}, &testSprite{}

	p.enqueueRenderObject(a)
	p.enqueueRenderObject(a)
	frame1 := p.update()
	require.Len(t, frame1, 1)
	assert.Same(t, a, frame1[0])

	// A write while the renderer holds frame1 goes to the other buffer.
	p.enqueueRenderObject(b)
	assert.Len(t, frame1, 1)
	p.flush()

	frame2 := p.update()
	require.Len(t, frame2, 1)
	assert.Same(t, b, frame2[0])
	p.flush()

	assert.Empty(t, p.update())
}

// mutatingRenderer moves a transform during its first Render call.
type mutatingRenderer struct {
	recordRenderer
	target *Transform
}

func (r *mutatingRenderer) Render(objects []RenderObject, s *Scene, c *Camera) {
	r.recordRenderer.Render(objects, s, c)
	if len(r.frames) == 1 {
		r.target.SetPosition(Vec3{50, 0, 0})
	}
}

func TestMatrixProcessor_RenderMutationsLandNextFrame(t *testing.T) {
	g := newRunningGame(t)
	sprite := &testSprite{}
	g.Scene().AddChildFromBuilder(NewGameObjectBuilder(g, "sprite").WithComponent(sprite))

	r := &mutatingRenderer{target: sprite.Transform()}
	g.SetRenderer(r)

	require.NoError(t, g.Step(1.0/60))
	require.Len(t, r.last(), 1)
	assert.Same(t, sprite, r.last()[0])

	require.NoError(t, g.Step(1.0/60))
	require.Len(t, r.frames, 2)
	require.Len(t, r.last(), 1, "moved during render, re-submitted next frame")
	assert.InDelta(t, 50, sprite.Transform().WorldPosition()[0], 1e-9)

	require.NoError(t, g.Step(1.0/60))
	assert.Empty(t, r.last(), "nothing changed")
}

func TestMatrixProcessor_DestroyedObjectResubmitted(t *testing.T) {
	g := newRunningGame(t)
	r := &recordRenderer{}
	g.SetRenderer(r)
	sprite := &testSprite{}
	g.Scene().AddChildFromBuilder(NewGameObjectBuilder(g, "sprite").WithComponent(sprite))
	require.NoError(t, g.Step(1.0/60))

	sprite.GameObject().Destroy()
	require.NoError(t, g.Step(1.0/60))
	require.Len(t, r.last(), 1)
	assert.True(t, r.last()[0].(*testSprite).Destroyed())
}

func TestMatrixProcessor_ChildMovesWithParent(t *testing.T) {
	g := newRunningGame(t)
	r := &recordRenderer{}
	g.SetRenderer(r)
	var parent *GameObject
	child := &testSprite{}
	g.Scene().AddChildFromBuilder(NewGameObjectBuilder(g, "parent").
		Ref(&parent).
		WithChild(NewGameObjectBuilder(g, "child").WithComponent(child)))
	require.NoError(t, g.Step(1.0/60))

	parent.Transform().Translate(Vec3{0, 10, 0})
	require.NoError(t, g.Step(1.0/60))
	require.Len(t, r.last(), 1)
	assert.Same(t, child, r.last()[0])
	assert.InDelta(t, 10, child.Transform().WorldPosition()[1], 1e-9)
}
