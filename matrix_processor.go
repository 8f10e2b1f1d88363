package theworld

// RenderObject is a component the renderer draws. Renderers type-switch on
// the concrete type. Visible reports whether it should be on screen.
type RenderObject interface {
	Component
	Visible() bool
}

// Renderer consumes the render objects that changed this frame. It is
// retained-mode: objects not submitted keep their previous on-screen state.
type Renderer interface {
	Render(objects []RenderObject, scene *Scene, camera *Camera)
}

// renderSet is an insertion-ordered set of render objects.
type renderSet struct {
	items []RenderObject
	index map[RenderObject]struct{}
}

func newRenderSet() *renderSet {
	return &renderSet{index: make(map[RenderObject]struct{})}
}

func (s *renderSet) add(o RenderObject) {
	if _, ok := s.index[o]; ok {
		return
	}
	s.index[o] = struct{}{}
	s.items = append(s.items, o)
}

func (s *renderSet) reset() {
	clear(s.items)
	s.items = s.items[:0]
	clear(s.index)
}

// TransformMatrixProcessor tracks transforms whose world matrix must be
// recomputed and double-buffers the set of render objects to re-submit.
//
// Writes made before update land in the buffer update returns. Writes made
// after update (and before flush) land in the other buffer and are returned
// by the following frame's update.
type TransformMatrixProcessor struct {
	pending []*Transform
	read    *renderSet
	write   *renderSet
}

func newTransformMatrixProcessor() *TransformMatrixProcessor {
	return &TransformMatrixProcessor{
		read:  newRenderSet(),
		write: newRenderSet(),
	}
}

// enqueueTransformToUpdate schedules t for recomputation. Idempotent until
// the next update.
func (p *TransformMatrixProcessor) enqueueTransformToUpdate(t *Transform) {
	if t.isRegisteredToProcessor {
		return
	}
	t.isRegisteredToProcessor = true
	p.pending = append(p.pending, t)
}

// enqueueRenderObject schedules o for submission to the renderer.
func (p *TransformMatrixProcessor) enqueueRenderObject(o RenderObject) {
	p.write.add(o)
}

// update recomputes every pending transform and its descendants, then swaps
// the render buffers and returns the objects to render this frame.
// A pending transform below another pending transform is recomputed twice;
// the second pass yields the same matrix.
func (p *TransformMatrixProcessor) update() []RenderObject {
	for i := 0; i < len(p.pending); i++ {
		t := p.pending[i]
		t.isRegisteredToProcessor = false
		t.updateWorldMatrix()
	}
	clear(p.pending)
	p.pending = p.pending[:0]

	p.read, p.write = p.write, p.read
	return p.read.items
}

// flush clears the buffer returned by update once the renderer is done with it.
func (p *TransformMatrixProcessor) flush() {
	p.read.reset()
}

// PendingTransforms returns the number of transforms awaiting recomputation.
func (p *TransformMatrixProcessor) PendingTransforms() int {
	return len(p.pending)
}
