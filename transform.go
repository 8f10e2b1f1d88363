package theworld

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform holds the local position, rotation and scale of a GameObject and
// its place in the hierarchy. The parent pointer is a back-reference; a
// parent owns its children through the children slice.
//
// The world matrix is only valid after the TransformMatrixProcessor has
// recomputed the transform and its ancestors. Use ComputeWorldMatrix for an
// up-to-date value in between.
type Transform struct {
	gameObject *GameObject
	processor  *TransformMatrixProcessor

	parent   *Transform
	children []*Transform

	position Vec3
	rotation Quat
	scale    Vec3

	worldMatrix mgl64.Mat4
	worldZ      float64

	isRegisteredToProcessor bool
}

func newTransform(g *GameObject, processor *TransformMatrixProcessor) *Transform {
	return &Transform{
		gameObject:  g,
		processor:   processor,
		rotation:    mgl64.QuatIdent(),
		scale:       Vec3{1, 1, 1},
		worldMatrix: mgl64.Ident4(),
	}
}

// GameObject returns the GameObject this transform belongs to.
func (t *Transform) GameObject() *GameObject {
	return t.gameObject
}

// Parent returns the parent transform, or nil for a scene root.
func (t *Transform) Parent() *Transform {
	return t.parent
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (t *Transform) Children() []*Transform {
	return t.children
}

// ChildCount returns the number of children.
func (t *Transform) ChildCount() int {
	return len(t.children)
}

// Child returns the child at the given index.
func (t *Transform) Child(index int) *Transform {
	return t.children[index]
}

// SetParent moves this transform under parent (nil moves it to the scene
// root). Active state and lifecycle events follow the new hierarchy.
// Panics if parent is this transform or one of its descendants.
func (t *Transform) SetParent(parent *Transform) {
	if parent == t.parent {
		return
	}
	if parent != nil && isAncestor(t, parent) {
		panic("theworld: setting parent would create a cycle")
	}
	t.gameObject.reparent(parent)
}

// attachTo links t under parent without any lifecycle processing.
func (t *Transform) attachTo(parent *Transform) {
	if t.parent != nil {
		t.parent.removeChildByPtr(t)
	}
	t.parent = parent
	if parent != nil {
		parent.children = append(parent.children, t)
		if g := t.gameObject.game; g != nil && g.debug {
			debugCheckTreeDepth(g, t)
			debugCheckChildCount(g, parent)
		}
	}
	t.markDirty()
}

// removeChildByPtr removes child from t.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (t *Transform) removeChildByPtr(child *Transform) {
	for i, c := range t.children {
		if c == child {
			copy(t.children[i:], t.children[i+1:])
			t.children[len(t.children)-1] = nil
			t.children = t.children[:len(t.children)-1]
			return
		}
	}
}

// isAncestor reports whether candidate is t or an ancestor of t.
func isAncestor(candidate, t *Transform) bool {
	for p := t; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// --- Local properties ---

// Position returns the local position.
func (t *Transform) Position() Vec3 {
	return t.position
}

// SetPosition sets the local position and marks the transform dirty.
func (t *Transform) SetPosition(p Vec3) {
	t.position = p
	t.markDirty()
}

// SetPositionXYZ sets the local position from components.
func (t *Transform) SetPositionXYZ(x, y, z float64) {
	t.SetPosition(Vec3{x, y, z})
}

// Translate moves the transform by d in local space.
func (t *Transform) Translate(d Vec3) {
	t.SetPosition(t.position.Add(d))
}

// Rotation returns the local rotation.
func (t *Transform) Rotation() Quat {
	return t.rotation
}

// SetRotation sets the local rotation and marks the transform dirty.
func (t *Transform) SetRotation(q Quat) {
	t.rotation = q
	t.markDirty()
}

// SetRotationZ sets the local rotation to angle radians around the z axis.
func (t *Transform) SetRotationZ(angle float64) {
	t.SetRotation(mgl64.QuatRotate(angle, Vec3{0, 0, 1}))
}

// RotationZ returns the rotation around the z axis in radians.
func (t *Transform) RotationZ() float64 {
	m := t.rotation.Mat4()
	return math.Atan2(m.At(1, 0), m.At(0, 0))
}

// Scale returns the local scale.
func (t *Transform) Scale() Vec3 {
	return t.scale
}

// SetScale sets the local scale and marks the transform dirty.
func (t *Transform) SetScale(s Vec3) {
	t.scale = s
	t.markDirty()
}

// MarkDirty forces a world matrix recomputation on the next frame. Useful
// after bulk changes made through other means.
func (t *Transform) MarkDirty() {
	t.markDirty()
}

func (t *Transform) markDirty() {
	if t.processor != nil {
		t.processor.enqueueTransformToUpdate(t)
	}
}

// --- Matrices ---

// LocalMatrix computes Translate * Rotate * Scale.
func (t *Transform) LocalMatrix() mgl64.Mat4 {
	tr := mgl64.Translate3D(t.position[0], t.position[1], t.position[2])
	sc := mgl64.Scale3D(t.scale[0], t.scale[1], t.scale[2])
	return tr.Mul4(t.rotation.Mat4()).Mul4(sc)
}

// WorldMatrix returns the world matrix as of the last processor update.
func (t *Transform) WorldMatrix() mgl64.Mat4 {
	return t.worldMatrix
}

// WorldPosition returns the translation part of the world matrix.
func (t *Transform) WorldPosition() Vec3 {
	return t.worldMatrix.Col(3).Vec3()
}

// ComputeWorldMatrix walks the ancestor chain and returns the current world
// matrix without touching the cached value.
func (t *Transform) ComputeWorldMatrix() mgl64.Mat4 {
	m := t.LocalMatrix()
	for p := t.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// LocalToWorld converts a local-space point to world space.
func (t *Transform) LocalToWorld(p Vec3) Vec3 {
	return mgl64.TransformCoordinate(p, t.worldMatrix)
}

// WorldToLocal converts a world-space point to this transform's local space.
func (t *Transform) WorldToLocal(p Vec3) Vec3 {
	return mgl64.TransformCoordinate(p, t.worldMatrix.Inv())
}

// updateWorldMatrix recomputes the world matrix of t and every descendant.
func (t *Transform) updateWorldMatrix() {
	local := t.LocalMatrix()
	if t.parent != nil {
		t.worldMatrix = t.parent.worldMatrix.Mul4(local)
	} else {
		t.worldMatrix = local
	}
	g := t.gameObject
	if z := t.worldMatrix.At(2, 3); z != t.worldZ {
		t.worldZ = z
		for _, zs := range slices.Clone(g.zSortables) {
			if slices.Contains(g.zSortables, zs) {
				zs.OnSortByZAxis(z)
			}
		}
	}
	for _, ro := range g.renderObjects {
		t.processor.enqueueRenderObject(ro)
	}
	for _, child := range t.children {
		child.updateWorldMatrix()
	}
}
