package theworld

import (
	"reflect"
	"slices"

	"go.uber.org/zap"
)

// GameObject is a node in the scene tree. It owns an ordered list of
// components and a Transform. GameObjects are created by a
// GameObjectBuilder and destroyed with Destroy.
type GameObject struct {
	id        uint32
	name      string
	game      *Game
	transform *Transform

	components    []Component
	renderObjects []RenderObject
	zSortables    []ZSortable

	activeSelf        bool
	activeInHierarchy bool
	inScene           bool // activated through processEventByGroup
	initialized       bool // builder initializers have run
	destroyed         bool
}

func newGameObject(g *Game, name string) *GameObject {
	obj := &GameObject{
		id:                g.nextObjectID(),
		name:              name,
		game:              g,
		activeSelf:        true,
		activeInHierarchy: true,
	}
	obj.transform = newTransform(obj, g.matrices)
	return obj
}

// ID returns the per-game unique identifier of the object.
func (g *GameObject) ID() uint32 {
	return g.id
}

// Name returns the object's name.
func (g *GameObject) Name() string {
	return g.name
}

// Game returns the owning Game.
func (g *GameObject) Game() *Game {
	return g.game
}

// Transform returns the object's transform.
func (g *GameObject) Transform() *Transform {
	return g.transform
}

// Parent returns the parent GameObject, or nil for a scene root.
func (g *GameObject) Parent() *GameObject {
	if g.transform.parent == nil {
		return nil
	}
	return g.transform.parent.gameObject
}

// ActiveSelf reports the object's own active flag.
func (g *GameObject) ActiveSelf() bool {
	return g.activeSelf
}

// ActiveInHierarchy reports whether the object and all its ancestors are active.
func (g *GameObject) ActiveInHierarchy() bool {
	return g.activeInHierarchy
}

// Initialized reports whether the builder initializers have run.
func (g *GameObject) Initialized() bool {
	return g.initialized
}

// Destroyed reports whether Destroy was called on the object or an ancestor.
func (g *GameObject) Destroyed() bool {
	return g.destroyed
}

// Components returns the component list. The returned slice MUST NOT be mutated.
func (g *GameObject) Components() []Component {
	return g.components
}

// --- Components ---

// AddComponent attaches c to the object. It returns false, logging a
// warning, when c is a disallowed duplicate or its required components are
// missing. On an active object in the scene the component is awakened and
// its OnEnable, Start and Update are queued.
func (g *GameObject) AddComponent(c Component) bool {
	if g.destroyed {
		return false
	}
	if r, ok := c.(RequiresComponents); ok {
		for _, t := range r.RequiredComponents() {
			if !g.hasComponentOfType(t, c) {
				g.game.logger.Warn("component requirement not met, component not added",
					zap.String("object", g.name),
					zap.String("component", componentName(c)),
					zap.String("requires", t.String()))
				return false
			}
		}
	}
	if !g.attachComponent(c) {
		return false
	}
	if g.inScene && g.activeInHierarchy && c.base().Enabled() {
		b := c.base()
		b.events.tryCallAwake()
		if b.ActiveAndEnabled() {
			b.registerActivation()
		}
		g.game.sceneProcessor.tryStartProcessSyncedEvent()
	}
	return true
}

// attachComponent appends c unless a disallowed duplicate is already present.
func (g *GameObject) attachComponent(c Component) bool {
	if c == nil {
		panic("theworld: cannot add nil component")
	}
	b := c.base()
	if b.gameObject != nil {
		panic("theworld: component is already attached to a GameObject")
	}
	if d, ok := c.(DisallowMultiple); ok && d.DisallowMultipleComponent() {
		t := reflect.TypeOf(c)
		for _, existing := range g.components {
			if reflect.TypeOf(existing) == t {
				g.game.logger.Warn("component disallows multiple instances, keeping the first",
					zap.String("object", g.name),
					zap.String("component", componentName(c)))
				return false
			}
		}
	}
	b.attach(c, g)
	g.components = append(g.components, c)
	if ro, ok := c.(RenderObject); ok {
		g.renderObjects = append(g.renderObjects, ro)
		g.game.matrices.enqueueRenderObject(ro)
	}
	if zs, ok := c.(ZSortable); ok {
		g.zSortables = append(g.zSortables, zs)
	}
	return true
}

// removeComponent drops c from the component list and capability registries.
func (g *GameObject) removeComponent(c Component) {
	for i, existing := range g.components {
		if existing == c {
			copy(g.components[i:], g.components[i+1:])
			g.components[len(g.components)-1] = nil
			g.components = g.components[:len(g.components)-1]
			break
		}
	}
	if ro, ok := c.(RenderObject); ok {
		for i, existing := range g.renderObjects {
			if existing == ro {
				g.renderObjects = append(g.renderObjects[:i], g.renderObjects[i+1:]...)
				break
			}
		}
		g.game.matrices.enqueueRenderObject(ro)
	}
	if zs, ok := c.(ZSortable); ok {
		for i, existing := range g.zSortables {
			if existing == zs {
				g.zSortables = append(g.zSortables[:i], g.zSortables[i+1:]...)
				break
			}
		}
	}
}

// hasComponentOfType reports whether a component other than except matches t.
func (g *GameObject) hasComponentOfType(t reflect.Type, except Component) bool {
	for _, c := range g.components {
		if c != except && matchesType(c, t) {
			return true
		}
	}
	return false
}

// checkComponentRequirements removes components whose requirements are not
// met, restarting after each removal until nothing changes. Each pass
// removes at most one component, so the loop ends for any requirement graph.
func (g *GameObject) checkComponentRequirements() {
	for {
		removed := false
	scan:
		for _, c := range g.components {
			r, ok := c.(RequiresComponents)
			if !ok {
				continue
			}
			for _, t := range r.RequiredComponents() {
				if !g.hasComponentOfType(t, c) {
					g.game.logger.Warn("component requirement not met, removing component",
						zap.String("object", g.name),
						zap.String("component", componentName(c)),
						zap.String("requires", t.String()))
					g.removeComponent(c)
					removed = true
					break scan
				}
			}
		}
		if !removed {
			return
		}
	}
}

// GetComponent returns the first component of g assignable to T.
func GetComponent[T any](g *GameObject) (T, bool) {
	for _, c := range g.components {
		if v, ok := c.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// GetComponents returns every component of g assignable to T.
func GetComponents[T any](g *GameObject) []T {
	var out []T
	for _, c := range g.components {
		if v, ok := c.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// GetComponentInChildren searches g and its descendants depth-first and
// returns the first component assignable to T.
func GetComponentInChildren[T any](g *GameObject) (T, bool) {
	if v, ok := GetComponent[T](g); ok {
		return v, true
	}
	for _, child := range g.transform.children {
		if v, ok := GetComponentInChildren[T](child.gameObject); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// GetComponentsInChildren collects every component assignable to T in g and
// its descendants, depth-first.
func GetComponentsInChildren[T any](g *GameObject) []T {
	out := GetComponents[T](g)
	for _, child := range g.transform.children {
		out = append(out, GetComponentsInChildren[T](child.gameObject)...)
	}
	return out
}

// --- Hierarchy ---

// AddChildFromBuilder builds b under this object and activates the new
// subtree as one group.
func (g *GameObject) AddChildFromBuilder(b *GameObjectBuilder) *GameObject {
	obj := b.Build(g.transform)
	g.game.processEventByGroup([]*GameObjectBuilder{b})
	return obj
}

// SetActive sets the object's own active flag. Descendants whose effective
// active state changes receive Awake (first time), OnEnable or OnDisable.
func (g *GameObject) SetActive(active bool) {
	if g.destroyed || g.activeSelf == active {
		return
	}
	g.activeSelf = active
	g.refreshActiveInHierarchy()
}

// reparent moves the object under parent and re-evaluates active state.
func (g *GameObject) reparent(parent *Transform) {
	if g.transform.parent == nil && g.inScene {
		g.game.scene.removeRoot(g)
	}
	g.transform.attachTo(parent)
	if parent == nil && g.inScene {
		g.game.scene.addRoot(g)
	}
	g.refreshActiveInHierarchy()
}

func (g *GameObject) parentActive() bool {
	p := g.transform.parent
	return p == nil || p.gameObject.activeInHierarchy
}

// refreshActiveInHierarchy recomputes the effective active state of g's
// subtree and queues the resulting lifecycle events.
func (g *GameObject) refreshActiveInHierarchy() {
	want := g.activeSelf && g.parentActive()
	if want == g.activeInHierarchy {
		return
	}
	var changed []*GameObject
	collectActivationChange(g, want, &changed)
	if !g.inScene {
		return
	}
	if want {
		var comps []*BaseComponent
		for _, obj := range changed {
			comps = appendEnabledComponents(comps, obj)
		}
		g.game.activateComponents(comps)
		return
	}
	for _, obj := range changed {
		for _, c := range obj.components {
			if b := c.base(); !b.disabled {
				b.registerDeactivation()
			}
		}
	}
	g.game.sceneProcessor.tryStartProcessSyncedEvent()
}

// collectActivationChange flips activeInHierarchy on the part of the subtree
// that follows g, stopping at objects that are inactive themselves.
func collectActivationChange(g *GameObject, active bool, out *[]*GameObject) {
	if active && !g.activeSelf {
		return
	}
	if g.activeInHierarchy == active {
		return
	}
	g.activeInHierarchy = active
	*out = append(*out, g)
	for _, child := range g.transform.children {
		collectActivationChange(child.gameObject, active, out)
	}
}

func appendEnabledComponents(dst []*BaseComponent, g *GameObject) []*BaseComponent {
	for _, c := range g.components {
		if b := c.base(); !b.disabled && !b.destroyed {
			dst = append(dst, b)
		}
	}
	return dst
}

// Destroy destroys the object and its descendants. OnDisable and OnDestroy
// are queued for every component; the subtree is detached from the scene
// during the next frame's removal phase.
func (g *GameObject) Destroy() {
	if g.destroyed {
		return
	}
	g.markDestroyed()
	g.game.scene.queueRemoval(g)
	g.game.sceneProcessor.tryStartProcessSyncedEvent()
}

func (g *GameObject) markDestroyed() {
	g.destroyed = true
	for _, c := range g.components {
		c.base().destroyInternal(false)
	}
	for _, child := range g.transform.children {
		child.gameObject.markDestroyed()
	}
}

// forEach visits g and its descendants depth-first, parents first.
func (g *GameObject) forEach(fn func(*GameObject)) {
	fn(g)
	for _, child := range g.transform.children {
		child.gameObject.forEach(fn)
	}
}

// --- Physics dispatch ---

// Collision2D describes a contact reported by the physics collaborator.
type Collision2D struct {
	Other    *GameObject
	ContactX float64
	ContactY float64
}

// Collision and trigger handlers, called synchronously by SendCollision2D.
type (
	CollisionEnter2D interface{ OnCollisionEnter2D(Collision2D) }
	CollisionStay2D  interface{ OnCollisionStay2D(Collision2D) }
	CollisionExit2D  interface{ OnCollisionExit2D(Collision2D) }
	TriggerEnter2D   interface{ OnTriggerEnter2D(Collision2D) }
	TriggerStay2D    interface{ OnTriggerStay2D(Collision2D) }
	TriggerExit2D    interface{ OnTriggerExit2D(Collision2D) }
)

// SendCollision2D delivers a collision or trigger event to every active and
// enabled component of g implementing the matching handler, then forwards
// it to the game's EventSink.
func (g *GameObject) SendCollision2D(kind EventType, col Collision2D) {
	if g.destroyed || !g.activeInHierarchy {
		return
	}
	// Handlers may add or destroy components; dispatch to the list as it
	// was when the event arrived.
	for _, c := range slices.Clone(g.components) {
		if b := c.base(); b.gameObject != g || !b.ActiveAndEnabled() {
			continue
		}
		switch kind {
		case EventCollisionEnter2D:
			if h, ok := c.(CollisionEnter2D); ok {
				h.OnCollisionEnter2D(col)
			}
		case EventCollisionStay2D:
			if h, ok := c.(CollisionStay2D); ok {
				h.OnCollisionStay2D(col)
			}
		case EventCollisionExit2D:
			if h, ok := c.(CollisionExit2D); ok {
				h.OnCollisionExit2D(col)
			}
		case EventTriggerEnter2D:
			if h, ok := c.(TriggerEnter2D); ok {
				h.OnTriggerEnter2D(col)
			}
		case EventTriggerStay2D:
			if h, ok := c.(TriggerStay2D); ok {
				h.OnTriggerStay2D(col)
			}
		case EventTriggerExit2D:
			if h, ok := c.(TriggerExit2D); ok {
				h.OnTriggerExit2D(col)
			}
		}
	}
	if sink := g.game.sink; sink != nil {
		ev := Event{Type: kind, ObjectID: g.id, Name: g.name, ContactX: col.ContactX, ContactY: col.ContactY}
		if col.Other != nil {
			ev.OtherID = col.Other.id
		}
		sink.EmitEvent(ev)
	}
}

func componentName(c Component) string {
	return reflect.TypeOf(c).String()
}
