package theworld

import (
	"iter"
	"reflect"

	"go.uber.org/zap"
)

// Component is anything attached to a GameObject. Implement it by embedding
// BaseComponent in a struct and adding any of the lifecycle hook methods
// (Awake, OnEnable, Start, Update, OnDisable, OnDestroy).
type Component interface {
	base() *BaseComponent
}

// Lifecycle hooks. A component implements only the hooks it needs; the
// scheduler never registers an event for a hook that is absent.
type (
	// Awaker is called once, synchronously, when the component first becomes
	// reachable through an active hierarchy.
	Awaker interface{ Awake() }
	// Starter is called once before the first Update.
	Starter interface{ Start() }
	// Updater is called once per frame while the component is enabled.
	Updater interface{ Update() }
	// Enabler is called when the component becomes enabled and active.
	Enabler interface{ OnEnable() }
	// Disabler is called when the component becomes disabled or inactive.
	Disabler interface{ OnDisable() }
	// Destroyer is called once when the component is destroyed.
	Destroyer interface{ OnDestroy() }
)

// Component options, also expressed as optional interfaces.
type (
	// DisallowMultiple prevents a second component of the same type on one
	// GameObject when DisallowMultipleComponent returns true.
	DisallowMultiple interface{ DisallowMultipleComponent() bool }
	// RequiresComponents lists types that must be present on the same
	// GameObject. Interface types match any component implementing them.
	RequiresComponents interface{ RequiredComponents() []reflect.Type }
	// Ordered sets the sort key for start and update registration.
	// Lower values run first; the default is 0.
	Ordered interface{ ExecutionOrder() int }
)

// ZSortable components are notified when their transform's world z changes.
type ZSortable interface {
	OnSortByZAxis(z float64)
}

// TypeOf returns the reflect.Type for T, for use in RequiredComponents.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// BaseComponent carries the engine-side state of a component. The zero value
// is an enabled, unattached component.
type BaseComponent struct {
	self       Component
	gameObject *GameObject
	events     componentEventContainer
	order      int

	disabled        bool
	awakened        bool
	started         bool
	enabledNotified bool
	destroyed       bool
	detachOnDestroy bool
}

func (b *BaseComponent) base() *BaseComponent { return b }

// GameObject returns the GameObject this component is attached to.
func (b *BaseComponent) GameObject() *GameObject {
	return b.gameObject
}

// Transform returns the transform of the owning GameObject.
func (b *BaseComponent) Transform() *Transform {
	if b.gameObject == nil {
		return nil
	}
	return b.gameObject.transform
}

// Game returns the Game that owns this component.
func (b *BaseComponent) Game() *Game {
	if b.gameObject == nil {
		return nil
	}
	return b.gameObject.game
}

// Logger returns the game's logger with the component's object attached.
func (b *BaseComponent) Logger() *zap.Logger {
	g := b.Game()
	if g == nil {
		return zap.NewNop()
	}
	return g.logger.With(zap.String("object", b.gameObject.name))
}

// Enabled reports whether the component itself is enabled.
func (b *BaseComponent) Enabled() bool {
	return !b.disabled
}

// Awakened reports whether Awake has been delivered.
func (b *BaseComponent) Awakened() bool {
	return b.awakened
}

// Destroyed reports whether Destroy was called on the component or its
// GameObject.
func (b *BaseComponent) Destroyed() bool {
	return b.destroyed
}

// ActiveAndEnabled reports whether the component is enabled and its
// GameObject is active in the hierarchy.
func (b *BaseComponent) ActiveAndEnabled() bool {
	return !b.disabled && !b.destroyed && b.gameObject != nil && b.gameObject.activeInHierarchy
}

// SetEnabled enables or disables the component. Lifecycle events are queued
// only once the GameObject has been activated into a scene.
func (b *BaseComponent) SetEnabled(enabled bool) {
	if b.destroyed || b.disabled == !enabled {
		return
	}
	b.disabled = !enabled
	g := b.gameObject
	if g == nil || !g.inScene || !g.activeInHierarchy {
		return
	}
	if enabled {
		b.events.tryCallAwake()
		b.registerActivation()
	} else {
		b.registerDeactivation()
	}
	g.game.sceneProcessor.tryStartProcessSyncedEvent()
}

// Destroy removes the component from its GameObject. OnDisable and OnDestroy
// are queued; the component is detached when OnDestroy runs.
func (b *BaseComponent) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyInternal(true)
	if g := b.Game(); g != nil {
		g.sceneProcessor.tryStartProcessSyncedEvent()
	}
}

// StartCoroutine starts body as a coroutine owned by this component. The
// body runs synchronously up to its first yield.
func (b *BaseComponent) StartCoroutine(body iter.Seq[YieldInstruction]) *Coroutine {
	g := b.Game()
	if g == nil {
		panic("theworld: StartCoroutine on a component with no GameObject")
	}
	return g.coroutines.start(b, body)
}

// StopCoroutine stops a coroutine started by this component.
// Panics if the coroutine is owned by another component.
func (b *BaseComponent) StopCoroutine(c *Coroutine) {
	if c == nil {
		return
	}
	if c.owner != b {
		panic("theworld: Coroutine is not owned by this component")
	}
	if g := b.Game(); g != nil {
		g.coroutines.removeCoroutine(c)
	}
}

// StopAllCoroutines stops every coroutine started by this component.
func (b *BaseComponent) StopAllCoroutines() {
	if g := b.Game(); g != nil {
		g.coroutines.removeAllOwnedBy(b)
	}
}

// attach binds the component to g. Called once, before any lifecycle hook.
func (b *BaseComponent) attach(self Component, g *GameObject) {
	b.self = self
	b.gameObject = g
	if o, ok := self.(Ordered); ok {
		b.order = o.ExecutionOrder()
	}
	b.events = componentEventContainer{comp: b, processor: g.game.sceneProcessor}
}

// registerActivation queues the events that follow becoming active and
// enabled: OnEnable (synced), Start and Update (non-synced).
func (b *BaseComponent) registerActivation() {
	b.events.tryRegisterOnEnable()
	b.events.tryRegisterStart()
	b.events.tryRegisterUpdate()
}

func (b *BaseComponent) registerDeactivation() {
	b.events.tryRegisterOnDisable()
	b.events.tryUnregisterStart()
	b.events.tryUnregisterUpdate()
}

// destroyInternal queues OnDisable/OnDestroy and marks the component
// destroyed. detach removes it from the GameObject once OnDestroy has run;
// whole-object destruction keeps the component list intact.
func (b *BaseComponent) destroyInternal(detach bool) {
	if b.destroyed {
		return
	}
	b.registerDeactivation()
	if b.awakened {
		b.events.tryRegisterOnDestroy()
	}
	if g := b.Game(); g != nil {
		g.coroutines.removeAllOwnedBy(b)
	}
	b.destroyed = true
	b.detachOnDestroy = detach
	if detach && !b.awakened && b.gameObject != nil {
		b.gameObject.removeComponent(b.self)
	}
}

// matchesType reports whether c satisfies the required type t.
func matchesType(c Component, t reflect.Type) bool {
	ct := reflect.TypeOf(c)
	if ct == t {
		return true
	}
	if t.Kind() == reflect.Interface {
		return ct.Implements(t)
	}
	return false
}
