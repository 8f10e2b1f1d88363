package theworld

// eventKind identifies the lifecycle hook a componentEvent delivers.
type eventKind uint8

const (
	eventOnEnable eventKind = iota
	eventOnDisable
	eventOnDestroy
	eventStart
	eventUpdate
)

func (k eventKind) String() string {
	switch k {
	case eventOnEnable:
		return "onEnable"
	case eventOnDisable:
		return "onDisable"
	case eventOnDestroy:
		return "onDestroy"
	case eventStart:
		return "start"
	case eventUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// componentEvent is one pending hook invocation in a SceneProcessor queue.
type componentEvent struct {
	kind  eventKind
	order int
	seq   uint64
	run   func()
}

// componentEventContainer guards a component's registrations so that each
// hook is queued at most once per trigger. A non-nil event pointer means the
// event is pending in the scene processor.
type componentEventContainer struct {
	comp      *BaseComponent
	processor *SceneProcessor

	enableEv  *componentEvent
	disableEv *componentEvent
	destroyEv *componentEvent
	startEv   *componentEvent
	updateEv  *componentEvent
}

// tryCallAwake runs Awake immediately, at most once.
func (e *componentEventContainer) tryCallAwake() {
	c := e.comp
	if c.awakened || c.destroyed {
		return
	}
	c.awakened = true
	if h, ok := c.self.(Awaker); ok {
		h.Awake()
	}
}

// tryRegisterOnEnable queues OnEnable. A pending OnDisable is cancelled
// instead, so a disable/enable toggle between drains delivers nothing.
func (e *componentEventContainer) tryRegisterOnEnable() {
	c := e.comp
	if c.destroyed || e.enableEv != nil {
		return
	}
	if e.disableEv != nil {
		e.processor.removeSyncedEvent(e.disableEv)
		e.disableEv = nil
		return
	}
	if c.enabledNotified {
		return
	}
	e.enableEv = e.processor.newEvent(eventOnEnable, c.order, e.runOnEnable)
	e.processor.addSyncedEvent(e.enableEv)
}

func (e *componentEventContainer) runOnEnable() {
	e.enableEv = nil
	c := e.comp
	if c.enabledNotified {
		return
	}
	c.enabledNotified = true
	if h, ok := c.self.(Enabler); ok {
		h.OnEnable()
	}
}

// tryRegisterOnDisable queues OnDisable, or cancels a pending OnEnable.
func (e *componentEventContainer) tryRegisterOnDisable() {
	c := e.comp
	if c.destroyed || e.disableEv != nil {
		return
	}
	if e.enableEv != nil {
		e.processor.removeSyncedEvent(e.enableEv)
		e.enableEv = nil
		return
	}
	if !c.enabledNotified {
		return
	}
	e.disableEv = e.processor.newEvent(eventOnDisable, c.order, e.runOnDisable)
	e.processor.addSyncedEvent(e.disableEv)
}

func (e *componentEventContainer) runOnDisable() {
	e.disableEv = nil
	c := e.comp
	if !c.enabledNotified {
		return
	}
	c.enabledNotified = false
	if h, ok := c.self.(Disabler); ok {
		h.OnDisable()
	}
}

func (e *componentEventContainer) tryRegisterOnDestroy() {
	c := e.comp
	if c.destroyed || e.destroyEv != nil {
		return
	}
	e.destroyEv = e.processor.newEvent(eventOnDestroy, c.order, e.runOnDestroy)
	e.processor.addSyncedEvent(e.destroyEv)
}

func (e *componentEventContainer) runOnDestroy() {
	e.destroyEv = nil
	c := e.comp
	if h, ok := c.self.(Destroyer); ok {
		h.OnDestroy()
	}
	if c.detachOnDestroy && c.gameObject != nil {
		c.gameObject.removeComponent(c.self)
	}
}

// tryRegisterStart queues Start unless it already ran or is pending.
func (e *componentEventContainer) tryRegisterStart() {
	c := e.comp
	if c.destroyed || c.started || e.startEv != nil {
		return
	}
	if _, ok := c.self.(Starter); !ok {
		c.started = true
		return
	}
	e.startEv = e.processor.newEvent(eventStart, c.order, e.runStart)
	e.processor.addNonSyncedEvent(e.startEv)
}

func (e *componentEventContainer) runStart() {
	e.processor.removeNonSyncedEvent(e.startEv)
	e.startEv = nil
	c := e.comp
	if c.started {
		return
	}
	c.started = true
	c.self.(Starter).Start()
}

func (e *componentEventContainer) tryUnregisterStart() {
	if e.startEv == nil {
		return
	}
	e.processor.removeNonSyncedEvent(e.startEv)
	e.startEv = nil
}

// tryRegisterUpdate queues Update; it stays queued until unregistered.
func (e *componentEventContainer) tryRegisterUpdate() {
	c := e.comp
	if c.destroyed || e.updateEv != nil {
		return
	}
	if _, ok := c.self.(Updater); !ok {
		return
	}
	e.updateEv = e.processor.newEvent(eventUpdate, c.order, e.runUpdate)
	e.processor.addNonSyncedEvent(e.updateEv)
}

func (e *componentEventContainer) runUpdate() {
	// Update never precedes a pending Start.
	if e.startEv != nil {
		return
	}
	e.comp.self.(Updater).Update()
}

func (e *componentEventContainer) tryUnregisterUpdate() {
	if e.updateEv == nil {
		return
	}
	e.processor.removeNonSyncedEvent(e.updateEv)
	e.updateEv = nil
}
