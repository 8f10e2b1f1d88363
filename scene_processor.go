package theworld

// SceneProcessor holds the pending component events of one Game.
//
// Synced events (OnEnable, OnDisable, OnDestroy) are structural and are
// drained to exhaustion whenever the tree changes. Non-synced events (Start,
// Update) are drained once per frame.
type SceneProcessor struct {
	synced    mutIterableCollection
	nonSynced mutIterableCollection
	seq       uint64

	processingSynced bool
}

func newSceneProcessor() *SceneProcessor {
	return &SceneProcessor{}
}

// newEvent allocates an event with the next registration sequence number.
func (p *SceneProcessor) newEvent(kind eventKind, order int, run func()) *componentEvent {
	p.seq++
	return &componentEvent{kind: kind, order: order, seq: p.seq, run: run}
}

func (p *SceneProcessor) addSyncedEvent(ev *componentEvent) {
	p.synced.insert(ev)
}

func (p *SceneProcessor) removeSyncedEvent(ev *componentEvent) {
	p.synced.remove(ev)
}

func (p *SceneProcessor) addNonSyncedEvent(ev *componentEvent) {
	p.nonSynced.insert(ev)
}

func (p *SceneProcessor) removeNonSyncedEvent(ev *componentEvent) {
	p.nonSynced.remove(ev)
}

// tryStartProcessSyncedEvent drains the synced queue. A call made while a
// drain is already in progress returns immediately; the outer drain picks
// up anything queued by the callbacks it runs.
func (p *SceneProcessor) tryStartProcessSyncedEvent() {
	if p.processingSynced {
		return
	}
	p.processingSynced = true
	defer func() {
		p.processingSynced = false
	}()
	for ev := p.synced.popFirst(); ev != nil; ev = p.synced.popFirst() {
		ev.run()
	}
	p.synced.reset()
}

// startProcessNonSyncedEvent runs every pending Start and Update in order.
// Events registered during the pass, including an Update re-registered by a
// component toggling itself, first run on the next pass.
func (p *SceneProcessor) startProcessNonSyncedEvent() {
	limit := p.seq
	p.nonSynced.forEach(func(ev *componentEvent) {
		if ev.seq > limit {
			return
		}
		ev.run()
	})
}

// PendingSynced returns the number of queued structural events.
func (p *SceneProcessor) PendingSynced() int {
	return p.synced.size()
}

// PendingNonSynced returns the number of queued Start and Update events.
func (p *SceneProcessor) PendingNonSynced() int {
	return p.nonSynced.size()
}
