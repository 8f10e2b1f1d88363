package theworld

import "iter"

// compactThreshold is the tombstone count above which the run order is
// compacted.
const compactThreshold = 16

// coroutineHandle addresses a slot in the coroutine arena. A handle is stale
// once the slot's generation has moved on.
type coroutineHandle struct {
	index int32
	gen   uint32
}

type coroutineSlot struct {
	gen uint32
	co  *Coroutine
}

// CoroutineProcessor owns the live coroutines of one Game and resumes them
// once per frame according to the instruction each one is parked on.
type CoroutineProcessor struct {
	slots      []coroutineSlot
	free       []int32
	order      []coroutineHandle // start order; stale handles are tombstones
	tombstones int
	live       int
}

func newCoroutineProcessor() *CoroutineProcessor {
	return &CoroutineProcessor{}
}

// Count returns the number of live coroutines.
func (p *CoroutineProcessor) Count() int {
	return p.live
}

func (p *CoroutineProcessor) get(h coroutineHandle) *Coroutine {
	if int(h.index) >= len(p.slots) {
		return nil
	}
	s := &p.slots[h.index]
	if s.gen != h.gen {
		return nil
	}
	return s.co
}

// start registers body and runs it up to its first yield.
func (p *CoroutineProcessor) start(owner *BaseComponent, body iter.Seq[YieldInstruction]) *Coroutine {
	c := newCoroutine(owner, body)
	var idx int32
	if n := len(p.free); n > 0 {
		idx = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		idx = int32(len(p.slots))
		p.slots = append(p.slots, coroutineSlot{})
	}
	p.slots[idx].co = c
	c.handle = coroutineHandle{index: idx, gen: p.slots[idx].gen}
	p.order = append(p.order, c.handle)
	p.live++

	if !c.resume() {
		p.release(c)
	}
	return c
}

// release frees the coroutine's slot. The run-order entry becomes a tombstone.
func (p *CoroutineProcessor) release(c *Coroutine) {
	if c.released {
		return
	}
	c.released = true
	s := &p.slots[c.handle.index]
	if s.gen != c.handle.gen {
		return
	}
	s.gen++
	s.co = nil
	p.free = append(p.free, c.handle.index)
	p.tombstones++
	p.live--
}

// removeCoroutine stops c. The slot is freed immediately; a body that is
// executing right now finishes its current step first.
func (p *CoroutineProcessor) removeCoroutine(c *Coroutine) {
	if c.released {
		return
	}
	p.release(c)
	c.cancel()
}

func (p *CoroutineProcessor) removeAllOwnedBy(owner *BaseComponent) {
	for i := range p.slots {
		if c := p.slots[i].co; c != nil && c.owner == owner {
			p.removeCoroutine(c)
		}
	}
}

func (p *CoroutineProcessor) step(c *Coroutine) {
	if !c.resume() {
		p.release(c)
	}
}

// updateAfterProcess resumes coroutines whose instruction is satisfied.
// Coroutines started during the pass are not resumed until the next one.
func (p *CoroutineProcessor) updateAfterProcess(dt float64) {
	n := len(p.order)
	for i := 0; i < n; i++ {
		c := p.get(p.order[i])
		if c == nil {
			continue
		}
		switch ins := c.current.(type) {
		case nil:
			p.step(c)
		case WaitForSeconds:
			c.elapsed += dt
			if c.elapsed >= ins.Seconds {
				c.elapsed = 0
				p.step(c)
			}
		case waitUntil:
			if ins.pred() {
				p.step(c)
			}
		case waitWhile:
			if !ins.pred() {
				p.step(c)
			}
		case *TweenGroup:
			ins.Update(float32(dt))
			if ins.Done {
				p.step(c)
			}
		case WaitForEndOfFrame:
			// resumed by endFrameAfterProcess
		}
	}
	p.tryCompact()
}

// endFrameAfterProcess resumes coroutines parked on WaitForEndOfFrame.
func (p *CoroutineProcessor) endFrameAfterProcess() {
	n := len(p.order)
	for i := 0; i < n; i++ {
		c := p.get(p.order[i])
		if c == nil {
			continue
		}
		if _, ok := c.current.(WaitForEndOfFrame); ok {
			p.step(c)
		}
	}
	p.tryCompact()
}

// tryCompact drops stale run-order entries once enough have accumulated.
// The surviving entries keep their relative order.
func (p *CoroutineProcessor) tryCompact() {
	if p.tombstones <= compactThreshold {
		return
	}
	kept := p.order[:0]
	for _, h := range p.order {
		if p.get(h) != nil {
			kept = append(kept, h)
		}
	}
	clear(p.order[len(kept):])
	p.order = kept
	p.tombstones = 0
}
