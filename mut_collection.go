package theworld

import (
	"cmp"
	"slices"
)

// mutIterableCollection is an ordered set of component events that may be
// mutated while it is being iterated. Events are ordered by execution order,
// then by registration sequence; the sequence makes every key unique.
type mutIterableCollection struct {
	items []*componentEvent
}

func compareEvents(a, b *componentEvent) int {
	if c := cmp.Compare(a.order, b.order); c != 0 {
		return c
	}
	return cmp.Compare(a.seq, b.seq)
}

func (c *mutIterableCollection) insert(ev *componentEvent) {
	i, found := slices.BinarySearchFunc(c.items, ev, compareEvents)
	if found {
		return
	}
	c.items = slices.Insert(c.items, i, ev)
}

func (c *mutIterableCollection) remove(ev *componentEvent) bool {
	i, found := slices.BinarySearchFunc(c.items, ev, compareEvents)
	if !found || c.items[i] != ev {
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	return true
}

// popFirst removes and returns the lowest-ordered event, or nil when empty.
func (c *mutIterableCollection) popFirst() *componentEvent {
	if len(c.items) == 0 {
		return nil
	}
	ev := c.items[0]
	c.items = slices.Delete(c.items, 0, 1)
	return ev
}

// forEach visits events in order. After each callback the cursor is
// re-resolved against the current contents: events inserted after the
// cursor are visited in this pass, removed events are not.
func (c *mutIterableCollection) forEach(fn func(*componentEvent)) {
	var last *componentEvent
	for {
		i := 0
		if last != nil {
			var found bool
			i, found = slices.BinarySearchFunc(c.items, last, compareEvents)
			if found {
				i++
			}
		}
		if i >= len(c.items) {
			return
		}
		ev := c.items[i]
		last = ev
		fn(ev)
	}
}

func (c *mutIterableCollection) size() int {
	return len(c.items)
}

func (c *mutIterableCollection) reset() {
	clear(c.items)
	c.items = c.items[:0]
}
