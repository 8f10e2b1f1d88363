package theworld

// listener is a node in an EventContainer's intrusive list. A removed node
// keeps its next pointer so an in-flight Invoke can walk past it.
type listener[T any] struct {
	fn      func(T)
	seq     uint64
	prev    *listener[T]
	next    *listener[T]
	removed bool
}

// EventContainer is an ordered multicast listener list. Listeners fire in
// insertion order; removal is O(1) through the handle returned by AddListener.
// Listeners may add or remove listeners while an Invoke is in progress:
// removed listeners are skipped, added listeners first fire on the next Invoke.
type EventContainer[T any] struct {
	head, tail *listener[T]
	count      int
	nextSeq    uint64
}

// ListenerHandle allows removing a listener registered on an EventContainer.
type ListenerHandle struct {
	remove func()
}

// Remove unregisters the listener so it no longer fires. Safe to call more
// than once and on the zero handle.
func (h ListenerHandle) Remove() {
	if h.remove != nil {
		h.remove()
	}
}

// AddListener appends fn to the listener list.
// Panics if fn is nil.
func (e *EventContainer[T]) AddListener(fn func(T)) ListenerHandle {
	if fn == nil {
		panic("theworld: cannot add nil listener")
	}
	e.nextSeq++
	l := &listener[T]{fn: fn, seq: e.nextSeq, prev: e.tail}
	if e.tail != nil {
		e.tail.next = l
	} else {
		e.head = l
	}
	e.tail = l
	e.count++
	return ListenerHandle{remove: func() { e.removeListener(l) }}
}

func (e *EventContainer[T]) removeListener(l *listener[T]) {
	if l.removed {
		return
	}
	l.removed = true
	if l.prev != nil {
		l.prev.next = l.next
	} else {
		e.head = l.next
	}
	if l.next != nil {
		l.next.prev = l.prev
	} else {
		e.tail = l.prev
	}
	l.prev = nil
	e.count--
}

// Invoke calls every listener with arg in insertion order.
func (e *EventContainer[T]) Invoke(arg T) {
	limit := e.nextSeq
	for l := e.head; l != nil; l = l.next {
		if l.removed || l.seq > limit {
			continue
		}
		l.fn(arg)
	}
}

// Len returns the number of registered listeners.
func (e *EventContainer[T]) Len() int {
	return e.count
}

// Clear removes every listener.
func (e *EventContainer[T]) Clear() {
	for l := e.head; l != nil; l = l.next {
		l.removed = true
	}
	e.head = nil
	e.tail = nil
	e.count = 0
}
