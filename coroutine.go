package theworld

import "iter"

// YieldInstruction tells the coroutine processor when to resume a coroutine.
// A nil instruction resumes on the next frame.
type YieldInstruction interface {
	yieldInstruction()
}

// WaitForSeconds resumes after Seconds of accumulated frame time.
type WaitForSeconds struct {
	Seconds float64
}

func (WaitForSeconds) yieldInstruction() {}

// WaitSeconds is shorthand for WaitForSeconds{Seconds: s}.
func WaitSeconds(s float64) YieldInstruction {
	return WaitForSeconds{Seconds: s}
}

// WaitForEndOfFrame resumes after the frame has been rendered.
type WaitForEndOfFrame struct{}

func (WaitForEndOfFrame) yieldInstruction() {}

type waitUntil struct {
	pred func() bool
}

func (waitUntil) yieldInstruction() {}

// WaitUntil resumes on the first frame pred returns true.
func WaitUntil(pred func() bool) YieldInstruction {
	return waitUntil{pred: pred}
}

type waitWhile struct {
	pred func() bool
}

func (waitWhile) yieldInstruction() {}

// WaitWhile resumes on the first frame pred returns false.
func WaitWhile(pred func() bool) YieldInstruction {
	return waitWhile{pred: pred}
}

// Coroutine is a suspendable task owned by a component. Its body is a
// sequence of yield instructions; the engine pulls the next instruction
// each time the current one is satisfied.
type Coroutine struct {
	owner  *BaseComponent
	handle coroutineHandle

	next func() (YieldInstruction, bool)
	stop func()

	current YieldInstruction
	elapsed float64

	running       bool
	stopRequested bool
	released      bool
}

func newCoroutine(owner *BaseComponent, body iter.Seq[YieldInstruction]) *Coroutine {
	next, stop := iter.Pull(body)
	return &Coroutine{owner: owner, next: next, stop: stop}
}

// Owner returns the component that started the coroutine.
func (c *Coroutine) Owner() Component {
	if c.owner == nil {
		return nil
	}
	return c.owner.self
}

// Done reports whether the coroutine finished or was stopped.
func (c *Coroutine) Done() bool {
	return c.released
}

// resume advances the body to its next yield. It reports false once the
// body is exhausted.
func (c *Coroutine) resume() bool {
	c.running = true
	ins, ok := c.next()
	c.running = false
	if c.stopRequested {
		c.stop()
		return false
	}
	if !ok {
		return false
	}
	c.current = ins
	c.elapsed = 0
	return true
}

// cancel stops the body. A body that is executing right now is stopped
// once it reaches its next yield.
func (c *Coroutine) cancel() {
	if c.running {
		c.stopRequested = true
		return
	}
	c.stop()
}
