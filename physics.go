package theworld

// Physics2D is the physics collaborator. Update is called once per frame,
// after Start/Update callbacks and before coroutines resume. It moves
// transforms directly and reports contacts through GameObject.SendCollision2D.
type Physics2D interface {
	Update(dt float64)
}

// PhysicsFunc adapts a plain function to Physics2D.
type PhysicsFunc func(dt float64)

// Update calls f(dt).
func (f PhysicsFunc) Update(dt float64) { f(dt) }
