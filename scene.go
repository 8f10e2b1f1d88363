package theworld

// Scene is the tree of GameObjects run by a Game. Root objects have no
// parent transform.
type Scene struct {
	game     *Game
	roots    []*GameObject
	removals []*GameObject
}

func newScene(g *Game) *Scene {
	return &Scene{game: g}
}

// Roots returns the root objects. The returned slice MUST NOT be mutated.
func (s *Scene) Roots() []*GameObject {
	return s.roots
}

// AddChildFromBuilder builds b as a new root and activates it.
func (s *Scene) AddChildFromBuilder(b *GameObjectBuilder) *GameObject {
	obj := b.Build(nil)
	s.game.processEventByGroup([]*GameObjectBuilder{b})
	return obj
}

// Find returns the first object named name, searching depth-first.
func (s *Scene) Find(name string) *GameObject {
	var found *GameObject
	for _, root := range s.roots {
		root.forEach(func(g *GameObject) {
			if found == nil && g.name == name {
				found = g
			}
		})
		if found != nil {
			return found
		}
	}
	return nil
}

// ObjectCount returns the number of objects in the scene tree.
func (s *Scene) ObjectCount() int {
	n := 0
	for _, root := range s.roots {
		root.forEach(func(*GameObject) { n++ })
	}
	return n
}

func (s *Scene) addRoot(g *GameObject) {
	for _, r := range s.roots {
		if r == g {
			return
		}
	}
	s.roots = append(s.roots, g)
}

func (s *Scene) removeRoot(g *GameObject) {
	for i, r := range s.roots {
		if r == g {
			copy(s.roots[i:], s.roots[i+1:])
			s.roots[len(s.roots)-1] = nil
			s.roots = s.roots[:len(s.roots)-1]
			return
		}
	}
}

func (s *Scene) queueRemoval(g *GameObject) {
	s.removals = append(s.removals, g)
}

// PendingRemovals returns the number of destroyed objects awaiting detachment.
func (s *Scene) PendingRemovals() int {
	return len(s.removals)
}

// processRemovals detaches every object destroyed since the last call.
// Render objects of the subtree are re-submitted once so the renderer can
// drop them.
func (s *Scene) processRemovals() {
	for i := 0; i < len(s.removals); i++ {
		g := s.removals[i]
		if g.transform.parent != nil {
			g.transform.parent.removeChildByPtr(g.transform)
			g.transform.parent = nil
		} else {
			s.removeRoot(g)
		}
		g.forEach(func(obj *GameObject) {
			for _, ro := range obj.renderObjects {
				s.game.matrices.enqueueRenderObject(ro)
			}
			if sink := s.game.sink; sink != nil {
				sink.EmitEvent(Event{Type: EventDestroy, ObjectID: obj.id, Name: obj.name})
			}
		})
	}
	clear(s.removals)
	s.removals = s.removals[:0]
}
