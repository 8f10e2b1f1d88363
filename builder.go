package theworld

// builderComponent is a component queued on a builder with its initializers.
type builderComponent struct {
	component    Component
	initializers []func()
}

// GameObjectBuilder declares a GameObject subtree. Build creates and wires
// the whole subtree; the Game then activates it as one group so that every
// Awake sees a fully constructed and initialized tree.
//
//	player := theworld.NewGameObjectBuilder(game, "player").
//		Position(theworld.Vec3{100, 50, 0}).
//		WithComponent(mover, func() { mover.Speed = 120 }).
//		WithChild(theworld.NewGameObjectBuilder(game, "weapon"))
type GameObjectBuilder struct {
	game       *Game
	name       string
	active     bool
	components []builderComponent
	children   []*GameObjectBuilder
	refs       []**GameObject

	position Vec3
	rotation Quat
	scale    Vec3
	hasPos   bool
	hasRot   bool
	hasScale bool

	gameObject *GameObject
}

// NewGameObjectBuilder starts a builder for an object named name.
func NewGameObjectBuilder(g *Game, name string) *GameObjectBuilder {
	return &GameObjectBuilder{game: g, name: name, active: true}
}

// WithComponent queues c with optional initializers. Initializers run after
// requirement checks and before any lifecycle hook.
func (b *GameObjectBuilder) WithComponent(c Component, initializers ...func()) *GameObjectBuilder {
	b.components = append(b.components, builderComponent{component: c, initializers: initializers})
	return b
}

// WithChild adds a child subtree.
func (b *GameObjectBuilder) WithChild(child *GameObjectBuilder) *GameObjectBuilder {
	b.children = append(b.children, child)
	return b
}

// Active sets the initial active flag (default true).
func (b *GameObjectBuilder) Active(active bool) *GameObjectBuilder {
	b.active = active
	return b
}

// Position sets the initial local position.
func (b *GameObjectBuilder) Position(p Vec3) *GameObjectBuilder {
	b.position = p
	b.hasPos = true
	return b
}

// Rotation sets the initial local rotation.
func (b *GameObjectBuilder) Rotation(q Quat) *GameObjectBuilder {
	b.rotation = q
	b.hasRot = true
	return b
}

// Scale sets the initial local scale.
func (b *GameObjectBuilder) Scale(s Vec3) *GameObjectBuilder {
	b.scale = s
	b.hasScale = true
	return b
}

// Ref stores the built GameObject in *ref once Build runs.
func (b *GameObjectBuilder) Ref(ref **GameObject) *GameObjectBuilder {
	b.refs = append(b.refs, ref)
	return b
}

// GameObject returns the object created by Build, or nil before Build.
func (b *GameObjectBuilder) GameObject() *GameObject {
	return b.gameObject
}

// Build creates the subtree under parent (nil for a scene root), checks
// component requirements and runs initializers. No lifecycle hook runs;
// activation is done by the Game for the whole group of builders.
func (b *GameObjectBuilder) Build(parent *Transform) *GameObject {
	if b.gameObject != nil {
		panic("theworld: GameObjectBuilder already built")
	}
	b.createObjects()
	b.registerTransform(parent)
	b.checkComponentRequirementsRecursive()
	b.componentInitialize()
	return b.gameObject
}

// createObjects instantiates every GameObject and attaches its components.
// Disallowed duplicates are dropped here with a warning.
func (b *GameObjectBuilder) createObjects() {
	obj := newGameObject(b.game, b.name)
	obj.activeSelf = b.active
	t := obj.transform
	if b.hasPos {
		t.position = b.position
	}
	if b.hasRot {
		t.rotation = b.rotation
	}
	if b.hasScale {
		t.scale = b.scale
	}
	for _, bc := range b.components {
		obj.attachComponent(bc.component)
	}
	b.gameObject = obj
	for _, child := range b.children {
		child.createObjects()
	}
}

// registerTransform wires parent pointers depth-first, parents first, and
// derives activeInHierarchy.
func (b *GameObjectBuilder) registerTransform(parent *Transform) {
	obj := b.gameObject
	obj.transform.attachTo(parent)
	obj.activeInHierarchy = obj.activeSelf && obj.parentActive()
	for _, child := range b.children {
		child.registerTransform(obj.transform)
	}
}

func (b *GameObjectBuilder) checkComponentRequirementsRecursive() {
	b.gameObject.checkComponentRequirements()
	for _, child := range b.children {
		child.checkComponentRequirementsRecursive()
	}
}

// componentInitialize runs initializers of surviving components, depth-first.
func (b *GameObjectBuilder) componentInitialize() {
	obj := b.gameObject
	for _, bc := range b.components {
		if bc.component.base().gameObject != obj || !obj.hasComponent(bc.component) {
			continue
		}
		for _, init := range bc.initializers {
			init()
		}
	}
	obj.initialized = true
	for _, ref := range b.refs {
		*ref = obj
	}
	for _, child := range b.children {
		child.componentInitialize()
	}
}

func (g *GameObject) hasComponent(c Component) bool {
	for _, existing := range g.components {
		if existing == c {
			return true
		}
	}
	return false
}

// collectObjects appends every object of the built subtree, parents first.
func (b *GameObjectBuilder) collectObjects(out []*GameObject) []*GameObject {
	out = append(out, b.gameObject)
	for _, child := range b.children {
		out = child.collectObjects(out)
	}
	return out
}
