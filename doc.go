// Package theworld is a component-based 2D scene engine driven by a
// deterministic per-frame schedule.
//
// A scene is a tree of [GameObject] values. Each object owns a [Transform]
// and an ordered list of components. A component is any struct embedding
// [BaseComponent]; it opts into lifecycle hooks by implementing Awake,
// OnEnable, Start, Update, OnDisable or OnDestroy.
//
// # Building a scene
//
// Subtrees are declared with [GameObjectBuilder] and activated as one group,
// so every Awake runs before any OnEnable in the group:
//
//	game := theworld.NewGame(theworld.DefaultConfig())
//	err := game.Run(theworld.BootstrapperFunc(func(g *theworld.Game) []*theworld.GameObjectBuilder {
//		return []*theworld.GameObjectBuilder{
//			theworld.NewGameObjectBuilder(g, "camera").
//				WithComponent(theworld.NewCamera(theworld.Rect{Width: 640, Height: 480})),
//			theworld.NewGameObjectBuilder(g, "player").
//				Position(theworld.Vec3{100, 50, 0}).
//				WithComponent(&Mover{}),
//		}
//	}))
//
// # Frame order
//
// [Game.Step] runs one frame: Start and Update callbacks, physics,
// coroutines, removal of destroyed objects, world matrix recomputation,
// rendering, and finally coroutines waiting for the end of the frame.
// Structural events (OnEnable, OnDisable, OnDestroy) run synchronously,
// right after the operation that caused them.
//
// # Coroutines
//
// [BaseComponent.StartCoroutine] takes an iter.Seq of [YieldInstruction]
// values. The body runs up to its first yield immediately and is resumed
// by the game once the yielded instruction is satisfied:
//
//	c.StartCoroutine(func(yield func(theworld.YieldInstruction) bool) {
//		if !yield(theworld.WaitSeconds(1)) {
//			return
//		}
//		c.GameObject().Destroy()
//	})
//
// The ebitenhost subpackage runs a Game inside an Ebitengine window, and
// the ecs subpackage forwards engine events to a Donburi world.
package theworld
