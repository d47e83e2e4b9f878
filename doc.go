// Package tenkai is a retained-mode 2D scene and sprite engine for [Ebitengine].
//
// Tenkai provides the scene graph, z-ordered compositing of tile grids and
// sprites, frame-based sprite animation, and a ready-made [ebiten.Game] host
// with scrolling, zooming, assets and audio.
//
// # Quick start
//
// Create an [Engine], register assets, build the tree in the init callback
// of [Engine.Start], then [Engine.Run]:
//
//	cfg, err := tenkai.LoadConfig("game.yaml")
//	engine, err := tenkai.NewEngine(cfg, nil)
//	engine.AddAsset("tiles", "tiles.png")
//	err = engine.Start(func(e *tenkai.Engine) error {
//		tiles, _ := e.Asset("tiles")
//		world := tenkai.NewTiledScene(tenkai.SceneConfig{
//			Asset:       tiles,
//			Perspective: tenkai.PerspectiveAngle,
//		})
//		e.AddScene("world", world)
//		return nil
//	})
//	err = engine.Run()
//
// # Scene graph
//
// The tree is made of [Entity] (alias [Mob]) and scene nodes ([Scene],
// [TiledScene], [BackgroundScene]). Every node holds its children in a
// [Container]: a name-keyed collection that draws its children in ascending
// z order, ties in insertion order. Adding a child that already lives
// elsewhere moves it.
//
// Drawing is dirty-driven: [Entity.Draw] and [Scene.Draw] do nothing unless
// the node was marked with Redraw since its last draw. Redraw propagates
// downward only. The Engine marks the whole tree every frame.
//
// # Perspectives
//
// A scene composites each z value in turn. With [PerspectiveOverhead] the
// grid for that z is drawn whole, then its entities. With [PerspectiveAngle]
// each grid row is followed by the entities whose feet (Y + HotspotY) stand
// on it, so sprites lower on screen overlap the tiles and sprites behind
// them.
//
// # Animation
//
// Register frame lists with [Entity.AddAnimation] and run them with
// [Entity.AnimateStart]. Frames advance on a [Scheduler], a virtual clock
// ticked from the host's update loop; stop callbacks and event handlers are
// deferred to the next tick and never run inside the call that caused them.
//
// # Drawing surface
//
// Nodes draw onto a [Surface], a canvas-style transform stack with a single
// image-copy primitive. [EbitenSurface] implements it on an *ebiten.Image;
// tests substitute a recording fake.
//
// Tenkai is single-threaded. All calls must come from the goroutine running
// the game loop.
//
// [Ebitengine]: https://ebitengine.org
package tenkai
