// Package storytime is a 2D scene engine for [Ebitengine] built around two
// indexes kept in sync with a set of actors: a region quadtree over actor
// bounds and an insertion order that decides drawing and hit-test priority.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := storytime.NewScene("main")
//	hero := storytime.NewBaseActor("hero", storytime.Vec2{X: 100, Y: 50}, storytime.Vec2{X: 32, Y: 32})
//	if err := scene.AddActor(hero); err != nil {
//		return err
//	}
//	storytime.Run(scene, storytime.RunConfig{Title: "My Story"})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.ProcessInput], [Scene.Tick] and [Scene.Render] with an
// [EbitenContext]. The storytime/termview package drives the same scene in a
// terminal.
//
// # Actors
//
// Anything implementing [Actor] can join a scene. Actors report bounds
// changes synchronously through [BoundsListener]; the scene re-indexes the
// actor in the quadtree without touching its draw rank. [BaseActor] covers
// the common case of a colored, optionally rotated and scaled box.
//
// # Ordering
//
// Actors draw back to front in the order they were added. [Scene.Intersect]
// returns the actors under a point topmost first, and pointer callbacks
// registered with [Scene.OnClick] and friends target the topmost actor.
//
// # Cameras
//
// Every scene starts with a camera centered on its viewport, so world and
// screen coordinates coincide until the camera moves. Cameras support
// follow, animated scroll-to (via [gween]), zoom and bounds clamping.
//
// # Events
//
// Membership, re-index and pointer events can be forwarded to an
// [EventStore]; storytime/ecs publishes them on a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package storytime
