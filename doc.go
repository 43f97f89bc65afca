// Package gamelib is a small 2D engine core for [Ebitengine].
//
// It wires together a render system with layered draw ordering and
// parallax, a flag-filtered collision registry, a Quake-style movement
// integrator and an entity manager whose components reference each other
// through generation-checked handles.
//
// # Quick start
//
// [NewGame] builds every system from a [config.Config]; [Run] opens the
// window:
//
//	cfg, err := config.Load("game.yaml")
//	// ...
//	g, err := gamelib.NewGame(cfg, logger)
//	// ... add entities to g.Entities ...
//	gamelib.Run(g, gamelib.RunConfigFrom(cfg))
//
// # Entities
//
// Entities are created by [ecs.Manager.Add] and gain behavior from
// components. [render.MeshComponent] draws, the collision shapes in
// package collision register with the game's [collision.System], and
// [physics.Body] moves its entity against them:
//
//	player := g.Entities.Add("player")
//	mesh := render.NewMeshComponent(g.Render)
//	player.Add(mesh)
//	mesh.SetRect(geom.R(0, 0, 16, 24), colornames.Orange)
//	mask := collision.NewAABBMask(g.Collision, 0)
//	player.Add(mask)
//	mask.SetSource(mesh)
//	player.Add(g.NewBody())
//
// # Events
//
// Selection and ground contact events are published into a Donburi world
// and delivered at the end of each Update; see [Game.Subscribe].
//
// # Editing and scripted input
//
// With [Game.Editing] set, the mouse picks and drags entities through
// [editor.SelectTool]. [Game.InjectClick], [Game.InjectDrag] and
// [LoadScript] drive the same path without a mouse, and
// [Game.Screenshot] captures frames to disk.
//
// [Ebitengine]: https://ebitengine.org
package gamelib
