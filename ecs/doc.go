// Package ecs is the entity-component layer the render, collision and physics
// systems plug into.
//
// Entities live in a [Manager] and are addressed by generation-checked
// handles. Components embed [Base] and are attached with [Entity.Add]; every
// attached component is tracked in the manager's [Lifetimes] registry so
// other components can hold a [Ref] to it instead of a raw pointer. A Ref
// re-validates on every Get and reports false once its target is gone.
//
// Engine events (selection, ground contact) go through an [EventStore]. The
// [NewDonburiStore] adapter publishes them into a [Donburi] world:
//
//	store := ecs.NewDonburiStore(world)
//	manager.SetEvents(store)
//	ecs.EngineEventType.Subscribe(world, onEvent)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
