// Package ecs provides ECS adapters for bower's lifecycle events.
//
// The primary adapter is [NewDonburiStore], which publishes element
// lifecycle transitions (initialized, updated, destroyed) into a [Donburi]
// world as typed events. Subscribe to [LifecycleEventType] in your ECS
// systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEventSink(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
