package ecs

import (
	"github.com/phanxgames/bower"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// LifecycleEventType is the Donburi event type for bower lifecycle events.
var LifecycleEventType = events.NewEventType[bower.LifecycleEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventSink backed by a Donburi world. Events are
// queued on LifecycleEventType and delivered by ProcessEvents.
func NewDonburiStore(world donburi.World) bower.EventSink {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitLifecycle(event bower.LifecycleEvent) {
	LifecycleEventType.Publish(s.world, event)
}
