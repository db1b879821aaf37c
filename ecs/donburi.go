package ecs

import (
	"github.com/phanxgames/storytime"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SceneEventType is the Donburi event type for storytime scene events.
var SceneEventType = events.NewEventType[storytime.SceneEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Scene events are published to SceneEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) storytime.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event storytime.SceneEvent) {
	SceneEventType.Publish(s.world, event)
}
