package ecs

import (
	"testing"

	"github.com/phanxgames/storytime"
	"github.com/stretchr/testify/require"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	require.NotNil(t, store)
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []storytime.SceneEvent
	SceneEventType.Subscribe(world, func(w donburi.World, e storytime.SceneEvent) {
		received = append(received, e)
	})

	store.EmitEvent(storytime.SceneEvent{
		Type:    storytime.EventPointerDown,
		GlobalX: 100,
		GlobalY: 200,
		Button:  storytime.MouseButtonLeft,
		ZOrder:  -1,
	})
	store.EmitEvent(storytime.SceneEvent{
		Type:   storytime.EventActorAdded,
		ZOrder: 3,
	})

	// Events are queued until processed.
	require.Empty(t, received)
	SceneEventType.ProcessEvents(world)

	require.Len(t, received, 2)
	require.Equal(t, storytime.EventPointerDown, received[0].Type)
	require.Equal(t, 100.0, received[0].GlobalX)
	require.Equal(t, 200.0, received[0].GlobalY)
	require.Equal(t, storytime.EventActorAdded, received[1].Type)
	require.Equal(t, 3, received[1].ZOrder)
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	SceneEventType.Subscribe(world, func(w donburi.World, e storytime.SceneEvent) {
		count1++
	})
	SceneEventType.Subscribe(world, func(w donburi.World, e storytime.SceneEvent) {
		count2++
	})

	store.EmitEvent(storytime.SceneEvent{Type: storytime.EventClick})
	events.ProcessAllEvents(world)

	require.Equal(t, 1, count1)
	require.Equal(t, 1, count2)
}

func TestDonburiStore_SceneLifecycle(t *testing.T) {
	world := donburi.NewWorld()
	scene := storytime.NewScene("ecs")
	scene.SetEventStore(NewDonburiStore(world))

	var got []storytime.EventType
	var ids []string
	SceneEventType.Subscribe(world, func(w donburi.World, e storytime.SceneEvent) {
		got = append(got, e.Type)
		ids = append(ids, e.SceneID.String())
	})

	a := storytime.NewBaseActor("a", storytime.Vec2{}, storytime.Vec2{X: 10, Y: 10})
	require.NoError(t, scene.AddActor(a))
	a.SetPosition(storytime.Vec2{X: 5000, Y: 5000})
	scene.RemoveActor(a)
	events.ProcessAllEvents(world)

	require.Equal(t, []storytime.EventType{
		storytime.EventActorAdded,
		storytime.EventActorReindexed,
		storytime.EventActorRemoved,
	}, got)
	for _, id := range ids {
		require.Equal(t, scene.ID().String(), id)
	}
}
