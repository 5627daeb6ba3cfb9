package messaging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alem-hub/watson/internal/domain/shared"
)

func syncBus() *InMemoryEventBus {
	cfg := DefaultInMemoryEventBusConfig()
	return NewInMemoryEventBus(cfg)
}

func TestInMemoryEventBus_DeliversToTypedSubscriber(t *testing.T) {
	bus := syncBus()
	defer bus.Close()

	var got []shared.EventType
	err := bus.Subscribe(shared.EventPersonAdded, func(e shared.Event) error {
		got = append(got, e.EventType())
		return nil
	})
	assert.NoError(t, err)

	assert.NoError(t, bus.Publish(shared.NewPersonAddedEvent("id-1", "Alice Tan")))
	assert.NoError(t, bus.Publish(shared.NewRosterClearedEvent(2)))

	assert.Equal(t, []shared.EventType{shared.EventPersonAdded}, got)
}

func TestInMemoryEventBus_SubscribeAllSeesEverything(t *testing.T) {
	bus := syncBus()
	defer bus.Close()

	var count int
	assert.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		count++
		return nil
	}))

	assert.NoError(t, bus.Publish(shared.NewPersonAddedEvent("id-1", "Alice Tan")))
	assert.NoError(t, bus.Publish(shared.NewPersonDeletedEvent("id-1", "Alice Tan")))
	assert.NoError(t, bus.Publish(shared.NewRosterSortedEvent(false, 3)))

	assert.Equal(t, 3, count)
}

func TestInMemoryEventBus_SyncDeliveryPreservesOrder(t *testing.T) {
	bus := syncBus()
	defer bus.Close()

	var names []string
	assert.NoError(t, bus.SubscribeAll(func(e shared.Event) error {
		if added, ok := e.(shared.PersonAddedEvent); ok {
			names = append(names, added.PersonName)
		}
		return nil
	}))

	assert.NoError(t, bus.Publish(shared.NewPersonAddedEvent("id-1", "Alice Tan")))
	assert.NoError(t, bus.Publish(shared.NewPersonAddedEvent("id-2", "Benson Meier")))

	assert.Equal(t, []string{"Alice Tan", "Benson Meier"}, names)
}

func TestInMemoryEventBus_PanickingHandlerIsContained(t *testing.T) {
	bus := syncBus()
	defer bus.Close()

	var delivered bool
	assert.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		panic("boom")
	}))
	assert.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		delivered = true
		return nil
	}))

	assert.NoError(t, bus.Publish(shared.NewRosterClearedEvent(0)))
	assert.True(t, delivered)

	snapshot := bus.Metrics().Snapshot()
	assert.Equal(t, int64(2), snapshot.TotalHandlerExecs)
	assert.InDelta(t, 0.5, snapshot.HandlerSuccessRate, 1e-9)
}

func TestInMemoryEventBus_ClosedBusRejectsPublish(t *testing.T) {
	bus := syncBus()
	assert.NoError(t, bus.Close())

	err := bus.Publish(shared.NewRosterClearedEvent(0))
	assert.True(t, errors.Is(err, ErrEventBusClosed))

	err = bus.Subscribe(shared.EventPersonAdded, func(shared.Event) error { return nil })
	assert.True(t, errors.Is(err, ErrEventBusClosed))
}

func TestInMemoryEventBus_NilHandlerRejected(t *testing.T) {
	bus := syncBus()
	defer bus.Close()

	assert.Error(t, bus.Subscribe(shared.EventPersonAdded, nil))
	assert.Error(t, bus.SubscribeAll(nil))
}

func TestEventBusMetrics_RecordsPublishes(t *testing.T) {
	bus := syncBus()
	defer bus.Close()

	assert.NoError(t, bus.SubscribeAll(func(shared.Event) error { return nil }))
	assert.NoError(t, bus.Publish(shared.NewPersonAddedEvent("id-1", "Alice Tan")))
	assert.NoError(t, bus.Publish(shared.NewPersonAddedEvent("id-2", "Benson Meier")))

	snapshot := bus.Metrics().Snapshot()
	assert.Equal(t, int64(2), snapshot.TotalPublished)
	assert.InDelta(t, 1.0, snapshot.HandlerSuccessRate, 1e-9)
}
