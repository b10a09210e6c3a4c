package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/pennywise/pennywise/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_DeliversInSubscriptionOrder(t *testing.T) {
	bus := NewEventBus()
	var order []string

	bus.Subscribe("test.event", func(e Event) error {
		order = append(order, "first")
		return nil
	})
	bus.Subscribe("test.event", func(e Event) error {
		order = append(order, "second")
		return nil
	})

	require.NoError(t, bus.Publish(NewEvent(context.Background(), "test.event", nil)))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestPublish_ContinuesPastFailingHandler(t *testing.T) {
	bus := NewEventBus()
	delivered := false

	bus.Subscribe("test.event", func(e Event) error {
		return errors.New("boom")
	})
	bus.Subscribe("test.event", func(e Event) error {
		delivered = true
		return nil
	})

	err := bus.Publish(NewEvent(context.Background(), "test.event", nil))
	assert.Error(t, err)
	assert.True(t, delivered)
}

func TestPublish_RecoversHandlerPanic(t *testing.T) {
	bus := NewEventBus()

	bus.Subscribe("test.event", func(e Event) error {
		panic("handler exploded")
	})

	err := bus.Publish(NewEvent(context.Background(), "test.event", nil))
	assert.Error(t, err)
}

func TestUnsubscribe_StopsDelivery(t *testing.T) {
	bus := NewEventBus()
	calls := 0

	unsubscribe := bus.Subscribe("test.event", func(e Event) error {
		calls++
		return nil
	})

	require.NoError(t, bus.Publish(NewEvent(context.Background(), "test.event", nil)))
	unsubscribe()
	require.NoError(t, bus.Publish(NewEvent(context.Background(), "test.event", nil)))

	assert.Equal(t, 1, calls)
}

func TestSubscribeTyped_DeliversMatchingPayload(t *testing.T) {
	bus := NewEventBus()
	var received TransactionRecordedPayload

	SubscribeTyped(bus, TransactionRecorded, func(e EventT[TransactionRecordedPayload]) error {
		received = e.Data
		return nil
	})

	payload := TransactionRecordedPayload{
		ID:       "t-1",
		Type:     "expense",
		Category: "Food",
		Amount:   money.FromCents(1234),
	}
	require.NoError(t, bus.Publish(NewEvent(context.Background(), TransactionRecorded, payload)))
	assert.Equal(t, payload, received)
}

func TestSubscribeTyped_SkipsMismatchedPayload(t *testing.T) {
	bus := NewEventBus()
	calls := 0

	SubscribeTyped(bus, TransactionRecorded, func(e EventT[TransactionRecordedPayload]) error {
		calls++
		return nil
	})

	require.NoError(t, bus.Publish(NewEvent(context.Background(), TransactionRecorded, "not a payload")))
	assert.Equal(t, 0, calls)
}

func TestPublish_CancelledContextIsRejected(t *testing.T) {
	bus := NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := bus.Publish(NewEvent(ctx, "test.event", nil))
	assert.Error(t, err)
}
