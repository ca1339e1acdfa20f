package broker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"bookstore-service/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func message(t *testing.T, event interface{}) kafka.Message {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return kafka.Message{Value: data}
}

func TestHandleMessageRoutesOrderPlaced(t *testing.T) {
	eh := NewEventHandler()

	var got *models.OrderPlacedEvent
	eh.OnOrderPlaced(func(ctx context.Context, event *models.OrderPlacedEvent) error {
		got = event
		return nil
	})

	event := &models.OrderPlacedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   "evt-1",
			EventType: models.EventTypeOrderPlaced,
			Timestamp: time.Now(),
		},
		OrderID:    42,
		UserID:     7,
		TotalPrice: 7500,
		Items:      []models.OrderItemData{{ProductID: 3, Quantity: 1, UnitPrice: 7500}},
	}

	err := eh.HandleMessage(context.Background(), message(t, event))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(42), got.OrderID)
	assert.Equal(t, int64(7500), got.TotalPrice)
	assert.Len(t, got.Items, 1)
}

func TestHandleMessageRoutesOrderRejected(t *testing.T) {
	eh := NewEventHandler()

	var got *models.OrderRejectedEvent
	eh.OnOrderRejected(func(ctx context.Context, event *models.OrderRejectedEvent) error {
		got = event
		return nil
	})

	event := &models.OrderRejectedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   "evt-2",
			EventType: models.EventTypeOrderRejected,
			Timestamp: time.Now(),
		},
		OrderID:  42,
		UserID:   7,
		Refunded: 7500,
	}

	err := eh.HandleMessage(context.Background(), message(t, event))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(7500), got.Refunded)
}

func TestHandleMessageIgnoresUnknownType(t *testing.T) {
	eh := NewEventHandler()

	called := false
	eh.OnOrderPlaced(func(ctx context.Context, event *models.OrderPlacedEvent) error {
		called = true
		return nil
	})

	msg := message(t, models.BaseEvent{EventID: "evt-3", EventType: "SOMETHING_ELSE"})
	err := eh.HandleMessage(context.Background(), msg)
	require.NoError(t, err)
	assert.False(t, called)
}

func TestHandleMessageRejectsGarbage(t *testing.T) {
	eh := NewEventHandler()
	err := eh.HandleMessage(context.Background(), kafka.Message{Value: []byte("not json")})
	assert.Error(t, err)
}
