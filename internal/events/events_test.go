package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stockroom/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureBackend struct {
	channel string
	data    []byte
	attrs   map[string]string
	closed  bool
}

func (b *captureBackend) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	b.channel = channel
	b.data = data
	b.attrs = attrs
	return "msg-1", nil
}

func (b *captureBackend) Close() error {
	b.closed = true
	return nil
}

func TestPublisher_PublishItem(t *testing.T) {
	backend := &captureBackend{}
	publisher := NewPublisher(backend, "inventory-events")

	item := types.InventoryItem{ID: 3, Name: "Bolt", Quantity: 10, Category: "Hardware", Price: 0.5}
	require.NoError(t, publisher.PublishItem(context.Background(), ActionCreated, item))

	assert.Equal(t, "inventory-events", backend.channel)
	assert.Equal(t, ActionCreated, backend.attrs["action"])

	var event ItemEvent
	require.NoError(t, json.Unmarshal(backend.data, &event))
	assert.Equal(t, ActionCreated, event.Action)
	assert.Equal(t, item, event.Item)
	assert.False(t, event.OccurredAt.IsZero())
}

func TestPublisher_Close(t *testing.T) {
	backend := &captureBackend{}
	publisher := NewPublisher(backend, "inventory-events")

	require.NoError(t, publisher.Close())
	assert.True(t, backend.closed)
}
