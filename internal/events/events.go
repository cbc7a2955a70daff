// Package events publishes inventory change notifications to a message
// broker. Publishing is best-effort: a broker failure never fails the
// request that triggered the event.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stockroom/apiserver/types"
)

// Item event actions.
const (
	ActionCreated = "item.created"
	ActionUpdated = "item.updated"
	ActionDeleted = "item.deleted"
)

// ItemEvent is the JSON payload published for every inventory mutation.
type ItemEvent struct {
	Action     string              `json:"action"`
	Item       types.InventoryItem `json:"item"`
	OccurredAt time.Time           `json:"occurred_at"`
}

// Backend defines the broker-agnostic operations used by the publisher.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Close() error
}

// Publisher serializes item events and hands them to a backend.
type Publisher struct {
	backend Backend
	channel string
}

// NewPublisher constructs a Publisher for the provided backend and channel.
func NewPublisher(backend Backend, channel string) *Publisher {
	return &Publisher{backend: backend, channel: channel}
}

// PublishItem sends one item event to the configured channel.
func (p *Publisher) PublishItem(ctx context.Context, action string, item types.InventoryItem) error {
	event := ItemEvent{
		Action:     action,
		Item:       item,
		OccurredAt: time.Now().UTC(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = p.backend.Publish(ctx, p.channel, data, map[string]string{"action": action})
	return err
}

// Close closes the underlying backend.
func (p *Publisher) Close() error {
	return p.backend.Close()
}
