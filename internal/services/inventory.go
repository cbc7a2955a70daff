package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/stockroom/apiserver/internal/events"
	"github.com/stockroom/apiserver/types"
)

// InventoryRepository defines persistence operations for inventory items.
type InventoryRepository interface {
	Insert(ctx context.Context, fields types.ItemFields) (types.InventoryItem, error)
	List(ctx context.Context, namePattern, sortKey string) ([]types.InventoryItem, error)
	Update(ctx context.Context, id int, fields types.ItemFields) error
	Delete(ctx context.Context, id int) error
}

// EventPublisher publishes inventory change events.
type EventPublisher interface {
	PublishItem(ctx context.Context, action string, item types.InventoryItem) error
}

// InventoryService encapsulates inventory use-cases. Mutations publish a
// change event when a publisher is configured; publish failures are logged
// and never affect the operation outcome.
type InventoryService struct {
	repo      InventoryRepository
	publisher EventPublisher
	logger    zerolog.Logger
}

func NewInventoryService(repo InventoryRepository, publisher EventPublisher, logger zerolog.Logger) *InventoryService {
	return &InventoryService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *InventoryService) List(ctx context.Context, namePattern, sortKey string) ([]types.InventoryItem, error) {
	return s.repo.List(ctx, namePattern, sortKey)
}

func (s *InventoryService) Insert(ctx context.Context, fields types.ItemFields) (types.InventoryItem, error) {
	item, err := s.repo.Insert(ctx, fields)
	if err != nil {
		return types.InventoryItem{}, err
	}
	s.publish(ctx, events.ActionCreated, item)
	return item, nil
}

func (s *InventoryService) Update(ctx context.Context, id int, fields types.ItemFields) error {
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return err
	}
	s.publish(ctx, events.ActionUpdated, types.InventoryItem{
		ID:       id,
		Name:     fields.Name,
		Quantity: fields.Quantity,
		Category: fields.Category,
		Price:    fields.Price,
	})
	return nil
}

func (s *InventoryService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.ActionDeleted, types.InventoryItem{ID: id})
	return nil
}

func (s *InventoryService) publish(ctx context.Context, action string, item types.InventoryItem) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishItem(ctx, action, item); err != nil {
		s.logger.Warn().Err(err).Str("action", action).Int("item_id", item.ID).
			Msg("failed to publish inventory event")
	}
}
