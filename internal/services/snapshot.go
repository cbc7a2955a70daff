package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/stockroom/apiserver/internal/storage"
)

// SnapshotService exports the full inventory as a JSON object to object
// storage, for operational backups.
type SnapshotService struct {
	repo    InventoryRepository
	storage storage.ObjectStorage
}

func NewSnapshotService(repo InventoryRepository, store storage.ObjectStorage) *SnapshotService {
	return &SnapshotService{repo: repo, storage: store}
}

// Export writes a timestamped JSON dump of all inventory items and returns
// the object key.
func (s *SnapshotService) Export(ctx context.Context) (string, error) {
	items, err := s.repo.List(ctx, "", "id")
	if err != nil {
		return "", fmt.Errorf("list inventory: %w", err)
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", err
	}

	if err := s.storage.EnsureBucket(ctx); err != nil {
		return "", fmt.Errorf("ensure bucket: %w", err)
	}

	key := fmt.Sprintf("snapshots/inventory-%s.json", time.Now().UTC().Format("20060102T150405Z"))
	if err := s.storage.Put(ctx, key, bytes.NewReader(data), int64(len(data)), "application/json"); err != nil {
		return "", fmt.Errorf("upload snapshot: %w", err)
	}
	return key, nil
}
