package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/crmsync/internal/models"
)

// GetCheckpoint returns the checkpoint for a family.
// Возвращает нулевой checkpoint для семейства, которое еще не синхронизировалось.
func (s *Storage) GetCheckpoint(ctx context.Context, family models.Family) (*models.Checkpoint, error) {
	cp := &models.Checkpoint{Family: family}

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCheckpoints)
		if bucket == nil {
			return fmt.Errorf("checkpoints bucket not found")
		}

		data := bucket.Get([]byte(family))
		if data == nil {
			// Первая синхронизация - нулевой checkpoint
			return nil
		}

		if err := json.Unmarshal(data, cp); err != nil {
			return fmt.Errorf("failed to unmarshal checkpoint: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get checkpoint for %s: %w", family, err)
	}

	return cp, nil
}

// SaveCheckpoint durably persists a family checkpoint.
// Вызывается оркестратором только после полного завершения цикла.
func (s *Storage) SaveCheckpoint(ctx context.Context, cp *models.Checkpoint) error {
	data, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("failed to marshal checkpoint: %w", err)
	}

	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCheckpoints)
		if bucket == nil {
			return fmt.Errorf("checkpoints bucket not found")
		}

		if err := bucket.Put([]byte(cp.Family), data); err != nil {
			return fmt.Errorf("failed to save checkpoint: %w", err)
		}
		return nil
	})
}
