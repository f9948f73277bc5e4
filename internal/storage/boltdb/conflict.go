package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	"github.com/iudanet/crmsync/internal/models"
	"github.com/iudanet/crmsync/internal/storage"
)

// SaveConflict appends or updates a conflict audit record
func (s *Storage) SaveConflict(ctx context.Context, c *models.Conflict) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal conflict: %w", err)
	}

	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketConflicts)
		if bucket == nil {
			return fmt.Errorf("conflicts bucket not found")
		}

		if err := bucket.Put([]byte(c.ID), data); err != nil {
			return fmt.Errorf("failed to save conflict: %w", err)
		}
		return nil
	})
}

// GetConflict returns one conflict by ID
func (s *Storage) GetConflict(ctx context.Context, id string) (*models.Conflict, error) {
	c := &models.Conflict{}

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketConflicts)
		if bucket == nil {
			return fmt.Errorf("conflicts bucket not found")
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrConflictNotFound
		}

		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to unmarshal conflict: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

// PendingConflicts returns all conflicts awaiting manual review,
// oldest first.
func (s *Storage) PendingConflicts(ctx context.Context) ([]models.Conflict, error) {
	var pending []models.Conflict

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketConflicts)
		if bucket == nil {
			return fmt.Errorf("conflicts bucket not found")
		}

		return bucket.ForEach(func(_, v []byte) error {
			var c models.Conflict
			if err := json.Unmarshal(v, &c); err != nil {
				return fmt.Errorf("failed to unmarshal conflict: %w", err)
			}
			if c.IsPending() {
				pending = append(pending, c)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending conflicts: %w", err)
	}

	sort.Slice(pending, func(i, j int) bool {
		return pending[i].DetectedAt.Before(pending[j].DetectedAt)
	})

	return pending, nil
}
