package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/crmsync/internal/models"
)

// AppendResult appends a cycle result to the bounded per-family history.
// История ограничена historyLimit записями: самые старые вытесняются.
func (s *Storage) AppendResult(ctx context.Context, result *models.SyncResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal sync result: %w", err)
	}

	return s.update(func(tx *bbolt.Tx) error {
		history := tx.Bucket(bucketHistory)
		if history == nil {
			return fmt.Errorf("history bucket not found")
		}

		// Отдельный вложенный bucket на каждое семейство
		bucket, err := history.CreateBucketIfNotExists([]byte(result.Family))
		if err != nil {
			return fmt.Errorf("failed to create family history bucket: %w", err)
		}

		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to get history sequence: %w", err)
		}

		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)

		if err := bucket.Put(key, data); err != nil {
			return fmt.Errorf("failed to append result: %w", err)
		}

		// Вытесняем самые старые записи сверх лимита
		return trimHistory(bucket, historyLimit)
	})
}

// trimHistory удаляет самые старые записи, оставляя не более limit
func trimHistory(bucket *bbolt.Bucket, limit int) error {
	count := bucket.Stats().KeyN
	if count <= limit {
		return nil
	}

	// Удаление во время обхода только через Cursor.Delete,
	// иначе курсор может пропускать ключи
	cursor := bucket.Cursor()
	for k, _ := cursor.First(); k != nil && count > limit; k, _ = cursor.Next() {
		if err := cursor.Delete(); err != nil {
			return fmt.Errorf("failed to trim history: %w", err)
		}
		count--
	}
	return nil
}

// History returns the retained results for a family, newest first
func (s *Storage) History(ctx context.Context, family models.Family) ([]models.SyncResult, error) {
	var results []models.SyncResult

	err := s.view(func(tx *bbolt.Tx) error {
		history := tx.Bucket(bucketHistory)
		if history == nil {
			return fmt.Errorf("history bucket not found")
		}

		bucket := history.Bucket([]byte(family))
		if bucket == nil {
			// Семейство еще не синхронизировалось
			return nil
		}

		cursor := bucket.Cursor()
		for k, v := cursor.Last(); k != nil; k, v = cursor.Prev() {
			var r models.SyncResult
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("failed to unmarshal sync result: %w", err)
			}
			results = append(results, r)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read history for %s: %w", family, err)
	}

	return results, nil
}

// LastResult returns the most recent result for a family or nil
func (s *Storage) LastResult(ctx context.Context, family models.Family) (*models.SyncResult, error) {
	var result *models.SyncResult

	err := s.view(func(tx *bbolt.Tx) error {
		history := tx.Bucket(bucketHistory)
		if history == nil {
			return fmt.Errorf("history bucket not found")
		}

		bucket := history.Bucket([]byte(family))
		if bucket == nil {
			return nil
		}

		_, v := bucket.Cursor().Last()
		if v == nil {
			return nil
		}

		r := &models.SyncResult{}
		if err := json.Unmarshal(v, r); err != nil {
			return fmt.Errorf("failed to unmarshal sync result: %w", err)
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read last result for %s: %w", family, err)
	}

	return result, nil
}
