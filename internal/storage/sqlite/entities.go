package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/crmsync/internal/models"
	"github.com/iudanet/crmsync/internal/storage"
)

// ChangedSince возвращает сущности семейства, измененные строго позже since,
// упорядоченные по времени изменения. Soft-deleted сущности включаются
// с Deleted = true - для них детектор изменений сформирует OpDelete.
func (s *Storage) ChangedSince(ctx context.Context, family models.Family, since time.Time) ([]models.Entity, error) {
	query := `
		SELECT id, payload, updated_at, deleted
		FROM entities
		WHERE family = ? AND updated_at > ?
		ORDER BY updated_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, string(family), since.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to query changed entities: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entities []models.Entity
	for rows.Next() {
		var (
			entity    models.Entity
			payload   string
			updatedAt int64
			deleted   int
		)
		if err := rows.Scan(&entity.ID, &payload, &updatedAt, &deleted); err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		entity.Family = family
		entity.Payload = json.RawMessage(payload)
		entity.UpdatedAt = time.UnixMilli(updatedAt).UTC()
		entity.Deleted = deleted != 0
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entities: %w", err)
	}

	return entities, nil
}

// Get возвращает снимок одной сущности, включая soft-deleted.
// Возвращает storage.ErrEntityNotFound, если сущность никогда не существовала.
func (s *Storage) Get(ctx context.Context, family models.Family, id string) (*models.Entity, error) {
	query := `
		SELECT payload, updated_at, deleted
		FROM entities
		WHERE family = ? AND id = ?
	`

	var (
		payload   string
		updatedAt int64
		deleted   int
	)
	err := s.db.QueryRowContext(ctx, query, string(family), id).Scan(&payload, &updatedAt, &deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrEntityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}

	return &models.Entity{
		ID:        id,
		Family:    family,
		Payload:   json.RawMessage(payload),
		UpdatedAt: time.UnixMilli(updatedAt).UTC(),
		Deleted:   deleted != 0,
	}, nil
}

// ApplyCreate вставляет сущность. Идемпотентно: если идентичный снимок
// уже сохранен, вызов возвращает OutcomeUnchanged без записи.
func (s *Storage) ApplyCreate(ctx context.Context, entity *models.Entity) (storage.ApplyOutcome, error) {
	return s.upsert(ctx, entity)
}

// ApplyUpdate перезаписывает снимок сущности. Создает строку, если ее нет:
// удаленная CRM может сообщить update для сущности, которую локальное
// хранилище никогда не видело.
func (s *Storage) ApplyUpdate(ctx context.Context, entity *models.Entity) (storage.ApplyOutcome, error) {
	return s.upsert(ctx, entity)
}

// ApplyDelete выполняет soft delete. Удаление отсутствующей или уже
// удаленной сущности возвращает OutcomeUnchanged (идемпотентный повтор).
func (s *Storage) ApplyDelete(ctx context.Context, family models.Family, id string, updatedAt time.Time) (storage.ApplyOutcome, error) {
	existing, err := s.Get(ctx, family, id)
	if errors.Is(err, storage.ErrEntityNotFound) {
		return storage.OutcomeUnchanged, nil
	}
	if err != nil {
		return "", err
	}
	if existing.Deleted {
		return storage.OutcomeUnchanged, nil
	}

	query := `
		UPDATE entities
		SET deleted = 1, updated_at = ?
		WHERE family = ? AND id = ?
	`
	if _, err := s.db.ExecContext(ctx, query, updatedAt.UnixMilli(), string(family), id); err != nil {
		return "", fmt.Errorf("failed to delete entity: %w", err)
	}

	return storage.OutcomeApplied, nil
}

// upsert сохраняет снимок сущности, если он отличается от сохраненного
func (s *Storage) upsert(ctx context.Context, entity *models.Entity) (storage.ApplyOutcome, error) {
	existing, err := s.Get(ctx, entity.Family, entity.ID)
	if err != nil && !errors.Is(err, storage.ErrEntityNotFound) {
		return "", fmt.Errorf("failed to check existing entity: %w", err)
	}

	// Повторная доставка уже примененного изменения - no-op
	if existing != nil && existing.PayloadEqual(entity) {
		return storage.OutcomeUnchanged, nil
	}

	query := `
		INSERT INTO entities (family, id, payload, updated_at, deleted)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (family, id) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at,
			deleted = excluded.deleted
	`

	_, err = s.db.ExecContext(ctx, query,
		string(entity.Family),
		entity.ID,
		string(entity.Payload),
		entity.UpdatedAt.UnixMilli(),
		boolToInt(entity.Deleted),
	)
	if err != nil {
		return "", fmt.Errorf("failed to upsert entity: %w", err)
	}

	return storage.OutcomeApplied, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
