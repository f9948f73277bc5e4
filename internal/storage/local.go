package storage

import (
	"context"
	"time"

	"github.com/iudanet/crmsync/internal/models"
)

//go:generate moq -out local_mock.go . LocalStore

// ApplyOutcome describes the effect of applying a change to the local store
type ApplyOutcome string

const (
	// OutcomeApplied the write changed stored state
	OutcomeApplied ApplyOutcome = "applied"

	// OutcomeUnchanged the stored state already matched the payload;
	// re-application of an already-applied change is a no-op
	OutcomeUnchanged ApplyOutcome = "unchanged"
)

// LocalStore is the engine's view of the local project-management store.
// The engine does not own the schema; it only reads deltas and applies
// decided changes. Batch application is wrapped in a scoped transaction
// where the store supports it.
type LocalStore interface {
	// ChangedSince returns entities of the family whose local last-modified
	// timestamp is strictly newer than since, ordered by timestamp ascending.
	// Soft-deleted entities are included with Deleted = true.
	ChangedSince(ctx context.Context, family models.Family, since time.Time) ([]models.Entity, error)

	// Get returns a single entity snapshot including soft-deleted ones.
	// Returns ErrEntityNotFound if the entity has never existed.
	Get(ctx context.Context, family models.Family, id string) (*models.Entity, error)

	// ApplyCreate inserts an entity. Idempotent: if an identical snapshot is
	// already stored the call reports OutcomeUnchanged.
	ApplyCreate(ctx context.Context, entity *models.Entity) (ApplyOutcome, error)

	// ApplyUpdate overwrites an entity snapshot. Creates the row if missing
	// (the remote may report an update for an entity the store never saw).
	ApplyUpdate(ctx context.Context, entity *models.Entity) (ApplyOutcome, error)

	// ApplyDelete soft-deletes an entity. Deleting an absent or already
	// deleted entity reports OutcomeUnchanged.
	ApplyDelete(ctx context.Context, family models.Family, id string, updatedAt time.Time) (ApplyOutcome, error)

	// Close releases the underlying connection
	Close() error
}
