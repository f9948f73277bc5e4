package storage

import (
	"context"

	"github.com/iudanet/crmsync/internal/models"
)

//go:generate moq -out state_mock.go . StateStore

// Credential represents cached authentication state in storage.
// Tokens are stored encrypted (AES-GCM); encryption happens in the
// boltdb implementation before the bytes reach disk.
type Credential struct {
	Scheme       string `json:"scheme"`        // jwt, oauth, api_key
	AccessToken  string `json:"access_token"`  // текущий access token
	RefreshToken string `json:"refresh_token"` // refresh token (пустой для api_key и oauth)
	ExpiresAt    int64  `json:"expires_at"`    // unix-время истечения access token (0 = не истекает)
}

// StateStore persists the sync engine's own bookkeeping: checkpoints,
// cached credentials, the conflict audit log, and bounded result history.
// Checkpoints are written only after a cycle fully commits or rolls back.
type StateStore interface {
	// GetCheckpoint returns the checkpoint for a family.
	// A family that has never synced gets a zero checkpoint.
	GetCheckpoint(ctx context.Context, family models.Family) (*models.Checkpoint, error)

	// SaveCheckpoint durably persists a family checkpoint
	SaveCheckpoint(ctx context.Context, cp *models.Checkpoint) error

	// SaveCredential stores the credential encrypted at rest
	SaveCredential(ctx context.Context, cred *Credential) error

	// GetCredential returns the cached credential.
	// Returns ErrCredentialNotFound if none is stored.
	GetCredential(ctx context.Context) (*Credential, error)

	// DeleteCredential removes the cached credential
	DeleteCredential(ctx context.Context) error

	// SaveConflict appends or updates a conflict audit record
	SaveConflict(ctx context.Context, c *models.Conflict) error

	// GetConflict returns one conflict by ID.
	// Returns ErrConflictNotFound if it does not exist.
	GetConflict(ctx context.Context, id string) (*models.Conflict, error)

	// PendingConflicts returns all conflicts awaiting manual review
	PendingConflicts(ctx context.Context) ([]models.Conflict, error)

	// AppendResult appends a cycle result to the bounded per-family history
	AppendResult(ctx context.Context, result *models.SyncResult) error

	// History returns the retained results for a family, newest first
	History(ctx context.Context, family models.Family) ([]models.SyncResult, error)

	// LastResult returns the most recent result for a family or nil
	LastResult(ctx context.Context, family models.Family) (*models.SyncResult, error)

	// Close releases the underlying database
	Close() error
}
