package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/crmsync/internal/models"
	"github.com/iudanet/crmsync/internal/storage"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "state.db")
	s, err := New(context.Background(), dbPath, "test-secret")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestCheckpointRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	// Семейство без синхронизаций получает нулевой checkpoint
	cp, err := s.GetCheckpoint(ctx, models.FamilyTasks)
	require.NoError(t, err)
	assert.Equal(t, models.FamilyTasks, cp.Family)
	assert.True(t, cp.IsZero())

	saved := &models.Checkpoint{
		Family:      models.FamilyTasks,
		RemoteSince: time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
		LocalSince:  time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC),
	}
	require.NoError(t, s.SaveCheckpoint(ctx, saved))

	got, err := s.GetCheckpoint(ctx, models.FamilyTasks)
	require.NoError(t, err)
	assert.True(t, saved.RemoteSince.Equal(got.RemoteSince))
	assert.True(t, saved.LocalSince.Equal(got.LocalSince))

	// Checkpoints семейств независимы
	other, err := s.GetCheckpoint(ctx, models.FamilyProjects)
	require.NoError(t, err)
	assert.True(t, other.IsZero())
}

func TestCredentialRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	_, err := s.GetCredential(ctx)
	require.ErrorIs(t, err, storage.ErrCredentialNotFound)

	cred := &storage.Credential{
		Scheme:       "jwt",
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Now().Add(time.Hour).Unix(),
	}
	require.NoError(t, s.SaveCredential(ctx, cred))

	got, err := s.GetCredential(ctx)
	require.NoError(t, err)
	assert.Equal(t, cred, got)

	require.NoError(t, s.DeleteCredential(ctx))
	_, err = s.GetCredential(ctx)
	require.ErrorIs(t, err, storage.ErrCredentialNotFound)
}

func TestCredentialEncryptedAtRest(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	cred := &storage.Credential{Scheme: "jwt", AccessToken: "very-secret-token"}
	require.NoError(t, s.SaveCredential(ctx, cred))

	// На диске токен в открытом виде отсутствует
	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketCredentials).Get([]byte(keyCredential))
		require.NotNil(t, raw)
		assert.NotContains(t, string(raw), "very-secret-token")
		return nil
	})
	require.NoError(t, err)
}

func TestCredentialSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	s, err := New(ctx, dbPath, "test-secret")
	require.NoError(t, err)
	require.NoError(t, s.SaveCredential(ctx, &storage.Credential{Scheme: "jwt", AccessToken: "access-1"}))
	require.NoError(t, s.Close())

	// Соль деривации сохранена: тот же secret дает тот же ключ
	s, err = New(ctx, dbPath, "test-secret")
	require.NoError(t, err)
	defer func() {
		require.NoError(t, s.Close())
	}()

	got, err := s.GetCredential(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access-1", got.AccessToken)
}

func TestCredentialWrongSecret(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	s, err := New(ctx, dbPath, "test-secret")
	require.NoError(t, err)
	require.NoError(t, s.SaveCredential(ctx, &storage.Credential{Scheme: "jwt", AccessToken: "access-1"}))
	require.NoError(t, s.Close())

	s, err = New(ctx, dbPath, "wrong-secret")
	require.NoError(t, err)
	defer func() {
		require.NoError(t, s.Close())
	}()

	_, err = s.GetCredential(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decrypt")
}

func testConflict(id string, status models.ConflictStatus, detectedAt time.Time) *models.Conflict {
	entity := &models.Entity{
		ID:        "t-1",
		Family:    models.FamilyTasks,
		Payload:   json.RawMessage(`{"id":"t-1"}`),
		UpdatedAt: detectedAt,
	}
	rec := &models.ChangeRecord{
		EntityID:  "t-1",
		Family:    models.FamilyTasks,
		Origin:    models.OriginLocal,
		Op:        models.OpUpdate,
		UpdatedAt: detectedAt,
		Entity:    entity,
	}
	return &models.Conflict{
		ID:         id,
		EntityID:   "t-1",
		Family:     models.FamilyTasks,
		Status:     status,
		Policy:     models.PolicyManualReview,
		Local:      rec,
		Remote:     rec,
		DetectedAt: detectedAt,
	}
}

func TestConflictRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	_, err := s.GetConflict(ctx, "missing")
	require.ErrorIs(t, err, storage.ErrConflictNotFound)

	c := testConflict("c-1", models.ConflictPending, time.Now().UTC())
	require.NoError(t, s.SaveConflict(ctx, c))

	got, err := s.GetConflict(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, c.EntityID, got.EntityID)
	assert.True(t, got.IsPending())
	require.NotNil(t, got.Local)
	assert.Equal(t, c.Local.EntityID, got.Local.EntityID)

	// Повторный Save обновляет запись
	got.Status = models.ConflictResolved
	got.Winner = models.OriginLocal
	require.NoError(t, s.SaveConflict(ctx, got))

	updated, err := s.GetConflict(ctx, "c-1")
	require.NoError(t, err)
	assert.False(t, updated.IsPending())
	assert.Equal(t, models.OriginLocal, updated.Winner)
}

func TestPendingConflictsOldestFirst(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	base := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveConflict(ctx, testConflict("c-newer", models.ConflictPending, base.Add(time.Hour))))
	require.NoError(t, s.SaveConflict(ctx, testConflict("c-older", models.ConflictPending, base)))
	require.NoError(t, s.SaveConflict(ctx, testConflict("c-resolved", models.ConflictResolved, base)))

	pending, err := s.PendingConflicts(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "c-older", pending[0].ID)
	assert.Equal(t, "c-newer", pending[1].ID)
}

func TestHistoryNewestFirst(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	last, err := s.LastResult(ctx, models.FamilyTasks)
	require.NoError(t, err)
	assert.Nil(t, last)

	base := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.AppendResult(ctx, &models.SyncResult{
			CycleID:   fmt.Sprintf("cycle-%d", i),
			Family:    models.FamilyTasks,
			StartedAt: base.Add(time.Duration(i) * time.Minute),
			Created:   i,
		}))
	}

	history, err := s.History(ctx, models.FamilyTasks)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "cycle-2", history[0].CycleID)
	assert.Equal(t, "cycle-0", history[2].CycleID)

	last, err = s.LastResult(ctx, models.FamilyTasks)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "cycle-2", last.CycleID)

	// Истории семейств независимы
	other, err := s.History(ctx, models.FamilyProjects)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestHistoryTrimmedToLimit(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	for i := 0; i < historyLimit+10; i++ {
		require.NoError(t, s.AppendResult(ctx, &models.SyncResult{
			CycleID: fmt.Sprintf("cycle-%d", i),
			Family:  models.FamilyTasks,
		}))
	}

	history, err := s.History(ctx, models.FamilyTasks)
	require.NoError(t, err)
	require.Len(t, history, historyLimit)

	// Самые старые вытеснены
	assert.Equal(t, fmt.Sprintf("cycle-%d", historyLimit+9), history[0].CycleID)
	assert.Equal(t, "cycle-10", history[len(history)-1].CycleID)
}

func TestOperationsAfterClose(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Close())

	_, err := s.GetCheckpoint(ctx, models.FamilyTasks)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	err = s.SaveCheckpoint(ctx, &models.Checkpoint{Family: models.FamilyTasks})
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	err = s.AppendResult(ctx, &models.SyncResult{Family: models.FamilyTasks})
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	_, err = s.GetCredential(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	// Повторное закрытие безвредно
	require.NoError(t, s.Close())
}
