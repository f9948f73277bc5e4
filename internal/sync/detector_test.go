package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/crmsync/internal/gateway"
	"github.com/iudanet/crmsync/internal/models"
	"github.com/iudanet/crmsync/internal/storage"
)

func taskEntity(id string, updatedAt time.Time, deleted bool) models.Entity {
	return models.Entity{
		ID:        id,
		Family:    models.FamilyTasks,
		Payload:   []byte(`{"id":"` + id + `","project_id":"p-1","title":"task ` + id + `","status":"todo"}`),
		UpdatedAt: updatedAt,
		Deleted:   deleted,
	}
}

func TestLocalChanges(t *testing.T) {
	base := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	since := base.Add(-time.Hour)

	store := &storage.LocalStoreMock{
		ChangedSinceFunc: func(ctx context.Context, family models.Family, s time.Time) ([]models.Entity, error) {
			assert.Equal(t, models.FamilyTasks, family)
			assert.Equal(t, since, s)
			return []models.Entity{
				taskEntity("t-1", base, false),
				taskEntity("t-2", base.Add(time.Minute), true),
			}, nil
		},
	}

	d := NewDetector(store, 0)
	records, err := d.LocalChanges(context.Background(), models.FamilyTasks, since)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, models.OriginLocal, records[0].Origin)
	assert.Equal(t, models.OpUpdate, records[0].Op)
	assert.Equal(t, "t-1", records[0].EntityID)

	// Soft delete становится операцией delete
	assert.Equal(t, models.OpDelete, records[1].Op)
	assert.True(t, records[1].Entity.Deleted)
}

func TestLocalChangesError(t *testing.T) {
	store := &storage.LocalStoreMock{
		ChangedSinceFunc: func(ctx context.Context, family models.Family, s time.Time) ([]models.Entity, error) {
			return nil, errors.New("db locked")
		},
	}

	d := NewDetector(store, 0)
	_, err := d.LocalChanges(context.Background(), models.FamilyTasks, time.Time{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db locked")
}

func TestRemotePagerWalksAllPages(t *testing.T) {
	base := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

	gw := &gateway.GatewayMock{
		ListFunc: func(ctx context.Context, since time.Time, page int) ([]models.Entity, bool, error) {
			switch page {
			case 1:
				return []models.Entity{taskEntity("t-1", base, false)}, true, nil
			case 2:
				return []models.Entity{taskEntity("t-2", base.Add(time.Minute), false)}, false, nil
			}
			t.Fatalf("unexpected page %d", page)
			return nil, false, nil
		},
	}

	d := NewDetector(&storage.LocalStoreMock{}, 0)
	pager := d.RemoteChanges(gw, time.Time{})

	records, more, err := pager.Next(context.Background())
	require.NoError(t, err)
	assert.True(t, more)
	require.Len(t, records, 1)
	assert.Equal(t, "t-1", records[0].EntityID)
	assert.Equal(t, models.OriginRemote, records[0].Origin)

	records, more, err = pager.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, more)
	require.Len(t, records, 1)
	assert.Equal(t, "t-2", records[0].EntityID)

	// Пейджер исчерпан
	records, more, err = pager.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, more)
	assert.Empty(t, records)
}

func TestRemotePagerRetriesSamePageAfterError(t *testing.T) {
	base := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

	calls := 0
	gw := &gateway.GatewayMock{
		ListFunc: func(ctx context.Context, since time.Time, page int) ([]models.Entity, bool, error) {
			calls++
			// первая попытка первой страницы падает
			if calls == 1 {
				assert.Equal(t, 1, page)
				return nil, false, errors.New("connection reset")
			}
			assert.Equal(t, 1, page)
			return []models.Entity{taskEntity("t-1", base, false)}, false, nil
		},
	}

	d := NewDetector(&storage.LocalStoreMock{}, 0)
	pager := d.RemoteChanges(gw, time.Time{})

	_, _, err := pager.Next(context.Background())
	require.Error(t, err)

	// неудачная страница не засчитана: повторный Next перечитывает ее
	records, more, err := pager.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, more)
	require.Len(t, records, 1)
}

func TestRemotePagerPageLimit(t *testing.T) {
	base := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

	gw := &gateway.GatewayMock{
		ListFunc: func(ctx context.Context, since time.Time, page int) ([]models.Entity, bool, error) {
			return []models.Entity{taskEntity("t-1", base, false)}, true, nil
		},
	}

	d := NewDetector(&storage.LocalStoreMock{}, 2)
	pager := d.RemoteChanges(gw, time.Time{})

	for i := 0; i < 2; i++ {
		_, more, err := pager.Next(context.Background())
		require.NoError(t, err)
		assert.True(t, more)
	}

	_, _, err := pager.Next(context.Background())
	require.ErrorIs(t, err, ErrPageLimit)

	// после лимита пейджер остается исчерпанным
	records, more, err := pager.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, more)
	assert.Empty(t, records)
}

func TestToRecordClonesEntity(t *testing.T) {
	entity := taskEntity("t-1", time.Now(), false)
	rec := toRecord(&entity, models.OriginRemote)

	entity.Payload[0] = 'X'
	assert.NotEqual(t, byte('X'), rec.Entity.Payload[0])
}
