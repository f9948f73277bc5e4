package sync

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/crmsync/internal/models"
)

// Decision представляет исход разрешения одной пары конфликтующих изменений
type Decision struct {
	// Winner запись, которую нужно применить.
	// nil при Deferred=true.
	Winner *models.ChangeRecord

	// Conflict запись журнала аудита конфликта
	Conflict models.Conflict

	// Deferred true, когда политика не выбирает победителя автоматически
	Deferred bool
}

// Resolve применяет политику разрешения к паре изменений одной сущности.
// Чистая функция: не применяет победителя и не пишет в хранилище.
// Каждое разрешение, автоматическое или отложенное, получает запись
// журнала аудита.
func Resolve(policy models.Policy, local, remote *models.ChangeRecord, now time.Time) (Decision, error) {
	conflict := models.Conflict{
		ID:         uuid.NewString(),
		EntityID:   local.EntityID,
		Family:     local.Family,
		Policy:     policy,
		Local:      local.Clone(),
		Remote:     remote.Clone(),
		DetectedAt: now,
	}

	switch policy {
	case models.PolicyRemoteWins:
		conflict.Status = models.ConflictResolved
		conflict.Winner = models.OriginRemote
		conflict.ResolvedAt = now
		return Decision{Winner: remote, Conflict: conflict}, nil

	case models.PolicyLocalWins:
		conflict.Status = models.ConflictResolved
		conflict.Winner = models.OriginLocal
		conflict.ResolvedAt = now
		return Decision{Winner: local, Conflict: conflict}, nil

	case models.PolicyLatestTimestamp:
		winner := remote
		if local.IsNewerThan(remote) {
			winner = local
		}
		conflict.Status = models.ConflictResolved
		conflict.Winner = winner.Origin
		conflict.ResolvedAt = now
		return Decision{Winner: winner, Conflict: conflict}, nil

	case models.PolicyManualReview:
		conflict.Status = models.ConflictPending
		return Decision{Deferred: true, Conflict: conflict}, nil
	}

	return Decision{}, fmt.Errorf("unknown conflict resolution policy: %q", policy)
}
