package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/crmsync/internal/models"
	"github.com/iudanet/crmsync/internal/syncerr"
)

// syncFamily выполняет полный цикл синхронизации одного семейства:
// контрольная точка, обнаружение обеих сторон, разрешение конфликтов,
// batch-применение, продвижение контрольной точки, запись результата.
// Ошибки других семейств на цикл этого семейства не влияют.
func (o *Orchestrator) syncFamily(ctx context.Context, family models.Family) models.SyncResult {
	result := models.SyncResult{
		CycleID:   uuid.NewString(),
		Family:    family,
		StartedAt: o.now(),
	}

	var deadline time.Time
	if d := o.cfg.MaxCycleDuration(); d > 0 {
		deadline = result.StartedAt.Add(d)
	}

	cp, err := o.state.GetCheckpoint(ctx, family)
	if err != nil {
		result.AddError(fmt.Errorf("failed to load checkpoint: %w", err))
		return o.finishFamily(ctx, result)
	}

	direction, _ := models.ParseDirection(o.cfg.Sync.Direction)
	policy, _ := models.ParsePolicy(o.cfg.Sync.ConflictResolution)

	gw, ok := o.gateways[family]
	if !ok {
		result.AddError(fmt.Errorf("no gateway for family %q", family))
		return o.finishFamily(ctx, result)
	}

	// Обнаружение. Скан обеих сторон трактуется как снимок на момент
	// старта цикла; более поздние изменения догоняются следующим циклом.
	tracker := newAdvanceTracker()
	var remote, local []models.ChangeRecord

	if direction.Pulls() {
		pager := o.detector.RemoteChanges(gw, cp.RemoteSince)
		for {
			page, more, err := pager.Next(ctx)
			if err != nil {
				if errors.Is(err, ErrPageLimit) {
					result.AddError(err)
					// Непросканированная страница может содержать сущность
					// с тем же timestamp, что и последняя просмотренная.
					// Граница скана блокируется и перечитывается следующим
					// циклом, иначе такая сущность потеряется навсегда:
					// фильтр updated_since строгий.
					if newest := newestRecord(remote); newest != nil {
						tracker.block(newest)
					}
					break
				}
				result.AddError(fmt.Errorf("remote scan failed: %w", err))
				result.Aborted = syncerr.IsAuth(err)
				return o.finishFamily(ctx, result)
			}
			remote = append(remote, page...)
			if !more {
				break
			}
		}
	}

	if direction.Pushes() {
		local, err = o.detector.LocalChanges(ctx, family, cp.LocalSince)
		if err != nil {
			result.AddError(err)
			return o.finishFamily(ctx, result)
		}
	}

	o.logger.Debug("changes detected",
		"family", family,
		"remote", len(remote),
		"local", len(local),
	)

	// Разделение на односторонние изменения и конфликтующие пары
	toLocal, toRemote, err := o.partition(ctx, policy, local, remote, &result, tracker)
	if err != nil {
		result.AddError(err)
		return o.finishFamily(ctx, result)
	}

	// Применение: сначала pull, затем push. Откат или ошибка
	// аутентификации оставляют контрольную точку нетронутой.
	rolledBack, authAborted := o.applyRecords(ctx, toLocal, &localApplier{store: o.store}, &result, deadline, tracker)

	if !rolledBack && !authAborted {
		rb, aa := o.applyRecords(ctx, toRemote, &remoteApplier{gw: gw}, &result, deadline, tracker)
		rolledBack = rolledBack || rb
		authAborted = authAborted || aa
	} else {
		blockRest(toRemote, tracker)
	}

	result.Aborted = result.Aborted || authAborted

	if !rolledBack && !result.Aborted {
		next := tracker.checkpoint(cp)
		if err := o.state.SaveCheckpoint(ctx, next); err != nil {
			result.AddError(fmt.Errorf("failed to save checkpoint: %w", err))
		}
	}

	return o.finishFamily(ctx, result)
}

// partition сводит изменения обеих сторон по EntityID: односторонние
// идут на противоположную сторону как есть, двусторонние проходят через
// разрешение конфликта. Каждый конфликт пишется в журнал аудита.
func (o *Orchestrator) partition(
	ctx context.Context,
	policy models.Policy,
	local, remote []models.ChangeRecord,
	result *models.SyncResult,
	tracker *advanceTracker,
) (toLocal, toRemote []models.ChangeRecord, err error) {
	localByID := make(map[string]*models.ChangeRecord, len(local))
	for i := range local {
		localByID[local[i].EntityID] = &local[i]
	}

	for i := range remote {
		rec := &remote[i]
		counterpart, conflicting := localByID[rec.EntityID]
		if !conflicting {
			toLocal = append(toLocal, *rec)
			continue
		}
		delete(localByID, rec.EntityID)

		decision, err := Resolve(policy, counterpart, rec, o.now())
		if err != nil {
			return nil, nil, err
		}
		result.Conflicts++

		if err := o.state.SaveConflict(ctx, &decision.Conflict); err != nil {
			return nil, nil, fmt.Errorf("failed to record conflict: %w", err)
		}

		if decision.Deferred {
			result.Deferred++
			// отложенная сущность пересканируется следующим циклом
			tracker.block(counterpart)
			tracker.block(rec)
			continue
		}

		o.logger.Debug("conflict resolved",
			"family", rec.Family,
			"entity_id", rec.EntityID,
			"policy", policy,
			"winner", decision.Winner.Origin,
		)

		// Проигравшая сторона считается обработанной
		if decision.Winner.Origin == models.OriginRemote {
			toLocal = append(toLocal, *decision.Winner)
			tracker.advance(counterpart)
		} else {
			toRemote = append(toRemote, *decision.Winner)
			tracker.advance(rec)
		}
	}

	// Оставшиеся локальные изменения односторонние
	for i := range local {
		if _, ok := localByID[local[i].EntityID]; ok {
			toRemote = append(toRemote, local[i])
		}
	}

	return toLocal, toRemote, nil
}

// finishFamily фиксирует время завершения и добавляет результат в историю
func (o *Orchestrator) finishFamily(ctx context.Context, result models.SyncResult) models.SyncResult {
	result.FinishedAt = o.now()

	if err := o.state.AppendResult(ctx, &result); err != nil {
		o.logger.Error("failed to record cycle result",
			"family", result.Family,
			"error", err,
		)
	}

	o.logger.Info("family sync finished",
		"family", result.Family,
		"created", result.Created,
		"updated", result.Updated,
		"deleted", result.Deleted,
		"unchanged", result.Unchanged,
		"conflicts", result.Conflicts,
		"deferred", result.Deferred,
		"failed", result.Failed,
		"rolled_back", result.RolledBack,
		"aborted", result.Aborted,
		"duration", result.Duration(),
	)
	return result
}

// newestRecord возвращает запись с максимальным UpdatedAt или nil
func newestRecord(records []models.ChangeRecord) *models.ChangeRecord {
	var newest *models.ChangeRecord
	for i := range records {
		if newest == nil || records[i].UpdatedAt.After(newest.UpdatedAt) {
			newest = &records[i]
		}
	}
	return newest
}

// advanceTracker вычисляет продвижение контрольной точки по исходам
// применения. Правило: максимальный timestamp обработанных записей,
// ограниченный сверху чуть ниже самой старой записи, которую нужно
// пересканировать (retriable ошибка или отложенный конфликт).
type advanceTracker struct {
	maxRemote   time.Time
	maxLocal    time.Time
	blockRemote time.Time
	blockLocal  time.Time
}

func newAdvanceTracker() *advanceTracker {
	return &advanceTracker{}
}

// advance отмечает запись обработанной
func (t *advanceTracker) advance(rec *models.ChangeRecord) {
	switch rec.Origin {
	case models.OriginRemote:
		if rec.UpdatedAt.After(t.maxRemote) {
			t.maxRemote = rec.UpdatedAt
		}
	case models.OriginLocal:
		if rec.UpdatedAt.After(t.maxLocal) {
			t.maxLocal = rec.UpdatedAt
		}
	}
}

// block отмечает запись требующей пересканирования следующим циклом
func (t *advanceTracker) block(rec *models.ChangeRecord) {
	switch rec.Origin {
	case models.OriginRemote:
		if t.blockRemote.IsZero() || rec.UpdatedAt.Before(t.blockRemote) {
			t.blockRemote = rec.UpdatedAt
		}
	case models.OriginLocal:
		if t.blockLocal.IsZero() || rec.UpdatedAt.Before(t.blockLocal) {
			t.blockLocal = rec.UpdatedAt
		}
	}
}

// checkpoint строит новую контрольную точку поверх текущей.
// Отметки никогда не откатываются ниже текущих значений.
func (t *advanceTracker) checkpoint(cp *models.Checkpoint) *models.Checkpoint {
	next := &models.Checkpoint{
		Family:      cp.Family,
		RemoteSince: advanceMark(cp.RemoteSince, t.maxRemote, t.blockRemote),
		LocalSince:  advanceMark(cp.LocalSince, t.maxLocal, t.blockLocal),
	}
	return next
}

func advanceMark(current, max, block time.Time) time.Time {
	next := current
	if max.After(next) {
		next = max
	}
	if !block.IsZero() {
		capped := block.Add(-time.Millisecond)
		if capped.Before(next) {
			next = capped
		}
	}
	if next.Before(current) {
		return current
	}
	return next
}
