package sync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/iudanet/crmsync/internal/crm"
	"github.com/iudanet/crmsync/internal/gateway"
	"github.com/iudanet/crmsync/internal/models"
	"github.com/iudanet/crmsync/internal/storage"
	"github.com/iudanet/crmsync/internal/syncerr"
	"github.com/iudanet/crmsync/internal/validation"
)

// applyEffect описывает результат применения одной записи изменения
type applyEffect struct {
	// prior снимок состояния до применения; nil, если сущность отсутствовала
	prior *models.Entity

	// op фактически выполненная операция
	op models.Op

	// outcome applied или unchanged (идемпотентный повтор)
	outcome storage.ApplyOutcome
}

// applier применяет запись изменения к одной из сторон и умеет
// компенсировать уже выполненное применение при откате batch
type applier interface {
	apply(ctx context.Context, rec *models.ChangeRecord) (applyEffect, error)
	revert(ctx context.Context, rec *models.ChangeRecord, effect applyEffect) error
}

// localApplier применяет удаленные изменения к локальному хранилищу
type localApplier struct {
	store storage.LocalStore
}

func (a *localApplier) apply(ctx context.Context, rec *models.ChangeRecord) (applyEffect, error) {
	var eff applyEffect

	prior, err := a.store.Get(ctx, rec.Family, rec.EntityID)
	if err != nil && !errors.Is(err, storage.ErrEntityNotFound) {
		return eff, fmt.Errorf("failed to read prior state: %w", err)
	}
	eff.prior = prior

	switch {
	case rec.Op == models.OpDelete:
		eff.op = models.OpDelete
		eff.outcome, err = a.store.ApplyDelete(ctx, rec.Family, rec.EntityID, rec.UpdatedAt)
	case prior == nil:
		eff.op = models.OpCreate
		eff.outcome, err = a.store.ApplyCreate(ctx, rec.Entity)
	default:
		eff.op = models.OpUpdate
		eff.outcome, err = a.store.ApplyUpdate(ctx, rec.Entity)
	}
	if err != nil {
		return eff, err
	}
	return eff, nil
}

func (a *localApplier) revert(ctx context.Context, rec *models.ChangeRecord, effect applyEffect) error {
	if effect.outcome == storage.OutcomeUnchanged {
		return nil
	}
	if effect.prior == nil {
		// сущности не было - компенсируем созданное soft delete-ом
		_, err := a.store.ApplyDelete(ctx, rec.Family, rec.EntityID, rec.UpdatedAt)
		return err
	}
	_, err := a.store.ApplyUpdate(ctx, effect.prior)
	return err
}

// remoteApplier применяет локальные изменения к удаленной CRM через gateway
type remoteApplier struct {
	gw gateway.Gateway
}

func (a *remoteApplier) apply(ctx context.Context, rec *models.ChangeRecord) (applyEffect, error) {
	var eff applyEffect

	prior, err := a.gw.Get(ctx, rec.EntityID)
	if err != nil && !errors.Is(err, crm.ErrNotFound) {
		return eff, fmt.Errorf("failed to read prior remote state: %w", err)
	}
	eff.prior = prior

	switch {
	case rec.Op == models.OpDelete:
		eff.op = models.OpDelete
		if prior == nil || prior.Deleted {
			eff.outcome = storage.OutcomeUnchanged
			return eff, nil
		}
		if err := a.gw.Delete(ctx, rec.EntityID); err != nil {
			return eff, err
		}
		eff.outcome = storage.OutcomeApplied
	case prior == nil:
		eff.op = models.OpCreate
		if err := a.gw.Create(ctx, rec.Entity); err != nil {
			return eff, err
		}
		eff.outcome = storage.OutcomeApplied
	case prior.PayloadEqual(rec.Entity):
		// удаленное состояние уже совпадает - повторная доставка batch
		eff.op = models.OpUpdate
		eff.outcome = storage.OutcomeUnchanged
	default:
		eff.op = models.OpUpdate
		if err := a.gw.Update(ctx, rec.EntityID, rec.Entity); err != nil {
			return eff, err
		}
		eff.outcome = storage.OutcomeApplied
	}
	return eff, nil
}

func (a *remoteApplier) revert(ctx context.Context, rec *models.ChangeRecord, effect applyEffect) error {
	if effect.outcome == storage.OutcomeUnchanged {
		return nil
	}
	if effect.prior == nil {
		return a.gw.Delete(ctx, rec.EntityID)
	}
	return a.gw.Update(ctx, rec.EntityID, effect.prior)
}

// appliedItem запомненное успешное применение для возможной компенсации
type appliedItem struct {
	rec    *models.ChangeRecord
	effect applyEffect
}

// applyRecords применяет записи batch-ами через ограниченный пул workers.
// Сущности внутри batch не пересекаются, поэтому порядок применения
// внутри batch не важен. Ошибки отдельных сущностей записываются в
// результат и не прерывают batch; превышение доли ошибок запускает
// компенсацию batch, ошибка аутентификации прерывает семейство.
func (o *Orchestrator) applyRecords(
	ctx context.Context,
	records []models.ChangeRecord,
	ap applier,
	result *models.SyncResult,
	deadline time.Time,
	tracker *advanceTracker,
) (rolledBack, authAborted bool) {
	batchSize := o.cfg.Sync.BatchSize
	threshold := o.cfg.Sync.RollbackFailureThreshold

	for start := 0; start < len(records); start += batchSize {
		// Ограничение длительности цикла запрещает стартовать новые batch,
		// уже идущий batch дорабатывает.
		if !deadline.IsZero() && o.now().After(deadline) {
			result.AddError(fmt.Errorf("cycle duration limit reached, %d records postponed", len(records)-start))
			blockRest(records[start:], tracker)
			return false, false
		}
		if ctx.Err() != nil {
			result.AddError(ctx.Err())
			blockRest(records[start:], tracker)
			return false, false
		}

		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		applied, failed, authFailed := o.applyBatch(ctx, batch, ap, result, tracker)

		if o.cfg.Sync.EnableRollback && failed > 0 &&
			float64(failed)/float64(len(batch)) > threshold {
			o.logger.Warn("batch failure rate above threshold, compensating",
				"family", result.Family,
				"failed", failed,
				"batch", len(batch),
			)
			result.AddError(fmt.Errorf("batch failure rate %d/%d above threshold, rolled back", failed, len(batch)))
			o.revertBatch(ctx, ap, applied, result)
			return true, authFailed
		}

		if authFailed {
			blockRest(records[end:], tracker)
			return false, true
		}
	}
	return false, false
}

// applyBatch применяет один batch параллельно и сводит результаты
func (o *Orchestrator) applyBatch(
	ctx context.Context,
	batch []models.ChangeRecord,
	ap applier,
	result *models.SyncResult,
	tracker *advanceTracker,
) (applied []appliedItem, failed int, authFailed bool) {
	type itemResult struct {
		err    error
		effect applyEffect
	}
	results := make([]itemResult, len(batch))

	workers := o.cfg.Sync.Workers
	if workers > len(batch) {
		workers = len(batch)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := validateRecord(&batch[i]); err != nil {
					results[i] = itemResult{err: err}
					continue
				}
				eff, err := ap.apply(ctx, &batch[i])
				results[i] = itemResult{effect: eff, err: err}
			}
		}()
	}
	for i := range batch {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i := range batch {
		rec := &batch[i]
		res := results[i]

		if res.err != nil {
			failed++
			result.Failed++
			result.AddError(fmt.Errorf("%s/%s: %w", rec.Family, rec.EntityID, res.err))
			if syncerr.IsAuth(res.err) {
				authFailed = true
			}
			if syncerr.IsRetriable(res.err) || syncerr.IsAuth(res.err) {
				tracker.block(rec)
			}
			continue
		}

		if res.effect.outcome == storage.OutcomeUnchanged {
			result.Unchanged++
		} else {
			switch res.effect.op {
			case models.OpCreate:
				result.Created++
			case models.OpUpdate:
				result.Updated++
			case models.OpDelete:
				result.Deleted++
			}
			applied = append(applied, appliedItem{rec: rec, effect: res.effect})
		}
		tracker.advance(rec)
	}
	return applied, failed, authFailed
}

// revertBatch компенсирует успешные применения batch в обратном порядке
func (o *Orchestrator) revertBatch(ctx context.Context, ap applier, applied []appliedItem, result *models.SyncResult) {
	for i := len(applied) - 1; i >= 0; i-- {
		item := applied[i]
		if err := ap.revert(ctx, item.rec, item.effect); err != nil {
			result.AddError(fmt.Errorf("failed to compensate %s/%s: %w", item.rec.Family, item.rec.EntityID, err))
			continue
		}
		result.RolledBack++
	}
}

// validateRecord проверяет payload до обращения к хранилищу или CRM.
// Невалидный payload - фатальная ошибка одной сущности, без повторов.
func validateRecord(rec *models.ChangeRecord) error {
	if rec.Op == models.OpDelete || rec.Entity == nil {
		return nil
	}
	if err := validation.ValidateEntity(rec.Entity); err != nil {
		return syncerr.Validation("sync.apply", err)
	}
	return nil
}

func blockRest(records []models.ChangeRecord, tracker *advanceTracker) {
	for i := range records {
		tracker.block(&records[i])
	}
}
