package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/crmsync/internal/config"
	"github.com/iudanet/crmsync/internal/gateway"
	"github.com/iudanet/crmsync/internal/models"
	"github.com/iudanet/crmsync/internal/storage"
)

// ErrCycleInProgress возвращается при попытке запустить цикл,
// пока предыдущий еще не завершился
var ErrCycleInProgress = errors.New("sync cycle already in progress")

// ErrConflictNotPending возвращается при попытке вручную разрешить
// уже разрешенный конфликт
var ErrConflictNotPending = errors.New("conflict is not pending")

// Orchestrator управляет полным циклом синхронизации: обнаружение,
// разрешение, batch-применение, контрольные точки и история результатов.
// Семейства синхронизируются параллельно и независимо друг от друга.
type Orchestrator struct {
	cfg      *config.Config
	store    storage.LocalStore
	state    storage.StateStore
	gateways map[models.Family]gateway.Gateway
	detector *Detector
	logger   *slog.Logger
	now      func() time.Time

	mu         sync.Mutex
	inProgress map[models.Family]bool
	cycleBusy  bool
	autoCancel context.CancelFunc
	nextRun    time.Time

	wg sync.WaitGroup
}

// NewOrchestrator создает оркестратор синхронизации
func NewOrchestrator(
	cfg *config.Config,
	store storage.LocalStore,
	state storage.StateStore,
	gateways map[models.Family]gateway.Gateway,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg,
		store:      store,
		state:      state,
		gateways:   gateways,
		detector:   NewDetector(store, cfg.Sync.MaxPagesPerCycle),
		logger:     logger,
		now:        time.Now,
		inProgress: make(map[models.Family]bool),
	}
}

// ManualSync выполняет один полный цикл синхронизации и дожидается его
// завершения. Возвращает ErrCycleInProgress, если цикл уже идет.
func (o *Orchestrator) ManualSync(ctx context.Context) (*models.CycleReport, error) {
	if !o.tryAcquireCycle() {
		return nil, ErrCycleInProgress
	}
	defer o.releaseCycle()

	return o.runCycle(ctx), nil
}

// StartAutoSync запускает фоновую периодическую синхронизацию с заданным
// интервалом. Тик, пришедший во время незавершенного цикла,
// пропускается, а не ставится в очередь.
func (o *Orchestrator) StartAutoSync(ctx context.Context, interval time.Duration) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.autoCancel != nil {
		return errors.New("auto sync already started")
	}

	autoCtx, cancel := context.WithCancel(ctx)
	o.autoCancel = cancel

	// Остановка отменяет только autoCtx, то есть ожидание следующего тика.
	// Уже идущий цикл работает на неотменяемом контексте и дорабатывает
	// до конца; Stop дожидается его через wg.
	cycleCtx := context.WithoutCancel(ctx)

	o.nextRun = o.now().Add(interval)
	o.logger.Info("auto sync started", "interval", interval)

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-autoCtx.Done():
				return
			case <-ticker.C:
				o.setNextRun(o.now().Add(interval))
				if !o.tryAcquireCycle() {
					o.logger.Warn("sync cycle still running, skipping tick")
					continue
				}
				o.runCycle(cycleCtx)
				o.releaseCycle()
			}
		}
	}()

	return nil
}

// Stop останавливает авто-синхронизацию. Текущий цикл не прерывается,
// отменяются только будущие запуски.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	cancel := o.autoCancel
	o.autoCancel = nil
	o.nextRun = time.Time{}
	o.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	o.wg.Wait()
	o.logger.Info("auto sync stopped")
}

func (o *Orchestrator) tryAcquireCycle() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cycleBusy {
		return false
	}
	o.cycleBusy = true
	return true
}

func (o *Orchestrator) releaseCycle() {
	o.mu.Lock()
	o.cycleBusy = false
	o.mu.Unlock()
}

func (o *Orchestrator) setNextRun(t time.Time) {
	o.mu.Lock()
	o.nextRun = t
	o.mu.Unlock()
}

// runCycle синхронизирует все настроенные семейства параллельно
func (o *Orchestrator) runCycle(ctx context.Context) *models.CycleReport {
	families := o.cfg.Families()
	report := &models.CycleReport{
		StartedAt: o.now(),
		Results:   make([]models.SyncResult, len(families)),
	}

	o.logger.Info("sync cycle started", "families", len(families))

	var wg sync.WaitGroup
	for i, family := range families {
		o.setInProgress(family, true)

		wg.Add(1)
		go func(i int, family models.Family) {
			defer wg.Done()
			defer o.setInProgress(family, false)

			report.Results[i] = o.syncFamily(ctx, family)
		}(i, family)
	}
	wg.Wait()

	report.FinishedAt = o.now()
	o.logger.Info("sync cycle finished",
		"applied", report.TotalApplied(),
		"failed", report.TotalFailed(),
		"duration", report.FinishedAt.Sub(report.StartedAt),
	)
	return report
}

func (o *Orchestrator) setInProgress(family models.Family, v bool) {
	o.mu.Lock()
	o.inProgress[family] = v
	o.mu.Unlock()
}

// FamilyStatus описывает состояние синхронизации одного семейства
type FamilyStatus struct {
	Checkpoint models.Checkpoint  `json:"checkpoint"`
	Last       *models.SyncResult `json:"last,omitempty"`
	Family     models.Family      `json:"family"`
	InProgress bool               `json:"in_progress"`
}

// Status описывает текущее состояние движка синхронизации
type Status struct {
	// NextRun время следующего планового запуска;
	// нулевое, когда авто-синхронизация не активна
	NextRun          time.Time      `json:"next_run"`
	Families         []FamilyStatus `json:"families"`
	PendingConflicts int            `json:"pending_conflicts"`
	AutoSyncActive   bool           `json:"auto_sync_active"`
	CycleInProgress  bool           `json:"cycle_in_progress"`
}

// Status возвращает состояние по каждому семейству, счетчик отложенных
// конфликтов, флаги активности и время следующего планового запуска
func (o *Orchestrator) Status(ctx context.Context) (*Status, error) {
	o.mu.Lock()
	status := &Status{
		AutoSyncActive:  o.autoCancel != nil,
		CycleInProgress: o.cycleBusy,
		NextRun:         o.nextRun,
	}
	running := make(map[models.Family]bool, len(o.inProgress))
	for f, v := range o.inProgress {
		running[f] = v
	}
	o.mu.Unlock()

	for _, family := range o.cfg.Families() {
		cp, err := o.state.GetCheckpoint(ctx, family)
		if err != nil {
			return nil, fmt.Errorf("failed to read checkpoint for %s: %w", family, err)
		}
		last, err := o.state.LastResult(ctx, family)
		if err != nil {
			return nil, fmt.Errorf("failed to read last result for %s: %w", family, err)
		}
		status.Families = append(status.Families, FamilyStatus{
			Family:     family,
			InProgress: running[family],
			Checkpoint: *cp,
			Last:       last,
		})
	}

	pending, err := o.state.PendingConflicts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read pending conflicts: %w", err)
	}
	status.PendingConflicts = len(pending)

	return status, nil
}

// History возвращает сохраненные результаты циклов семейства,
// от новых к старым
func (o *Orchestrator) History(ctx context.Context, family models.Family) ([]models.SyncResult, error) {
	return o.state.History(ctx, family)
}

// PendingConflicts возвращает конфликты, ожидающие ручного разрешения
func (o *Orchestrator) PendingConflicts(ctx context.Context) ([]models.Conflict, error) {
	return o.state.PendingConflicts(ctx)
}

// ResolveConflict применяет ручное решение отложенного конфликта:
// запись выбранной стороны применяется к противоположной стороне,
// конфликт помечается разрешенным
func (o *Orchestrator) ResolveConflict(ctx context.Context, conflictID string, winner models.Origin) error {
	conflict, err := o.state.GetConflict(ctx, conflictID)
	if err != nil {
		return fmt.Errorf("failed to load conflict %s: %w", conflictID, err)
	}
	if !conflict.IsPending() {
		return fmt.Errorf("conflict %s: %w", conflictID, ErrConflictNotPending)
	}

	var record *models.ChangeRecord
	var ap applier
	switch winner {
	case models.OriginLocal:
		record = conflict.Local
		gw, ok := o.gateways[conflict.Family]
		if !ok {
			return fmt.Errorf("no gateway for family %q", conflict.Family)
		}
		ap = &remoteApplier{gw: gw}
	case models.OriginRemote:
		record = conflict.Remote
		ap = &localApplier{store: o.store}
	default:
		return fmt.Errorf("unknown winner origin: %q", winner)
	}

	if _, err := ap.apply(ctx, record); err != nil {
		return fmt.Errorf("failed to apply conflict winner: %w", err)
	}

	conflict.Status = models.ConflictResolved
	conflict.Winner = winner
	conflict.ResolvedAt = o.now()
	if err := o.state.SaveConflict(ctx, conflict); err != nil {
		return fmt.Errorf("failed to save resolved conflict: %w", err)
	}

	o.logger.Info("conflict resolved manually",
		"conflict_id", conflictID,
		"entity_id", conflict.EntityID,
		"family", conflict.Family,
		"winner", winner,
	)
	return nil
}
