// Package sync реализует цикл двусторонней синхронизации: обнаружение
// изменений, разрешение конфликтов и применение batch-ей с контрольными
// точками.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/crmsync/internal/gateway"
	"github.com/iudanet/crmsync/internal/models"
	"github.com/iudanet/crmsync/internal/storage"
)

// ErrPageLimit возвращается пейджером при достижении лимита страниц за цикл.
// Оставшиеся страницы будут просканированы в следующем цикле, потому что
// контрольная точка не продвигается за пределы просмотренного.
var ErrPageLimit = fmt.Errorf("page limit for cycle reached")

// Detector обнаруживает изменения обеих сторон с момента контрольной точки
type Detector struct {
	store    storage.LocalStore
	maxPages int
}

// NewDetector создает детектор изменений.
// maxPages ограничивает количество удаленных страниц за один цикл;
// значение <= 0 снимает ограничение.
func NewDetector(store storage.LocalStore, maxPages int) *Detector {
	return &Detector{
		store:    store,
		maxPages: maxPages,
	}
}

// LocalChanges возвращает локальные изменения семейства после since,
// упорядоченные по времени изменения
func (d *Detector) LocalChanges(ctx context.Context, family models.Family, since time.Time) ([]models.ChangeRecord, error) {
	entities, err := d.store.ChangedSince(ctx, family, since)
	if err != nil {
		return nil, fmt.Errorf("failed to read local changes for %s: %w", family, err)
	}

	records := make([]models.ChangeRecord, 0, len(entities))
	for i := range entities {
		records = append(records, toRecord(&entities[i], models.OriginLocal))
	}
	return records, nil
}

// RemoteChanges возвращает пейджер удаленных изменений семейства после since.
// Скан трактуется как снимок на момент старта цикла: изменения, пришедшие
// на более поздние страницы во время обхода, догоняются следующим циклом.
func (d *Detector) RemoteChanges(gw gateway.Gateway, since time.Time) *RemotePager {
	return &RemotePager{
		gw:       gw,
		since:    since,
		page:     1,
		maxPages: d.maxPages,
	}
}

// RemotePager постранично обходит удаленные изменения одного семейства.
// Каждый вызов Next запрашивает одну страницу; пейджер перезапускаем -
// при transient ошибке повторный Next перечитывает ту же страницу.
type RemotePager struct {
	gw       gateway.Gateway
	since    time.Time
	page     int
	pages    int
	maxPages int
	done     bool
}

// Next возвращает очередную страницу изменений.
// Вторым значением возвращает false, когда страниц больше нет.
func (p *RemotePager) Next(ctx context.Context) ([]models.ChangeRecord, bool, error) {
	if p.done {
		return nil, false, nil
	}
	if p.maxPages > 0 && p.pages >= p.maxPages {
		p.done = true
		return nil, false, ErrPageLimit
	}

	entities, hasMore, err := p.gw.List(ctx, p.since, p.page)
	if err != nil {
		// страница не засчитана, повторный Next перечитает ее
		return nil, false, err
	}

	p.page++
	p.pages++
	if !hasMore {
		p.done = true
	}

	records := make([]models.ChangeRecord, 0, len(entities))
	for i := range entities {
		records = append(records, toRecord(&entities[i], models.OriginRemote))
	}
	return records, !p.done, nil
}

// toRecord строит запись изменения из снимка сущности
func toRecord(entity *models.Entity, origin models.Origin) models.ChangeRecord {
	op := models.OpUpdate
	if entity.Deleted {
		op = models.OpDelete
	}
	return models.ChangeRecord{
		EntityID:  entity.ID,
		Family:    entity.Family,
		Origin:    origin,
		Op:        op,
		UpdatedAt: entity.UpdatedAt,
		Entity:    entity.Clone(),
	}
}
