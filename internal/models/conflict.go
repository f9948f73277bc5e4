package models

import "time"

// ConflictStatus представляет статус конфликта в журнале аудита
type ConflictStatus string

const (
	ConflictPending  ConflictStatus = "pending"  // ожидает ручного разрешения
	ConflictResolved ConflictStatus = "resolved" // разрешен (автоматически или вручную)
)

// Conflict представляет пару изменений одной сущности на обеих сторонах,
// обе новее последнего checkpoint. Записывается в журнал аудита до
// применения; исход разрешения (winner) прикрепляется после.
type Conflict struct {
	DetectedAt time.Time      `json:"detected_at"`           // DetectedAt время обнаружения
	ResolvedAt time.Time      `json:"resolved_at,omitempty"` // ResolvedAt время разрешения (zero если pending)
	ID         string         `json:"id"`                    // ID уникальный идентификатор конфликта (UUID)
	EntityID   string         `json:"entity_id"`             // EntityID идентификатор конфликтующей сущности
	Family     Family         `json:"family"`                // Family семейство сущности
	Status     ConflictStatus `json:"status"`                // Status pending или resolved
	Winner     Origin         `json:"winner,omitempty"`      // Winner сторона-победитель (пусто если pending)
	Policy     Policy         `json:"policy"`                // Policy политика, применявшаяся при разрешении
	Local      *ChangeRecord  `json:"local"`                 // Local локальная сторона конфликта
	Remote     *ChangeRecord  `json:"remote"`                // Remote удаленная сторона конфликта
}

// IsPending возвращает true, если конфликт ожидает ручного разрешения
func (c *Conflict) IsPending() bool {
	return c.Status == ConflictPending
}
