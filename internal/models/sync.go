package models

import "time"

// Checkpoint представляет маркер последней синхронизации для одного
// семейства сущностей. Хранит отдельные отметки для каждого направления.
// Читается в начале цикла, записывается только после полного завершения
// (или отката) цикла.
type Checkpoint struct {
	RemoteSince time.Time `json:"remote_since"` // RemoteSince отметка направления remote → local
	LocalSince  time.Time `json:"local_since"`  // LocalSince отметка направления local → remote
	Family      Family    `json:"family"`       // Family семейство сущностей
}

// IsZero возвращает true для checkpoint, с которого еще не было синхронизаций
func (c *Checkpoint) IsZero() bool {
	return c.RemoteSince.IsZero() && c.LocalSince.IsZero()
}

// SyncResult содержит итоги одного цикла синхронизации для одного
// семейства. Неизменяем после завершения цикла; добавляется в
// ограниченную историю для запросов статуса.
type SyncResult struct {
	StartedAt  time.Time `json:"started_at"`       // StartedAt время начала цикла
	FinishedAt time.Time `json:"finished_at"`      // FinishedAt время завершения цикла
	CycleID    string    `json:"cycle_id"`         // CycleID идентификатор цикла (UUID)
	Family     Family    `json:"family"`           // Family семейство сущностей
	Errors     []string  `json:"errors,omitempty"` // Errors список ошибок цикла
	Created    int       `json:"created"`          // Created количество созданных сущностей
	Updated    int       `json:"updated"`          // Updated количество обновленных сущностей
	Deleted    int       `json:"deleted"`          // Deleted количество удаленных сущностей
	Unchanged  int       `json:"unchanged"`        // Unchanged количество no-op применений (идемпотентные повторы)
	Conflicts  int       `json:"conflicts"`        // Conflicts количество обнаруженных конфликтов
	Deferred   int       `json:"deferred"`         // Deferred количество конфликтов, отложенных на ручное разрешение
	Failed     int       `json:"failed"`           // Failed количество сущностей с ошибками применения
	RolledBack int       `json:"rolled_back"`      // RolledBack количество компенсированных применений
	Aborted    bool      `json:"aborted"`          // Aborted true, если цикл прерван фатальной ошибкой (auth)
}

// Applied возвращает общее количество успешно примененных изменений
func (r *SyncResult) Applied() int {
	return r.Created + r.Updated + r.Deleted
}

// Duration возвращает длительность цикла
func (r *SyncResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// AddError добавляет ошибку в результат цикла
func (r *SyncResult) AddError(err error) {
	if err != nil {
		r.Errors = append(r.Errors, err.Error())
	}
}

// CycleReport агрегирует результаты одного запуска по всем семействам
type CycleReport struct {
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Results    []SyncResult `json:"results"`
}

// TotalApplied возвращает сумму примененных изменений по всем семействам
func (r *CycleReport) TotalApplied() int {
	total := 0
	for i := range r.Results {
		total += r.Results[i].Applied()
	}
	return total
}

// TotalFailed возвращает сумму ошибок применения по всем семействам
func (r *CycleReport) TotalFailed() int {
	total := 0
	for i := range r.Results {
		total += r.Results[i].Failed
	}
	return total
}
