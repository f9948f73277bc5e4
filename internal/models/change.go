package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Origin указывает сторону, на которой произошло изменение
type Origin string

const (
	OriginLocal  Origin = "local"  // изменение в локальном хранилище
	OriginRemote Origin = "remote" // изменение в удаленной CRM
)

// Op представляет тип операции над сущностью
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Entity представляет снимок одной сущности в локальном формате.
// Payload содержит JSON в локальной форме; маппинг в wire-формат
// удаленной CRM выполняют gateways.
type Entity struct {
	UpdatedAt time.Time       `json:"updated_at"` // UpdatedAt время последнего изменения
	ID        string          `json:"id"`         // ID идентификатор сущности (общий для обеих сторон)
	Family    Family          `json:"family"`     // Family семейство сущности
	Payload   json.RawMessage `json:"payload"`    // Payload снимок данных в локальной форме
	Deleted   bool            `json:"deleted"`    // Deleted флаг soft delete
}

// Clone создает глубокую копию сущности
func (e *Entity) Clone() *Entity {
	payload := make(json.RawMessage, len(e.Payload))
	copy(payload, e.Payload)

	return &Entity{
		ID:        e.ID,
		Family:    e.Family,
		Payload:   payload,
		UpdatedAt: e.UpdatedAt,
		Deleted:   e.Deleted,
	}
}

// PayloadEqual сравнивает payload двух сущностей побайтово после
// канонизации JSON. Используется для детекции no-op применений
// (идемпотентность повторной доставки batch).
func (e *Entity) PayloadEqual(other *Entity) bool {
	if e.Deleted != other.Deleted {
		return false
	}
	return jsonEqual(e.Payload, other.Payload)
}

// jsonEqual сравнивает два JSON документа без учета порядка ключей
func jsonEqual(a, b json.RawMessage) bool {
	if bytes.Equal(a, b) {
		return true
	}
	var av, bv any
	if err := json.Unmarshal(a, &av); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bv); err != nil {
		return false
	}
	ac, err := json.Marshal(av)
	if err != nil {
		return false
	}
	bc, err := json.Marshal(bv)
	if err != nil {
		return false
	}
	return bytes.Equal(ac, bc)
}

// ChangeRecord представляет одно обнаруженное изменение на одной из сторон,
// ожидающее применения к противоположной стороне.
// Записи существуют только в рамках одного цикла синхронизации.
type ChangeRecord struct {
	UpdatedAt time.Time `json:"updated_at"` // UpdatedAt время изменения на стороне origin
	EntityID  string    `json:"entity_id"`  // EntityID идентификатор сущности
	Family    Family    `json:"family"`     // Family семейство сущности
	Origin    Origin    `json:"origin"`     // Origin сторона, на которой произошло изменение
	Op        Op        `json:"op"`         // Op тип операции
	Entity    *Entity   `json:"entity"`     // Entity снимок данных (nil для delete без payload)
}

// IsNewerThan сравнивает две записи изменений по правилу LatestTimestamp:
// строго больший UpdatedAt выигрывает. При равных timestamps выигрывает
// удаленная сторона (детерминированный tie-break).
func (c *ChangeRecord) IsNewerThan(other *ChangeRecord) bool {
	if c.UpdatedAt.After(other.UpdatedAt) {
		return true
	}
	if c.UpdatedAt.Before(other.UpdatedAt) {
		return false
	}
	// Timestamps равны - remote выигрывает
	return c.Origin == OriginRemote && other.Origin != OriginRemote
}

// Clone создает глубокую копию записи изменения
func (c *ChangeRecord) Clone() *ChangeRecord {
	clone := *c
	if c.Entity != nil {
		clone.Entity = c.Entity.Clone()
	}
	return &clone
}
