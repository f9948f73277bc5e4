package models

import "fmt"

// Policy представляет политику разрешения конфликтов.
// Закрытый набор вариантов; выбор выполняется конфигурацией.
type Policy string

const (
	// PolicyRemoteWins удаленный payload всегда перезаписывает локальный
	PolicyRemoteWins Policy = "remoteWins"

	// PolicyLocalWins локальный payload всегда перезаписывает удаленный
	PolicyLocalWins Policy = "localWins"

	// PolicyLatestTimestamp выигрывает запись со строго большим timestamp;
	// при точном равенстве детерминированно выигрывает remote
	PolicyLatestTimestamp Policy = "latestTimestamp"

	// PolicyManualReview ни одна сторона не применяется автоматически;
	// конфликт записывается со статусом pending для внешнего разрешения
	PolicyManualReview Policy = "manualReview"
)

// ParsePolicy преобразует строку конфигурации в Policy
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyRemoteWins, PolicyLocalWins, PolicyLatestTimestamp, PolicyManualReview:
		return Policy(s), nil
	}
	return "", fmt.Errorf("unknown conflict resolution policy: %q", s)
}

// Direction представляет направление синхронизации
type Direction string

const (
	DirectionToRemote      Direction = "toRemote"      // только локальные изменения → CRM
	DirectionToLocal       Direction = "toLocal"       // только изменения CRM → локальное хранилище
	DirectionBidirectional Direction = "bidirectional" // оба направления
)

// ParseDirection преобразует строку конфигурации в Direction
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionToRemote, DirectionToLocal, DirectionBidirectional:
		return Direction(s), nil
	}
	return "", fmt.Errorf("unknown sync direction: %q", s)
}

// Pulls возвращает true, если направление включает remote → local
func (d Direction) Pulls() bool {
	return d == DirectionToLocal || d == DirectionBidirectional
}

// Pushes возвращает true, если направление включает local → remote
func (d Direction) Pushes() bool {
	return d == DirectionToRemote || d == DirectionBidirectional
}
