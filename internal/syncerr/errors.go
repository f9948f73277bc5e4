// Package syncerr определяет таксономию ошибок движка синхронизации.
// Отложенный на ручное разрешение конфликт ошибкой не является и
// представлен статусом pending на записи models.Conflict.
package syncerr

import (
	"errors"
	"fmt"
)

// Kind represents the error class within the sync engine taxonomy
type Kind string

const (
	// KindAuth credentials rejected or refresh exhausted.
	// Fatal for the current cycle of the affected family.
	KindAuth Kind = "AUTH_FAILURE"

	// KindRateLimited remote returned 429 and retries were exhausted
	KindRateLimited Kind = "RATE_LIMITED"

	// KindTransient transport error or 5xx, retries exhausted.
	// Recorded as a per-entity failure, retriable on the next cycle.
	KindTransient Kind = "TRANSIENT_NETWORK_FAILURE"

	// KindValidation malformed payload rejected by the remote (4xx).
	// Fatal for the single entity, never retried.
	KindValidation Kind = "VALIDATION_FAILURE"
)

// Error типизированная ошибка движка синхронизации.
// Op и Kind определяют место и класс сбоя, Retriable - можно ли
// повторить операцию в следующем цикле.
type Error struct {
	Err       error  // Err исходная ошибка
	Op        string // Op операция, в которой произошла ошибка (например, "client.do", "gateway.list")
	Kind      Kind   // Kind класс ошибки
	Retriable bool   // Retriable можно ли повторить в следующем цикле
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s [%s]", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is позволяет сравнивать ошибки по Kind через errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Op == "" || t.Op == e.Op)
}

// Auth создает ошибку аутентификации (фатальна для цикла семейства)
func Auth(op string, cause error) *Error {
	return &Error{Kind: KindAuth, Op: op, Err: cause, Retriable: false}
}

// RateLimited создает ошибку исчерпания лимита запросов
func RateLimited(op string, cause error) *Error {
	return &Error{Kind: KindRateLimited, Op: op, Err: cause, Retriable: true}
}

// Transient создает временную сетевую ошибку
func Transient(op string, cause error) *Error {
	return &Error{Kind: KindTransient, Op: op, Err: cause, Retriable: true}
}

// Validation создает ошибку некорректного payload
func Validation(op string, cause error) *Error {
	return &Error{Kind: KindValidation, Op: op, Err: cause, Retriable: false}
}

// IsRetriable возвращает true, если ошибку можно повторить в следующем цикле.
// Неклассифицированные ошибки считаются retriable, чтобы временные сбои
// хранилища не блокировали checkpoint навсегда.
func IsRetriable(err error) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Retriable
	}
	return true
}

// KindOf возвращает Kind ошибки или пустую строку для неклассифицированных
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// IsAuth возвращает true для ошибок аутентификации
func IsAuth(err error) bool {
	return KindOf(err) == KindAuth
}

// IsValidation возвращает true для ошибок валидации payload
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}
