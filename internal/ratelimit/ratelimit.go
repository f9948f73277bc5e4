// Package ratelimit ограничивает частоту исходящих запросов к удаленной CRM.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter представляет ограничитель исходящих запросов на основе
// фиксированного окна. Никогда не возвращает ошибку лимита - только
// задерживает вызывающего до освобождения слота.
type Limiter struct {
	now         func() time.Time // источник времени (подменяется в тестах)
	windowStart time.Time        // начало текущего окна
	rate        int              // максимум запросов в окне
	window      time.Duration    // длительность окна
	used        int              // потреблено слотов в текущем окне
	mu          sync.Mutex
}

// New создает новый Limiter с потолком rate запросов за window.
// Для требований вида "N запросов в минуту" window равен time.Minute.
func New(rate int, window time.Duration) *Limiter {
	return &Limiter{
		rate:   rate,
		window: window,
		now:    time.Now,
	}
}

// Reserve блокирует вызывающего до появления свободного слота и потребляет
// его. Единственная возможная ошибка - отмена контекста во время ожидания.
// При конкурентных вызовах потолок окна никогда не превышается: учет слотов
// выполняется под мьютексом, ожидающие повторяют попытку после rollover.
func (l *Limiter) Reserve(ctx context.Context) error {
	for {
		wait := l.tryReserve()
		if wait <= 0 {
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// tryReserve пытается потребить слот. Возвращает 0 при успехе,
// иначе - время до следующего rollover окна.
func (l *Limiter) tryReserve() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.rollover(now)

	if l.used < l.rate {
		l.used++
		return 0
	}

	return l.windowStart.Add(l.window).Sub(now)
}

// rollover сбрасывает счетчик, если текущее окно истекло.
// Вызывается только под мьютексом.
func (l *Limiter) rollover(now time.Time) {
	if l.windowStart.IsZero() || now.Sub(l.windowStart) >= l.window {
		l.windowStart = now
		l.used = 0
	}
}

// Refund возвращает один потребленный слот. Используется клиентом при
// ответе 429: повтор запроса не должен стоить второго слота сверх потолка.
func (l *Limiter) Refund() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.used > 0 {
		l.used--
	}
}

// Wait возвращает текущее время ожидания свободного слота без его
// потребления. Используется для отчетов о backpressure.
func (l *Limiter) Wait() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.rollover(now)

	if l.used < l.rate {
		return 0
	}
	return l.windowStart.Add(l.window).Sub(now)
}

// Remaining возвращает количество свободных слотов в текущем окне
func (l *Limiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rollover(l.now())
	return l.rate - l.used
}
