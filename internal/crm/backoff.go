package crm

import (
	"math/rand"
	"time"
)

// RetryConfig настраивает повторы неудачных запросов
type RetryConfig struct {
	MaxAttempts  int           // MaxAttempts максимум попыток, включая первую
	InitialDelay time.Duration // InitialDelay задержка перед первым повтором
	MaxDelay     time.Duration // MaxDelay потолок задержки
	Multiplier   float64       // Multiplier фактор роста задержки
}

// DefaultRetryConfig возвращает настройки повторов по умолчанию.
// maxRetries - количество повторов сверх первой попытки.
func DefaultRetryConfig(maxRetries int) RetryConfig {
	return RetryConfig{
		MaxAttempts:  maxRetries + 1,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}

// backoffState представляет явный конечный автомат повторов: счетчик
// попыток и следующая задержка, независимые от примитивов конкурентности.
type backoffState struct {
	cfg       RetryConfig
	attempt   int
	nextDelay time.Duration
}

func newBackoff(cfg RetryConfig) *backoffState {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = 500 * time.Millisecond
	}
	if cfg.Multiplier < 1 {
		cfg.Multiplier = 2.0
	}
	return &backoffState{cfg: cfg, nextDelay: cfg.InitialDelay}
}

// exhausted возвращает true, когда жесткий потолок попыток достигнут
func (b *backoffState) exhausted() bool {
	return b.attempt >= b.cfg.MaxAttempts-1
}

// advance фиксирует неудачную попытку и возвращает задержку перед
// следующей, с экспоненциальным ростом и джиттером.
func (b *backoffState) advance() time.Duration {
	delay := b.nextDelay

	b.attempt++
	next := time.Duration(float64(b.nextDelay) * b.cfg.Multiplier)
	if b.cfg.MaxDelay > 0 && next > b.cfg.MaxDelay {
		next = b.cfg.MaxDelay
	}
	b.nextDelay = next

	return withJitter(delay)
}

// withJitter возвращает случайную задержку в диапазоне [delay/2, delay].
// Джиттер разводит повторы конкурентных вызывающих по времени.
func withJitter(delay time.Duration) time.Duration {
	if delay <= 0 {
		return 0
	}
	half := delay / 2
	return half + time.Duration(rand.Int63n(int64(half)+1))
}
