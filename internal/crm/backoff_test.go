package crm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig(3)

	// max_retries - повторы сверх первой попытки
	assert.Equal(t, 4, cfg.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.InitialDelay)
	assert.Equal(t, 30*time.Second, cfg.MaxDelay)
}

func TestBackoffProgression(t *testing.T) {
	b := newBackoff(RetryConfig{
		MaxAttempts:  4,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     300 * time.Millisecond,
		Multiplier:   2.0,
	})

	// Экспоненциальный рост с потолком: 100 → 200 → 300 (cap)
	expected := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		300 * time.Millisecond,
	}

	for i, base := range expected {
		assert.False(t, b.exhausted(), "attempt %d must not be exhausted", i)

		delay := b.advance()
		// Джиттер дает [delay/2, delay]
		assert.GreaterOrEqual(t, delay, base/2, "attempt %d", i)
		assert.LessOrEqual(t, delay, base, "attempt %d", i)
	}

	assert.True(t, b.exhausted())
}

func TestBackoffSingleAttempt(t *testing.T) {
	b := newBackoff(RetryConfig{MaxAttempts: 1})
	assert.True(t, b.exhausted())
}

func TestWithJitterZero(t *testing.T) {
	assert.Equal(t, time.Duration(0), withJitter(0))
}
