package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveWithinLimit(t *testing.T) {
	l := New(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, l.Reserve(ctx))
	}
	assert.Equal(t, 0, l.Remaining())
	assert.Greater(t, l.Wait(), time.Duration(0))
}

func TestReserveBlocksUntilRollover(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var mu sync.Mutex

	l := New(1, time.Minute)
	l.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return current
	}

	require.NoError(t, l.Reserve(context.Background()))
	assert.Equal(t, 0, l.Remaining())

	// Следующее окно освобождает слот
	mu.Lock()
	current = current.Add(time.Minute)
	mu.Unlock()

	assert.Equal(t, 1, l.Remaining())
	require.NoError(t, l.Reserve(context.Background()))
}

func TestReserveCanceledWhileWaiting(t *testing.T) {
	l := New(1, time.Minute)
	require.NoError(t, l.Reserve(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := l.Reserve(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// Потолок окна не превышается даже при десятикратной конкуренции
func TestCeilingUnderConcurrency(t *testing.T) {
	const rate = 5

	l := New(rate, time.Minute)

	var granted atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < rate*10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			if err := l.Reserve(ctx); err == nil {
				granted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(rate), granted.Load())
}

func TestRefund(t *testing.T) {
	l := New(2, time.Minute)
	ctx := context.Background()

	require.NoError(t, l.Reserve(ctx))
	require.NoError(t, l.Reserve(ctx))
	assert.Equal(t, 0, l.Remaining())

	l.Refund()
	assert.Equal(t, 1, l.Remaining())

	// Refund не уводит счетчик в минус
	l.Refund()
	l.Refund()
	assert.Equal(t, 2, l.Remaining())
}
