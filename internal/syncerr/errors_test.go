package syncerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		err       *Error
		kind      Kind
		retriable bool
	}{
		{Auth("client.do", errors.New("401")), KindAuth, false},
		{RateLimited("client.do", errors.New("429")), KindRateLimited, true},
		{Transient("client.do", errors.New("503")), KindTransient, true},
		{Validation("client.do", errors.New("400")), KindValidation, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.Equal(t, tt.retriable, IsRetriable(tt.err))
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Transient("gateway.list", cause)

	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("failed to list tasks: %w", err)
	var se *Error
	require.ErrorAs(t, wrapped, &se)
	assert.Equal(t, KindTransient, se.Kind)
}

func TestIsHelpers(t *testing.T) {
	assert.True(t, IsAuth(Auth("auth", errors.New("denied"))))
	assert.False(t, IsAuth(Transient("client", errors.New("timeout"))))

	assert.True(t, IsValidation(Validation("client", errors.New("bad payload"))))
	assert.False(t, IsValidation(errors.New("plain")))
}

func TestUnclassifiedErrorsAreRetriable(t *testing.T) {
	// Сбои хранилища и прочие неклассифицированные ошибки не должны
	// блокировать checkpoint навсегда
	assert.True(t, IsRetriable(errors.New("disk I/O error")))
	assert.Equal(t, Kind(""), KindOf(errors.New("disk I/O error")))
}
