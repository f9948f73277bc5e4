package crm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/crmsync/internal/syncerr"
)

// fakeAuth подставляет токен и считает принудительные инвалидации
type fakeAuth struct {
	token         atomic.Value
	invalidations atomic.Int64
	err           error
}

func newFakeAuth(token string) *fakeAuth {
	a := &fakeAuth{}
	a.token.Store(token)
	return a
}

func (a *fakeAuth) Authorize(ctx context.Context, req *http.Request) error {
	if a.err != nil {
		return a.err
	}
	req.Header.Set("Authorization", "Bearer "+a.token.Load().(string))
	return nil
}

func (a *fakeAuth) Invalidate() {
	a.invalidations.Add(1)
	a.token.Store("fresh")
}

// fakeLimiter считает слоты без реального ожидания
type fakeLimiter struct {
	reserves atomic.Int64
	refunds  atomic.Int64
}

func (l *fakeLimiter) Reserve(ctx context.Context) error {
	l.reserves.Add(1)
	return nil
}

func (l *fakeLimiter) Refund() {
	l.refunds.Add(1)
}

func testRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func newTestClient(serverURL string, auth Authorizer, limiter Reserver) *Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(serverURL, "v1", auth, limiter, testRetry(), 5*time.Second, logger)
}

func TestGetSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer valid", r.Header.Get("Authorization"))
		assert.Equal(t, "/api/v1/tasks", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[],"page":2,"per_page":100,"total":0,"total_pages":2}`))
	}))
	defer server.Close()

	limiter := &fakeLimiter{}
	client := newTestClient(server.URL, newFakeAuth("valid"), limiter)

	query := url.Values{}
	query.Set("page", "2")

	var result struct {
		Page int `json:"page"`
	}
	err := client.Get(context.Background(), "/api/v1/tasks", query, &result)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, int64(1), limiter.reserves.Load())
}

func Test401ReauthenticateAndReplay(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.Header.Get("Authorization") == "Bearer stale" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	auth := newFakeAuth("stale")
	client := newTestClient(server.URL, auth, &fakeLimiter{})

	err := client.Get(context.Background(), "/api/v1/projects", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), auth.invalidations.Load())
	assert.Equal(t, int64(2), requests.Load())
}

func Test401AfterReauthenticationIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	auth := newFakeAuth("stale")
	client := newTestClient(server.URL, auth, &fakeLimiter{})

	err := client.Get(context.Background(), "/api/v1/projects", nil, nil)
	require.Error(t, err)
	assert.True(t, syncerr.IsAuth(err))
	assert.False(t, syncerr.IsRetriable(err))
	// Ровно одна принудительная повторная аутентификация
	assert.Equal(t, int64(1), auth.invalidations.Load())
}

func TestAuthorizeErrorNotRetried(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server")
	}))
	defer server.Close()

	auth := newFakeAuth("")
	auth.err = syncerr.Auth("auth.authenticate", errors.New("credentials rejected"))

	limiter := &fakeLimiter{}
	client := newTestClient(server.URL, auth, limiter)

	err := client.Get(context.Background(), "/api/v1/projects", nil, nil)
	require.Error(t, err)
	assert.True(t, syncerr.IsAuth(err))
	assert.Equal(t, int64(1), limiter.reserves.Load())
}

func Test429RefundsSlotAndHonorsRetryAfter(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	limiter := &fakeLimiter{}
	client := newTestClient(server.URL, newFakeAuth("valid"), limiter)

	err := client.Get(context.Background(), "/api/v1/clients", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), requests.Load())
	assert.Equal(t, int64(1), limiter.refunds.Load())
	assert.Equal(t, int64(2), limiter.reserves.Load())
}

func Test429Exhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL, newFakeAuth("valid"), &fakeLimiter{})

	err := client.Get(context.Background(), "/api/v1/clients", nil, nil)
	require.Error(t, err)
	assert.Equal(t, syncerr.KindRateLimited, syncerr.KindOf(err))
	assert.True(t, syncerr.IsRetriable(err))
}

func Test5xxRetriedThenSuccess(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, newFakeAuth("valid"), &fakeLimiter{})

	err := client.Get(context.Background(), "/api/v1/users", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), requests.Load())
}

func Test5xxRetriesExhausted(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL, newFakeAuth("valid"), &fakeLimiter{})

	err := client.Get(context.Background(), "/api/v1/users", nil, nil)
	require.Error(t, err)
	assert.Equal(t, syncerr.KindTransient, syncerr.KindOf(err))
	assert.True(t, syncerr.IsRetriable(err))
	assert.Equal(t, int64(3), requests.Load())
}

func Test404IsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not_found","message":"no such task"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, newFakeAuth("valid"), &fakeLimiter{})

	err := client.Get(context.Background(), "/api/v1/tasks/t-404", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, syncerr.IsValidation(err))
}

func Test4xxIsFatalValidation(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad_request","message":"subject is required"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, newFakeAuth("valid"), &fakeLimiter{})

	err := client.Post(context.Background(), "/api/v1/tasks", map[string]string{"body": "x"}, nil)
	require.Error(t, err)
	assert.True(t, syncerr.IsValidation(err))
	assert.False(t, syncerr.IsRetriable(err))
	assert.Contains(t, err.Error(), "subject is required")
	// 4xx не повторяется
	assert.Equal(t, int64(1), requests.Load())
}

func TestTransportErrorRetried(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // соединение будет отклонено

	client := newTestClient(server.URL, newFakeAuth("valid"), &fakeLimiter{})

	err := client.Get(context.Background(), "/api/v1/tasks", nil, nil)
	require.Error(t, err)
	assert.Equal(t, syncerr.KindTransient, syncerr.KindOf(err))
}

func TestRetryAfterHint(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   time.Duration
		ok     bool
	}{
		{name: "seconds", header: "3", want: 3 * time.Second, ok: true},
		{name: "zero seconds", header: "0", want: 0, ok: true},
		{name: "http date in the past", header: "Mon, 02 Jan 2006 15:04:05 GMT", want: 0, ok: true},
		{name: "empty", header: "", ok: false},
		{name: "garbage", header: "soon", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := retryAfterHint(tt.header)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRetryAfterHintFutureDate(t *testing.T) {
	got, ok := retryAfterHint(time.Now().Add(2 * time.Second).UTC().Format(http.TimeFormat))
	require.True(t, ok)
	assert.Greater(t, got, time.Duration(0))
	assert.LessOrEqual(t, got, 2*time.Second)
}
