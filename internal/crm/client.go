// Package crm реализует отказоустойчивый HTTP клиент удаленной CRM.
//
// Каждый исходящий запрос проходит через rate limiter и менеджер токенов;
// временные сбои повторяются с экспоненциальным backoff, 401 вызывает
// одну принудительную повторную аутентификацию, 429 учитывает
// серверный Retry-After.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/iudanet/crmsync/internal/syncerr"
	"github.com/iudanet/crmsync/pkg/api"
)

// ErrNotFound indicates the remote resource does not exist (HTTP 404)
var ErrNotFound = errors.New("resource not found")

// Authorizer прикрепляет учетные данные к запросу.
// Реализуется auth.Manager.
type Authorizer interface {
	Authorize(ctx context.Context, req *http.Request) error
	Invalidate()
}

// Reserver выдает слоты исходящих запросов.
// Реализуется ratelimit.Limiter.
type Reserver interface {
	Reserve(ctx context.Context) error
	Refund()
}

// Client представляет отказоустойчивый HTTP клиент для CRM API
type Client struct {
	httpClient *http.Client
	auth       Authorizer
	limiter    Reserver
	logger     *slog.Logger
	baseURL    string
	apiVersion string
	retry      RetryConfig
}

// NewClient создает новый API клиент
func NewClient(baseURL, apiVersion string, auth Authorizer, limiter Reserver, retry RetryConfig, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiVersion: apiVersion,
		auth:       auth,
		limiter:    limiter,
		retry:      retry,
		logger:     logger,
		httpClient: &http.Client{
			Timeout: timeout,
			// Ограничиваем количество редиректов и сохраняем
			// Authorization при переходе
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// ResourcePath возвращает путь коллекции ресурса: /api/{version}/{family}
func (c *Client) ResourcePath(family string) string {
	return fmt.Sprintf("/api/%s/%s", c.apiVersion, family)
}

// Get выполняет GET запрос с query-параметрами
func (c *Client) Get(ctx context.Context, path string, query url.Values, result any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, result)
}

// Post выполняет POST запрос с JSON телом
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, result)
}

// Put выполняет PUT запрос с JSON телом
func (c *Client) Put(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, result)
}

// Delete выполняет DELETE запрос
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do выполняет один логический запрос со всеми мерами устойчивости.
// Исходы: nil (Success), *syncerr.Error с Retriable=true
// (RetriableFailure - повторы исчерпаны) или Retriable=false
// (FatalFailure - запрос некорректен или аутентификация невозможна).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, result any) error {
	op := "client." + method

	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return syncerr.Validation(op, fmt.Errorf("failed to marshal request body: %w", err))
		}
		payload = data
	}

	backoff := newBackoff(c.retry)
	reauthed := false

	for {
		status, respBody, retryAfter, err := c.attempt(ctx, method, path, query, payload)

		switch {
		case err != nil:
			// Ошибка аутентификации не транспортная: повтор не поможет
			if syncerr.IsAuth(err) {
				return err
			}
			// Транспортная ошибка - повторяем с backoff
			if backoff.exhausted() {
				return syncerr.Transient(op, fmt.Errorf("request failed after %d attempts: %w", backoff.attempt+1, err))
			}
			if err := c.sleep(ctx, backoff.advance()); err != nil {
				return syncerr.Transient(op, err)
			}
			continue

		case status >= 200 && status < 300:
			if result == nil || len(respBody) == 0 {
				return nil
			}
			if err := json.Unmarshal(respBody, result); err != nil {
				return syncerr.Transient(op, fmt.Errorf("failed to decode response: %w", err))
			}
			return nil

		case status == http.StatusUnauthorized:
			// Одна принудительная повторная аутентификация, затем один
			// повтор исходного запроса
			if reauthed {
				return syncerr.Auth(op, fmt.Errorf("request rejected after re-authentication: %s", serverMessage(status, respBody)))
			}
			c.logger.Warn("Received 401, forcing re-authentication", "path", path)
			c.auth.Invalidate()
			reauthed = true
			continue

		case status == http.StatusTooManyRequests:
			// Повтор не должен стоить второго слота сверх потолка
			c.limiter.Refund()
			if backoff.exhausted() {
				return syncerr.RateLimited(op, fmt.Errorf("rate limited after %d attempts: %s", backoff.attempt+1, serverMessage(status, respBody)))
			}
			delay := backoff.advance()
			if hint, ok := retryAfterHint(retryAfter); ok {
				delay = hint
			}
			c.logger.Debug("Rate limited by remote, waiting", "delay", delay)
			if err := c.sleep(ctx, delay); err != nil {
				return syncerr.RateLimited(op, err)
			}
			continue

		case status >= 500:
			if backoff.exhausted() {
				return syncerr.Transient(op, fmt.Errorf("server error after %d attempts: %s", backoff.attempt+1, serverMessage(status, respBody)))
			}
			if err := c.sleep(ctx, backoff.advance()); err != nil {
				return syncerr.Transient(op, err)
			}
			continue

		case status == http.StatusNotFound:
			return syncerr.Validation(op, fmt.Errorf("%w: %s", ErrNotFound, serverMessage(status, respBody)))

		default:
			// Остальные 4xx: запрос вызывающего некорректен, повтор бессмыслен
			return syncerr.Validation(op, fmt.Errorf("%s", serverMessage(status, respBody)))
		}
	}
}

// attempt выполняет одну попытку запроса: слот rate limiter, токен,
// HTTP вызов. Возвращает статус, тело и заголовок Retry-After
// либо транспортную ошибку.
func (c *Client) attempt(ctx context.Context, method, path string, query url.Values, payload []byte) (int, []byte, string, error) {
	if err := c.limiter.Reserve(ctx); err != nil {
		return 0, nil, "", fmt.Errorf("rate limiter wait interrupted: %w", err)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return 0, nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if err := c.auth.Authorize(ctx, req); err != nil {
		// Ошибка получения токена не транспортная: пробрасываем как есть
		return 0, nil, "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, "", fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, "", fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, respBody, resp.Header.Get("Retry-After"), nil
}

// sleep ждет delay или отмену контекста
func (c *Client) sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// serverMessage извлекает человекочитаемое сообщение из тела ответа
func serverMessage(status int, body []byte) string {
	var errResp api.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return fmt.Sprintf("server error (%d): %s", status, errResp.Message)
	}
	return fmt.Sprintf("request failed with status %d", status)
}

// retryAfterHint разбирает серверный Retry-After (секунды или HTTP-дата)
func retryAfterHint(header string) (time.Duration, bool) {
	if header == "" {
		return 0, false
	}
	if seconds, err := strconv.Atoi(header); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second, true
	}
	if at, err := http.ParseTime(header); err == nil {
		if wait := time.Until(at); wait > 0 {
			return wait, true
		}
		return 0, true
	}
	return 0, false
}
