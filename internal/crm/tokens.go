package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iudanet/crmsync/pkg/api"
)

// TokenClient выполняет handshake-запросы аутентификации.
// Единственные вызовы, идущие мимо отказоустойчивого клиента:
// им самим не нужен токен, а повторы управляются менеджером токенов.
type TokenClient struct {
	httpClient *http.Client
	baseURL    string
	apiVersion string
}

// NewTokenClient создает клиент эндпоинтов аутентификации
func NewTokenClient(baseURL, apiVersion string, timeout time.Duration) *TokenClient {
	return &TokenClient{
		baseURL:    baseURL,
		apiVersion: apiVersion,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Login выполняет password-grant handshake
func (c *TokenClient) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	path := fmt.Sprintf("/api/%s/auth/login", c.apiVersion)
	if err := c.post(ctx, path, req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Refresh обменивает refresh token на новый access token
func (c *TokenClient) Refresh(ctx context.Context, req api.RefreshRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	path := fmt.Sprintf("/api/%s/auth/refresh", c.apiVersion)
	if err := c.post(ctx, path, req, &resp); err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	return &resp, nil
}

// ClientCredentials выполняет OAuth client-credentials handshake
func (c *TokenClient) ClientCredentials(ctx context.Context, req api.TokenRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	path := fmt.Sprintf("/api/%s/oauth/token", c.apiVersion)
	if err := c.post(ctx, path, req, &resp); err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	return &resp, nil
}

// post выполняет один JSON POST без повторов
func (c *TokenClient) post(ctx context.Context, path string, body, result any) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s", serverMessage(resp.StatusCode, respBody))
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
