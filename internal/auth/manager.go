// Package auth владеет жизненным циклом учетных данных для удаленной CRM.
//
// Состояния менеджера: Unauthenticated → Authenticated → Expiring →
// Authenticated (успешный refresh) или → Unauthenticated (неудачный
// refresh, принудительная полная аутентификация).
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/crmsync/internal/config"
	"github.com/iudanet/crmsync/internal/storage"
	"github.com/iudanet/crmsync/internal/syncerr"
	"github.com/iudanet/crmsync/pkg/api"
)

// Manager управляет получением и обновлением учетных данных.
// Credential - единоличная собственность менеджера: мутации происходят
// только внутри refresh/authenticate под мьютексом, поэтому конкурентные
// вызывающие разделяют один in-flight refresh.
type Manager struct {
	client    TokenClient
	store     CredentialStore
	logger    *slog.Logger
	cfg       *config.Config
	cred      *storage.Credential
	threshold time.Duration
	now       func() time.Time
	mu        sync.Mutex
}

// NewManager создает менеджер учетных данных.
// store может быть nil - тогда credential живет только в памяти процесса.
func NewManager(client TokenClient, store CredentialStore, cfg *config.Config, logger *slog.Logger) *Manager {
	return &Manager{
		client:    client,
		store:     store,
		cfg:       cfg,
		logger:    logger,
		threshold: cfg.RefreshThreshold(),
		now:       time.Now,
	}
}

// LoadCached восстанавливает сохраненный credential из хранилища.
// Отсутствие кеша не является ошибкой.
func (m *Manager) LoadCached(ctx context.Context) error {
	if m.store == nil {
		return nil
	}

	cred, err := m.store.GetCredential(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrCredentialNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load cached credential: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Кеш другой схемы бесполезен (конфигурация сменилась)
	if cred.Scheme == string(m.cfg.AuthType) {
		m.cred = cred
		m.logger.Debug("Loaded cached credential", "scheme", cred.Scheme)
	}

	return nil
}

// Authenticate выполняет полный handshake выбранной схемы и сохраняет
// полученный credential.
func (m *Manager) Authenticate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.authenticateLocked(ctx)
}

// ValidToken возвращает действующий access token, прозрачно обновляя его,
// если до истечения осталось меньше настроенного порога. При неудачном
// refresh выполняется одна полная повторная аутентификация, после чего
// поднимается AuthFailure.
func (m *Manager) ValidToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Статический ключ не имеет жизненного цикла
	if m.cfg.AuthType == config.AuthAPIKey {
		return m.cfg.APIKey, nil
	}

	// Unauthenticated → Authenticated
	if m.cred == nil || m.cred.AccessToken == "" {
		if err := m.authenticateLocked(ctx); err != nil {
			return "", err
		}
		return m.cred.AccessToken, nil
	}

	// Authenticated, не Expiring - быстрый путь.
	// Конкурентный вызывающий, ждавший мьютекс во время refresh,
	// попадает сюда и не запускает второй refresh.
	if !m.expiringLocked() {
		return m.cred.AccessToken, nil
	}

	// Expiring → Authenticated (refresh) или → Unauthenticated
	if err := m.refreshLocked(ctx); err != nil {
		m.logger.Warn("Token refresh failed, retrying full authentication", "error", err)

		if err := m.authenticateLocked(ctx); err != nil {
			return "", err
		}
	}

	return m.cred.AccessToken, nil
}

// Invalidate сбрасывает текущий credential. Вызывается клиентом при 401:
// следующий ValidToken выполнит полную аутентификацию.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cred = nil
}

// Authorize прикрепляет к запросу заголовок аутентификации выбранной схемы
func (m *Manager) Authorize(ctx context.Context, req *http.Request) error {
	token, err := m.ValidToken(ctx)
	if err != nil {
		return err
	}

	if m.cfg.AuthType == config.AuthAPIKey {
		req.Header.Set("X-API-Key", token)
	} else {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return nil
}

// expiringLocked возвращает true, если access token истекает в пределах
// порога. Вызывается только под мьютексом.
func (m *Manager) expiringLocked() bool {
	if m.cred.ExpiresAt == 0 {
		return false
	}
	expiresAt := time.Unix(m.cred.ExpiresAt, 0)
	return m.now().Add(m.threshold).After(expiresAt)
}

// authenticateLocked выполняет scheme-специфичный handshake.
// Вызывается только под мьютексом.
func (m *Manager) authenticateLocked(ctx context.Context) error {
	var (
		resp *api.TokenResponse
		err  error
	)

	switch m.cfg.AuthType {
	case config.AuthJWT:
		resp, err = m.client.Login(ctx, api.LoginRequest{
			Username: m.cfg.Username,
			Password: m.cfg.Password,
		})
	case config.AuthOAuth:
		resp, err = m.client.ClientCredentials(ctx, api.TokenRequest{
			GrantType:    "client_credentials",
			ClientID:     m.cfg.ClientID,
			ClientSecret: m.cfg.ClientSecret,
		})
	case config.AuthAPIKey:
		// Статический ключ: handshake не требуется
		m.cred = &storage.Credential{
			Scheme:      string(config.AuthAPIKey),
			AccessToken: m.cfg.APIKey,
		}
		return nil
	default:
		return syncerr.Auth("auth.authenticate", fmt.Errorf("unknown authentication scheme: %q", m.cfg.AuthType))
	}

	if err != nil {
		return syncerr.Auth("auth.authenticate", err)
	}

	m.storeTokenLocked(ctx, resp)
	m.logger.Info("Authenticated with CRM", "scheme", string(m.cfg.AuthType))

	return nil
}

// refreshLocked обновляет access token по refresh token.
// Для схемы oauth (client credentials) refresh token не выдается -
// выполняется повторный handshake.
func (m *Manager) refreshLocked(ctx context.Context) error {
	if m.cred.RefreshToken == "" {
		return m.authenticateLocked(ctx)
	}

	resp, err := m.client.Refresh(ctx, api.RefreshRequest{RefreshToken: m.cred.RefreshToken})
	if err != nil {
		// Expiring → Unauthenticated
		m.cred = nil
		return fmt.Errorf("refresh failed: %w", err)
	}

	m.storeTokenLocked(ctx, resp)
	m.logger.Debug("Access token refreshed")

	return nil
}

// storeTokenLocked сохраняет полученные токены в память и кеш.
// Вызывается только под мьютексом.
func (m *Manager) storeTokenLocked(ctx context.Context, resp *api.TokenResponse) {
	cred := &storage.Credential{
		Scheme:       string(m.cfg.AuthType),
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}

	// Refresh без нового refresh token сохраняет старый
	if cred.RefreshToken == "" && m.cred != nil {
		cred.RefreshToken = m.cred.RefreshToken
	}

	cred.ExpiresAt = m.expiryFor(resp)
	m.cred = cred

	if m.store != nil {
		if err := m.store.SaveCredential(ctx, cred); err != nil {
			// Кеш не критичен: движок продолжает с in-memory credential
			m.logger.Warn("Failed to cache credential", "error", err)
		}
	}
}

// expiryFor вычисляет unix-время истечения access token.
// Если сервер не прислал expires_in, пробуем прочитать exp claim JWT
// без проверки подписи (подпись проверяет сервер, клиенту нужен
// только срок жизни).
func (m *Manager) expiryFor(resp *api.TokenResponse) int64 {
	if resp.ExpiresIn > 0 {
		return m.now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix()
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(resp.AccessToken, claims); err != nil {
		return 0
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0
	}

	return exp.Unix()
}
