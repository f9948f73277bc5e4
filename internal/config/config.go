// Package config загружает и валидирует конфигурацию движка синхронизации.
// Невалидная конфигурация - единственная ошибка, которая поднимается до
// старта какого-либо цикла.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iudanet/crmsync/internal/models"
)

// AuthType представляет схему аутентификации для удаленной CRM
type AuthType string

const (
	AuthJWT    AuthType = "jwt"     // password grant, JWT access token + refresh token
	AuthOAuth  AuthType = "oauth"   // client credentials
	AuthAPIKey AuthType = "api_key" // статический ключ в заголовке X-API-Key
)

// SyncConfig содержит настройки оркестратора синхронизации
type SyncConfig struct {
	Direction                 string   `yaml:"direction"`                  // toRemote, toLocal, bidirectional
	ConflictResolution        string   `yaml:"conflict_resolution"`        // remoteWins, localWins, latestTimestamp, manualReview
	EntitiesToSync            []string `yaml:"entities_to_sync"`           // семейства для синхронизации
	BatchSize                 int      `yaml:"batch_size"`                 // размер batch применения
	SyncIntervalMinutes       int      `yaml:"sync_interval_minutes"`      // интервал авто-синхронизации
	MaxPagesPerCycle          int      `yaml:"max_pages_per_cycle"`        // ограничение remote-сканирования за цикл
	MaxCycleSeconds           int      `yaml:"max_cycle_seconds"`          // ограничение длительности цикла
	Workers                   int      `yaml:"workers"`                    // параллелизм применения batch
	RollbackFailureThreshold  float64  `yaml:"rollback_failure_threshold"` // доля ошибок batch, запускающая откат
	EnableRollback            bool     `yaml:"enable_rollback"`            // включить компенсацию неудачных batch
}

// Config представляет полную конфигурацию crmsync
type Config struct {
	BaseURL    string   `yaml:"base_url"`    // адрес удаленной CRM (например, https://crm.example.com)
	APIVersion string   `yaml:"api_version"` // версия API (например, "v1")
	AuthType   AuthType `yaml:"authentication_type"`

	// Учетные данные схемы jwt (password grant)
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`

	// Учетные данные схемы oauth (client credentials)
	ClientID     string `yaml:"client_id,omitempty"`
	ClientSecret string `yaml:"client_secret,omitempty"`

	// Учетные данные схемы api_key
	APIKey string `yaml:"api_key,omitempty"`

	TimeoutSeconds               int `yaml:"timeout_seconds"`                 // таймаут одного HTTP запроса
	MaxRetries                   int `yaml:"max_retries"`                     // максимум повторов на запрос
	RateLimitPerMinute           int `yaml:"rate_limit_per_minute"`           // потолок исходящих запросов
	TokenRefreshThresholdSeconds int `yaml:"token_refresh_threshold_seconds"` // порог упреждающего refresh

	Sync SyncConfig `yaml:"sync"`

	LocalDB     string `yaml:"local_db"`     // путь к SQLite базе локального хранилища
	StateDB     string `yaml:"state_db"`     // путь к BoltDB базе состояния синхронизации
	StateSecret string `yaml:"state_secret"` // секрет шифрования кеша учетных данных
	LogLevel    string `yaml:"log_level"`    // debug, info, warn, error
}

// Default возвращает конфигурацию с умолчаниями.
// Обязательные поля (base_url, учетные данные) умолчаний не имеют.
func Default() *Config {
	return &Config{
		APIVersion:                   "v1",
		AuthType:                     AuthJWT,
		TimeoutSeconds:               30,
		MaxRetries:                   3,
		RateLimitPerMinute:           60,
		TokenRefreshThresholdSeconds: 60,
		Sync: SyncConfig{
			Direction:                string(models.DirectionBidirectional),
			ConflictResolution:       string(models.PolicyLatestTimestamp),
			BatchSize:                50,
			SyncIntervalMinutes:      15,
			MaxPagesPerCycle:         100,
			MaxCycleSeconds:          600,
			Workers:                  4,
			RollbackFailureThreshold: 0.5,
			EnableRollback:           true,
			EntitiesToSync:           familyStrings(models.AllFamilies()),
		},
		LocalDB:  "crmsync.db",
		StateDB:  "crmsync-state.db",
		LogLevel: "info",
	}
}

// Load читает YAML файл конфигурации поверх умолчаний и валидирует результат
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate проверяет полноту и согласованность конфигурации
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.APIVersion == "" {
		return fmt.Errorf("api_version is required")
	}

	switch c.AuthType {
	case AuthJWT:
		if c.Username == "" || c.Password == "" {
			return fmt.Errorf("authentication_type %q requires username and password", c.AuthType)
		}
	case AuthOAuth:
		if c.ClientID == "" || c.ClientSecret == "" {
			return fmt.Errorf("authentication_type %q requires client_id and client_secret", c.AuthType)
		}
	case AuthAPIKey:
		if c.APIKey == "" {
			return fmt.Errorf("authentication_type %q requires api_key", c.AuthType)
		}
	default:
		return fmt.Errorf("unknown authentication_type: %q", c.AuthType)
	}

	// Без секрета не открыть зашифрованный кеш учетных данных
	if c.StateSecret == "" {
		return fmt.Errorf("state_secret is required")
	}

	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative, got %d", c.MaxRetries)
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("rate_limit_per_minute must be positive, got %d", c.RateLimitPerMinute)
	}
	if c.TokenRefreshThresholdSeconds < 0 {
		return fmt.Errorf("token_refresh_threshold_seconds must not be negative, got %d", c.TokenRefreshThresholdSeconds)
	}

	if _, err := models.ParseDirection(c.Sync.Direction); err != nil {
		return err
	}
	if _, err := models.ParsePolicy(c.Sync.ConflictResolution); err != nil {
		return err
	}
	for _, f := range c.Sync.EntitiesToSync {
		if _, err := models.ParseFamily(f); err != nil {
			return err
		}
	}
	if len(c.Sync.EntitiesToSync) == 0 {
		return fmt.Errorf("entities_to_sync must not be empty")
	}
	if c.Sync.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.Sync.BatchSize)
	}
	if c.Sync.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Sync.Workers)
	}
	if c.Sync.MaxPagesPerCycle <= 0 {
		return fmt.Errorf("max_pages_per_cycle must be positive, got %d", c.Sync.MaxPagesPerCycle)
	}
	if c.Sync.RollbackFailureThreshold < 0 || c.Sync.RollbackFailureThreshold > 1 {
		return fmt.Errorf("rollback_failure_threshold must be in [0, 1], got %v", c.Sync.RollbackFailureThreshold)
	}

	return nil
}

// Timeout возвращает таймаут HTTP запроса как time.Duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RefreshThreshold возвращает порог упреждающего refresh как time.Duration
func (c *Config) RefreshThreshold() time.Duration {
	return time.Duration(c.TokenRefreshThresholdSeconds) * time.Second
}

// SyncInterval возвращает интервал авто-синхронизации как time.Duration
func (c *Config) SyncInterval() time.Duration {
	return time.Duration(c.Sync.SyncIntervalMinutes) * time.Minute
}

// MaxCycleDuration возвращает ограничение длительности цикла.
// Ноль означает отсутствие ограничения.
func (c *Config) MaxCycleDuration() time.Duration {
	return time.Duration(c.Sync.MaxCycleSeconds) * time.Second
}

// Families возвращает семейства для синхронизации в каноническом порядке
func (c *Config) Families() []models.Family {
	enabled := make(map[models.Family]bool, len(c.Sync.EntitiesToSync))
	for _, s := range c.Sync.EntitiesToSync {
		enabled[models.Family(s)] = true
	}
	// Сохраняем порядок AllFamilies: родители раньше детей
	var out []models.Family
	for _, f := range models.AllFamilies() {
		if enabled[f] {
			out = append(out, f)
		}
	}
	return out
}

func familyStrings(families []models.Family) []string {
	out := make([]string, 0, len(families))
	for _, f := range families {
		out = append(out, string(f))
	}
	return out
}
