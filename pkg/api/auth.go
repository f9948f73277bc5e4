package api

// LoginRequest представляет запрос password-grant аутентификации
type LoginRequest struct {
	Username string `json:"username"` // username учетной записи CRM
	Password string `json:"password"` // password учетной записи CRM
}

// TokenRequest представляет запрос client-credentials аутентификации (OAuth)
type TokenRequest struct {
	GrantType    string `json:"grant_type"`    // всегда "client_credentials"
	ClientID     string `json:"client_id"`     // идентификатор клиента
	ClientSecret string `json:"client_secret"` // секрет клиента
}

// RefreshRequest представляет запрос обновления access token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"` // действующий refresh token
}

// TokenResponse представляет ответ с токенами доступа
type TokenResponse struct {
	AccessToken  string `json:"access_token"`            // JWT access token
	RefreshToken string `json:"refresh_token,omitempty"` // refresh token (отсутствует для client credentials)
	TokenType    string `json:"token_type,omitempty"`    // обычно "Bearer"
	ExpiresIn    int64  `json:"expires_in"`              // время жизни access token в секундах
}

// ErrorResponse представляет ответ CRM с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // код ошибки
	Message string `json:"message,omitempty"` // человекочитаемое описание
}
