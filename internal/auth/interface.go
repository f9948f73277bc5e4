package auth

import (
	"context"

	"github.com/iudanet/crmsync/internal/storage"
	"github.com/iudanet/crmsync/pkg/api"
)

//go:generate moq -out tokenclient_mock.go . TokenClient

// TokenClient issues the raw authentication handshakes against the CRM.
// Auth endpoints are the only calls that bypass the resilient client:
// they must not require a token themselves.
type TokenClient interface {
	// Login performs the password-grant handshake
	Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error)

	// Refresh exchanges a refresh token for a new access token
	Refresh(ctx context.Context, req api.RefreshRequest) (*api.TokenResponse, error)

	// ClientCredentials performs the OAuth client-credentials handshake
	ClientCredentials(ctx context.Context, req api.TokenRequest) (*api.TokenResponse, error)
}

// CredentialStore persists the credential between runs.
// Реализуется boltdb state-хранилищем (шифрование на его стороне).
type CredentialStore interface {
	SaveCredential(ctx context.Context, cred *storage.Credential) error
	GetCredential(ctx context.Context) (*storage.Credential, error)
	DeleteCredential(ctx context.Context) error
}
