package domain

import (
	"context"
	"net/http"
)

//go:generate mockgen -destination mocks/mock_auth_provider.go -package mocks github.com/Harmonic/harmonic/internal/domain AuthProvider
//go:generate mockgen -destination mocks/mock_http_client.go -package mocks github.com/Harmonic/harmonic/internal/domain HTTPClient

// AuthUser is the auth provider's account record
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type CreateAuthUserParams struct {
	Email        string
	Password     string
	EmailConfirm bool
	UserMetadata map[string]interface{}
}

// AuthProvider is the auth admin API
type AuthProvider interface {
	CreateUser(ctx context.Context, params CreateAuthUserParams) (*AuthUser, error)
	// GenerateRecoveryLink issues a password recovery link that lands on redirectTo
	GenerateRecoveryLink(ctx context.Context, email, redirectTo string) (string, error)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type contextKey string

const authUserKey contextKey = "auth_user"

// Caller is the authenticated user of a dashboard request
type Caller struct {
	UserID string
	Email  string
}

func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, authUserKey, caller)
}

func CallerFromContext(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(authUserKey).(Caller)
	return caller, ok && caller.UserID != ""
}
