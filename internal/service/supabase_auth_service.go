package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/Harmonic/harmonic/internal/domain"
	"github.com/Harmonic/harmonic/pkg/logger"
)

const supabaseProvider = "supabase"

// SupabaseAuthService calls the Supabase Auth admin API with the service role key.
// It implements domain.AuthProvider.
type SupabaseAuthService struct {
	httpClient     domain.HTTPClient
	baseURL        string
	serviceRoleKey string
	logger         logger.Logger
}

func NewSupabaseAuthService(httpClient domain.HTTPClient, baseURL, serviceRoleKey string, logger logger.Logger) *SupabaseAuthService {
	return &SupabaseAuthService{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(baseURL, "/"),
		serviceRoleKey: serviceRoleKey,
		logger:         logger,
	}
}

type createUserRequest struct {
	Email        string                 `json:"email"`
	Password     string                 `json:"password"`
	EmailConfirm bool                   `json:"email_confirm"`
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
}

// CreateUser creates an auth user through POST /auth/v1/admin/users
func (s *SupabaseAuthService) CreateUser(ctx context.Context, params domain.CreateAuthUserParams) (*domain.AuthUser, error) {
	body, err := s.post(ctx, "create_user", "/auth/v1/admin/users", createUserRequest{
		Email:        params.Email,
		Password:     params.Password,
		EmailConfirm: params.EmailConfirm,
		UserMetadata: params.UserMetadata,
	})
	if err != nil {
		return nil, err
	}

	id := gjson.GetBytes(body, "id").String()
	if id == "" {
		id = gjson.GetBytes(body, "user.id").String()
	}
	if id == "" {
		return nil, &domain.ProviderError{
			Provider:  supabaseProvider,
			Operation: "create_user",
			Message:   "response did not contain a user id",
		}
	}

	email := gjson.GetBytes(body, "email").String()
	if email == "" {
		email = params.Email
	}
	return &domain.AuthUser{ID: id, Email: email}, nil
}

type generateLinkRequest struct {
	Type       string `json:"type"`
	Email      string `json:"email"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

// GenerateRecoveryLink issues a recovery action link through
// POST /auth/v1/admin/generate_link
func (s *SupabaseAuthService) GenerateRecoveryLink(ctx context.Context, email, redirectTo string) (string, error) {
	body, err := s.post(ctx, "generate_link", "/auth/v1/admin/generate_link", generateLinkRequest{
		Type:       "recovery",
		Email:      email,
		RedirectTo: redirectTo,
	})
	if err != nil {
		return "", err
	}

	link := gjson.GetBytes(body, "action_link").String()
	if link == "" {
		link = gjson.GetBytes(body, "properties.action_link").String()
	}
	if link == "" {
		return "", &domain.ProviderError{
			Provider:  supabaseProvider,
			Operation: "generate_link",
			Message:   "response did not contain an action link",
		}
	}
	return link, nil
}

func (s *SupabaseAuthService) post(ctx context.Context, operation, path string, payload interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", s.serviceRoleKey)
	req.Header.Set("Authorization", "Bearer "+s.serviceRoleKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.WithField("operation", operation).
			WithField("error", err.Error()).
			Error("Supabase auth request failed")
		return nil, &domain.ProviderError{
			Provider:  supabaseProvider,
			Operation: operation,
			Message:   err.Error(),
			Err:       err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := errorMessage(body)
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		s.logger.WithField("operation", operation).
			WithField("status", resp.StatusCode).
			WithField("message", message).
			Warn("Supabase auth API returned an error")
		return nil, &domain.ProviderError{
			Provider:   supabaseProvider,
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Message:    message,
		}
	}
	return body, nil
}

// errorMessage extracts the human readable error from an auth API error body.
// GoTrue has used each of these keys across versions.
func errorMessage(body []byte) string {
	for _, key := range []string{"msg", "message", "error_description", "error"} {
		if v := gjson.GetBytes(body, key); v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return ""
}
