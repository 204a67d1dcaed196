package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	svix "github.com/standard-webhooks/standard-webhooks/libraries/go"
)

//go:generate mockgen -destination mocks/mock_auth_email_hook_service.go -package mocks github.com/Harmonic/harmonic/internal/domain AuthEmailHookService

// Email action types sent by the Supabase Send Email hook
const (
	AuthEmailActionSignup           = "signup"
	AuthEmailActionInvite           = "invite"
	AuthEmailActionMagicLink        = "magiclink"
	AuthEmailActionRecovery         = "recovery"
	AuthEmailActionEmailChange      = "email_change"
	AuthEmailActionReauthentication = "reauthentication"
)

// AuthEmailWebhook is the Send Email hook payload
type AuthEmailWebhook struct {
	User      AuthHookUser      `json:"user"`
	EmailData AuthHookEmailData `json:"email_data"`
}

type AuthHookUser struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	EmailNew     string                 `json:"email_new,omitempty"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
}

type AuthHookEmailData struct {
	Token           string `json:"token"`
	TokenHash       string `json:"token_hash"`
	RedirectTo      string `json:"redirect_to"`
	EmailActionType string `json:"email_action_type"`
	SiteURL         string `json:"site_url"`
	TokenNew        string `json:"token_new,omitempty"`
	TokenHashNew    string `json:"token_hash_new,omitempty"`
}

// ConfirmationURL builds the verify link the way Supabase's default
// templates do
func (d AuthHookEmailData) ConfirmationURL(supabaseURL, tokenHash string) string {
	base := strings.TrimRight(supabaseURL, "/")
	u := fmt.Sprintf("%s/auth/v1/verify?token=%s&type=%s", base, tokenHash, d.EmailActionType)
	if d.RedirectTo != "" {
		u += "&redirect_to=" + d.RedirectTo
	}
	return u
}

// ErrInvalidWebhookSignature is returned when a hook request fails verification
var ErrInvalidWebhookSignature = errors.New("invalid webhook signature")

type WebhookHeaders struct {
	ID        string
	Timestamp string
	Signature string
}

func (h WebhookHeaders) Complete() bool {
	return h.ID != "" && h.Timestamp != "" && h.Signature != ""
}

// ValidateWebhookSignature checks a standard-webhooks signature. Supabase
// hands out secrets as "v1,whsec_<base64>".
func ValidateWebhookSignature(payload []byte, headers WebhookHeaders, secret string) error {
	wh, err := svix.NewWebhook(strings.TrimPrefix(secret, "v1,"))
	if err != nil {
		return fmt.Errorf("failed to create webhook verifier: %w", err)
	}

	h := http.Header{}
	h.Set("Webhook-Id", headers.ID)
	h.Set("Webhook-Timestamp", headers.Timestamp)
	h.Set("Webhook-Signature", headers.Signature)

	if err := wh.Verify(payload, h); err != nil {
		return fmt.Errorf("signature validation failed: %w", err)
	}
	return nil
}

type AuthEmailHookService interface {
	ProcessAuthEmail(ctx context.Context, payload []byte, headers WebhookHeaders) error
}
