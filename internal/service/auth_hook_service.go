package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Harmonic/harmonic/internal/domain"
	"github.com/Harmonic/harmonic/pkg/logger"
)

// AuthEmailHookService delivers the emails Supabase Auth delegates through
// its Send Email hook
type AuthEmailHookService struct {
	secret      string
	supabaseURL string
	notifier    domain.Notifier
	logger      logger.Logger
}

func NewAuthEmailHookService(secret, supabaseURL string, notifier domain.Notifier, logger logger.Logger) *AuthEmailHookService {
	return &AuthEmailHookService{
		secret:      secret,
		supabaseURL: supabaseURL,
		notifier:    notifier,
		logger:      logger,
	}
}

func (s *AuthEmailHookService) ProcessAuthEmail(ctx context.Context, payload []byte, headers domain.WebhookHeaders) error {
	if s.secret == "" {
		return fmt.Errorf("auth email hook secret is not configured")
	}
	if !headers.Complete() {
		return fmt.Errorf("%w: missing webhook headers", domain.ErrInvalidWebhookSignature)
	}
	if err := domain.ValidateWebhookSignature(payload, headers, s.secret); err != nil {
		s.logger.WithField("webhook_id", headers.ID).WithField("error", err.Error()).Warn("Rejected auth email hook")
		return fmt.Errorf("%w: %v", domain.ErrInvalidWebhookSignature, err)
	}

	var webhook domain.AuthEmailWebhook
	if err := json.Unmarshal(payload, &webhook); err != nil {
		return domain.NewValidationError("invalid webhook payload")
	}

	action := webhook.EmailData.EmailActionType
	log := s.logger.WithField("user_id", webhook.User.ID).WithField("action", action)

	if action == domain.AuthEmailActionEmailChange {
		return s.emailChange(ctx, log, &webhook)
	}

	to := webhook.User.Email
	if err := s.notifier.SendAuthEmail(ctx, to, action, s.templateData(&webhook, webhook.EmailData.Token, webhook.EmailData.TokenHash)); err != nil {
		log.WithField("error", err.Error()).Error("Failed to send auth email")
		return err
	}
	log.Info("Auth email sent")
	return nil
}

// emailChange sends to both addresses in secure mode. Supabase pairs
// token_hash_new with the current address and token_hash with the new one.
func (s *AuthEmailHookService) emailChange(ctx context.Context, log logger.Logger, webhook *domain.AuthEmailWebhook) error {
	data := webhook.EmailData
	action := domain.AuthEmailActionEmailChange

	if data.TokenHashNew != "" && data.TokenHash != "" {
		current := s.templateData(webhook, data.Token, data.TokenHashNew)
		if err := s.notifier.SendAuthEmail(ctx, webhook.User.Email, action, current); err != nil {
			log.WithField("error", err.Error()).Error("Failed to send email change notice to current address")
		}

		next := s.templateData(webhook, data.TokenNew, data.TokenHash)
		return s.notifier.SendAuthEmail(ctx, webhook.User.EmailNew, action, next)
	}

	return s.notifier.SendAuthEmail(ctx, webhook.User.EmailNew, action, s.templateData(webhook, data.Token, data.TokenHash))
}

func (s *AuthEmailHookService) templateData(webhook *domain.AuthEmailWebhook, token, tokenHash string) map[string]interface{} {
	d := webhook.EmailData
	return map[string]interface{}{
		"confirmation_url": d.ConfirmationURL(s.supabaseURL, tokenHash),
		"token":            token,
		"token_hash":       tokenHash,
		"email":            webhook.User.Email,
		"new_email":        webhook.User.EmailNew,
		"redirect_to":      d.RedirectTo,
		"site_url":         d.SiteURL,
	}
}
