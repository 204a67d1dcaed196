package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Harmonic/harmonic/internal/domain"
	"github.com/Harmonic/harmonic/pkg/logger"
	"github.com/Harmonic/harmonic/pkg/mailer"
	"github.com/Harmonic/harmonic/pkg/templates"
)

// EmailRenderer is satisfied by *templates.Renderer
type EmailRenderer interface {
	Render(ctx context.Context, tpl templates.EmailTemplate, data map[string]interface{}) (*templates.Rendered, error)
}

// NotificationService renders email templates and hands them to the mailer.
// It implements domain.Notifier.
type NotificationService struct {
	renderer EmailRenderer
	sender   mailer.Sender
	appName  string
	logger   logger.Logger
}

func NewNotificationService(renderer EmailRenderer, sender mailer.Sender, appName string, logger logger.Logger) *NotificationService {
	return &NotificationService{
		renderer: renderer,
		sender:   sender,
		appName:  appName,
		logger:   logger,
	}
}

func (s *NotificationService) SendPasswordReset(ctx context.Context, to, firstName, resetLink string) error {
	return s.send(ctx, to, templates.PasswordReset, map[string]interface{}{
		"first_name": firstName,
		"reset_link": resetLink,
	})
}

func (s *NotificationService) SendClientCredentials(ctx context.Context, credentials domain.ClientCredentials) error {
	return s.send(ctx, credentials.Email, templates.ClientInvite, map[string]interface{}{
		"first_name":    credentials.FirstName,
		"coach_name":    credentials.CoachName,
		"email":         credentials.Email,
		"temp_password": credentials.TempPassword,
		"login_url":     credentials.LoginURL,
	})
}

// SendAuthEmail delivers a Supabase auth email for actionType
func (s *NotificationService) SendAuthEmail(ctx context.Context, to, actionType string, data map[string]interface{}) error {
	tpl, ok := templates.SupabaseTemplate(actionType)
	if !ok {
		return domain.NewValidationError("unsupported email action type: " + actionType)
	}
	return s.send(ctx, to, tpl, data)
}

func (s *NotificationService) send(ctx context.Context, to string, tpl templates.EmailTemplate, data map[string]interface{}) error {
	if _, ok := data["app_name"]; !ok && s.appName != "" {
		data["app_name"] = s.appName
	}

	rendered, err := s.renderer.Render(ctx, tpl, data)
	if err != nil {
		return fmt.Errorf("failed to render %s email: %w", tpl.Name, err)
	}

	err = s.sender.Send(ctx, mailer.Message{
		To:      to,
		Subject: rendered.Subject,
		HTML:    rendered.HTML,
		Text:    rendered.Text,
	})
	if errors.Is(err, mailer.ErrDisabled) {
		s.logger.WithField("template", tpl.Name).Warn("Email delivery is disabled, message dropped")
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to send %s email: %w", tpl.Name, err)
	}

	s.logger.WithField("template", tpl.Name).Info("Email sent")
	return nil
}
