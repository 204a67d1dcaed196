package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"

	"github.com/Harmonic/harmonic/config"
	"github.com/Harmonic/harmonic/pkg/logger"
)

//go:generate mockgen -destination=../mocks/mock_sender.go -package=pkgmocks github.com/Harmonic/harmonic/pkg/mailer Sender

// ErrDisabled is returned by the no-op sender used when no provider is configured
var ErrDisabled = errors.New("email delivery is disabled")

// Message is a rendered email ready for delivery
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

func (m Message) Validate() error {
	if _, err := mail.ParseAddress(m.To); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", m.To, err)
	}
	if strings.TrimSpace(m.Subject) == "" {
		return fmt.Errorf("subject is required")
	}
	if m.HTML == "" && m.Text == "" {
		return fmt.Errorf("message body is required")
	}
	return nil
}

// Sender delivers a single message through one provider
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// HTTPClient is satisfied by *http.Client
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// From identifies the sender of every outgoing message
type From struct {
	Address string
	Name    string
}

func (f From) String() string {
	if f.Name == "" {
		return f.Address
	}
	return (&mail.Address{Name: f.Name, Address: f.Address}).String()
}

// New builds the sender selected by cfg.Provider. A provider without
// credentials yields a NoopSender so callers keep working.
func New(cfg config.EmailConfig, httpClient HTTPClient, log logger.Logger) (Sender, error) {
	from := From{Address: cfg.FromAddress, Name: cfg.FromName}

	if !cfg.EmailEnabled() {
		switch cfg.Provider {
		case "resend", "smtp", "ses":
			log.WithField("provider", cfg.Provider).Warn("Email provider is not configured, email delivery disabled")
			return NewNoopSender(), nil
		default:
			return nil, fmt.Errorf("unsupported email provider: %s", cfg.Provider)
		}
	}

	switch cfg.Provider {
	case "resend":
		return NewResendSender(cfg.ResendAPIKey, from, httpClient), nil
	case "smtp":
		return NewSMTPSender(SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
		}, from), nil
	case "ses":
		return NewSESSenderFromCredentials(cfg.SES.Region, cfg.SES.AccessKey, cfg.SES.SecretKey, from)
	default:
		return NewConsoleSender(log), nil
	}
}
