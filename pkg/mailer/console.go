package mailer

import (
	"context"

	"github.com/Harmonic/harmonic/pkg/logger"
)

// ConsoleSender logs messages instead of delivering them, for development
type ConsoleSender struct {
	logger logger.Logger
}

func NewConsoleSender(log logger.Logger) *ConsoleSender {
	return &ConsoleSender{logger: log}
}

func (s *ConsoleSender) Send(_ context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	s.logger.WithFields(map[string]interface{}{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info(msg.Text)
	return nil
}

// NoopSender drops every message and reports ErrDisabled
type NoopSender struct{}

func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

func (s *NoopSender) Send(context.Context, Message) error {
	return ErrDisabled
}
