package domain

import "context"

//go:generate mockgen -destination mocks/mock_notifier.go -package mocks github.com/Harmonic/harmonic/internal/domain Notifier

type ClientCredentials struct {
	Email        string
	FirstName    string
	CoachName    string
	TempPassword string
	LoginURL     string
}

// Notifier renders and delivers transactional emails
type Notifier interface {
	SendPasswordReset(ctx context.Context, to, firstName, resetLink string) error
	SendClientCredentials(ctx context.Context, credentials ClientCredentials) error
	SendAuthEmail(ctx context.Context, to, actionType string, data map[string]interface{}) error
}
