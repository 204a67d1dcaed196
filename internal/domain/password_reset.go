package domain

import "context"

//go:generate mockgen -destination mocks/mock_password_reset_service.go -package mocks github.com/Harmonic/harmonic/internal/domain PasswordResetService

// PasswordResetMessage is returned for every accepted reset request, whether
// or not the address is registered
const PasswordResetMessage = "If an account exists with this email, a password reset link has been sent."

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type PasswordResetService interface {
	// RequestReset only fails on invalid input or a failed profile lookup.
	// Link generation and delivery errors are not returned.
	RequestReset(ctx context.Context, email string) error
}
