package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"

	"github.com/Harmonic/harmonic/internal/domain"
	"github.com/Harmonic/harmonic/pkg/logger"
	"github.com/Harmonic/harmonic/pkg/ratelimiter"
	"github.com/Harmonic/harmonic/pkg/tracing"
)

// PasswordResetService sends recovery links without revealing whether an
// address is registered.
type PasswordResetService struct {
	profiles    domain.ProfileRepository
	auth        domain.AuthProvider
	notifier    domain.Notifier
	limiter     *ratelimiter.Limiter
	redirectURL string
	logger      logger.Logger
}

// NewPasswordResetService creates the service. limiter may be nil.
func NewPasswordResetService(
	profiles domain.ProfileRepository,
	auth domain.AuthProvider,
	notifier domain.Notifier,
	limiter *ratelimiter.Limiter,
	redirectURL string,
	logger logger.Logger,
) *PasswordResetService {
	return &PasswordResetService{
		profiles:    profiles,
		auth:        auth,
		notifier:    notifier,
		limiter:     limiter,
		redirectURL: redirectURL,
		logger:      logger,
	}
}

func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	ctx, span := tracing.StartServiceSpan(ctx, "PasswordResetService", "RequestReset")
	defer tracing.EndSpan(span, nil)

	// surrounding whitespace is dropped; the lookup itself matches exactly
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.NewValidationError("Email is required")
	}
	if !govalidator.IsEmail(email) {
		return domain.NewValidationError("Invalid email format")
	}

	// throttle every address, registered or not, so the limit leaks nothing
	if s.limiter != nil && !s.limiter.Allow(strings.ToLower(email)) {
		s.logger.WithField("retry_after", s.limiter.RetryAfter(strings.ToLower(email)).String()).
			Warn("Password reset throttled")
		return nil
	}

	profile, err := s.profiles.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrProfileNotFound) {
		s.logger.Debug("Password reset requested for unknown address")
		return nil
	}
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return fmt.Errorf("failed to look up profile: %w", err)
	}

	log := s.logger.WithField("user_id", profile.ID)

	link, err := s.auth.GenerateRecoveryLink(ctx, profile.Email, s.redirectURL)
	if err != nil {
		log.WithField("error", err.Error()).Error("Failed to generate recovery link")
		return nil
	}

	firstName := ""
	if profile.FirstName != nil {
		firstName = *profile.FirstName
	}
	if err := s.notifier.SendPasswordReset(ctx, profile.Email, firstName, link); err != nil {
		log.WithField("error", err.Error()).Error("Failed to send password reset email")
		return nil
	}

	log.Info("Password reset email sent")
	return nil
}
