package service

import (
	"context"
	"errors"
	"time"

	"github.com/Harmonic/harmonic/internal/domain"
	"github.com/Harmonic/harmonic/pkg/logger"
)

const maxConfirmBackoff = 2 * time.Second

// ProfileConfirmer waits for the profile row the auth trigger creates after a
// new auth user. It polls with exponential backoff for a bounded number of
// attempts.
type ProfileConfirmer struct {
	profiles domain.ProfileRepository
	attempts int
	backoff  time.Duration
	logger   logger.Logger
	sleep    func(ctx context.Context, d time.Duration) error
}

func NewProfileConfirmer(profiles domain.ProfileRepository, attempts int, backoff time.Duration, logger logger.Logger) *ProfileConfirmer {
	if attempts < 1 {
		attempts = 1
	}
	return &ProfileConfirmer{
		profiles: profiles,
		attempts: attempts,
		backoff:  backoff,
		logger:   logger,
		sleep:    sleepContext,
	}
}

// Confirm returns the profile, or nil when it did not appear within the
// attempt budget. The only error is the context's.
func (c *ProfileConfirmer) Confirm(ctx context.Context, userID string) (*domain.Profile, error) {
	delay := c.backoff

	for attempt := 1; attempt <= c.attempts; attempt++ {
		profile, err := c.profiles.GetByID(ctx, userID)
		if err == nil {
			return profile, nil
		}
		if !errors.Is(err, domain.ErrProfileNotFound) {
			c.logger.WithField("user_id", userID).
				WithField("attempt", attempt).
				WithField("error", err.Error()).
				Warn("Profile lookup failed while confirming")
		}

		if attempt == c.attempts {
			break
		}
		if err := c.sleep(ctx, delay); err != nil {
			return nil, err
		}
		delay *= 2
		if delay > maxConfirmBackoff {
			delay = maxConfirmBackoff
		}
	}

	c.logger.WithField("user_id", userID).
		WithField("attempts", c.attempts).
		Warn("Profile not visible after retries")
	return nil, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
