package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harmonic/harmonic/internal/domain"
	"github.com/Harmonic/harmonic/internal/domain/mocks"
	"github.com/Harmonic/harmonic/pkg/logger"
)

func newTestConfirmer(t *testing.T, attempts int) (*ProfileConfirmer, *mocks.MockProfileRepository, *[]time.Duration) {
	ctrl := gomock.NewController(t)
	profiles := mocks.NewMockProfileRepository(ctrl)

	c := NewProfileConfirmer(profiles, attempts, 100*time.Millisecond, logger.NewTestLogger(t))
	var delays []time.Duration
	c.sleep = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return ctx.Err()
	}
	return c, profiles, &delays
}

func TestProfileConfirmer_FoundImmediately(t *testing.T) {
	c, profiles, delays := newTestConfirmer(t, 5)

	profiles.EXPECT().GetByID(gomock.Any(), "user-1").Return(&domain.Profile{ID: "user-1"}, nil)

	profile, err := c.Confirm(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Empty(t, *delays)
}

func TestProfileConfirmer_FoundAfterRetries(t *testing.T) {
	c, profiles, delays := newTestConfirmer(t, 5)

	gomock.InOrder(
		profiles.EXPECT().GetByID(gomock.Any(), "user-1").Return(nil, domain.ErrProfileNotFound),
		profiles.EXPECT().GetByID(gomock.Any(), "user-1").Return(nil, errors.New("timeout")),
		profiles.EXPECT().GetByID(gomock.Any(), "user-1").Return(&domain.Profile{ID: "user-1"}, nil),
	)

	profile, err := c.Confirm(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, *delays)
}

func TestProfileConfirmer_GivesUp(t *testing.T) {
	c, profiles, delays := newTestConfirmer(t, 6)

	profiles.EXPECT().GetByID(gomock.Any(), "user-1").Return(nil, domain.ErrProfileNotFound).Times(6)

	profile, err := c.Confirm(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, profile)
	// backoff doubles and caps, there is no sleep after the last attempt
	assert.Equal(t, []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		1600 * time.Millisecond,
	}, *delays)
}

func TestProfileConfirmer_BackoffCap(t *testing.T) {
	c, profiles, delays := newTestConfirmer(t, 4)
	c.backoff = 1500 * time.Millisecond

	profiles.EXPECT().GetByID(gomock.Any(), "user-1").Return(nil, domain.ErrProfileNotFound).Times(4)

	_, err := c.Confirm(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{1500 * time.Millisecond, maxConfirmBackoff, maxConfirmBackoff}, *delays)
}

func TestProfileConfirmer_ContextCancelled(t *testing.T) {
	c, profiles, _ := newTestConfirmer(t, 5)

	ctx, cancel := context.WithCancel(context.Background())
	profiles.EXPECT().GetByID(gomock.Any(), "user-1").DoAndReturn(func(context.Context, string) (*domain.Profile, error) {
		cancel()
		return nil, domain.ErrProfileNotFound
	})

	profile, err := c.Confirm(ctx, "user-1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, profile)
}

func TestSleepContext(t *testing.T) {
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}
