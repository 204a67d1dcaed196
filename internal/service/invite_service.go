package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Harmonic/harmonic/internal/domain"
	"github.com/Harmonic/harmonic/pkg/logger"
	"github.com/Harmonic/harmonic/pkg/tracing"
)

// InviteService provisions a client account for a coach: an auth user with a
// temporary password, a linked profile row and a credentials email.
type InviteService struct {
	auth             domain.AuthProvider
	profiles         domain.ProfileRepository
	confirmer        *ProfileConfirmer
	notifier         domain.Notifier
	loginURL         string
	logger           logger.Logger
	generatePassword func() (string, error)
}

func NewInviteService(
	auth domain.AuthProvider,
	profiles domain.ProfileRepository,
	confirmer *ProfileConfirmer,
	notifier domain.Notifier,
	loginURL string,
	logger logger.Logger,
) *InviteService {
	return &InviteService{
		auth:             auth,
		profiles:         profiles,
		confirmer:        confirmer,
		notifier:         notifier,
		loginURL:         loginURL,
		logger:           logger,
		generatePassword: GenerateTempPassword,
	}
}

func (s *InviteService) Invite(ctx context.Context, req domain.InviteClientRequest) (*domain.InviteClientResult, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "InviteService", "Invite")
	defer tracing.EndSpan(span, nil)

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	password, err := s.generatePassword()
	if err != nil {
		return nil, err
	}

	user, err := s.auth.CreateUser(ctx, domain.CreateAuthUserParams{
		Email:        req.Email,
		Password:     password,
		EmailConfirm: true,
		UserMetadata: map[string]interface{}{
			"first_name":    req.FirstName,
			"last_name":     req.LastName,
			"role":          string(domain.RoleRespondent),
			"temp_password": true,
			"coach_id":      req.CoachID,
		},
	})
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		if _, ok := domain.AsProviderError(err); ok {
			return nil, err
		}
		return nil, &domain.ProviderError{Provider: supabaseProvider, Operation: "create_user", Message: err.Error(), Err: err}
	}
	tracing.AddAttribute(ctx, "user_id", user.ID)

	log := s.logger.WithField("user_id", user.ID).WithField("coach_id", req.CoachID)
	result := &domain.InviteClientResult{UserID: user.ID}

	profile, err := s.confirmer.Confirm(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm profile: %w", err)
	}
	result.ProfileConfirmed = profile != nil

	if err := s.linkProfile(ctx, log, req, user.ID, result); err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, err
	}

	err = s.notifier.SendClientCredentials(ctx, domain.ClientCredentials{
		Email:        req.Email,
		FirstName:    req.FirstName,
		CoachName:    s.coachName(ctx, req.CoachID),
		TempPassword: password,
		LoginURL:     s.loginURL,
	})
	if err != nil {
		log.WithField("error", err.Error()).Error("Failed to send client credentials email")
	} else {
		result.EmailSent = true
	}

	log.WithField("profile_confirmed", result.ProfileConfirmed).
		WithField("insert_fallback", result.UsedInsertFallback).
		Info("Client invited")
	return result, nil
}

// linkProfile updates the trigger-created row, or inserts it when the row
// never appeared or the update failed
func (s *InviteService) linkProfile(ctx context.Context, log logger.Logger, req domain.InviteClientRequest, userID string, result *domain.InviteClientResult) error {
	update := domain.ProfileUpdate{
		Email:     &req.Email,
		FirstName: &req.FirstName,
		LastName:  &req.LastName,
		Role:      domain.RolePtr(domain.RoleRespondent),
		CoachID:   &req.CoachID,
	}

	if result.ProfileConfirmed {
		_, err := s.profiles.Update(ctx, userID, update)
		if err == nil {
			return nil
		}
		log.WithField("error", err.Error()).Warn("Profile update failed, inserting instead")
	}

	result.UsedInsertFallback = true
	_, err := s.profiles.Insert(ctx, domain.ProfileInsert{
		ID:        userID,
		Email:     req.Email,
		FirstName: &req.FirstName,
		LastName:  &req.LastName,
		Role:      domain.RolePtr(domain.RoleRespondent),
		CoachID:   &req.CoachID,
	})
	if err == nil {
		return nil
	}

	// the trigger row can land between the last confirm attempt and the insert
	if errors.Is(err, domain.ErrAlreadyExists) {
		if _, uerr := s.profiles.Update(ctx, userID, update); uerr == nil {
			result.UsedInsertFallback = false
			return nil
		}
	}
	return fmt.Errorf("failed to create client profile: %w", err)
}

func (s *InviteService) coachName(ctx context.Context, coachID string) string {
	coach, err := s.profiles.GetByID(ctx, coachID)
	if err != nil {
		s.logger.WithField("coach_id", coachID).
			WithField("error", err.Error()).
			Warn("Could not load coach for invite email")
		return ""
	}
	return coach.FullName()
}
