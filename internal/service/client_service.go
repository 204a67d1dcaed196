package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Harmonic/harmonic/internal/domain"
	"github.com/Harmonic/harmonic/pkg/logger"
)

type ClientService struct {
	profiles    domain.ProfileRepository
	assessments domain.AssessmentRepository
	logger      logger.Logger
}

func NewClientService(profiles domain.ProfileRepository, assessments domain.AssessmentRepository, logger logger.Logger) *ClientService {
	return &ClientService{
		profiles:    profiles,
		assessments: assessments,
		logger:      logger,
	}
}

// resolveStaff loads the actor and the roster filter for its role. Admins see
// every respondent.
func resolveStaff(ctx context.Context, profiles domain.ProfileRepository, actorID string) (*domain.Profile, domain.ClientFilter, error) {
	actor, err := profiles.GetByID(ctx, actorID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return nil, domain.ClientFilter{}, domain.NewPermissionError("no profile for the current user")
	}
	if err != nil {
		return nil, domain.ClientFilter{}, fmt.Errorf("failed to load actor profile: %w", err)
	}
	if !actor.Role.ManagesClients() {
		return nil, domain.ClientFilter{}, domain.NewPermissionError("only coaches, trainers and admins can manage clients")
	}

	var filter domain.ClientFilter
	switch actor.Role {
	case domain.RoleCoach:
		filter.CoachID = &actor.ID
	case domain.RoleTrainer:
		filter.TrainerID = &actor.ID
	}
	return actor, filter, nil
}

func canManage(actor, client *domain.Profile) bool {
	if client.Role != domain.RoleRespondent {
		return false
	}
	switch actor.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleCoach:
		return client.CoachID != nil && *client.CoachID == actor.ID
	case domain.RoleTrainer:
		return client.TrainerID != nil && *client.TrainerID == actor.ID
	}
	return false
}

func (s *ClientService) List(ctx context.Context, actorID string) ([]*domain.Profile, error) {
	_, filter, err := resolveStaff(ctx, s.profiles, actorID)
	if err != nil {
		return nil, err
	}
	return s.profiles.ListClients(ctx, filter)
}

func (s *ClientService) client(ctx context.Context, actorID, clientID string) (*domain.Profile, *domain.Profile, error) {
	actor, _, err := resolveStaff(ctx, s.profiles, actorID)
	if err != nil {
		return nil, nil, err
	}

	client, err := s.profiles.GetByID(ctx, clientID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return nil, nil, &domain.ErrNotFound{Entity: "client", ID: clientID}
	}
	if err != nil {
		return nil, nil, err
	}
	// clients of other coaches are reported as missing
	if !canManage(actor, client) {
		return nil, nil, &domain.ErrNotFound{Entity: "client", ID: clientID}
	}
	return actor, client, nil
}

func (s *ClientService) Get(ctx context.Context, actorID, clientID string) (*domain.ClientDetail, error) {
	_, client, err := s.client(ctx, actorID, clientID)
	if err != nil {
		return nil, err
	}

	assessments, err := s.assessments.ListByUser(ctx, client.ID)
	if err != nil {
		return nil, err
	}
	if assessments == nil {
		assessments = []*domain.Assessment{}
	}
	return &domain.ClientDetail{Profile: client, Assessments: assessments}, nil
}

func (s *ClientService) Update(ctx context.Context, actorID string, req domain.UpdateClientRequest) (*domain.Profile, error) {
	if req.ID == "" {
		return nil, domain.NewValidationError("id is required")
	}
	update := req.ToProfileUpdate()
	if err := update.Validate(); err != nil {
		return nil, err
	}

	if _, _, err := s.client(ctx, actorID, req.ID); err != nil {
		return nil, err
	}
	return s.profiles.Update(ctx, req.ID, update)
}

func (s *ClientService) Remove(ctx context.Context, actorID, clientID string) error {
	actor, _, err := s.client(ctx, actorID, clientID)
	if err != nil {
		return err
	}

	update := domain.ProfileUpdate{ClearCoach: true}
	if actor.Role == domain.RoleTrainer {
		update = domain.ProfileUpdate{ClearTrainer: true}
	}
	if _, err := s.profiles.Update(ctx, clientID, update); err != nil {
		return err
	}

	s.logger.WithField("actor_id", actorID).WithField("client_id", clientID).Info("Client removed from roster")
	return nil
}
