package domain

import "context"

//go:generate mockgen -destination mocks/mock_client_service.go -package mocks github.com/Harmonic/harmonic/internal/domain ClientService

type ClientDetail struct {
	Profile     *Profile      `json:"profile"`
	Assessments []*Assessment `json:"assessments"`
}

type UpdateClientRequest struct {
	ID        string  `json:"id"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	TrainerID *string `json:"trainer_id,omitempty"`
}

func (r UpdateClientRequest) ToProfileUpdate() ProfileUpdate {
	return ProfileUpdate{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		TrainerID: r.TrainerID,
	}
}

// ClientService manages the roster of the calling coach, trainer or admin
type ClientService interface {
	List(ctx context.Context, actorID string) ([]*Profile, error)
	Get(ctx context.Context, actorID, clientID string) (*ClientDetail, error)
	Update(ctx context.Context, actorID string, req UpdateClientRequest) (*Profile, error)
	// Remove unlinks the client from its coach, the profile is kept
	Remove(ctx context.Context, actorID, clientID string) error
}
