package domain

import (
	"context"
	"strings"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_invite_service.go -package mocks github.com/Harmonic/harmonic/internal/domain InviteService

const InviteSuccessMessage = "Client invited successfully"

type InviteClientRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	CoachID   string `json:"coachId"`
}

func (r *InviteClientRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.CoachID = strings.TrimSpace(r.CoachID)
}

func (r InviteClientRequest) Validate() error {
	var missing []string
	if r.FirstName == "" {
		missing = append(missing, "firstName")
	}
	if r.LastName == "" {
		missing = append(missing, "lastName")
	}
	if r.Email == "" {
		missing = append(missing, "email")
	}
	if r.CoachID == "" {
		missing = append(missing, "coachId")
	}
	if len(missing) > 0 {
		return NewValidationError("Missing required fields: " + strings.Join(missing, ", "))
	}
	if !govalidator.IsEmail(r.Email) {
		return NewValidationError("Invalid email format")
	}
	return nil
}

type InviteClientResult struct {
	UserID string
	// ProfileConfirmed is false when the trigger row never appeared
	ProfileConfirmed bool
	// UsedInsertFallback is true when the profile row was inserted directly
	UsedInsertFallback bool
	EmailSent          bool
}

type InviteService interface {
	Invite(ctx context.Context, req InviteClientRequest) (*InviteClientResult, error)
}
