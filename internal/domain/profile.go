package domain

import (
	"context"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_profile_repository.go -package mocks github.com/Harmonic/harmonic/internal/domain ProfileRepository

type Role string

const (
	RoleRespondent Role = "respondent"
	RoleCoach      Role = "coach"
	RoleTrainer    Role = "trainer"
	RoleAdmin      Role = "admin"
	RolePartner    Role = "partner"
)

// Roles lists every value accepted by the profiles.role check constraint
var Roles = []Role{RoleRespondent, RoleCoach, RoleTrainer, RoleAdmin, RolePartner}

func (r Role) Valid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ManagesClients reports whether the role may manage a client roster
func (r Role) ManagesClients() bool {
	return r == RoleCoach || r == RoleTrainer || r == RoleAdmin
}

// Profile is the application-level user record, sharing its id with the
// auth account
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	Role      Role      `json:"role"`
	CoachID   *string   `json:"coach_id"`
	TrainerID *string   `json:"trainer_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Profile) FullName() string {
	var parts []string
	if p.FirstName != nil && *p.FirstName != "" {
		parts = append(parts, *p.FirstName)
	}
	if p.LastName != nil && *p.LastName != "" {
		parts = append(parts, *p.LastName)
	}
	return strings.Join(parts, " ")
}

// ProfileInsert carries the required id and email; everything else falls back
// to column defaults when nil
type ProfileInsert struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Role      *Role   `json:"role,omitempty"`
	CoachID   *string `json:"coach_id,omitempty"`
	TrainerID *string `json:"trainer_id,omitempty"`
}

func (p ProfileInsert) Validate() error {
	if p.ID == "" {
		return NewValidationError("profile id is required")
	}
	if !govalidator.IsEmail(p.Email) {
		return NewValidationError("invalid email format")
	}
	if p.Role != nil && !p.Role.Valid() {
		return NewValidationError("invalid role: " + string(*p.Role))
	}
	return nil
}

// ProfileUpdate sets only the non-nil fields
type ProfileUpdate struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Role      *Role   `json:"role,omitempty"`
	CoachID   *string `json:"coach_id,omitempty"`
	TrainerID *string `json:"trainer_id,omitempty"`

	// ClearCoach and ClearTrainer set the column to NULL and win over the id fields
	ClearCoach   bool `json:"-"`
	ClearTrainer bool `json:"-"`
}

func (u ProfileUpdate) IsEmpty() bool {
	return u.Email == nil && u.FirstName == nil && u.LastName == nil &&
		u.Role == nil && u.CoachID == nil && u.TrainerID == nil && !u.ClearCoach && !u.ClearTrainer
}

func (u ProfileUpdate) Validate() error {
	if u.IsEmpty() {
		return NewValidationError("no fields to update")
	}
	if u.Email != nil && !govalidator.IsEmail(*u.Email) {
		return NewValidationError("invalid email format")
	}
	if u.Role != nil && !u.Role.Valid() {
		return NewValidationError("invalid role: " + string(*u.Role))
	}
	return nil
}

// ClientFilter selects the profiles managed by a coach or trainer. Both nil
// selects every respondent.
type ClientFilter struct {
	CoachID   *string
	TrainerID *string
}

type ProfileRepository interface {
	// GetByEmail matches the email exactly and returns ErrProfileNotFound
	// when no row exists
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	GetByID(ctx context.Context, id string) (*Profile, error)
	Insert(ctx context.Context, profile ProfileInsert) (*Profile, error)
	Update(ctx context.Context, id string, update ProfileUpdate) (*Profile, error)
	ListClients(ctx context.Context, filter ClientFilter) ([]*Profile, error)
	CountClients(ctx context.Context, filter ClientFilter) (int, error)
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}

func RolePtr(r Role) *Role {
	return &r
}
