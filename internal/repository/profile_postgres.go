package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Harmonic/harmonic/internal/domain"
	"github.com/Harmonic/harmonic/pkg/tracing"
)

var profileColumns = []string{
	"id", "email", "first_name", "last_name", "role", "coach_id", "trainer_id", "created_at", "updated_at",
}

type profileRepository struct {
	systemDB *sql.DB
}

// NewProfileRepository creates a new PostgreSQL profile repository
func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &profileRepository{systemDB: db}
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var profile domain.Profile
	var firstName, lastName, coach, trainer sql.NullString
	var role string
	err := row.Scan(
		&profile.ID,
		&profile.Email,
		&firstName,
		&lastName,
		&role,
		&coach,
		&trainer,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	profile.Role = domain.Role(role)
	if firstName.Valid {
		profile.FirstName = &firstName.String
	}
	if lastName.Valid {
		profile.LastName = &lastName.String
	}
	if coach.Valid {
		profile.CoachID = &coach.String
	}
	if trainer.Valid {
		profile.TrainerID = &trainer.String
	}
	return &profile, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "ProfileRepository", "GetByEmail")
	defer tracing.EndSpan(span, nil)

	query, args, err := psql.Select(profileColumns...).
		From("profiles").
		Where(sq.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	profile, err := scanProfile(r.systemDB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, fmt.Errorf("failed to get profile by email: %w", err)
	}
	return profile, nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query, args, err := psql.Select(profileColumns...).
		From("profiles").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	profile, err := scanProfile(r.systemDB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) || isInvalidTextRepresentation(err) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

func (r *profileRepository) Insert(ctx context.Context, insert domain.ProfileInsert) (*domain.Profile, error) {
	if err := insert.Validate(); err != nil {
		return nil, err
	}

	role := domain.RoleRespondent
	if insert.Role != nil {
		role = *insert.Role
	}
	now := time.Now().UTC()

	query, args, err := psql.Insert("profiles").
		Columns(profileColumns...).
		Values(
			insert.ID,
			insert.Email,
			nullableString(insert.FirstName),
			nullableString(insert.LastName),
			string(role),
			nullableString(insert.CoachID),
			nullableString(insert.TrainerID),
			now,
			now,
		).
		Suffix(returning(profileColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	profile, err := scanProfile(r.systemDB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("profile %s: %w", insert.ID, domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("failed to insert profile: %w", err)
	}
	return profile, nil
}

func (r *profileRepository) Update(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.Profile, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	builder := psql.Update("profiles")
	if update.Email != nil {
		builder = builder.Set("email", *update.Email)
	}
	if update.FirstName != nil {
		builder = builder.Set("first_name", *update.FirstName)
	}
	if update.LastName != nil {
		builder = builder.Set("last_name", *update.LastName)
	}
	if update.Role != nil {
		builder = builder.Set("role", string(*update.Role))
	}
	switch {
	case update.ClearCoach:
		builder = builder.Set("coach_id", nil)
	case update.CoachID != nil:
		builder = builder.Set("coach_id", *update.CoachID)
	}
	switch {
	case update.ClearTrainer:
		builder = builder.Set("trainer_id", nil)
	case update.TrainerID != nil:
		builder = builder.Set("trainer_id", *update.TrainerID)
	}

	query, args, err := builder.
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		Suffix(returning(profileColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	profile, err := scanProfile(r.systemDB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("profile %s: %w", id, domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}

func (r *profileRepository) ListClients(ctx context.Context, filter domain.ClientFilter) ([]*domain.Profile, error) {
	query, args, err := psql.Select(profileColumns...).
		From("profiles").
		Where(clientCondition("", filter)).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.systemDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile rows: %w", err)
	}
	return profiles, nil
}

func (r *profileRepository) CountClients(ctx context.Context, filter domain.ClientFilter) (int, error) {
	query, args, err := psql.Select("COUNT(*)").
		From("profiles").
		Where(clientCondition("", filter)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var count int
	if err := r.systemDB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}
	return count, nil
}

// clientCondition restricts profiles to respondents visible under filter.
// prefix qualifies the profile columns in joined queries ("p.").
// When both ids are set a client of either matches.
func clientCondition(prefix string, filter domain.ClientFilter) sq.Sqlizer {
	cond := sq.And{sq.Eq{prefix + "role": string(domain.RoleRespondent)}}

	switch {
	case filter.CoachID != nil && filter.TrainerID != nil:
		cond = append(cond, sq.Or{
			sq.Eq{prefix + "coach_id": *filter.CoachID},
			sq.Eq{prefix + "trainer_id": *filter.TrainerID},
		})
	case filter.CoachID != nil:
		cond = append(cond, sq.Eq{prefix + "coach_id": *filter.CoachID})
	case filter.TrainerID != nil:
		cond = append(cond, sq.Eq{prefix + "trainer_id": *filter.TrainerID})
	}
	return cond
}

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}
