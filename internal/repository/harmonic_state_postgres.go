package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/Harmonic/harmonic/internal/domain"
)

var harmonicStateColumns = []string{"id", "name", "description", "color", "coaching_tips"}

type harmonicStateRepository struct {
	systemDB *sql.DB
}

func NewHarmonicStateRepository(db *sql.DB) domain.HarmonicStateRepository {
	return &harmonicStateRepository{systemDB: db}
}

func scanHarmonicState(row rowScanner) (*domain.HarmonicState, error) {
	var state domain.HarmonicState
	var description, color, tips sql.NullString
	if err := row.Scan(&state.ID, &state.Name, &description, &color, &tips); err != nil {
		return nil, err
	}
	if description.Valid {
		state.Description = &description.String
	}
	if color.Valid {
		state.Color = &color.String
	}
	if tips.Valid {
		state.CoachingTips = &tips.String
	}
	return &state, nil
}

func (r *harmonicStateRepository) List(ctx context.Context) ([]*domain.HarmonicState, error) {
	query, args, err := psql.Select(harmonicStateColumns...).
		From("harmonic_states").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.systemDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list harmonic states: %w", err)
	}
	defer rows.Close()

	var states []*domain.HarmonicState
	for rows.Next() {
		state, err := scanHarmonicState(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan harmonic state: %w", err)
		}
		states = append(states, state)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating harmonic state rows: %w", err)
	}
	return states, nil
}

// Upsert keys on name so reseeding updates descriptions in place
func (r *harmonicStateRepository) Upsert(ctx context.Context, insert domain.HarmonicStateInsert) (*domain.HarmonicState, error) {
	if err := insert.Validate(); err != nil {
		return nil, err
	}
	if insert.ID == "" {
		insert.ID = uuid.New().String()
	}

	query, args, err := psql.Insert("harmonic_states").
		Columns(harmonicStateColumns...).
		Values(
			insert.ID,
			insert.Name,
			nullableString(insert.Description),
			nullableString(insert.Color),
			nullableString(insert.CoachingTips),
		).
		Suffix("ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description, color = EXCLUDED.color, coaching_tips = EXCLUDED.coaching_tips").
		Suffix(returning(harmonicStateColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	state, err := scanHarmonicState(r.systemDB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert harmonic state: %w", err)
	}
	return state, nil
}
