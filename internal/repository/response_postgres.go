package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/Harmonic/harmonic/internal/domain"
)

var responseColumns = []string{"id", "assessment_id", "question_id", "score", "created_at"}

type responseRepository struct {
	systemDB *sql.DB
}

func NewResponseRepository(db *sql.DB) domain.ResponseRepository {
	return &responseRepository{systemDB: db}
}

func scanResponse(row rowScanner) (*domain.Response, error) {
	var resp domain.Response
	if err := row.Scan(&resp.ID, &resp.AssessmentID, &resp.QuestionID, &resp.Score, &resp.CreatedAt); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Upsert stores one answer per question; answering again replaces the score
func (r *responseRepository) Upsert(ctx context.Context, insert domain.ResponseInsert) (*domain.Response, error) {
	if err := domain.ValidateScore(insert.Score); err != nil {
		return nil, err
	}
	if insert.ID == "" {
		insert.ID = uuid.New().String()
	}

	query, args, err := psql.Insert("responses").
		Columns(responseColumns...).
		Values(insert.ID, insert.AssessmentID, insert.QuestionID, insert.Score, time.Now().UTC()).
		Suffix("ON CONFLICT (assessment_id, question_id) DO UPDATE SET score = EXCLUDED.score").
		Suffix(returning(responseColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	resp, err := scanResponse(r.systemDB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert response: %w", err)
	}
	return resp, nil
}

func (r *responseRepository) ListByAssessment(ctx context.Context, assessmentID string) ([]*domain.Response, error) {
	query, args, err := psql.Select(responseColumns...).
		From("responses").
		Where(sq.Eq{"assessment_id": assessmentID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.systemDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	defer rows.Close()

	var responses []*domain.Response
	for rows.Next() {
		resp, err := scanResponse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		responses = append(responses, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating response rows: %w", err)
	}
	return responses, nil
}
