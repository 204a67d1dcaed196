package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/Harmonic/harmonic/internal/domain"
	"github.com/Harmonic/harmonic/pkg/tracing"
)

var assessmentColumns = []string{
	"id", "user_id", "completed", "dominant_state", "results", "created_at", "completed_at",
}

type assessmentRepository struct {
	systemDB *sql.DB
}

// NewAssessmentRepository creates a new PostgreSQL assessment repository
func NewAssessmentRepository(db *sql.DB) domain.AssessmentRepository {
	return &assessmentRepository{systemDB: db}
}

func scanAssessment(row rowScanner) (*domain.Assessment, error) {
	var a domain.Assessment
	var dominant sql.NullString
	var completedAt sql.NullTime

	if err := row.Scan(&a.ID, &a.UserID, &a.Completed, &dominant, &a.Results, &a.CreatedAt, &completedAt); err != nil {
		return nil, err
	}
	if dominant.Valid {
		a.DominantState = &dominant.String
	}
	if completedAt.Valid {
		t := completedAt.Time
		a.CompletedAt = &t
	}
	return &a, nil
}

func (r *assessmentRepository) Create(ctx context.Context, insert domain.AssessmentInsert) (*domain.Assessment, error) {
	if insert.UserID == "" {
		return nil, domain.NewValidationError("user_id is required")
	}
	if insert.ID == "" {
		insert.ID = uuid.New().String()
	}
	completed := false
	if insert.Completed != nil {
		completed = *insert.Completed
	}

	query, args, err := psql.Insert("assessments").
		Columns("id", "user_id", "completed", "dominant_state", "results", "created_at").
		Values(insert.ID, insert.UserID, completed, nullableString(insert.DominantState), insert.Results, time.Now().UTC()).
		Suffix(returning(assessmentColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	assessment, err := scanAssessment(r.systemDB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}
	return assessment, nil
}

func (r *assessmentRepository) GetByID(ctx context.Context, id string) (*domain.Assessment, error) {
	query, args, err := psql.Select(assessmentColumns...).
		From("assessments").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	assessment, err := scanAssessment(r.systemDB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) || isInvalidTextRepresentation(err) {
		return nil, &domain.ErrNotFound{Entity: "assessment", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return assessment, nil
}

func (r *assessmentRepository) Update(ctx context.Context, id string, update domain.AssessmentUpdate) (*domain.Assessment, error) {
	builder := psql.Update("assessments")
	set := false
	if update.Completed != nil {
		builder = builder.Set("completed", *update.Completed)
		set = true
	}
	if update.DominantState != nil {
		builder = builder.Set("dominant_state", *update.DominantState)
		set = true
	}
	if update.Results != nil {
		builder = builder.Set("results", update.Results)
		set = true
	}
	if update.CompletedAt != nil {
		builder = builder.Set("completed_at", *update.CompletedAt)
		set = true
	}
	if !set {
		return nil, domain.NewValidationError("no fields to update")
	}

	query, args, err := builder.
		Where(sq.Eq{"id": id}).
		Suffix(returning(assessmentColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	assessment, err := scanAssessment(r.systemDB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.ErrNotFound{Entity: "assessment", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update assessment: %w", err)
	}
	return assessment, nil
}

func (r *assessmentRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Assessment, error) {
	query, args, err := psql.Select(assessmentColumns...).
		From("assessments").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.systemDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	var assessments []*domain.Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		assessments = append(assessments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assessment rows: %w", err)
	}
	return assessments, nil
}

// completedForClients selects completed assessments of the respondents in filter
func completedForClients(columns []string, filter domain.ClientFilter) sq.SelectBuilder {
	return psql.Select(columns...).
		From("assessments a").
		Join("profiles p ON p.id = a.user_id").
		Where(sq.Eq{"a.completed": true}).
		Where(clientCondition("p.", filter))
}

func (r *assessmentRepository) CountCompleted(ctx context.Context, filter domain.ClientFilter) (int, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "AssessmentRepository", "CountCompleted")
	defer tracing.EndSpan(span, nil)

	query, args, err := completedForClients([]string{"COUNT(*)"}, filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var count int
	if err := r.systemDB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		tracing.MarkSpanError(ctx, err)
		return 0, fmt.Errorf("failed to count completed assessments: %w", err)
	}
	return count, nil
}

func (r *assessmentRepository) DailyCompletions(ctx context.Context, filter domain.ClientFilter, since time.Time) ([]domain.DailyCount, error) {
	query, args, err := completedForClients([]string{"date_trunc('day', a.completed_at) AS day", "COUNT(*)"}, filter).
		Where(sq.GtOrEq{"a.completed_at": since}).
		GroupBy("day").
		OrderBy("day").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.systemDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily completions: %w", err)
	}
	defer rows.Close()

	var counts []domain.DailyCount
	for rows.Next() {
		var c domain.DailyCount
		if err := rows.Scan(&c.Day, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan daily count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily counts: %w", err)
	}
	return counts, nil
}

func (r *assessmentRepository) DominantStateCounts(ctx context.Context, filter domain.ClientFilter) ([]domain.StateCount, error) {
	query, args, err := completedForClients([]string{"a.dominant_state", "COUNT(*)"}, filter).
		Where(sq.NotEq{"a.dominant_state": nil}).
		GroupBy("a.dominant_state").
		OrderBy("COUNT(*) DESC", "a.dominant_state").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.systemDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query dominant states: %w", err)
	}
	defer rows.Close()

	var counts []domain.StateCount
	for rows.Next() {
		var c domain.StateCount
		if err := rows.Scan(&c.State, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan state count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating state counts: %w", err)
	}
	return counts, nil
}
