package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/Harmonic/harmonic/internal/domain"
)

var questionColumns = []string{"id", "question_text", "harmonic_state", `"order"`}

type questionRepository struct {
	systemDB *sql.DB
}

func NewQuestionRepository(db *sql.DB) domain.QuestionRepository {
	return &questionRepository{systemDB: db}
}

func scanQuestion(row rowScanner) (*domain.Question, error) {
	var q domain.Question
	if err := row.Scan(&q.ID, &q.QuestionText, &q.HarmonicState, &q.Order); err != nil {
		return nil, err
	}
	return &q, nil
}

// List returns every question in presentation order
func (r *questionRepository) List(ctx context.Context) ([]*domain.Question, error) {
	query, args, err := psql.Select(questionColumns...).
		From("questions").
		OrderBy(`"order" ASC`, "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.systemDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []*domain.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating question rows: %w", err)
	}
	return questions, nil
}

func (r *questionRepository) GetByID(ctx context.Context, id string) (*domain.Question, error) {
	query, args, err := psql.Select(questionColumns...).
		From("questions").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	q, err := scanQuestion(r.systemDB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.ErrNotFound{Entity: "question", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return q, nil
}

// Upsert inserts the question or replaces the row with the same id
func (r *questionRepository) Upsert(ctx context.Context, insert domain.QuestionInsert) (*domain.Question, error) {
	if err := insert.Validate(); err != nil {
		return nil, err
	}
	if insert.ID == "" {
		insert.ID = uuid.New().String()
	}

	query, args, err := psql.Insert("questions").
		Columns(questionColumns...).
		Values(insert.ID, insert.QuestionText, insert.HarmonicState, insert.Order).
		Suffix(`ON CONFLICT (id) DO UPDATE SET question_text = EXCLUDED.question_text, harmonic_state = EXCLUDED.harmonic_state, "order" = EXCLUDED."order"`).
		Suffix(returning(questionColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	q, err := scanQuestion(r.systemDB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert question: %w", err)
	}
	return q, nil
}
