package domain

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

//go:generate mockgen -destination mocks/mock_assessment_repository.go -package mocks github.com/Harmonic/harmonic/internal/domain AssessmentRepository
//go:generate mockgen -destination mocks/mock_assessment_service.go -package mocks github.com/Harmonic/harmonic/internal/domain AssessmentService

// AssessmentResults maps a harmonic state name to its summed score. It is
// stored as JSONB.
type AssessmentResults map[string]int

func (r *AssessmentResults) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("incompatible type for AssessmentResults")
	}
	if len(data) == 0 {
		*r = nil
		return nil
	}
	return json.Unmarshal(data, r)
}

func (r AssessmentResults) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

type Assessment struct {
	ID            string            `json:"id"`
	UserID        string            `json:"user_id"`
	Completed     bool              `json:"completed"`
	DominantState *string           `json:"dominant_state"`
	Results       AssessmentResults `json:"results"`
	CreatedAt     time.Time         `json:"created_at"`
	CompletedAt   *time.Time        `json:"completed_at"`
}

type AssessmentInsert struct {
	ID            string            `json:"id"`
	UserID        string            `json:"user_id"`
	Completed     *bool             `json:"completed,omitempty"`
	DominantState *string           `json:"dominant_state,omitempty"`
	Results       AssessmentResults `json:"results,omitempty"`
}

type AssessmentUpdate struct {
	Completed     *bool             `json:"completed,omitempty"`
	DominantState *string           `json:"dominant_state,omitempty"`
	Results       AssessmentResults `json:"results,omitempty"`
	CompletedAt   *time.Time        `json:"completed_at,omitempty"`
}

// DailyCount is the number of assessments completed on Day (UTC midnight)
type DailyCount struct {
	Day   time.Time `json:"day"`
	Count int       `json:"count"`
}

type StateCount struct {
	State string `json:"state"`
	Count int    `json:"count"`
}

type AssessmentRepository interface {
	Create(ctx context.Context, assessment AssessmentInsert) (*Assessment, error)
	GetByID(ctx context.Context, id string) (*Assessment, error)
	Update(ctx context.Context, id string, update AssessmentUpdate) (*Assessment, error)
	ListByUser(ctx context.Context, userID string) ([]*Assessment, error)

	// Aggregates over the clients selected by filter
	CountCompleted(ctx context.Context, filter ClientFilter) (int, error)
	DailyCompletions(ctx context.Context, filter ClientFilter, since time.Time) ([]DailyCount, error)
	DominantStateCounts(ctx context.Context, filter ClientFilter) ([]StateCount, error)
}

type RecordResponseRequest struct {
	AssessmentID string `json:"assessment_id"`
	QuestionID   string `json:"question_id"`
	Score        int    `json:"score"`
}

func (r RecordResponseRequest) Validate() error {
	if r.AssessmentID == "" {
		return NewValidationError("assessment_id is required")
	}
	if r.QuestionID == "" {
		return NewValidationError("question_id is required")
	}
	return ValidateScore(r.Score)
}

type AssessmentService interface {
	ListQuestions(ctx context.Context) ([]*Question, error)
	Start(ctx context.Context, userID string) (*Assessment, error)
	RecordResponse(ctx context.Context, userID string, req RecordResponseRequest) (*Response, error)
	Complete(ctx context.Context, userID, assessmentID string) (*Assessment, error)
	Get(ctx context.Context, userID, assessmentID string) (*Assessment, error)
}
