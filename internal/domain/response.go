package domain

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -destination mocks/mock_response_repository.go -package mocks github.com/Harmonic/harmonic/internal/domain ResponseRepository

const (
	MinScore = 1
	MaxScore = 5
)

func ValidateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return NewValidationError(fmt.Sprintf("score must be between %d and %d", MinScore, MaxScore))
	}
	return nil
}

type Response struct {
	ID           string    `json:"id"`
	AssessmentID string    `json:"assessment_id"`
	QuestionID   string    `json:"question_id"`
	Score        int       `json:"score"`
	CreatedAt    time.Time `json:"created_at"`
}

type ResponseInsert struct {
	ID           string `json:"id"`
	AssessmentID string `json:"assessment_id"`
	QuestionID   string `json:"question_id"`
	Score        int    `json:"score"`
}

type ResponseUpdate struct {
	Score *int `json:"score,omitempty"`
}

type ResponseRepository interface {
	// Upsert keeps a single response per (assessment, question)
	Upsert(ctx context.Context, response ResponseInsert) (*Response, error)
	ListByAssessment(ctx context.Context, assessmentID string) ([]*Response, error)
}
