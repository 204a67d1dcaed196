package domain

import (
	"context"
	"strings"
)

//go:generate mockgen -destination mocks/mock_question_repository.go -package mocks github.com/Harmonic/harmonic/internal/domain QuestionRepository

type Question struct {
	ID            string `json:"id" yaml:"id"`
	QuestionText  string `json:"question_text" yaml:"question_text"`
	HarmonicState string `json:"harmonic_state" yaml:"harmonic_state"`
	Order         int    `json:"order" yaml:"order"`
}

type QuestionInsert struct {
	ID            string `json:"id,omitempty" yaml:"id"`
	QuestionText  string `json:"question_text" yaml:"question_text"`
	HarmonicState string `json:"harmonic_state" yaml:"harmonic_state"`
	Order         int    `json:"order" yaml:"order"`
}

func (q QuestionInsert) Validate() error {
	if strings.TrimSpace(q.QuestionText) == "" {
		return NewValidationError("question_text is required")
	}
	if strings.TrimSpace(q.HarmonicState) == "" {
		return NewValidationError("harmonic_state is required")
	}
	return nil
}

type QuestionUpdate struct {
	QuestionText  *string `json:"question_text,omitempty"`
	HarmonicState *string `json:"harmonic_state,omitempty"`
	Order         *int    `json:"order,omitempty"`
}

type QuestionRepository interface {
	// List returns questions sorted by order
	List(ctx context.Context) ([]*Question, error)
	GetByID(ctx context.Context, id string) (*Question, error)
	Upsert(ctx context.Context, question QuestionInsert) (*Question, error)
}
