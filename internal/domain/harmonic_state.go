package domain

import (
	"context"
	"strings"
)

//go:generate mockgen -destination mocks/mock_harmonic_state_repository.go -package mocks github.com/Harmonic/harmonic/internal/domain HarmonicStateRepository

// HarmonicState is a named emotional category, e.g. grief or enthusiasm
type HarmonicState struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	Color        *string `json:"color"`
	CoachingTips *string `json:"coaching_tips"`
}

type HarmonicStateInsert struct {
	ID           string  `json:"id,omitempty" yaml:"id"`
	Name         string  `json:"name" yaml:"name"`
	Description  *string `json:"description,omitempty" yaml:"description"`
	Color        *string `json:"color,omitempty" yaml:"color"`
	CoachingTips *string `json:"coaching_tips,omitempty" yaml:"coaching_tips"`
}

func (h HarmonicStateInsert) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return NewValidationError("harmonic state name is required")
	}
	return nil
}

type HarmonicStateUpdate struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	Color        *string `json:"color,omitempty"`
	CoachingTips *string `json:"coaching_tips,omitempty"`
}

type HarmonicStateRepository interface {
	List(ctx context.Context) ([]*HarmonicState, error)
	// Upsert matches on name
	Upsert(ctx context.Context, state HarmonicStateInsert) (*HarmonicState, error)
}
