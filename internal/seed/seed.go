// Package seed loads harmonic states and assessment questions from YAML.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Harmonic/harmonic/internal/domain"
	"github.com/Harmonic/harmonic/pkg/logger"
)

//go:embed default.yaml
var defaultSeed []byte

type Data struct {
	HarmonicStates []domain.HarmonicStateInsert `yaml:"harmonic_states"`
	Questions      []domain.QuestionInsert      `yaml:"questions"`
}

// Validate checks every entry and that questions reference a declared state
func (d *Data) Validate() error {
	states := make(map[string]bool, len(d.HarmonicStates))
	for i, s := range d.HarmonicStates {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("harmonic_states[%d]: %w", i, err)
		}
		if states[s.Name] {
			return fmt.Errorf("harmonic_states[%d]: duplicate name %q", i, s.Name)
		}
		states[s.Name] = true
	}

	ids := make(map[string]bool, len(d.Questions))
	for i, q := range d.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("questions[%d]: %w", i, err)
		}
		if q.ID == "" {
			return fmt.Errorf("questions[%d]: id is required", i)
		}
		if ids[q.ID] {
			return fmt.Errorf("questions[%d]: duplicate id %s", i, q.ID)
		}
		ids[q.ID] = true
		if len(states) > 0 && !states[q.HarmonicState] {
			return fmt.Errorf("questions[%d]: unknown harmonic_state %q", i, q.HarmonicState)
		}
	}
	return nil
}

// Parse decodes and validates a seed document. Unknown keys are rejected.
func Parse(r io.Reader) (*Data, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var data Data
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return &data, nil
}

// Load reads path, or the embedded default seed when path is empty
func Load(path string) (*Data, error) {
	if path == "" {
		return Parse(bytes.NewReader(defaultSeed))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

type Result struct {
	HarmonicStates int
	Questions      int
}

// Seeder upserts seed data. Running it twice leaves the tables unchanged.
type Seeder struct {
	states    domain.HarmonicStateRepository
	questions domain.QuestionRepository
	logger    logger.Logger
}

func NewSeeder(states domain.HarmonicStateRepository, questions domain.QuestionRepository, logger logger.Logger) *Seeder {
	return &Seeder{
		states:    states,
		questions: questions,
		logger:    logger,
	}
}

// Apply writes states before questions and stops at the first failure
func (s *Seeder) Apply(ctx context.Context, data *Data) (Result, error) {
	var result Result

	for _, state := range data.HarmonicStates {
		if _, err := s.states.Upsert(ctx, state); err != nil {
			return result, fmt.Errorf("failed to seed harmonic state %q: %w", state.Name, err)
		}
		result.HarmonicStates++
	}

	for _, q := range data.Questions {
		if _, err := s.questions.Upsert(ctx, q); err != nil {
			return result, fmt.Errorf("failed to seed question %s: %w", q.ID, err)
		}
		result.Questions++
	}

	s.logger.WithFields(map[string]interface{}{
		"harmonic_states": result.HarmonicStates,
		"questions":       result.Questions,
	}).Info("Seed applied")
	return result, nil
}
