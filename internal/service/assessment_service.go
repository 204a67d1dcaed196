package service

import (
	"context"
	"time"

	"github.com/Harmonic/harmonic/internal/domain"
	"github.com/Harmonic/harmonic/pkg/logger"
)

type AssessmentService struct {
	assessments domain.AssessmentRepository
	questions   domain.QuestionRepository
	responses   domain.ResponseRepository
	logger      logger.Logger
	now         func() time.Time
}

func NewAssessmentService(
	assessments domain.AssessmentRepository,
	questions domain.QuestionRepository,
	responses domain.ResponseRepository,
	logger logger.Logger,
) *AssessmentService {
	return &AssessmentService{
		assessments: assessments,
		questions:   questions,
		responses:   responses,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *AssessmentService) ListQuestions(ctx context.Context) ([]*domain.Question, error) {
	return s.questions.List(ctx)
}

func (s *AssessmentService) Start(ctx context.Context, userID string) (*domain.Assessment, error) {
	assessment, err := s.assessments.Create(ctx, domain.AssessmentInsert{UserID: userID})
	if err != nil {
		return nil, err
	}
	s.logger.WithField("assessment_id", assessment.ID).WithField("user_id", userID).Info("Assessment started")
	return assessment, nil
}

func (s *AssessmentService) RecordResponse(ctx context.Context, userID string, req domain.RecordResponseRequest) (*domain.Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	assessment, err := s.owned(ctx, userID, req.AssessmentID)
	if err != nil {
		return nil, err
	}
	if assessment.Completed {
		return nil, domain.NewValidationError("assessment is already completed")
	}

	if _, err := s.questions.GetByID(ctx, req.QuestionID); err != nil {
		return nil, err
	}

	return s.responses.Upsert(ctx, domain.ResponseInsert{
		AssessmentID: req.AssessmentID,
		QuestionID:   req.QuestionID,
		Score:        req.Score,
	})
}

// Complete scores the recorded responses and stores the dominant state
func (s *AssessmentService) Complete(ctx context.Context, userID, assessmentID string) (*domain.Assessment, error) {
	assessment, err := s.owned(ctx, userID, assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment.Completed {
		return nil, domain.NewValidationError("assessment is already completed")
	}

	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, err
	}
	responses, err := s.responses.ListByAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	results, dominant := ScoreResponses(questions, responses)
	if dominant == "" {
		return nil, domain.NewValidationError("no responses recorded")
	}

	completed := true
	completedAt := s.now()
	updated, err := s.assessments.Update(ctx, assessmentID, domain.AssessmentUpdate{
		Completed:     &completed,
		DominantState: &dominant,
		Results:       results,
		CompletedAt:   &completedAt,
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithField("assessment_id", assessmentID).
		WithField("dominant_state", dominant).
		Info("Assessment completed")
	return updated, nil
}

func (s *AssessmentService) Get(ctx context.Context, userID, assessmentID string) (*domain.Assessment, error) {
	return s.owned(ctx, userID, assessmentID)
}

func (s *AssessmentService) owned(ctx context.Context, userID, assessmentID string) (*domain.Assessment, error) {
	assessment, err := s.assessments.GetByID(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	// other users' assessments look absent so ids are not disclosed
	if assessment.UserID != userID {
		return nil, &domain.ErrNotFound{Entity: "assessment", ID: assessmentID}
	}
	return assessment, nil
}

// ScoreResponses totals scores per harmonic state. The dominant state has the
// highest total; ties go to the state whose first question comes earliest.
// Responses to unknown questions are ignored.
func ScoreResponses(questions []*domain.Question, responses []*domain.Response) (domain.AssessmentResults, string) {
	byID := make(map[string]*domain.Question, len(questions))
	rank := make(map[string]int)
	for i, q := range questions {
		byID[q.ID] = q
		if _, seen := rank[q.HarmonicState]; !seen {
			rank[q.HarmonicState] = i
		}
	}

	results := domain.AssessmentResults{}
	for _, r := range responses {
		q, ok := byID[r.QuestionID]
		if !ok {
			continue
		}
		results[q.HarmonicState] += r.Score
	}

	dominant := ""
	for state, total := range results {
		if dominant == "" ||
			total > results[dominant] ||
			(total == results[dominant] && rank[state] < rank[dominant]) {
			dominant = state
		}
	}
	if dominant == "" {
		return nil, ""
	}
	return results, dominant
}
