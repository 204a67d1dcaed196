package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/Harmonic/harmonic/internal/domain"
	"github.com/Harmonic/harmonic/internal/domain/mocks"
	"github.com/Harmonic/harmonic/pkg/logger"
)

func setupAssessmentHandler(t *testing.T) (*mocks.MockAssessmentService, *http.ServeMux) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockAssessmentService(ctrl)
	handler := NewAssessmentHandler(service, newTestAuth(t), logger.NewTestLogger(t))

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return service, mux
}

func TestAssessmentHandler_Questions(t *testing.T) {
	service, mux := setupAssessmentHandler(t)
	service.EXPECT().ListQuestions(gomock.Any()).Return([]*domain.Question{
		{ID: "q1", QuestionText: "I often feel hopeful", HarmonicState: "enthusiasm", Order: 1},
	}, nil)

	w := doRequest(t, mux, http.MethodGet, "/api/assessments.questions", nil, "user-1")

	assert.Equal(t, http.StatusOK, w.Code)
	questions := decodeBody(t, w)["questions"].([]interface{})
	assert.Len(t, questions, 1)
	assert.Equal(t, "enthusiasm", questions[0].(map[string]interface{})["harmonic_state"])
}

func TestAssessmentHandler_Start(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service, mux := setupAssessmentHandler(t)
		service.EXPECT().Start(gomock.Any(), "user-1").Return(&domain.Assessment{ID: "a-1", UserID: "user-1"}, nil)

		w := doRequest(t, mux, http.MethodPost, "/api/assessments.start", nil, "user-1")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "a-1", decodeBody(t, w)["assessment"].(map[string]interface{})["id"])
	})

	t.Run("store failure", func(t *testing.T) {
		service, mux := setupAssessmentHandler(t)
		service.EXPECT().Start(gomock.Any(), "user-1").Return(nil, errors.New("db down"))

		w := doRequest(t, mux, http.MethodPost, "/api/assessments.start", nil, "user-1")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to start assessment", decodeBody(t, w)["error"])
	})

	t.Run("requires auth", func(t *testing.T) {
		_, mux := setupAssessmentHandler(t)

		w := doRequest(t, mux, http.MethodPost, "/api/assessments.start", nil, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAssessmentHandler_Respond(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service, mux := setupAssessmentHandler(t)
		req := domain.RecordResponseRequest{AssessmentID: "a-1", QuestionID: "q1", Score: 4}
		service.EXPECT().RecordResponse(gomock.Any(), "user-1", req).
			Return(&domain.Response{ID: "r-1", AssessmentID: "a-1", QuestionID: "q1", Score: 4}, nil)

		w := doRequest(t, mux, http.MethodPost, "/api/assessments.respond", req, "user-1")

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeBody(t, w)["response"].(map[string]interface{})
		assert.Equal(t, float64(4), response["score"])
	})

	t.Run("score out of range", func(t *testing.T) {
		service, mux := setupAssessmentHandler(t)
		service.EXPECT().RecordResponse(gomock.Any(), "user-1", gomock.Any()).
			Return(nil, domain.NewValidationError("score must be between 1 and 5"))

		w := doRequest(t, mux, http.MethodPost, "/api/assessments.respond",
			domain.RecordResponseRequest{AssessmentID: "a-1", QuestionID: "q1", Score: 9}, "user-1")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("someone else's assessment", func(t *testing.T) {
		service, mux := setupAssessmentHandler(t)
		service.EXPECT().RecordResponse(gomock.Any(), "user-2", gomock.Any()).
			Return(nil, &domain.ErrNotFound{Entity: "assessment", ID: "a-1"})

		w := doRequest(t, mux, http.MethodPost, "/api/assessments.respond",
			domain.RecordResponseRequest{AssessmentID: "a-1", QuestionID: "q1", Score: 3}, "user-2")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Assessment not found", decodeBody(t, w)["error"])
	})
}

func TestAssessmentHandler_Complete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service, mux := setupAssessmentHandler(t)
		service.EXPECT().Complete(gomock.Any(), "user-1", "a-1").Return(&domain.Assessment{
			ID:            "a-1",
			Completed:     true,
			DominantState: domain.StringPtr("grief"),
			Results:       domain.AssessmentResults{"grief": 9, "enthusiasm": 4},
		}, nil)

		w := doRequest(t, mux, http.MethodPost, "/api/assessments.complete", map[string]string{"id": "a-1"}, "user-1")

		assert.Equal(t, http.StatusOK, w.Code)
		assessment := decodeBody(t, w)["assessment"].(map[string]interface{})
		assert.Equal(t, "grief", assessment["dominant_state"])
		assert.Equal(t, float64(9), assessment["results"].(map[string]interface{})["grief"])
	})

	t.Run("missing id", func(t *testing.T) {
		_, mux := setupAssessmentHandler(t)

		w := doRequest(t, mux, http.MethodPost, "/api/assessments.complete", map[string]string{}, "user-1")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no responses", func(t *testing.T) {
		service, mux := setupAssessmentHandler(t)
		service.EXPECT().Complete(gomock.Any(), "user-1", "a-1").Return(nil, domain.NewValidationError("no responses recorded"))

		w := doRequest(t, mux, http.MethodPost, "/api/assessments.complete", map[string]string{"id": "a-1"}, "user-1")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "no responses recorded", decodeBody(t, w)["error"])
	})
}

func TestAssessmentHandler_Get(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		service, mux := setupAssessmentHandler(t)
		service.EXPECT().Get(gomock.Any(), "user-1", "a-9").Return(nil, &domain.ErrNotFound{Entity: "assessment", ID: "a-9"})

		w := doRequest(t, mux, http.MethodGet, "/api/assessments.get?id=a-9", nil, "user-1")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Assessment not found", decodeBody(t, w)["error"])
	})

	t.Run("missing id", func(t *testing.T) {
		_, mux := setupAssessmentHandler(t)

		w := doRequest(t, mux, http.MethodGet, "/api/assessments.get", nil, "user-1")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
