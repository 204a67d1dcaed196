package http

import (
	"net/http"

	"github.com/Harmonic/harmonic/internal/domain"
	"github.com/Harmonic/harmonic/internal/http/middleware"
	"github.com/Harmonic/harmonic/pkg/logger"
)

type AssessmentHandler struct {
	service domain.AssessmentService
	auth    *middleware.JWTAuth
	logger  logger.Logger
}

func NewAssessmentHandler(service domain.AssessmentService, auth *middleware.JWTAuth, logger logger.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		service: service,
		auth:    auth,
		logger:  logger,
	}
}

func (h *AssessmentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/api/assessments.questions", protected(h.auth, h.handleQuestions))
	mux.Handle("/api/assessments.start", protected(h.auth, h.handleStart))
	mux.Handle("/api/assessments.respond", protected(h.auth, h.handleRespond))
	mux.Handle("/api/assessments.complete", protected(h.auth, h.handleComplete))
	mux.Handle("/api/assessments.get", protected(h.auth, h.handleGet))
}

func (h *AssessmentHandler) handleQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	questions, err := h.service.ListQuestions(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list questions")
		return
	}
	if questions == nil {
		questions = []*domain.Question{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"questions": questions,
	})
}

func (h *AssessmentHandler) handleStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	assessment, err := h.service.Start(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to start assessment")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"assessment": assessment,
	})
}

func (h *AssessmentHandler) handleRespond(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req domain.RecordResponseRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.service.RecordResponse(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to record response")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"response": response,
	})
}

func (h *AssessmentHandler) handleComplete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req idRequest
	if err := decodeJSON(r, &req); err != nil || req.ID == "" {
		WriteJSONError(w, "Missing assessment ID", http.StatusBadRequest)
		return
	}

	assessment, err := h.service.Complete(r.Context(), userID, req.ID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to complete assessment")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"assessment": assessment,
	})
}

func (h *AssessmentHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	assessmentID := r.URL.Query().Get("id")
	if assessmentID == "" {
		WriteJSONError(w, "Missing assessment ID", http.StatusBadRequest)
		return
	}

	assessment, err := h.service.Get(r.Context(), userID, assessmentID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get assessment")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"assessment": assessment,
	})
}
