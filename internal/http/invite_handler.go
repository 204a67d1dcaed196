package http

import (
	"errors"
	"net/http"

	"github.com/Harmonic/harmonic/internal/domain"
	"github.com/Harmonic/harmonic/internal/http/middleware"
	"github.com/Harmonic/harmonic/pkg/logger"
)

type InviteHandler struct {
	service domain.InviteService
	logger  logger.Logger
}

func NewInviteHandler(service domain.InviteService, logger logger.Logger) *InviteHandler {
	return &InviteHandler{
		service: service,
		logger:  logger,
	}
}

type inviteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

func (h *InviteHandler) RegisterRoutes(mux *http.ServeMux) {
	handler := middleware.CORSMiddleware(middleware.FunctionMethods)(http.HandlerFunc(h.handleInvite))
	mux.Handle("/functions/v1/invite-client", handler)
	mux.Handle("/api/clients.invite", handler)
}

func (h *InviteHandler) handleInvite(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.InviteClientRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Invite(r.Context(), req)
	if err != nil {
		var ve domain.ValidationError
		if errors.As(err, &ve) {
			WriteJSONError(w, ve.Message, http.StatusBadRequest)
			return
		}
		if pe, ok := domain.AsProviderError(err); ok {
			h.logger.WithField("error", err.Error()).Warn("Auth provider rejected client invite")
			WriteJSONError(w, pe.Message, http.StatusBadRequest)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to invite client")
		WriteJSONError(w, "Failed to invite client", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, inviteResponse{
		Success: true,
		Message: domain.InviteSuccessMessage,
		UserID:  result.UserID,
	})
}
