package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Harmonic/harmonic/internal/domain"
	"github.com/Harmonic/harmonic/internal/http/middleware"
	"github.com/Harmonic/harmonic/pkg/logger"
)

type PasswordResetHandler struct {
	service domain.PasswordResetService
	logger  logger.Logger
}

func NewPasswordResetHandler(service domain.PasswordResetService, logger logger.Logger) *PasswordResetHandler {
	return &PasswordResetHandler{
		service: service,
		logger:  logger,
	}
}

type passwordResetResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *PasswordResetHandler) RegisterRoutes(mux *http.ServeMux) {
	handler := middleware.CORSMiddleware(middleware.FunctionMethods)(http.HandlerFunc(h.handleRequestReset))
	mux.Handle("/functions/v1/send-password-reset", handler)
	mux.Handle("/api/auth.reset-password", handler)
}

func (h *PasswordResetHandler) handleRequestReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.PasswordResetRequest
	if err := decodeJSON(r, &req); err != nil || strings.TrimSpace(req.Email) == "" {
		WriteJSONError(w, "Email is required", http.StatusBadRequest)
		return
	}

	if err := h.service.RequestReset(r.Context(), req.Email); err != nil {
		var ve domain.ValidationError
		if errors.As(err, &ve) {
			WriteJSONError(w, ve.Message, http.StatusBadRequest)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to process password reset request")
		WriteJSONError(w, "Failed to process password reset request", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, passwordResetResponse{
		Success: true,
		Message: domain.PasswordResetMessage,
	})
}
