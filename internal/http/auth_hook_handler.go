package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/Harmonic/harmonic/internal/domain"
	"github.com/Harmonic/harmonic/pkg/logger"
)

// AuthHookHandler receives the Supabase Send Email auth hook
type AuthHookHandler struct {
	service domain.AuthEmailHookService
	logger  logger.Logger
}

func NewAuthHookHandler(service domain.AuthEmailHookService, logger logger.Logger) *AuthHookHandler {
	return &AuthHookHandler{
		service: service,
		logger:  logger,
	}
}

func (h *AuthHookHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/webhooks/supabase/auth-email", h.handleAuthEmail)
}

func (h *AuthHookHandler) handleAuthEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// The signature covers the raw body
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to read auth hook body")
		WriteJSONError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	headers := domain.WebhookHeaders{
		ID:        r.Header.Get("webhook-id"),
		Timestamp: r.Header.Get("webhook-timestamp"),
		Signature: r.Header.Get("webhook-signature"),
	}

	if err := h.service.ProcessAuthEmail(r.Context(), payload, headers); err != nil {
		if errors.Is(err, domain.ErrInvalidWebhookSignature) {
			h.logger.WithField("error", err.Error()).Warn("Rejected auth hook request")
			WriteJSONError(w, "Invalid webhook signature", http.StatusUnauthorized)
			return
		}
		writeServiceError(w, h.logger, err, "Failed to send auth email")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{})
}
