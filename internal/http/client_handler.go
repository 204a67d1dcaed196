package http

import (
	"net/http"

	"github.com/Harmonic/harmonic/internal/domain"
	"github.com/Harmonic/harmonic/internal/http/middleware"
	"github.com/Harmonic/harmonic/pkg/logger"
)

// ClientHandler serves the roster endpoints of coaches and trainers
type ClientHandler struct {
	service domain.ClientService
	auth    *middleware.JWTAuth
	logger  logger.Logger
}

func NewClientHandler(service domain.ClientService, auth *middleware.JWTAuth, logger logger.Logger) *ClientHandler {
	return &ClientHandler{
		service: service,
		auth:    auth,
		logger:  logger,
	}
}

func (h *ClientHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/api/clients.list", protected(h.auth, h.handleList))
	mux.Handle("/api/clients.get", protected(h.auth, h.handleGet))
	mux.Handle("/api/clients.update", protected(h.auth, h.handleUpdate))
	mux.Handle("/api/clients.remove", protected(h.auth, h.handleRemove))
}

func (h *ClientHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	actorID, ok := callerID(w, r)
	if !ok {
		return
	}

	clients, err := h.service.List(r.Context(), actorID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list clients")
		return
	}
	if clients == nil {
		clients = []*domain.Profile{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"clients": clients,
	})
}

func (h *ClientHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	actorID, ok := callerID(w, r)
	if !ok {
		return
	}

	clientID := r.URL.Query().Get("id")
	if clientID == "" {
		WriteJSONError(w, "Missing client ID", http.StatusBadRequest)
		return
	}

	detail, err := h.service.Get(r.Context(), actorID, clientID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get client")
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func (h *ClientHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	actorID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateClientRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	client, err := h.service.Update(r.Context(), actorID, req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to update client")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"client": client,
	})
}

func (h *ClientHandler) handleRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	actorID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req idRequest
	if err := decodeJSON(r, &req); err != nil || req.ID == "" {
		WriteJSONError(w, "Missing client ID", http.StatusBadRequest)
		return
	}

	if err := h.service.Remove(r.Context(), actorID, req.ID); err != nil {
		writeServiceError(w, h.logger, err, "Failed to remove client")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
