package http

import (
	"net/http"
	"strings"

	"github.com/Harmonic/harmonic/internal/domain"
	"github.com/Harmonic/harmonic/internal/http/middleware"
	"github.com/Harmonic/harmonic/pkg/logger"
	"github.com/Harmonic/harmonic/pkg/metriccard"
)

type DashboardHandler struct {
	service domain.DashboardService
	auth    *middleware.JWTAuth
	logger  logger.Logger
}

func NewDashboardHandler(service domain.DashboardService, auth *middleware.JWTAuth, logger logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		auth:    auth,
		logger:  logger,
	}
}

type cardResponse struct {
	metriccard.Card
	Direction metriccard.Direction `json:"direction"`
}

func (h *DashboardHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/api/dashboard.cards", protected(h.auth, h.handleCards))
}

// handleCards answers with JSON unless ?format=html or an HTML Accept header
// asks for the rendered panels
func (h *DashboardHandler) handleCards(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	actorID, ok := callerID(w, r)
	if !ok {
		return
	}

	cards, err := h.service.Cards(r.Context(), actorID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to load dashboard")
		return
	}

	if wantsHTML(r) {
		h.writeHTML(w, cards)
		return
	}

	response := make([]cardResponse, len(cards))
	for i, c := range cards {
		response[i] = cardResponse{Card: c, Direction: metriccard.TrendDirection(c.Trend)}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cards": response,
	})
}

func (h *DashboardHandler) writeHTML(w http.ResponseWriter, cards []metriccard.Card) {
	rendered, err := metriccard.RenderAll(cards)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to render metric cards")
		WriteJSONError(w, "Failed to render dashboard", http.StatusInternalServerError)
		return
	}

	var b strings.Builder
	b.WriteString(`<div class="metric-cards">`)
	for _, card := range rendered {
		b.WriteString(string(card))
	}
	b.WriteString(`</div>`)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(b.String()))
}

func wantsHTML(r *http.Request) bool {
	if format := r.URL.Query().Get("format"); format != "" {
		return format == "html"
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
