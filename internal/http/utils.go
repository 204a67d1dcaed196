package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Harmonic/harmonic/internal/domain"
	"github.com/Harmonic/harmonic/internal/http/middleware"
	"github.com/Harmonic/harmonic/pkg/logger"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 1 << 20

// WriteJSONError writes a JSON error response with the given message and status code.
// It sets the Content-Type header to application/json and automatically formats
// the response as {"error": "message"}.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// writeJSON writes a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
}

// writeServiceError maps domain errors to status codes. Unrecognized errors
// are logged and answered with fallback as a 500.
func writeServiceError(w http.ResponseWriter, log logger.Logger, err error, fallback string) {
	var ve domain.ValidationError
	var pe *domain.PermissionError
	var nf *domain.ErrNotFound

	switch {
	case errors.As(err, &ve):
		WriteJSONError(w, ve.Message, http.StatusBadRequest)
	case errors.As(err, &pe):
		WriteJSONError(w, pe.Message, http.StatusForbidden)
	case errors.As(err, &nf):
		WriteJSONError(w, capitalize(nf.Entity)+" not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrProfileNotFound):
		WriteJSONError(w, "Profile not found", http.StatusNotFound)
	default:
		log.WithField("error", err.Error()).Error(fallback)
		WriteJSONError(w, fallback, http.StatusInternalServerError)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}

// callerID returns the authenticated user id or writes a 401
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	caller, ok := domain.CallerFromContext(r.Context())
	if !ok {
		WriteJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return caller.UserID, true
}

type idRequest struct {
	ID string `json:"id"`
}

// protected wraps a dashboard endpoint with CORS and bearer token auth
func protected(auth *middleware.JWTAuth, fn http.HandlerFunc) http.Handler {
	return middleware.CORSMiddleware(middleware.DashboardMethods)(auth.RequireAuth(fn))
}
