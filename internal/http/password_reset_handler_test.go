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

func setupPasswordResetHandler(t *testing.T) (*mocks.MockPasswordResetService, *http.ServeMux) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockPasswordResetService(ctrl)
	handler := NewPasswordResetHandler(service, logger.NewTestLogger(t))

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return service, mux
}

func TestPasswordResetHandler(t *testing.T) {
	const path = "/functions/v1/send-password-reset"

	t.Run("success", func(t *testing.T) {
		service, mux := setupPasswordResetHandler(t)
		service.EXPECT().RequestReset(gomock.Any(), "jane@example.com").Return(nil)

		w := doRequest(t, mux, http.MethodPost, path, map[string]string{"email": "jane@example.com"}, "")

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "If an account exists with this email, a password reset link has been sent.", body["message"])
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("alias route", func(t *testing.T) {
		service, mux := setupPasswordResetHandler(t)
		service.EXPECT().RequestReset(gomock.Any(), "jane@example.com").Return(nil)

		w := doRequest(t, mux, http.MethodPost, "/api/auth.reset-password", map[string]string{"email": "jane@example.com"}, "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("preflight", func(t *testing.T) {
		_, mux := setupPasswordResetHandler(t)

		w := doRequest(t, mux, http.MethodOptions, path, nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
		assert.Equal(t, "authorization, x-client-info, apikey, content-type", w.Header().Get("Access-Control-Allow-Headers"))
	})

	t.Run("method not allowed", func(t *testing.T) {
		_, mux := setupPasswordResetHandler(t)

		w := doRequest(t, mux, http.MethodGet, path, nil, "")

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Equal(t, "Method not allowed", decodeBody(t, w)["error"])
	})

	t.Run("missing email", func(t *testing.T) {
		_, mux := setupPasswordResetHandler(t)

		w := doRequest(t, mux, http.MethodPost, path, map[string]string{}, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Email is required", decodeBody(t, w)["error"])
	})

	t.Run("malformed body", func(t *testing.T) {
		_, mux := setupPasswordResetHandler(t)

		w := doRequest(t, mux, http.MethodPost, path, "{not json", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Email is required", decodeBody(t, w)["error"])
	})

	t.Run("invalid email format", func(t *testing.T) {
		service, mux := setupPasswordResetHandler(t)
		service.EXPECT().RequestReset(gomock.Any(), "not-an-email").
			Return(domain.NewValidationError("Invalid email format"))

		w := doRequest(t, mux, http.MethodPost, path, map[string]string{"email": "not-an-email"}, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid email format", decodeBody(t, w)["error"])
	})

	t.Run("lookup failure", func(t *testing.T) {
		service, mux := setupPasswordResetHandler(t)
		service.EXPECT().RequestReset(gomock.Any(), "jane@example.com").Return(errors.New("db down"))

		w := doRequest(t, mux, http.MethodPost, path, map[string]string{"email": "jane@example.com"}, "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "db down")
	})
}
