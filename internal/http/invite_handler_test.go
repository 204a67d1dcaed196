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

func setupInviteHandler(t *testing.T) (*mocks.MockInviteService, *http.ServeMux) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockInviteService(ctrl)
	handler := NewInviteHandler(service, logger.NewTestLogger(t))

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return service, mux
}

func TestInviteHandler(t *testing.T) {
	const path = "/functions/v1/invite-client"

	invite := map[string]string{
		"firstName": "Jane",
		"lastName":  "Doe",
		"email":     "jane@example.com",
		"coachId":   "coach-1",
	}
	expected := domain.InviteClientRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		CoachID:   "coach-1",
	}

	t.Run("success", func(t *testing.T) {
		service, mux := setupInviteHandler(t)
		service.EXPECT().Invite(gomock.Any(), expected).
			Return(&domain.InviteClientResult{UserID: "user-1", ProfileConfirmed: true, EmailSent: true}, nil)

		w := doRequest(t, mux, http.MethodPost, path, invite, "")

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Client invited successfully", body["message"])
		assert.Equal(t, "user-1", body["userId"])
	})

	t.Run("alias route", func(t *testing.T) {
		service, mux := setupInviteHandler(t)
		service.EXPECT().Invite(gomock.Any(), expected).Return(&domain.InviteClientResult{UserID: "user-1"}, nil)

		w := doRequest(t, mux, http.MethodPost, "/api/clients.invite", invite, "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("preflight", func(t *testing.T) {
		_, mux := setupInviteHandler(t)

		w := doRequest(t, mux, http.MethodOptions, path, nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("method not allowed", func(t *testing.T) {
		_, mux := setupInviteHandler(t)

		w := doRequest(t, mux, http.MethodPut, path, invite, "")

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		_, mux := setupInviteHandler(t)

		w := doRequest(t, mux, http.MethodPost, path, "[", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		service, mux := setupInviteHandler(t)
		service.EXPECT().Invite(gomock.Any(), domain.InviteClientRequest{FirstName: "Jane"}).
			Return(nil, domain.NewValidationError("Missing required fields: lastName, email, coachId"))

		w := doRequest(t, mux, http.MethodPost, path, map[string]string{"firstName": "Jane"}, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing required fields: lastName, email, coachId", decodeBody(t, w)["error"])
	})

	t.Run("auth provider rejects user", func(t *testing.T) {
		service, mux := setupInviteHandler(t)
		service.EXPECT().Invite(gomock.Any(), expected).Return(nil, &domain.ProviderError{
			Provider:   "supabase",
			Operation:  "create_user",
			StatusCode: http.StatusUnprocessableEntity,
			Message:    "A user with this email address has already been registered",
		})

		w := doRequest(t, mux, http.MethodPost, path, invite, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "A user with this email address has already been registered", decodeBody(t, w)["error"])
	})

	t.Run("profile failure", func(t *testing.T) {
		service, mux := setupInviteHandler(t)
		service.EXPECT().Invite(gomock.Any(), expected).Return(nil, errors.New("failed to create client profile: insert failed"))

		w := doRequest(t, mux, http.MethodPost, path, invite, "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to invite client", decodeBody(t, w)["error"])
	})
}
