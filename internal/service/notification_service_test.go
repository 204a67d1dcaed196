package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harmonic/harmonic/internal/domain"
	"github.com/Harmonic/harmonic/pkg/logger"
	"github.com/Harmonic/harmonic/pkg/mailer"
	pkgmocks "github.com/Harmonic/harmonic/pkg/mocks"
	"github.com/Harmonic/harmonic/pkg/templates"
)

type fakeRenderer struct {
	template string
	data     map[string]interface{}
	err      error
}

func (f *fakeRenderer) Render(_ context.Context, tpl templates.EmailTemplate, data map[string]interface{}) (*templates.Rendered, error) {
	f.template = tpl.Name
	f.data = data
	if f.err != nil {
		return nil, f.err
	}
	return &templates.Rendered{Subject: "subject:" + tpl.Name, HTML: "<p>html</p>", Text: "text"}, nil
}

func setupNotificationTest(t *testing.T) (*NotificationService, *fakeRenderer, *pkgmocks.MockSender) {
	ctrl := gomock.NewController(t)
	sender := pkgmocks.NewMockSender(ctrl)
	renderer := &fakeRenderer{}
	return NewNotificationService(renderer, sender, "Harmonic", logger.NewTestLogger(t)), renderer, sender
}

func TestNotificationService_SendPasswordReset(t *testing.T) {
	svc, renderer, sender := setupNotificationTest(t)

	sender.EXPECT().Send(gomock.Any(), mailer.Message{
		To:      "ada@example.com",
		Subject: "subject:password_reset",
		HTML:    "<p>html</p>",
		Text:    "text",
	}).Return(nil)

	err := svc.SendPasswordReset(context.Background(), "ada@example.com", "Ada", "https://link")
	require.NoError(t, err)
	assert.Equal(t, "password_reset", renderer.template)
	assert.Equal(t, "https://link", renderer.data["reset_link"])
	assert.Equal(t, "Ada", renderer.data["first_name"])
	assert.Equal(t, "Harmonic", renderer.data["app_name"])
}

func TestNotificationService_SendClientCredentials(t *testing.T) {
	svc, renderer, sender := setupNotificationTest(t)

	sender.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg mailer.Message) error {
		assert.Equal(t, "ada@example.com", msg.To)
		return nil
	})

	err := svc.SendClientCredentials(context.Background(), domain.ClientCredentials{
		Email:        "ada@example.com",
		FirstName:    "Ada",
		CoachName:    "Grace Hopper",
		TempPassword: "Abc123!@#xyz",
		LoginURL:     "https://app.test/login",
	})
	require.NoError(t, err)
	assert.Equal(t, "client_invite", renderer.template)
	assert.Equal(t, "Abc123!@#xyz", renderer.data["temp_password"])
	assert.Equal(t, "Grace Hopper", renderer.data["coach_name"])
}

func TestNotificationService_SendAuthEmail(t *testing.T) {
	t.Run("known action", func(t *testing.T) {
		svc, renderer, sender := setupNotificationTest(t)
		sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

		err := svc.SendAuthEmail(context.Background(), "ada@example.com", domain.AuthEmailActionMagicLink, map[string]interface{}{
			"confirmation_url": "https://verify",
			"app_name":         "Custom",
		})
		require.NoError(t, err)
		assert.Equal(t, "supabase_magiclink", renderer.template)
		assert.Equal(t, "Custom", renderer.data["app_name"], "caller supplied app_name is kept")
	})

	t.Run("unknown action", func(t *testing.T) {
		svc, _, _ := setupNotificationTest(t)

		err := svc.SendAuthEmail(context.Background(), "ada@example.com", "bogus", map[string]interface{}{})
		assert.True(t, domain.IsValidationError(err))
	})
}

func TestNotificationService_Failures(t *testing.T) {
	t.Run("render error", func(t *testing.T) {
		svc, renderer, _ := setupNotificationTest(t)
		renderer.err = errors.New("bad liquid")

		err := svc.SendPasswordReset(context.Background(), "ada@example.com", "", "https://link")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to render password_reset email")
	})

	t.Run("send error", func(t *testing.T) {
		svc, _, sender := setupNotificationTest(t)
		sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

		err := svc.SendPasswordReset(context.Background(), "ada@example.com", "", "https://link")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "smtp down")
	})

	t.Run("disabled mailer", func(t *testing.T) {
		svc, _, sender := setupNotificationTest(t)
		sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(mailer.ErrDisabled)

		err := svc.SendPasswordReset(context.Background(), "ada@example.com", "", "https://link")
		assert.ErrorIs(t, err, mailer.ErrDisabled)
	})
}
