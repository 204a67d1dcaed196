package mailer

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// relayBackend is an in-process SMTP server that records delivered mail
type relayBackend struct {
	username string
	password string

	mu       sync.Mutex
	from     string
	to       []string
	data     []byte
	authUser string
}

func (b *relayBackend) NewSession(_ *smtp.Conn) (smtp.Session, error) {
	return &relaySession{backend: b}, nil
}

type relaySession struct {
	backend *relayBackend
	authed  bool
	from    string
	to      []string
}

func (s *relaySession) AuthMechanisms() []string {
	return []string{sasl.Plain}
}

func (s *relaySession) Auth(_ string) (sasl.Server, error) {
	return sasl.NewPlainServer(func(_, username, password string) error {
		if username != s.backend.username || password != s.backend.password {
			return errors.New("invalid credentials")
		}
		s.authed = true
		s.backend.mu.Lock()
		s.backend.authUser = username
		s.backend.mu.Unlock()
		return nil
	}), nil
}

func (s *relaySession) Mail(from string, _ *smtp.MailOptions) error {
	if s.backend.username != "" && !s.authed {
		return errors.New("not authenticated")
	}
	s.from = from
	return nil
}

func (s *relaySession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.to = append(s.to, to)
	return nil
}

func (s *relaySession) Data(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	s.backend.from = s.from
	s.backend.to = s.to
	s.backend.data = data
	return nil
}

func (s *relaySession) Reset() {
	s.from = ""
	s.to = nil
}

func (s *relaySession) Logout() error {
	return nil
}

func startRelay(t *testing.T, backend *relayBackend) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := smtp.NewServer(backend)
	server.Domain = "localhost"
	server.ReadTimeout = 5 * time.Second
	server.WriteTimeout = 5 * time.Second
	server.AllowInsecureAuth = true

	go func() {
		_ = server.Serve(l)
	}()
	t.Cleanup(func() {
		server.Close()
	})

	return l.Addr().(*net.TCPAddr).Port
}

func TestSMTPSender_DeliversToRelay(t *testing.T) {
	backend := &relayBackend{}
	port := startRelay(t, backend)

	sender := NewSMTPSender(SMTPConfig{Host: "127.0.0.1", Port: port}, testFrom)
	require.NoError(t, sender.Send(context.Background(), testMessage))

	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.Equal(t, "noreply@harmonic.app", backend.from)
	assert.Equal(t, []string{"client@example.com"}, backend.to)
	assert.Contains(t, string(backend.data), "Subject: Welcome")
	assert.Contains(t, string(backend.data), "text/html")
	assert.Empty(t, backend.authUser)
}

func TestSMTPSender_AuthPlain(t *testing.T) {
	backend := &relayBackend{username: "relay-user", password: "relay-pass"}
	port := startRelay(t, backend)

	sender := NewSMTPSender(SMTPConfig{Host: "127.0.0.1", Port: port, Username: "relay-user", Password: "relay-pass"}, testFrom)
	require.NoError(t, sender.Send(context.Background(), testMessage))

	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.Equal(t, "relay-user", backend.authUser)
	assert.Equal(t, []string{"client@example.com"}, backend.to)
}

func TestSMTPSender_AuthRejected(t *testing.T) {
	backend := &relayBackend{username: "relay-user", password: "relay-pass"}
	port := startRelay(t, backend)

	sender := NewSMTPSender(SMTPConfig{Host: "127.0.0.1", Port: port, Username: "relay-user", Password: "wrong"}, testFrom)
	err := sender.Send(context.Background(), testMessage)
	require.Error(t, err)

	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.Nil(t, backend.data)
}
