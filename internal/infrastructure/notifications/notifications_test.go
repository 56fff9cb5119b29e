package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jhillyerd/enmime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
	"github.com/zatekoja/wanderlust/pkg/config"
)

type fakeDialer struct {
	sent []*mail.Msg
	err  error
}

func (d *fakeDialer) DialAndSendWithContext(_ context.Context, messages ...*mail.Msg) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, messages...)
	return nil
}

var emailCfg = config.EmailConfig{
	Provider:       "smtp",
	User:           "support@wanderlust.test",
	Password:       "app-password",
	SMTPHost:       "smtp.gmail.com",
	SMTPPort:       587,
	FromName:       "WanderLust Support",
	SendGridAPIKey: "sg-key",
}

func TestNewPasswordResetEmail(t *testing.T) {
	msg := NewPasswordResetEmail("alice@example.com", "123456")

	assert.Equal(t, "alice@example.com", msg.To)
	assert.Equal(t, "Password Reset OTP - WanderLust", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "<strong>123456</strong>")
	assert.Contains(t, msg.TextBody, "This OTP will expire in 5 minutes.")
}

func TestSMTPSender_Send(t *testing.T) {
	sender, err := NewSMTPSender(emailCfg)
	require.NoError(t, err)
	dialer := &fakeDialer{}
	sender.client = dialer

	require.NoError(t, sender.Send(context.Background(), NewPasswordResetEmail("alice@example.com", "654321")))
	require.Len(t, dialer.sent, 1)

	var raw bytes.Buffer
	_, err = dialer.sent[0].WriteTo(&raw)
	require.NoError(t, err)

	env, err := enmime.ReadEnvelope(&raw)
	require.NoError(t, err)
	assert.Equal(t, "Password Reset OTP - WanderLust", env.GetHeader("Subject"))
	assert.Contains(t, env.GetHeader("From"), "WanderLust Support")
	assert.Contains(t, env.GetHeader("From"), "support@wanderlust.test")
	assert.Contains(t, env.GetHeader("To"), "alice@example.com")
	assert.Contains(t, env.Text, "654321")
	assert.Contains(t, env.HTML, "<strong>654321</strong>")
}

func TestSMTPSender_SendFailure(t *testing.T) {
	sender, err := NewSMTPSender(emailCfg)
	require.NoError(t, err)
	sender.client = &fakeDialer{err: errors.New("535 authentication failed")}

	err = sender.Send(context.Background(), NewPasswordResetEmail("alice@example.com", "654321"))
	assert.ErrorContains(t, err, "535")
}

func TestSMTPSender_InvalidRecipient(t *testing.T) {
	sender, err := NewSMTPSender(emailCfg)
	require.NoError(t, err)
	dialer := &fakeDialer{}
	sender.client = dialer

	err = sender.Send(context.Background(), NewPasswordResetEmail("not an address", "654321"))
	assert.ErrorContains(t, err, "invalid recipient")
	assert.Empty(t, dialer.sent)
}

func TestNewSMTPSender_RequiresCredentials(t *testing.T) {
	_, err := NewSMTPSender(config.EmailConfig{SMTPHost: "smtp.gmail.com"})
	assert.Error(t, err)
}

func TestSendGridSender_Send(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sg-key", r.Header.Get("Authorization"))

		var payload sgMailPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "alice@example.com", payload.Personalizations[0].To[0].Email)
		assert.Equal(t, "support@wanderlust.test", payload.From.Email)
		require.Len(t, payload.Content, 2)
		assert.Equal(t, "text/plain", payload.Content[0].Type)

		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	sender, err := NewSendGridSenderWithOptions(emailCfg, server.URL, server.Client())
	require.NoError(t, err)

	require.NoError(t, sender.Send(context.Background(), NewPasswordResetEmail("alice@example.com", "111111")))
}

func TestSendGridSender_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	sender, err := NewSendGridSenderWithOptions(emailCfg, server.URL, server.Client())
	require.NoError(t, err)

	err = sender.Send(context.Background(), NewPasswordResetEmail("alice@example.com", "111111"))
	assert.ErrorContains(t, err, "status 401")
}

func TestNewEmailSender(t *testing.T) {
	assert.IsType(t, &SMTPSender{}, NewEmailSender(emailCfg))

	sg := emailCfg
	sg.Provider = "sendgrid"
	assert.IsType(t, &SendGridSender{}, NewEmailSender(sg))

	assert.IsType(t, &LogSender{}, NewEmailSender(config.EmailConfig{Provider: "smtp"}))
	assert.IsType(t, &LogSender{}, NewEmailSender(config.EmailConfig{Provider: "log"}))
}
