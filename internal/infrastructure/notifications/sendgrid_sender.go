package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/zatekoja/wanderlust/internal/domain/providers"
	"github.com/zatekoja/wanderlust/pkg/config"
)

const sendgridMailEndpoint = "https://api.sendgrid.com/v3/mail/send"

// SendGridSender sends email through the SendGrid v3 API
type SendGridSender struct {
	apiKey     string
	fromEmail  string
	fromName   string
	endpoint   string
	httpClient *http.Client
}

// NewSendGridSender creates a new SendGrid sender
func NewSendGridSender(cfg config.EmailConfig) (*SendGridSender, error) {
	return NewSendGridSenderWithOptions(cfg, sendgridMailEndpoint, nil)
}

// NewSendGridSenderWithOptions allows overriding endpoint and HTTP client (used for tests).
func NewSendGridSenderWithOptions(cfg config.EmailConfig, endpoint string, httpClient *http.Client) (*SendGridSender, error) {
	if cfg.SendGridAPIKey == "" || cfg.User == "" {
		return nil, fmt.Errorf("SENDGRID_API_KEY and EMAIL_USER must be set")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &SendGridSender{
		apiKey:     cfg.SendGridAPIKey,
		fromEmail:  cfg.User,
		fromName:   cfg.FromName,
		endpoint:   endpoint,
		httpClient: httpClient,
	}, nil
}

var _ providers.EmailSender = (*SendGridSender)(nil)

// SendGrid v3 Mail Send API payload types.
type sgMailPayload struct {
	Personalizations []sgPersonalization `json:"personalizations"`
	From             sgAddress           `json:"from"`
	Subject          string              `json:"subject"`
	Content          []sgContent         `json:"content"`
}

type sgPersonalization struct {
	To []sgAddress `json:"to"`
}

type sgAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sgContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Send posts the message to SendGrid
func (s *SendGridSender) Send(ctx context.Context, msg providers.EmailMessage) error {
	// text/plain must precede text/html
	content := []sgContent{{Type: "text/plain", Value: msg.TextBody}}
	if msg.HTMLBody != "" {
		content = append(content, sgContent{Type: "text/html", Value: msg.HTMLBody})
	}

	payload := sgMailPayload{
		Personalizations: []sgPersonalization{{
			To: []sgAddress{{Email: msg.To}},
		}},
		From:    sgAddress{Email: s.fromEmail, Name: s.fromName},
		Subject: msg.Subject,
		Content: content,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal SendGrid payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create SendGrid request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("SendGrid request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("SendGrid returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
