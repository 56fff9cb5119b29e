package notifications

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
	"github.com/zatekoja/wanderlust/internal/domain/providers"
	"github.com/zatekoja/wanderlust/pkg/config"
)

const smtpsPort = 465

// mailDialer is satisfied by *mail.Client
type mailDialer interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPSender sends email through an authenticated SMTP relay
type SMTPSender struct {
	user     string
	fromName string
	client   mailDialer
}

// NewSMTPSender creates a new SMTP sender. Port 465 uses implicit TLS,
// any other port must offer STARTTLS.
func NewSMTPSender(cfg config.EmailConfig) (*SMTPSender, error) {
	if cfg.User == "" || cfg.Password == "" {
		return nil, fmt.Errorf("EMAIL_USER and EMAIL_PASS must be set")
	}

	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if cfg.SMTPPort == smtpsPort {
		opts = append(opts, mail.WithSSL())
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client for %s: %w", cfg.SMTPAddr(), err)
	}

	return &SMTPSender{
		user:     cfg.User,
		fromName: cfg.FromName,
		client:   client,
	}, nil
}

var _ providers.EmailSender = (*SMTPSender)(nil)

// Send builds a multipart message and hands it to the relay
func (s *SMTPSender) Send(ctx context.Context, msg providers.EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m, err := s.build(msg)
	if err != nil {
		return err
	}

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (s *SMTPSender) build(msg providers.EmailMessage) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.FromFormat(s.fromName, s.user); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.TextBody)
	if msg.HTMLBody != "" {
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTMLBody)
	}
	return m, nil
}
