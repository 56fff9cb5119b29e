package providers

import "context"

// EmailMessage is an outbound email
type EmailMessage struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// EmailSender defines the interface for outbound email delivery
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}
