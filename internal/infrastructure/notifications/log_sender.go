package notifications

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/wanderlust/internal/domain/providers"
)

// LogSender writes outbound email to the log instead of delivering it
type LogSender struct{}

// NewLogSender creates a new log sender
func NewLogSender() *LogSender {
	return &LogSender{}
}

var _ providers.EmailSender = (*LogSender)(nil)

// Send logs the message
func (s *LogSender) Send(ctx context.Context, msg providers.EmailMessage) error {
	log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.TextBody).
		Msg("Email delivery disabled, message logged")
	return nil
}
