package notifications

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/wanderlust/internal/domain/providers"
	"github.com/zatekoja/wanderlust/pkg/config"
)

// NewEmailSender selects an email sender from configuration. A sender that
// cannot be configured falls back to logging.
func NewEmailSender(cfg config.EmailConfig) providers.EmailSender {
	var (
		sender providers.EmailSender
		err    error
	)

	switch strings.ToLower(cfg.Provider) {
	case "sendgrid":
		sender, err = NewSendGridSender(cfg)
	case "log":
		return NewLogSender()
	default:
		sender, err = NewSMTPSender(cfg)
	}

	if err != nil {
		log.Warn().Err(err).Str("provider", cfg.Provider).Msg("Email sender not configured, logging messages instead")
		return NewLogSender()
	}
	return sender
}
