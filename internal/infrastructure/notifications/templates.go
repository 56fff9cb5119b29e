package notifications

import (
	"fmt"
	"html"

	"github.com/zatekoja/wanderlust/internal/domain/providers"
)

// PasswordResetSubject is the subject line of the OTP email
const PasswordResetSubject = "Password Reset OTP - WanderLust"

// NewPasswordResetEmail builds the email carrying a password reset code
func NewPasswordResetEmail(to, code string) providers.EmailMessage {
	escaped := html.EscapeString(code)
	return providers.EmailMessage{
		To:      to,
		Subject: PasswordResetSubject,
		HTMLBody: fmt.Sprintf(
			`<p>Your OTP for password reset is: <strong>%s</strong></p><p>This OTP will expire in 5 minutes.</p>`,
			escaped,
		),
		TextBody: fmt.Sprintf("Your OTP for password reset is: %s\nThis OTP will expire in 5 minutes.", code),
	}
}
