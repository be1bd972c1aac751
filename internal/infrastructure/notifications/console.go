package notifications

import (
	"github.com/rs/zerolog"

	"github.com/you/learnsphere/domain"
)

// ConsoleService implements domain.NotificationService by writing to the
// operator log. This is the reference delivery channel of the prototype:
// the code is surfaced on the console instead of being sent anywhere.
type ConsoleService struct {
	logger zerolog.Logger
}

// NewConsoleService creates a log-backed notification service.
func NewConsoleService(logger zerolog.Logger) domain.NotificationService {
	return &ConsoleService{logger: logger}
}

// DeliverOTP implements domain.NotificationService.
func (c *ConsoleService) DeliverOTP(email, code string, purpose domain.OTPPurpose) error {
	c.logger.Info().
		Str("email", email).
		Str("purpose", string(purpose)).
		Str("code", code).
		Msg("OTP issued (console delivery, demo only)")
	return nil
}

// SendEmail implements domain.NotificationService.
func (c *ConsoleService) SendEmail(to, subject, body string) error {
	c.logger.Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("email (console delivery, demo only)")
	return nil
}

var _ domain.NotificationService = (*ConsoleService)(nil)
