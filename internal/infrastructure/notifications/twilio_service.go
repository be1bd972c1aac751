package notifications

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/you/learnsphere/domain"
)

// TwilioService implements domain.NotificationService by texting codes to a
// configured operator number. Accounts are keyed by email only, so the SMS
// channel is an operator-facing stand-in, not per-user delivery.
type TwilioService struct {
	client     *twilio.RestClient
	fromNumber string
	operatorTo string
	logger     zerolog.Logger
}

// NewTwilioService creates a Twilio notification service.
func NewTwilioService(accountSID, authToken, fromNumber, operatorTo string, logger zerolog.Logger) domain.NotificationService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioService{
		client:     client,
		fromNumber: fromNumber,
		operatorTo: operatorTo,
		logger:     logger,
	}
}

// DeliverOTP implements domain.NotificationService.
func (t *TwilioService) DeliverOTP(email, code string, purpose domain.OTPPurpose) error {
	return t.sendSMS(fmt.Sprintf("LearnSphere OTP for %s (%s): %s", email, purpose, code))
}

// SendEmail implements domain.NotificationService. Twilio carries no email
// path here; fall back to the log so the caller keeps working.
func (t *TwilioService) SendEmail(to, subject, body string) error {
	t.logger.Info().
		Str("to", to).
		Str("subject", subject).
		Msg("email not supported on twilio channel, logged instead")
	return nil
}

func (t *TwilioService) sendSMS(message string) error {
	// Without credentials behave like the console channel.
	if t.fromNumber == "" || t.operatorTo == "" {
		t.logger.Info().Str("message", message).Msg("mock SMS (twilio not configured)")
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(t.operatorTo)
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	return nil
}

var _ domain.NotificationService = (*TwilioService)(nil)
