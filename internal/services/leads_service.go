package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/you/learnsphere/domain"
	"github.com/you/learnsphere/internal/validation"
)

// ApplicationSubmission is a course application from the apply form.
type ApplicationSubmission struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Course   string `json:"course"`
	Duration string `json:"duration"`
	Message  string `json:"message"`
}

// ContactSubmission is a message from the contact form.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// LeadsService forwards form submissions to the institute inbox. Delivery
// failures are never retried automatically; the caller resubmits manually.
type LeadsService struct {
	notifier  domain.NotificationService
	logger    zerolog.Logger
	recipient string
	now       func() time.Time
}

// NewLeadsService creates the leads service. recipient is the institute
// inbox that receives every submission.
func NewLeadsService(notifier domain.NotificationService, logger zerolog.Logger, recipient string) *LeadsService {
	return &LeadsService{
		notifier:  notifier,
		logger:    logger,
		recipient: recipient,
		now:       time.Now,
	}
}

// SubmitApplication validates and mails a course application. Validation
// problems wrap domain.ErrValidation; anything else is a delivery failure.
func (s *LeadsService) SubmitApplication(sub ApplicationSubmission) error {
	if sub.FullName == "" || sub.Email == "" || sub.Phone == "" || sub.Course == "" || sub.Duration == "" {
		return domain.NewValidationError("Missing required fields")
	}
	if !validation.ValidEmail(sub.Email) {
		return domain.NewValidationError("Invalid email format")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "New course application\r\n\r\n")
	fmt.Fprintf(&b, "Name: %s\r\n", sub.FullName)
	fmt.Fprintf(&b, "Email: %s\r\n", sub.Email)
	fmt.Fprintf(&b, "Phone: %s\r\n", sub.Phone)
	fmt.Fprintf(&b, "Course: %s\r\n", sub.Course)
	fmt.Fprintf(&b, "Duration: %s\r\n", sub.Duration)
	if sub.Message != "" {
		fmt.Fprintf(&b, "Message: %s\r\n", sub.Message)
	}
	fmt.Fprintf(&b, "\r\nSubmitted: %s\r\n", s.now().Format(time.RFC1123))

	subject := fmt.Sprintf("New Course Application - %s", sub.Course)
	if err := s.notifier.SendEmail(s.recipient, subject, b.String()); err != nil {
		s.logger.Error().Err(err).Str("email", sub.Email).Msg("application mail failed")
		return err
	}
	return nil
}

// SubmitContact validates and mails a contact-form message.
func (s *LeadsService) SubmitContact(sub ContactSubmission) error {
	if sub.Name == "" || sub.Email == "" || sub.Phone == "" || sub.Message == "" {
		return domain.NewValidationError("All fields are required")
	}
	if !validation.ValidEmail(sub.Email) {
		return domain.NewValidationError("Invalid email format")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "New contact message\r\n\r\n")
	fmt.Fprintf(&b, "Name: %s\r\n", sub.Name)
	fmt.Fprintf(&b, "Email: %s\r\n", sub.Email)
	fmt.Fprintf(&b, "Phone: %s\r\n", sub.Phone)
	fmt.Fprintf(&b, "\r\n%s\r\n", sub.Message)
	fmt.Fprintf(&b, "\r\nReceived: %s\r\n", s.now().Format(time.RFC1123))

	subject := fmt.Sprintf("Contact Form Message from %s", sub.Name)
	if err := s.notifier.SendEmail(s.recipient, subject, b.String()); err != nil {
		s.logger.Error().Err(err).Str("email", sub.Email).Msg("contact mail failed")
		return err
	}
	return nil
}
