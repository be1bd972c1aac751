package notifications

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/you/learnsphere/domain"
)

// SMTPService implements domain.NotificationService over an SMTP relay.
type SMTPService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPService creates an SMTP-backed notification service.
func NewSMTPService(host string, port int, username, password, from string) domain.NotificationService {
	return &SMTPService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// DeliverOTP implements domain.NotificationService.
func (s *SMTPService) DeliverOTP(email, code string, purpose domain.OTPPurpose) error {
	subject := "Your LearnSphere verification code"
	body := fmt.Sprintf("Your %s verification code is: %s\r\n\r\nIt expires in 5 minutes.", purpose, code)
	return s.SendEmail(email, subject, body)
}

// SendEmail implements domain.NotificationService.
func (s *SMTPService) SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

var _ domain.NotificationService = (*SMTPService)(nil)
