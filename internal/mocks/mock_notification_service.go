package mocks

import "github.com/you/learnsphere/domain"

// MockNotificationService implements domain.NotificationService for tests.
// It records every delivery so tests can read issued codes back.
type MockNotificationService struct {
	DeliverOTPFunc func(email, code string, purpose domain.OTPPurpose) error
	SendEmailFunc  func(to, subject, body string) error

	Codes  []string
	Emails []string
}

// NewMockNotificationService creates a mock with default success behavior.
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// DeliverOTP records the code and defers to DeliverOTPFunc when set.
func (m *MockNotificationService) DeliverOTP(email, code string, purpose domain.OTPPurpose) error {
	m.Codes = append(m.Codes, code)
	if m.DeliverOTPFunc != nil {
		return m.DeliverOTPFunc(email, code, purpose)
	}
	return nil
}

// SendEmail records the recipient and defers to SendEmailFunc when set.
func (m *MockNotificationService) SendEmail(to, subject, body string) error {
	m.Emails = append(m.Emails, to)
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(to, subject, body)
	}
	return nil
}

// LastCode returns the most recently delivered code, or "".
func (m *MockNotificationService) LastCode() string {
	if len(m.Codes) == 0 {
		return ""
	}
	return m.Codes[len(m.Codes)-1]
}

var _ domain.NotificationService = (*MockNotificationService)(nil)
