package mocks

import (
	"sync"

	"github.com/igor-IT/wi-auth-ms/domain"
)

// SentMessage records one SendSMS or SendEmail call.
type SentMessage struct {
	To      string
	Subject string
	Body    string
}

// MockNotificationService implements domain.NotificationService for testing.
type MockNotificationService struct {
	SendSMSFunc   func(to, message string) error
	SendEmailFunc func(to, subject, body string) error

	mu     sync.Mutex
	SMS    []SentMessage
	Emails []SentMessage
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors.
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

func (m *MockNotificationService) SendSMS(to, message string) error {
	m.mu.Lock()
	m.SMS = append(m.SMS, SentMessage{To: to, Body: message})
	m.mu.Unlock()
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	return nil
}

func (m *MockNotificationService) SendEmail(to, subject, body string) error {
	m.mu.Lock()
	m.Emails = append(m.Emails, SentMessage{To: to, Subject: subject, Body: body})
	m.mu.Unlock()
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(to, subject, body)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
