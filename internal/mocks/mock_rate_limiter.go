package mocks

import "github.com/igor-IT/wi-auth-ms/domain"

// MockRateLimiter implements domain.RateLimiter for testing.
type MockRateLimiter struct {
	TryConsumeFunc func(identifier string) bool
}

// NewMockRateLimiter creates a new MockRateLimiter that admits
// everything by default.
func NewMockRateLimiter() *MockRateLimiter {
	return &MockRateLimiter{}
}

func (m *MockRateLimiter) TryConsume(identifier string) bool {
	if m.TryConsumeFunc != nil {
		return m.TryConsumeFunc(identifier)
	}
	return true
}

// Compile-time interface compliance verification
var _ domain.RateLimiter = (*MockRateLimiter)(nil)
