package mocks

import (
	"context"

	"github.com/igor-IT/wi-auth-ms/domain"
)

// MockCodeService implements domain.CodeService for testing.
type MockCodeService struct {
	RequestFunc  func(ctx context.Context, ch domain.Channel, purpose domain.CodePurpose, locale string) (string, error)
	ValidateFunc func(ctx context.Context, identifier, submitted string, purpose domain.CodePurpose) error
	ConsumeFunc  func(ctx context.Context, identifier string) error
}

// NewMockCodeService creates a new MockCodeService with default behaviors.
func NewMockCodeService() *MockCodeService {
	return &MockCodeService{}
}

func (m *MockCodeService) Request(ctx context.Context, ch domain.Channel, purpose domain.CodePurpose, locale string) (string, error) {
	if m.RequestFunc != nil {
		return m.RequestFunc(ctx, ch, purpose, locale)
	}
	return "code-id", nil
}

func (m *MockCodeService) Validate(ctx context.Context, identifier, submitted string, purpose domain.CodePurpose) error {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, identifier, submitted, purpose)
	}
	return nil
}

func (m *MockCodeService) Consume(ctx context.Context, identifier string) error {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, identifier)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.CodeService = (*MockCodeService)(nil)
