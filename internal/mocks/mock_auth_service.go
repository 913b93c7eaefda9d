package mocks

import (
	"context"

	"github.com/igor-IT/wi-auth-ms/domain"
)

// MockAuthService implements domain.AuthService for testing.
type MockAuthService struct {
	RequestCodeFunc   func(ctx context.Context, ch domain.Channel, purpose domain.CodePurpose, locale string) error
	ValidateCodeFunc  func(ctx context.Context, identifier, code string, purpose domain.CodePurpose) error
	RegisterFunc      func(ctx context.Context, in domain.RegisterInput) (*domain.AuthResult, error)
	LoginFunc         func(ctx context.Context, identifier, password string) (*domain.AuthResult, error)
	RefreshFunc       func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	ResetPasswordFunc func(ctx context.Context, in domain.ResetPasswordInput) (*domain.AuthResult, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors.
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) RequestCode(ctx context.Context, ch domain.Channel, purpose domain.CodePurpose, locale string) error {
	if m.RequestCodeFunc != nil {
		return m.RequestCodeFunc(ctx, ch, purpose, locale)
	}
	return nil
}

func (m *MockAuthService) ValidateCode(ctx context.Context, identifier, code string, purpose domain.CodePurpose) error {
	if m.ValidateCodeFunc != nil {
		return m.ValidateCodeFunc(ctx, identifier, code, purpose)
	}
	return nil
}

func (m *MockAuthService) Register(ctx context.Context, in domain.RegisterInput) (*domain.AuthResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, in)
	}
	return &domain.AuthResult{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil
}

func (m *MockAuthService) Login(ctx context.Context, identifier, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, identifier, password)
	}
	return &domain.AuthResult{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return &domain.AuthResult{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil
}

func (m *MockAuthService) ResetPassword(ctx context.Context, in domain.ResetPasswordInput) (*domain.AuthResult, error) {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, in)
	}
	return &domain.AuthResult{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
