package mocks

import (
	"context"

	"github.com/igor-IT/wi-auth-ms/domain"
)

// MockTokenService implements domain.TokenService for testing.
type MockTokenService struct {
	IssueFunc     func(ctx context.Context, user *domain.User) (*domain.AuthResult, error)
	RotateFunc    func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	RevokeAllFunc func(ctx context.Context, user *domain.User) error
	IsValidFunc   func(ctx context.Context, token string, user *domain.User) bool
}

// NewMockTokenService creates a new MockTokenService with default behaviors.
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) Issue(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, user)
	}
	return &domain.AuthResult{
		User:         user,
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
	}, nil
}

func (m *MockTokenService) Rotate(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RotateFunc != nil {
		return m.RotateFunc(ctx, refreshToken)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockTokenService) RevokeAll(ctx context.Context, user *domain.User) error {
	if m.RevokeAllFunc != nil {
		return m.RevokeAllFunc(ctx, user)
	}
	return nil
}

func (m *MockTokenService) IsValid(ctx context.Context, token string, user *domain.User) bool {
	if m.IsValidFunc != nil {
		return m.IsValidFunc(ctx, token, user)
	}
	return true
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
