package mocks

import (
	"context"

	"github.com/igor-IT/wi-auth-ms/domain"
)

// MockCodeRepository implements domain.CodeRepository for testing.
type MockCodeRepository struct {
	CreateFunc             func(ctx context.Context, code *domain.VerificationCode) error
	UpdateFunc             func(ctx context.Context, code *domain.VerificationCode) error
	FindLatestByClientFunc func(ctx context.Context, client string) (*domain.VerificationCode, error)
}

// NewMockCodeRepository creates a new MockCodeRepository with default behaviors.
func NewMockCodeRepository() *MockCodeRepository {
	return &MockCodeRepository{}
}

func (m *MockCodeRepository) Create(ctx context.Context, code *domain.VerificationCode) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, code)
	}
	return nil
}

func (m *MockCodeRepository) Update(ctx context.Context, code *domain.VerificationCode) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, code)
	}
	return nil
}

func (m *MockCodeRepository) FindLatestByClient(ctx context.Context, client string) (*domain.VerificationCode, error) {
	if m.FindLatestByClientFunc != nil {
		return m.FindLatestByClientFunc(ctx, client)
	}
	return nil, domain.ErrCodeNotFound
}

// Compile-time interface compliance verification
var _ domain.CodeRepository = (*MockCodeRepository)(nil)
