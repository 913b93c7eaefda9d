package mocks

import (
	"context"

	"github.com/igor-IT/wi-auth-ms/domain"
)

// MockUserRepository implements domain.UserRepository for testing.
type MockUserRepository struct {
	CreateFunc             func(ctx context.Context, user *domain.User) error
	FindByIdentifierFunc   func(ctx context.Context, identifier string) (*domain.User, error)
	ExistsByIdentifierFunc func(ctx context.Context, identifier string) (bool, error)
	FindByIDFunc           func(ctx context.Context, id uint) (*domain.User, error)
	UpdateFunc             func(ctx context.Context, user *domain.User) error
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	if m.FindByIdentifierFunc != nil {
		return m.FindByIdentifierFunc(ctx, identifier)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) ExistsByIdentifier(ctx context.Context, identifier string) (bool, error) {
	if m.ExistsByIdentifierFunc != nil {
		return m.ExistsByIdentifierFunc(ctx, identifier)
	}
	return false, nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
