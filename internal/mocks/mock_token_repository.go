package mocks

import (
	"context"
	"sync"

	"github.com/igor-IT/wi-auth-ms/domain"
)

// MockTokenRepository implements domain.TokenRepository for testing.
// Without overrides it behaves as an in-memory store, which lets token
// rotation chains run against it directly.
type MockTokenRepository struct {
	SaveFunc          func(ctx context.Context, token *domain.RefreshToken) error
	FindAllByUserFunc func(ctx context.Context, userID uint) ([]*domain.RefreshToken, error)
	DeleteAllFunc     func(ctx context.Context, tokens []*domain.RefreshToken) error

	mu     sync.Mutex
	byUser map[uint]map[string]*domain.RefreshToken
}

// NewMockTokenRepository creates a new MockTokenRepository backed by an
// in-memory map.
func NewMockTokenRepository() *MockTokenRepository {
	return &MockTokenRepository{
		byUser: make(map[uint]map[string]*domain.RefreshToken),
	}
}

func (m *MockTokenRepository) Save(ctx context.Context, token *domain.RefreshToken) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.byUser[token.UserID] == nil {
		m.byUser[token.UserID] = make(map[string]*domain.RefreshToken)
	}
	m.byUser[token.UserID][token.ID] = token
	return nil
}

func (m *MockTokenRepository) FindAllByUser(ctx context.Context, userID uint) ([]*domain.RefreshToken, error) {
	if m.FindAllByUserFunc != nil {
		return m.FindAllByUserFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tokens := make([]*domain.RefreshToken, 0, len(m.byUser[userID]))
	for _, t := range m.byUser[userID] {
		tokens = append(tokens, t)
	}
	return tokens, nil
}

func (m *MockTokenRepository) DeleteAll(ctx context.Context, tokens []*domain.RefreshToken) error {
	if m.DeleteAllFunc != nil {
		return m.DeleteAllFunc(ctx, tokens)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range tokens {
		delete(m.byUser[t.UserID], t.ID)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.TokenRepository = (*MockTokenRepository)(nil)
