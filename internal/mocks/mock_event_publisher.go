package mocks

import (
	"context"
	"sync"

	"github.com/igor-IT/wi-auth-ms/domain"
)

// PublishedEvent records one Publish call.
type PublishedEvent struct {
	Topic   string
	Payload interface{}
}

// MockEventPublisher implements domain.EventPublisher for testing.
type MockEventPublisher struct {
	PublishFunc func(ctx context.Context, topic string, payload interface{}) error

	mu     sync.Mutex
	events []PublishedEvent
}

// NewMockEventPublisher creates a new MockEventPublisher with default behaviors.
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	m.mu.Lock()
	m.events = append(m.events, PublishedEvent{Topic: topic, Payload: payload})
	m.mu.Unlock()
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, payload)
	}
	return nil
}

// Events returns all recorded Publish calls.
func (m *MockEventPublisher) Events() []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PublishedEvent(nil), m.events...)
}

// Compile-time interface compliance verification
var _ domain.EventPublisher = (*MockEventPublisher)(nil)
