package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/igor-IT/wi-auth-ms/domain"
)

// RedisPublisher implements domain.EventPublisher over Redis pub/sub.
// Delivery is at most once: subscribers that are down miss the event.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a new publisher.
func NewRedisPublisher(client *redis.Client) domain.EventPublisher {
	return &RedisPublisher{client: client}
}

// Publish implements domain.EventPublisher.
func (p *RedisPublisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}
	return p.client.Publish(ctx, topic, data).Err()
}
