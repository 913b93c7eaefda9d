package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/igor-IT/wi-auth-ms/domain"
)

// TokenRepositoryImpl implements domain.TokenRepository using Redis.
// All refresh tokens of one user live in a single hash keyed by user
// id, so revoke-all is one round trip.
type TokenRepositoryImpl struct {
	client *redis.Client
	prefix string
}

// NewTokenRepository creates a new refresh token repository.
func NewTokenRepository(client *redis.Client) domain.TokenRepository {
	return &TokenRepositoryImpl{
		client: client,
		prefix: "refresh:",
	}
}

func (r *TokenRepositoryImpl) key(userID uint) string {
	return fmt.Sprintf("%s%d", r.prefix, userID)
}

// Save implements domain.TokenRepository.
func (r *TokenRepositoryImpl) Save(ctx context.Context, token *domain.RefreshToken) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal refresh token: %w", err)
	}

	key := r.key(token.UserID)
	if err := r.client.HSet(ctx, key, token.ID, data).Err(); err != nil {
		return err
	}
	// Let the whole hash fall out of Redis once the newest token is
	// past its expiry.
	return r.client.ExpireAt(ctx, key, token.ExpiresAt).Err()
}

// FindAllByUser implements domain.TokenRepository. Entries past their
// expiry are dropped from the result and removed opportunistically.
func (r *TokenRepositoryImpl) FindAllByUser(ctx context.Context, userID uint) ([]*domain.RefreshToken, error) {
	entries, err := r.client.HGetAll(ctx, r.key(userID)).Result()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	tokens := make([]*domain.RefreshToken, 0, len(entries))
	for field, data := range entries {
		var token domain.RefreshToken
		if err := json.Unmarshal([]byte(data), &token); err != nil {
			return nil, fmt.Errorf("failed to unmarshal refresh token: %w", err)
		}
		if !now.Before(token.ExpiresAt) {
			r.client.HDel(ctx, r.key(userID), field)
			continue
		}
		tokens = append(tokens, &token)
	}
	return tokens, nil
}

// DeleteAll implements domain.TokenRepository. Idempotent: deleting
// already-absent tokens is a no-op.
func (r *TokenRepositoryImpl) DeleteAll(ctx context.Context, tokens []*domain.RefreshToken) error {
	fields := make(map[uint][]string)
	for _, token := range tokens {
		fields[token.UserID] = append(fields[token.UserID], token.ID)
	}
	for userID, ids := range fields {
		if err := r.client.HDel(ctx, r.key(userID), ids...).Err(); err != nil {
			return err
		}
	}
	return nil
}
