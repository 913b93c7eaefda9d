package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/igor-IT/wi-auth-ms/domain"
)

// TokenServiceImpl implements domain.TokenService. Access tokens are
// stateless; refresh tokens are persisted so that every successful auth
// event can revoke the previous session chain.
type TokenServiceImpl struct {
	tokens     domain.TokenRepository
	users      domain.UserRepository
	issuer     domain.TokenIssuer
	refreshTTL time.Duration
	logger     *zap.Logger
}

// NewTokenService creates a new token service.
func NewTokenService(tokens domain.TokenRepository, users domain.UserRepository, issuer domain.TokenIssuer, refreshTTL time.Duration, logger *zap.Logger) domain.TokenService {
	return &TokenServiceImpl{
		tokens:     tokens,
		users:      users,
		issuer:     issuer,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

// Issue implements domain.TokenService. Order matters: generate both
// tokens, revoke every prior refresh token, then persist the new one.
// The check-revoke-save sequence is not transactional; two concurrent
// auth events for one user can briefly leave two live refresh tokens.
func (s *TokenServiceImpl) Issue(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	accessToken, err := s.issuer.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.issuer.GenerateRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.RevokeAll(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to revoke prior tokens: %w", err)
	}

	if err := s.persist(ctx, user.ID, refreshToken); err != nil {
		return nil, err
	}

	s.logger.Info("tokens issued", zap.Uint("user_id", user.ID))
	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Rotate implements domain.TokenService. A rotated-out token becomes
// unusable immediately, limiting a leaked refresh token to one use.
func (s *TokenServiceImpl) Rotate(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	claims, err := s.issuer.Parse(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Kind != domain.TokenKindRefresh {
		return nil, domain.ErrTokenInvalid
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	stored, err := s.tokens.FindAllByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load refresh tokens: %w", err)
	}

	found := false
	for _, t := range stored {
		if t.Token == refreshToken {
			found = true
			break
		}
	}
	if !found {
		s.logger.Warn("refresh token not in store", zap.Uint("user_id", user.ID))
		return nil, domain.ErrTokenInvalid
	}

	result, err := s.Issue(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("refresh token rotated", zap.Uint("user_id", user.ID))
	return result, nil
}

// RevokeAll implements domain.TokenService.
func (s *TokenServiceImpl) RevokeAll(ctx context.Context, user *domain.User) error {
	stored, err := s.tokens.FindAllByUser(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(stored) == 0 {
		return nil
	}
	return s.tokens.DeleteAll(ctx, stored)
}

// IsValid implements domain.TokenService.
func (s *TokenServiceImpl) IsValid(ctx context.Context, token string, user *domain.User) bool {
	claims, err := s.issuer.Parse(token)
	if err != nil {
		return false
	}
	if claims.UserID != user.ID {
		return false
	}
	if !time.Now().Before(time.Unix(claims.ExpiresAt, 0)) {
		return false
	}

	// Refresh tokens must still be present in the store; revocation
	// kills them even before their expiry.
	if claims.Kind == domain.TokenKindRefresh {
		stored, err := s.tokens.FindAllByUser(ctx, user.ID)
		if err != nil {
			return false
		}
		for _, t := range stored {
			if t.Token == token {
				return true
			}
		}
		return false
	}

	return true
}

func (s *TokenServiceImpl) persist(ctx context.Context, userID uint, refreshToken string) error {
	record := &domain.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(s.refreshTTL),
		CreatedAt: time.Now(),
	}
	if err := s.tokens.Save(ctx, record); err != nil {
		return fmt.Errorf("failed to persist refresh token: %w", err)
	}
	return nil
}
