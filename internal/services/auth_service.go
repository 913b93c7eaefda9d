package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/igor-IT/wi-auth-ms/domain"
)

// DefaultRole is assigned to every self-registered account.
const DefaultRole = "user"

// AuthServiceImpl implements domain.AuthService, composing the rate
// limiter, code engine and token service into the auth flows.
type AuthServiceImpl struct {
	users     domain.UserRepository
	codes     domain.CodeService
	tokens    domain.TokenService
	passwords domain.PasswordService
	limiter   domain.RateLimiter
	logger    *zap.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	users domain.UserRepository,
	codes domain.CodeService,
	tokens domain.TokenService,
	passwords domain.PasswordService,
	limiter domain.RateLimiter,
	logger *zap.Logger,
) domain.AuthService {
	return &AuthServiceImpl{
		users:     users,
		codes:     codes,
		tokens:    tokens,
		passwords: passwords,
		limiter:   limiter,
		logger:    logger,
	}
}

// RequestCode implements domain.AuthService. The limiter gates the
// expensive part: code generation and out-of-band delivery.
func (s *AuthServiceImpl) RequestCode(ctx context.Context, ch domain.Channel, purpose domain.CodePurpose, locale string) error {
	if !s.limiter.TryConsume(ch.Identifier) {
		s.logger.Warn("code request throttled", zap.String("client", ch.Identifier))
		return domain.ErrRateLimited
	}
	_, err := s.codes.Request(ctx, ch, purpose, locale)
	return err
}

// ValidateCode implements domain.AuthService.
func (s *AuthServiceImpl) ValidateCode(ctx context.Context, identifier, code string, purpose domain.CodePurpose) error {
	return s.codes.Validate(ctx, identifier, code, purpose)
}

// Register implements domain.AuthService. The code is consumed before
// the user row exists, so a bypassed verification can never produce an
// account.
func (s *AuthServiceImpl) Register(ctx context.Context, in domain.RegisterInput) (*domain.AuthResult, error) {
	if err := s.codes.Consume(ctx, in.Channel.Identifier); err != nil {
		return nil, err
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
		Role:         DefaultRole,
		AccountType:  in.AccountType,
		Locale:       in.Locale,
		Enabled:      true,
		CreatedAt:    time.Now(),
	}
	switch in.Channel.Kind {
	case domain.ChannelPhone:
		user.Phone = in.Channel.Identifier
		user.PhoneVerified = true
	case domain.ChannelEmail:
		user.Email = in.Channel.Identifier
		user.EmailVerified = true
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	result, err := s.tokens.Issue(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.Uint("user_id", user.ID),
		zap.String("channel", string(in.Channel.Kind)))
	return result, nil
}

// Login implements domain.AuthService. Credential check, token
// issuance, prior-session revocation, new-session persistence, in that
// order (the latter three inside Issue).
func (s *AuthServiceImpl) Login(ctx context.Context, identifier, password string) (*domain.AuthResult, error) {
	user, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.Enabled {
		return nil, domain.ErrUserDisabled
	}

	if !s.passwords.Verify(user.PasswordHash, password) {
		s.logger.Warn("password mismatch", zap.Uint("user_id", user.ID))
		return nil, domain.ErrInvalidCredentials
	}

	result, err := s.tokens.Issue(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user authenticated", zap.Uint("user_id", user.ID))
	return result, nil
}

// Refresh implements domain.AuthService.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	return s.tokens.Rotate(ctx, refreshToken)
}

// ResetPassword implements domain.AuthService. Requires a VALIDATED
// code for the channel; consuming it and revoking prior sessions both
// happen before the fresh pair is returned.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, in domain.ResetPasswordInput) (*domain.AuthResult, error) {
	if err := s.codes.Consume(ctx, in.Channel.Identifier); err != nil {
		return nil, err
	}

	user, err := s.users.FindByIdentifier(ctx, in.Channel.Identifier)
	if err != nil {
		return nil, err
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}

	result, err := s.tokens.Issue(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("password reset", zap.Uint("user_id", user.ID))
	return result, nil
}
