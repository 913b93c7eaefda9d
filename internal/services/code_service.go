package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/igor-IT/wi-auth-ms/domain"
)

// codeDigits is the width of a generated verification code.
const codeDigits = 4

// CodeServiceImpl implements domain.CodeService. It owns every
// VerificationCode mutation; callers only observe the outcome.
type CodeServiceImpl struct {
	codes     domain.CodeRepository
	users     domain.UserRepository
	publisher domain.EventPublisher
	logger    *zap.Logger
}

// NewCodeService creates a new verification code service.
func NewCodeService(codes domain.CodeRepository, users domain.UserRepository, publisher domain.EventPublisher, logger *zap.Logger) domain.CodeService {
	return &CodeServiceImpl{
		codes:     codes,
		users:     users,
		publisher: publisher,
		logger:    logger,
	}
}

// Request implements domain.CodeService. The registration path rejects
// identifiers that already belong to an account; the reset path
// requires one.
func (s *CodeServiceImpl) Request(ctx context.Context, ch domain.Channel, purpose domain.CodePurpose, locale string) (string, error) {
	exists, err := s.users.ExistsByIdentifier(ctx, ch.Identifier)
	if err != nil {
		return "", fmt.Errorf("failed to check identifier: %w", err)
	}

	switch purpose {
	case domain.PurposeRegistration:
		if exists {
			return "", domain.ErrUserAlreadyExists
		}
	case domain.PurposePasswordReset:
		if !exists {
			return "", domain.ErrUserNotFound
		}
	}

	value, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}

	code := &domain.VerificationCode{
		ID:        uuid.NewString(),
		Code:      value,
		Status:    domain.CodeCreated,
		Channel:   ch.Kind,
		Client:    ch.Identifier,
		Purpose:   purpose,
		CreatedAt: time.Now(),
	}
	if err := s.codes.Create(ctx, code); err != nil {
		return "", fmt.Errorf("failed to persist code: %w", err)
	}

	// Fire and forget: the code is persisted and re-deliverable by a
	// resend request, so a failed publish never fails the request.
	event := domain.CodeDeliveryEvent{
		Code:        code.Code,
		Channel:     ch.Kind,
		Destination: ch.Identifier,
		Locale:      locale,
	}
	if err := s.publisher.Publish(ctx, domain.CodeDeliveryTopic, event); err != nil {
		s.logger.Warn("code delivery publish failed",
			zap.String("client", ch.Identifier),
			zap.Error(err))
	}

	s.logger.Info("verification code created",
		zap.String("code_id", code.ID),
		zap.String("purpose", string(purpose)))
	return code.ID, nil
}

// Validate implements domain.CodeService. Only the most recent code for
// the identifier is ever compared; an older code matching the submitted
// value still fails.
func (s *CodeServiceImpl) Validate(ctx context.Context, identifier, submitted string, purpose domain.CodePurpose) error {
	code, err := s.codes.FindLatestByClient(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrCodeNotFound) {
			return domain.ErrCodeNotFound
		}
		return fmt.Errorf("failed to load latest code: %w", err)
	}

	if code.Code != submitted {
		s.logger.Warn("code mismatch", zap.String("client", identifier))
		return domain.ErrCodeInvalid
	}

	code.Status = domain.CodeValidated
	code.Purpose = purpose
	if err := s.codes.Update(ctx, code); err != nil {
		return fmt.Errorf("failed to mark code validated: %w", err)
	}

	s.logger.Info("verification code validated", zap.String("code_id", code.ID))
	return nil
}

// Consume implements domain.CodeService. The transition to USED happens
// before the dependent mutation commits, so a code can never admit two
// registrations.
func (s *CodeServiceImpl) Consume(ctx context.Context, identifier string) error {
	code, err := s.codes.FindLatestByClient(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrCodeNotFound) {
			return domain.ErrCodeNotFound
		}
		return fmt.Errorf("failed to load latest code: %w", err)
	}

	if code.Status != domain.CodeValidated {
		s.logger.Warn("consume rejected, code not validated",
			zap.String("code_id", code.ID),
			zap.String("status", string(code.Status)))
		return domain.ErrCodeInvalid
	}

	code.Status = domain.CodeUsed
	if err := s.codes.Update(ctx, code); err != nil {
		return fmt.Errorf("failed to mark code used: %w", err)
	}
	return nil
}

// generateCode produces a fixed-width zero-padded numeric code. The
// space is small, so a CSPRNG keeps it unpredictable; single use plus
// request throttling covers the rest.
func generateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n), nil
}
