package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/igor-IT/wi-auth-ms/domain"
)

// CodeRepositoryImpl implements domain.CodeRepository using GORM.
type CodeRepositoryImpl struct {
	db *gorm.DB
}

// DBCode is the database model for VerificationCode.
type DBCode struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Code      string    `gorm:"size:8"`
	Status    string    `gorm:"index;size:16"`
	Channel   string    `gorm:"size:8"`
	Client    string    `gorm:"index;size:255"`
	Purpose   string    `gorm:"size:32"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName returns the table name for GORM.
func (DBCode) TableName() string {
	return "verification_codes"
}

// NewCodeRepository creates a new verification code repository.
func NewCodeRepository(db *gorm.DB) domain.CodeRepository {
	return &CodeRepositoryImpl{db: db}
}

// Create implements domain.CodeRepository.
func (r *CodeRepositoryImpl) Create(ctx context.Context, code *domain.VerificationCode) error {
	return r.db.WithContext(ctx).Create(r.domainToDB(code)).Error
}

// Update implements domain.CodeRepository.
func (r *CodeRepositoryImpl) Update(ctx context.Context, code *domain.VerificationCode) error {
	return r.db.WithContext(ctx).Save(r.domainToDB(code)).Error
}

// FindLatestByClient implements domain.CodeRepository. Ordering by
// creation time descending makes only the most recent code reachable;
// superseded codes are never explicitly revoked.
func (r *CodeRepositoryImpl) FindLatestByClient(ctx context.Context, client string) (*domain.VerificationCode, error) {
	var dbCode DBCode
	err := r.db.WithContext(ctx).
		Where("client = ?", client).
		Order("created_at DESC").
		First(&dbCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCodeNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbCode), nil
}

func (r *CodeRepositoryImpl) domainToDB(code *domain.VerificationCode) *DBCode {
	return &DBCode{
		ID:        code.ID,
		Code:      code.Code,
		Status:    string(code.Status),
		Channel:   string(code.Channel),
		Client:    code.Client,
		Purpose:   string(code.Purpose),
		CreatedAt: code.CreatedAt,
	}
}

func (r *CodeRepositoryImpl) dbToDomain(dbCode *DBCode) *domain.VerificationCode {
	return &domain.VerificationCode{
		ID:        dbCode.ID,
		Code:      dbCode.Code,
		Status:    domain.CodeStatus(dbCode.Status),
		Channel:   domain.ChannelKind(dbCode.Channel),
		Client:    dbCode.Client,
		Purpose:   domain.CodePurpose(dbCode.Purpose),
		CreatedAt: dbCode.CreatedAt,
	}
}
