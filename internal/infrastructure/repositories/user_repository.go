package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/igor-IT/wi-auth-ms/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM.
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser is the database model for User. Phone and Email are nullable;
// exactly one is set per account.
type DBUser struct {
	ID            uint   `gorm:"primaryKey"`
	FirstName     string `gorm:"size:128"`
	LastName      string `gorm:"size:128"`
	Phone         *string `gorm:"uniqueIndex;size:32"`
	Email         *string `gorm:"uniqueIndex;size:255"`
	PasswordHash  string  `gorm:"column:password"`
	Role          string  `gorm:"index;size:64"`
	AccountType   string  `gorm:"size:64"`
	Locale        string  `gorm:"size:16"`
	Enabled       bool    `gorm:"index"`
	PhoneVerified bool
	EmailVerified bool
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time
}

// TableName returns the table name for GORM.
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	return nil
}

// FindByIdentifier implements domain.UserRepository. The identifier is
// the phone number or email string the account was registered with.
func (r *UserRepositoryImpl) FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).
		Where("phone = ? OR email = ?", identifier, identifier).
		First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// ExistsByIdentifier implements domain.UserRepository.
func (r *UserRepositoryImpl) ExistsByIdentifier(ctx context.Context, identifier string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBUser{}).
		Where("phone = ? OR email = ?", identifier, identifier).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByID implements domain.UserRepository.
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// Update implements domain.UserRepository.
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	return r.db.WithContext(ctx).Save(dbUser).Error
}

func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	dbUser := &DBUser{
		ID:            user.ID,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		PasswordHash:  user.PasswordHash,
		Role:          user.Role,
		AccountType:   user.AccountType,
		Locale:        user.Locale,
		Enabled:       user.Enabled,
		PhoneVerified: user.PhoneVerified,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
	if user.Phone != "" {
		phone := user.Phone
		dbUser.Phone = &phone
	}
	if user.Email != "" {
		email := user.Email
		dbUser.Email = &email
	}
	return dbUser
}

func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	user := &domain.User{
		ID:            dbUser.ID,
		FirstName:     dbUser.FirstName,
		LastName:      dbUser.LastName,
		PasswordHash:  dbUser.PasswordHash,
		Role:          dbUser.Role,
		AccountType:   dbUser.AccountType,
		Locale:        dbUser.Locale,
		Enabled:       dbUser.Enabled,
		PhoneVerified: dbUser.PhoneVerified,
		EmailVerified: dbUser.EmailVerified,
		CreatedAt:     dbUser.CreatedAt,
		UpdatedAt:     dbUser.UpdatedAt,
	}
	if dbUser.Phone != nil {
		user.Phone = *dbUser.Phone
	}
	if dbUser.Email != nil {
		user.Email = *dbUser.Email
	}
	return user
}
