package domain

import "context"

// UserRepository defines user data access operations.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByIdentifier(ctx context.Context, identifier string) (*User, error)
	ExistsByIdentifier(ctx context.Context, identifier string) (bool, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
}

// CodeRepository defines verification code data access operations.
// FindLatestByClient returns the most recently created code for the
// identifier; older codes stay in place but become unreachable.
type CodeRepository interface {
	Create(ctx context.Context, code *VerificationCode) error
	Update(ctx context.Context, code *VerificationCode) error
	FindLatestByClient(ctx context.Context, client string) (*VerificationCode, error)
}

// TokenRepository defines persisted refresh token operations.
type TokenRepository interface {
	Save(ctx context.Context, token *RefreshToken) error
	FindAllByUser(ctx context.Context, userID uint) ([]*RefreshToken, error)
	DeleteAll(ctx context.Context, tokens []*RefreshToken) error
}

// EventPublisher publishes events to a message channel, at most once.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload interface{}) error
}

// PasswordService defines password hashing operations.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// NotificationService defines out-of-band message dispatch.
type NotificationService interface {
	SendSMS(to, message string) error
	SendEmail(to, subject, body string) error
}

// TokenIssuer signs and parses JWTs. It knows nothing about
// persistence; revocation lives in TokenService.
type TokenIssuer interface {
	GenerateAccessToken(user *User) (string, error)
	GenerateRefreshToken(user *User) (string, error)
	Parse(token string) (*TokenClaims, error)
}

// TokenService manages the credential pair lifecycle: issuance,
// validation, rotation and revocation.
type TokenService interface {
	// Issue mints a fresh access+refresh pair, revokes every prior
	// refresh token of the user and persists the new one.
	Issue(ctx context.Context, user *User) (*AuthResult, error)
	// Rotate exchanges a presented refresh token for a fresh pair.
	// Fails with ErrTokenInvalid/ErrTokenExpired when the token is
	// malformed, expired or no longer in the persisted store.
	Rotate(ctx context.Context, refreshToken string) (*AuthResult, error)
	// RevokeAll deletes every persisted refresh token of the user.
	// No-op when none exist.
	RevokeAll(ctx context.Context, user *User) error
	// IsValid reports whether the token is signed, unexpired and
	// belongs to the user. Refresh tokens must additionally still be
	// present in the persisted store.
	IsValid(ctx context.Context, token string, user *User) bool
}

// CodeService is the verification code engine.
type CodeService interface {
	// Request creates a new code for the channel and emits a delivery
	// event. Returns the created code record id.
	Request(ctx context.Context, ch Channel, purpose CodePurpose, locale string) (string, error)
	// Validate matches the submitted value against the latest code for
	// the identifier and transitions it to VALIDATED.
	Validate(ctx context.Context, identifier, submitted string, purpose CodePurpose) error
	// Consume transitions the latest code from VALIDATED to USED.
	// Called immediately before the dependent mutation commits.
	Consume(ctx context.Context, identifier string) error
}

// RateLimiter throttles per-identifier requests.
type RateLimiter interface {
	TryConsume(identifier string) bool
}

// AuthService composes the limiter, code engine and token service into
// the register/login/refresh/reset flows.
type AuthService interface {
	RequestCode(ctx context.Context, ch Channel, purpose CodePurpose, locale string) error
	ValidateCode(ctx context.Context, identifier, code string, purpose CodePurpose) error
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, identifier, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	ResetPassword(ctx context.Context, in ResetPasswordInput) (*AuthResult, error)
}
