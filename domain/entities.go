package domain

import "time"

// ChannelKind identifies the contact channel a verification targets.
type ChannelKind string

const (
	ChannelPhone ChannelKind = "PHONE"
	ChannelEmail ChannelKind = "EMAIL"
)

// Channel is the tagged variant of (kind, identifier) that drives every
// verification and lookup. Identifier is the raw phone number or email
// address string.
type Channel struct {
	Kind       ChannelKind
	Identifier string
}

// CodeStatus is the lifecycle state of a verification code.
// CREATED -> VALIDATED -> USED, forward only.
type CodeStatus string

const (
	CodeCreated   CodeStatus = "CREATED"
	CodeValidated CodeStatus = "VALIDATED"
	CodeUsed      CodeStatus = "USED"
)

// CodePurpose describes what a verification code unlocks.
type CodePurpose string

const (
	PurposeRegistration  CodePurpose = "REGISTRATION"
	PurposePasswordReset CodePurpose = "PASSWORD_RESET"
)

// User represents an account holder. Exactly one of Phone or Email is
// set; the matching *Verified flag is true once the contact channel has
// passed OTP verification.
type User struct {
	ID            uint
	FirstName     string
	LastName      string
	Phone         string
	Email         string
	PasswordHash  string
	Role          string
	AccountType   string
	Locale        string
	Enabled       bool
	PhoneVerified bool
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Identifier returns the contact identifier the account was registered
// with.
func (u *User) Identifier() string {
	if u.Phone != "" {
		return u.Phone
	}
	return u.Email
}

// VerificationCode is one OTP challenge. Created and mutated only by
// the code service; callers never touch Status directly.
type VerificationCode struct {
	ID        string
	Code      string
	Status    CodeStatus
	Channel   ChannelKind
	Client    string
	Purpose   CodePurpose
	CreatedAt time.Time
}

// RefreshToken is the persisted long-lived credential. At most one
// chain per user is usable after any successful auth event.
type RefreshToken struct {
	ID        string
	UserID    uint
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TokenClaims are the parsed assertions of a signed token.
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	Kind      string `json:"typ"`
	TokenID   string `json:"jti"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Token kinds carried in the "typ" claim.
const (
	TokenKindAccess  = "access"
	TokenKindRefresh = "refresh"
)

// AuthResult is the outcome of a successful register, login, refresh
// or password reset.
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
}

// RegisterInput carries everything needed to create an account after
// its channel has a validated code.
type RegisterInput struct {
	Channel     Channel
	FirstName   string
	LastName    string
	Password    string
	AccountType string
	Locale      string
}

// ResetPasswordInput carries a password reset for a verified channel.
type ResetPasswordInput struct {
	Channel  Channel
	Password string
	Locale   string
}
