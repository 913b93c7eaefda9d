package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/igor-IT/wi-auth-ms/domain"
)

// JWTService implements domain.TokenIssuer with HMAC-signed tokens.
type JWTService struct {
	secretKey  []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTService creates a new JWT signer.
func NewJWTService(secretKey string, issuer string, accessTTL, refreshTTL time.Duration) *JWTService {
	return &JWTService{
		secretKey:  []byte(secretKey),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// RefreshTTL exposes the configured refresh token lifetime so the token
// service can compute the persisted expiry from the same source.
func (j *JWTService) RefreshTTL() time.Duration { return j.refreshTTL }

// GenerateAccessToken implements domain.TokenIssuer.
func (j *JWTService) GenerateAccessToken(user *domain.User) (string, error) {
	return j.generate(user, domain.TokenKindAccess, j.accessTTL)
}

// GenerateRefreshToken implements domain.TokenIssuer.
func (j *JWTService) GenerateRefreshToken(user *domain.User) (string, error) {
	return j.generate(user, domain.TokenKindRefresh, j.refreshTTL)
}

func (j *JWTService) generate(user *domain.User, kind string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"typ":     kind,
		"iss":     j.issuer,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
		"jti":     uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// Parse implements domain.TokenIssuer. A token whose expiry instant
// equals the check instant is already expired.
func (j *JWTService) Parse(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return j.secretKey, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, domain.ErrTokenMalformed
		default:
			return nil, domain.ErrTokenInvalid
		}
	}

	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	role, ok := claims["role"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	kind, ok := claims["typ"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	// Inclusive boundary: exactly-at-expiry counts as expired.
	if !time.Now().Before(time.Unix(int64(exp), 0)) {
		return nil, domain.ErrTokenExpired
	}

	tokenClaims := &domain.TokenClaims{
		UserID:    uint(userID),
		Role:      role,
		Kind:      kind,
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}

	if jti, ok := claims["jti"].(string); ok {
		tokenClaims.TokenID = jti
	}

	return tokenClaims, nil
}

// Compile-time interface compliance verification
var _ domain.TokenIssuer = (*JWTService)(nil)
