package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/igor-IT/wi-auth-ms/domain"
)

// AuthMW validates bearer access tokens on protected routes.
type AuthMW struct {
	issuer domain.TokenIssuer
}

// NewAuthMW creates the JWT middleware.
func NewAuthMW(issuer domain.TokenIssuer) *AuthMW {
	return &AuthMW{issuer: issuer}
}

// WithJWT returns a handler that rejects requests without a valid
// access token and stores user_id and role in the gin context.
func (m *AuthMW) WithJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := m.issuer.Parse(tokenParts[1])
		if err != nil {
			if errors.Is(err, domain.ErrTokenExpired) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			c.Abort()
			return
		}

		// Refresh tokens are not a substitute for access tokens.
		if claims.Kind != domain.TokenKindAccess {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}
