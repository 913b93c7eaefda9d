package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/igor-IT/wi-auth-ms/domain"
)

// TokenHeaders names the two response headers a successful auth
// response carries: the access token prefixed "Bearer ", the refresh
// token raw.
type TokenHeaders struct {
	Access  string
	Refresh string
}

// AuthHandlers handles authentication HTTP requests.
type AuthHandlers struct {
	authSvc domain.AuthService
	headers TokenHeaders
}

// NewAuthHandlers creates new auth handlers.
func NewAuthHandlers(authSvc domain.AuthService, headers TokenHeaders) *AuthHandlers {
	if headers.Access == "" {
		headers.Access = "Authorization"
	}
	if headers.Refresh == "" {
		headers.Refresh = "X-Refresh-Token"
	}
	return &AuthHandlers{authSvc: authSvc, headers: headers}
}

// CodeRequest asks for a verification code on one contact channel.
type CodeRequest struct {
	Channel    string `json:"channel" binding:"required,oneof=phone email"`
	Identifier string `json:"identifier" binding:"required"`
	Locale     string `json:"locale"`
}

// ValidateCodeRequest submits a received code for validation.
type ValidateCodeRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Code       string `json:"code" binding:"required"`
	Purpose    string `json:"purpose" binding:"required,oneof=REGISTRATION PASSWORD_RESET"`
}

// RegisterRequest creates an account on a verified channel.
type RegisterRequest struct {
	Channel     string `json:"channel" binding:"required,oneof=phone email"`
	Identifier  string `json:"identifier" binding:"required"`
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name"`
	Password    string `json:"password" binding:"required,min=6"`
	AccountType string `json:"account_type"`
	Locale      string `json:"locale"`
}

// LoginRequest authenticates by identifier and password.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// ResetPasswordRequest sets a new password on a verified channel.
type ResetPasswordRequest struct {
	Channel    string `json:"channel" binding:"required,oneof=phone email"`
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required,min=6"`
	Locale     string `json:"locale"`
}

func channelKind(channel string) domain.ChannelKind {
	if channel == "email" {
		return domain.ChannelEmail
	}
	return domain.ChannelPhone
}

// RequestRegistrationCode handles POST /sign-up/request-code.
func (h *AuthHandlers) RequestRegistrationCode(c *gin.Context) {
	h.requestCode(c, domain.PurposeRegistration)
}

// RequestResetCode handles POST /reset-password/request-code.
func (h *AuthHandlers) RequestResetCode(c *gin.Context) {
	h.requestCode(c, domain.PurposePasswordReset)
}

func (h *AuthHandlers) requestCode(c *gin.Context, purpose domain.CodePurpose) {
	var req CodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ch := domain.Channel{Kind: channelKind(req.Channel), Identifier: req.Identifier}
	if err := h.authSvc.RequestCode(c.Request.Context(), ch, purpose, req.Locale); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Verification code sent"}})
}

// ValidateCode handles POST /validate-code.
func (h *AuthHandlers) ValidateCode(c *gin.Context) {
	var req ValidateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.authSvc.ValidateCode(c.Request.Context(), req.Identifier, req.Code, domain.CodePurpose(req.Purpose))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Code validated"}})
}

// Register handles POST /sign-up/create-account.
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), domain.RegisterInput{
		Channel:     domain.Channel{Kind: channelKind(req.Channel), Identifier: req.Identifier},
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Password:    req.Password,
		AccountType: req.AccountType,
		Locale:      req.Locale,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setTokenHeaders(c, result)
	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"user_id": result.User.ID}})
}

// Login handles POST /sign-in.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setTokenHeaders(c, result)
	c.Status(http.StatusOK)
}

// Refresh handles POST /refresh-token. The refresh token is presented
// in the Authorization header as a bearer credential.
func (h *AuthHandlers) Refresh(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
		return
	}
	refreshToken := strings.TrimPrefix(authHeader, "Bearer ")

	result, err := h.authSvc.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setTokenHeaders(c, result)
	c.Status(http.StatusOK)
}

// ResetPassword handles POST /reset-password/create-password.
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.ResetPassword(c.Request.Context(), domain.ResetPasswordInput{
		Channel:  domain.Channel{Kind: channelKind(req.Channel), Identifier: req.Identifier},
		Password: req.Password,
		Locale:   req.Locale,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setTokenHeaders(c, result)
	c.Status(http.StatusOK)
}

// Me handles GET /me behind the JWT middleware.
func (h *AuthHandlers) Me(c *gin.Context) {
	userID, _ := c.Get("user_id")
	role, _ := c.Get("role")
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"user_id": userID, "role": role}})
}

func (h *AuthHandlers) setTokenHeaders(c *gin.Context, result *domain.AuthResult) {
	c.Header(h.headers.Access, "Bearer "+result.AccessToken)
	c.Header(h.headers.Refresh, result.RefreshToken)
}

func (h *AuthHandlers) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
	case errors.Is(err, domain.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrCodeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, domain.ErrCodeInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verification code"})
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenMalformed):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, domain.ErrUserDisabled):
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is disabled"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
