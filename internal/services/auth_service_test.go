package services

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/igor-IT/wi-auth-ms/domain"
	"github.com/igor-IT/wi-auth-ms/internal/mocks"
)

type authServiceMocks struct {
	users     *mocks.MockUserRepository
	codes     *mocks.MockCodeService
	tokens    *mocks.MockTokenService
	passwords *mocks.MockPasswordService
	limiter   *mocks.MockRateLimiter
}

func newAuthServiceForTest(t *testing.T) (domain.AuthService, *authServiceMocks) {
	t.Helper()
	m := &authServiceMocks{
		users:     mocks.NewMockUserRepository(),
		codes:     mocks.NewMockCodeService(),
		tokens:    mocks.NewMockTokenService(),
		passwords: mocks.NewMockPasswordService(),
		limiter:   mocks.NewMockRateLimiter(),
	}
	svc := NewAuthService(m.users, m.codes, m.tokens, m.passwords, m.limiter, zap.NewNop())
	return svc, m
}

func TestAuthServiceImpl_RequestCode(t *testing.T) {
	ch := domain.Channel{Kind: domain.ChannelPhone, Identifier: "+15550001"}

	t.Run("limiter admits, code requested", func(t *testing.T) {
		svc, m := newAuthServiceForTest(t)
		var requested bool
		m.codes.RequestFunc = func(ctx context.Context, c domain.Channel, purpose domain.CodePurpose, locale string) (string, error) {
			requested = true
			if c != ch {
				t.Errorf("unexpected channel %+v", c)
			}
			return "code-id", nil
		}

		if err := svc.RequestCode(context.Background(), ch, domain.PurposeRegistration, "en"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !requested {
			t.Error("expected the code service to be called")
		}
	})

	t.Run("limiter rejects before any code work", func(t *testing.T) {
		svc, m := newAuthServiceForTest(t)
		m.limiter.TryConsumeFunc = func(identifier string) bool { return false }
		m.codes.RequestFunc = func(ctx context.Context, c domain.Channel, purpose domain.CodePurpose, locale string) (string, error) {
			t.Error("code service must not be reached when throttled")
			return "", nil
		}

		err := svc.RequestCode(context.Background(), ch, domain.PurposeRegistration, "en")
		if !errors.Is(err, domain.ErrRateLimited) {
			t.Errorf("expected ErrRateLimited, got %v", err)
		}
	})
}

func TestAuthServiceImpl_Register(t *testing.T) {
	input := domain.RegisterInput{
		Channel:   domain.Channel{Kind: domain.ChannelPhone, Identifier: "+15550001"},
		FirstName: "Ada",
		LastName:  "Lovelace",
		Password:  "s3cret",
		Locale:    "en",
	}

	t.Run("happy path marks the channel verified", func(t *testing.T) {
		svc, m := newAuthServiceForTest(t)
		var created *domain.User
		m.users.CreateFunc = func(ctx context.Context, user *domain.User) error {
			user.ID = 1
			created = user
			return nil
		}

		result, err := svc.Register(context.Background(), input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.AccessToken == "" || result.RefreshToken == "" {
			t.Error("expected tokens in the result")
		}
		if created == nil {
			t.Fatal("expected a user to be created")
		}
		if created.Phone != input.Channel.Identifier {
			t.Errorf("expected phone %q, got %q", input.Channel.Identifier, created.Phone)
		}
		if !created.PhoneVerified {
			t.Error("phone must be marked verified")
		}
		if created.EmailVerified {
			t.Error("email must not be marked verified")
		}
		if created.PasswordHash != "hashed_s3cret" {
			t.Errorf("expected hashed password, got %q", created.PasswordHash)
		}
		if created.Role != DefaultRole {
			t.Errorf("expected role %q, got %q", DefaultRole, created.Role)
		}
		if !created.Enabled {
			t.Error("new accounts start enabled")
		}
	})

	t.Run("email channel sets the email fields", func(t *testing.T) {
		svc, m := newAuthServiceForTest(t)
		var created *domain.User
		m.users.CreateFunc = func(ctx context.Context, user *domain.User) error {
			created = user
			return nil
		}

		in := input
		in.Channel = domain.Channel{Kind: domain.ChannelEmail, Identifier: "a@b.com"}
		if _, err := svc.Register(context.Background(), in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.Email != "a@b.com" || !created.EmailVerified {
			t.Error("email channel must set email and its verified flag")
		}
		if created.Phone != "" || created.PhoneVerified {
			t.Error("phone fields must stay empty for an email registration")
		}
	})

	t.Run("consume failure stops before user creation", func(t *testing.T) {
		svc, m := newAuthServiceForTest(t)
		m.codes.ConsumeFunc = func(ctx context.Context, identifier string) error {
			return domain.ErrCodeInvalid
		}
		m.users.CreateFunc = func(ctx context.Context, user *domain.User) error {
			t.Error("user must not be created without a consumed code")
			return nil
		}

		_, err := svc.Register(context.Background(), input)
		if !errors.Is(err, domain.ErrCodeInvalid) {
			t.Errorf("expected ErrCodeInvalid, got %v", err)
		}
	})

	t.Run("create failure surfaces", func(t *testing.T) {
		svc, m := newAuthServiceForTest(t)
		m.users.CreateFunc = func(ctx context.Context, user *domain.User) error {
			return domain.ErrUserAlreadyExists
		}

		_, err := svc.Register(context.Background(), input)
		if !errors.Is(err, domain.ErrUserAlreadyExists) {
			t.Errorf("expected ErrUserAlreadyExists, got %v", err)
		}
	})
}

func TestAuthServiceImpl_Login(t *testing.T) {
	account := &domain.User{
		ID:           1,
		Phone:        "+15550001",
		PasswordHash: "hashed_s3cret",
		Role:         "user",
		Enabled:      true,
	}

	tests := []struct {
		name          string
		identifier    string
		password      string
		setupMocks    func(*authServiceMocks)
		expectedError error
	}{
		{
			name:       "valid credentials",
			identifier: "+15550001",
			password:   "s3cret",
			setupMocks: func(m *authServiceMocks) {
				m.users.FindByIdentifierFunc = func(ctx context.Context, identifier string) (*domain.User, error) {
					return account, nil
				}
			},
		},
		{
			name:          "unknown identifier maps to invalid credentials",
			identifier:    "+19990000",
			password:      "s3cret",
			setupMocks:    func(m *authServiceMocks) {},
			expectedError: domain.ErrInvalidCredentials,
		},
		{
			name:       "wrong password",
			identifier: "+15550001",
			password:   "nope",
			setupMocks: func(m *authServiceMocks) {
				m.users.FindByIdentifierFunc = func(ctx context.Context, identifier string) (*domain.User, error) {
					return account, nil
				}
			},
			expectedError: domain.ErrInvalidCredentials,
		},
		{
			name:       "disabled account",
			identifier: "+15550001",
			password:   "s3cret",
			setupMocks: func(m *authServiceMocks) {
				m.users.FindByIdentifierFunc = func(ctx context.Context, identifier string) (*domain.User, error) {
					disabled := *account
					disabled.Enabled = false
					return &disabled, nil
				}
			},
			expectedError: domain.ErrUserDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newAuthServiceForTest(t)
			tt.setupMocks(m)

			result, err := svc.Login(context.Background(), tt.identifier, tt.password)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Errorf("expected %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.AccessToken == "" || result.RefreshToken == "" {
				t.Error("expected tokens in the result")
			}
			if result.User.ID != account.ID {
				t.Errorf("expected user %d, got %d", account.ID, result.User.ID)
			}
		})
	}
}

func TestAuthServiceImpl_Refresh(t *testing.T) {
	svc, m := newAuthServiceForTest(t)
	m.tokens.RotateFunc = func(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
		if refreshToken != "old-refresh" {
			t.Errorf("unexpected token %q", refreshToken)
		}
		return &domain.AuthResult{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil
	}

	result, err := svc.Refresh(context.Background(), "old-refresh")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RefreshToken != "new-refresh" {
		t.Errorf("expected rotated token, got %q", result.RefreshToken)
	}
}

func TestAuthServiceImpl_ResetPassword(t *testing.T) {
	input := domain.ResetPasswordInput{
		Channel:  domain.Channel{Kind: domain.ChannelEmail, Identifier: "a@b.com"},
		Password: "newpass",
	}
	account := &domain.User{
		ID:           1,
		Email:        "a@b.com",
		PasswordHash: "hashed_oldpass",
		Enabled:      true,
	}

	t.Run("validated code rewrites the hash", func(t *testing.T) {
		svc, m := newAuthServiceForTest(t)
		m.users.FindByIdentifierFunc = func(ctx context.Context, identifier string) (*domain.User, error) {
			return account, nil
		}
		var updated *domain.User
		m.users.UpdateFunc = func(ctx context.Context, user *domain.User) error {
			updated = user
			return nil
		}

		result, err := svc.ResetPassword(context.Background(), input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated == nil {
			t.Fatal("expected the user to be updated")
		}
		if updated.PasswordHash != "hashed_newpass" {
			t.Errorf("expected new hash, got %q", updated.PasswordHash)
		}
		if result.AccessToken == "" || result.RefreshToken == "" {
			t.Error("expected a fresh token pair")
		}
	})

	t.Run("unconsumed code blocks the reset", func(t *testing.T) {
		svc, m := newAuthServiceForTest(t)
		m.codes.ConsumeFunc = func(ctx context.Context, identifier string) error {
			return domain.ErrCodeInvalid
		}
		m.users.UpdateFunc = func(ctx context.Context, user *domain.User) error {
			t.Error("password must not change without a consumed code")
			return nil
		}

		_, err := svc.ResetPassword(context.Background(), input)
		if !errors.Is(err, domain.ErrCodeInvalid) {
			t.Errorf("expected ErrCodeInvalid, got %v", err)
		}
	})

	t.Run("unknown account surfaces", func(t *testing.T) {
		svc, _ := newAuthServiceForTest(t)
		_, err := svc.ResetPassword(context.Background(), input)
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}
