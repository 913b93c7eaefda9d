package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/igor-IT/wi-auth-ms/domain"
)

func TestUserRepositoryImpl_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := &domain.User{
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Phone:         "+15550001",
		PasswordHash:  "hash",
		Role:          "user",
		Enabled:       true,
		PhoneVerified: true,
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected the generated id to be written back")
	}

	t.Run("by phone identifier", func(t *testing.T) {
		found, err := repo.FindByIdentifier(ctx, "+15550001")
		if err != nil {
			t.Fatalf("find failed: %v", err)
		}
		if found.ID != user.ID {
			t.Errorf("expected id %d, got %d", user.ID, found.ID)
		}
		if found.Phone != "+15550001" || found.Email != "" {
			t.Errorf("unexpected contact fields: phone=%q email=%q", found.Phone, found.Email)
		}
		if !found.PhoneVerified {
			t.Error("phone verified flag lost in the round trip")
		}
	})

	t.Run("by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("find failed: %v", err)
		}
		if found.Phone != user.Phone {
			t.Errorf("expected phone %q, got %q", user.Phone, found.Phone)
		}
	})

	t.Run("unknown identifier", func(t *testing.T) {
		_, err := repo.FindByIdentifier(ctx, "nobody@example.com")
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 9999)
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestUserRepositoryImpl_EmailAccount(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := &domain.User{
		Email:         "a@b.com",
		PasswordHash:  "hash",
		Role:          "user",
		Enabled:       true,
		EmailVerified: true,
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	found, err := repo.FindByIdentifier(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.Email != "a@b.com" || found.Phone != "" {
		t.Errorf("unexpected contact fields: phone=%q email=%q", found.Phone, found.Email)
	}
}

func TestUserRepositoryImpl_ExistsByIdentifier(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.User{Phone: "+15550001", Enabled: true}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	exists, err := repo.ExistsByIdentifier(ctx, "+15550001")
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if !exists {
		t.Error("expected the phone to exist")
	}

	exists, err = repo.ExistsByIdentifier(ctx, "+19990000")
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if exists {
		t.Error("expected the phone to be absent")
	}
}

func TestUserRepositoryImpl_DuplicateIdentifier(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.User{Phone: "+15550001"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(ctx, &domain.User{Phone: "+15550001"}); err == nil {
		t.Error("expected the unique index to reject the duplicate phone")
	}

	// Two accounts without a phone must not collide on the null column.
	if err := repo.Create(ctx, &domain.User{Email: "a@b.com"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(ctx, &domain.User{Email: "c@d.com"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
}

func TestUserRepositoryImpl_Update(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := &domain.User{Phone: "+15550001", PasswordHash: "old", Enabled: true}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	user.PasswordHash = "new"
	if err := repo.Update(ctx, user); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	found, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.PasswordHash != "new" {
		t.Errorf("expected updated hash, got %q", found.PasswordHash)
	}
}
