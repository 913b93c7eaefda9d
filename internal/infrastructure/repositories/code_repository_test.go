package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/igor-IT/wi-auth-ms/domain"
)

func TestCodeRepositoryImpl_FindLatestByClient(t *testing.T) {
	repo := NewCodeRepository(setupTestDB(t))
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	codes := []*domain.VerificationCode{
		{ID: "id-1", Code: "1111", Status: domain.CodeCreated, Channel: domain.ChannelPhone, Client: "+15550001", CreatedAt: base},
		{ID: "id-2", Code: "2222", Status: domain.CodeCreated, Channel: domain.ChannelPhone, Client: "+15550001", CreatedAt: base.Add(time.Minute)},
		{ID: "id-3", Code: "3333", Status: domain.CodeCreated, Channel: domain.ChannelEmail, Client: "a@b.com", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, c := range codes {
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("create %s failed: %v", c.ID, err)
		}
	}

	t.Run("newest wins per client", func(t *testing.T) {
		latest, err := repo.FindLatestByClient(ctx, "+15550001")
		if err != nil {
			t.Fatalf("find failed: %v", err)
		}
		if latest.ID != "id-2" {
			t.Errorf("expected id-2, got %s", latest.ID)
		}
	})

	t.Run("clients do not leak into each other", func(t *testing.T) {
		latest, err := repo.FindLatestByClient(ctx, "a@b.com")
		if err != nil {
			t.Fatalf("find failed: %v", err)
		}
		if latest.ID != "id-3" {
			t.Errorf("expected id-3, got %s", latest.ID)
		}
	})

	t.Run("no code for client", func(t *testing.T) {
		_, err := repo.FindLatestByClient(ctx, "+19990000")
		if !errors.Is(err, domain.ErrCodeNotFound) {
			t.Errorf("expected ErrCodeNotFound, got %v", err)
		}
	})
}

func TestCodeRepositoryImpl_Update(t *testing.T) {
	repo := NewCodeRepository(setupTestDB(t))
	ctx := context.Background()

	code := &domain.VerificationCode{
		ID:        "id-1",
		Code:      "1234",
		Status:    domain.CodeCreated,
		Channel:   domain.ChannelPhone,
		Client:    "+15550001",
		CreatedAt: time.Now(),
	}
	if err := repo.Create(ctx, code); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	code.Status = domain.CodeValidated
	code.Purpose = domain.PurposeRegistration
	if err := repo.Update(ctx, code); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	found, err := repo.FindLatestByClient(ctx, "+15550001")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.Status != domain.CodeValidated {
		t.Errorf("expected status %s, got %s", domain.CodeValidated, found.Status)
	}
	if found.Purpose != domain.PurposeRegistration {
		t.Errorf("expected purpose %s, got %s", domain.PurposeRegistration, found.Purpose)
	}
}
