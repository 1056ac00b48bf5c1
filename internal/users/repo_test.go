package users

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/geocart/geocart-backend/pkg/db/models"
	"github.com/geocart/geocart-backend/pkg/enums"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func TestRepositoryCreateNormalizesEmail(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	user, err := repo.Create(ctx, CreateUserDTO{
		Email:        "  Customer@Example.COM ",
		Name:         "Test Customer",
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.Email != "customer@example.com" {
		t.Fatalf("expected normalized email got %q", user.Email)
	}
	if user.SystemRole != enums.SystemRoleCustomer {
		t.Fatalf("expected default customer role got %q", user.SystemRole)
	}

	found, err := repo.FindByEmail(ctx, "CUSTOMER@example.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if found.ID != user.ID {
		t.Fatalf("expected matching user id")
	}
}

func TestRepositoryCreateRejectsDuplicateEmail(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	if _, err := repo.Create(ctx, CreateUserDTO{Email: "dup@example.com", Name: "One", PasswordHash: "h"}); err != nil {
		t.Fatalf("create first user: %v", err)
	}
	_, err := repo.Create(ctx, CreateUserDTO{Email: "dup@example.com", Name: "Two", PasswordHash: "h"})
	if err == nil {
		t.Fatal("expected duplicate email error")
	}
	if !IsDuplicateEmail(err) {
		t.Fatalf("expected unique violation got %v", err)
	}
}

func TestRepositoryListAndDelete(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	a, err := repo.Create(ctx, CreateUserDTO{Email: "a@example.com", Name: "A", PasswordHash: "h"})
	if err != nil {
		t.Fatalf("create a: %v", err)
	}
	if _, err := repo.Create(ctx, CreateUserDTO{Email: "b@example.com", Name: "B", PasswordHash: "h"}); err != nil {
		t.Fatalf("create b: %v", err)
	}

	rows, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 users got %d", len(rows))
	}

	if err := repo.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	rows, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 user got %d", len(rows))
	}
}
