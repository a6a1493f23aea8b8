package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sweetshop/inventory-api/internal/core/domain"
	"github.com/sweetshop/inventory-api/internal/core/ports"
)

func registerUser(t *testing.T, repo *stubUserRepo, username, password, role string) *domain.User {
	t.Helper()
	auth := NewAuthService(repo, "secret", time.Hour, zerolog.Nop())
	user, err := auth.Register(context.Background(), username, password, role)
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user
}

func TestUserService_List(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	registerUser(t, repo, "alice", "pass", "")
	registerUser(t, repo, "root", "pass", domain.RoleAdmin)

	users, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}

func TestUserService_Update_PartialDiff(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	user := registerUser(t, repo, "alice", "oldpass", "")
	originalHash := user.PasswordHash

	role := domain.RoleAdmin
	updated, err := svc.Update(context.Background(), user.ID, ports.UserUpdateInput{Role: &role})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("expected role admin, got %q", updated.Role)
	}
	// Absent fields are untouched.
	if updated.Username != "alice" {
		t.Fatalf("username changed unexpectedly: %q", updated.Username)
	}
	if updated.PasswordHash != originalHash {
		t.Fatalf("password hash changed unexpectedly")
	}
}

func TestUserService_Update_HashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	user := registerUser(t, repo, "alice", "oldpass", "")

	password := "newpass"
	updated, err := svc.Update(context.Background(), user.ID, ports.UserUpdateInput{Password: &password})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.PasswordHash == password {
		t.Fatalf("plaintext password stored")
	}
	if bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte(password)) != nil {
		t.Fatalf("stored hash does not match new password")
	}
}

func TestUserService_Update_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	user := registerUser(t, repo, "alice", "pass", "")

	badRole := "superuser"
	if _, err := svc.Update(context.Background(), user.ID, ports.UserUpdateInput{Role: &badRole}); !errors.Is(err, domain.ErrInvalidUser) {
		t.Fatalf("expected ErrInvalidUser for bad role, got %v", err)
	}

	empty := ""
	if _, err := svc.Update(context.Background(), user.ID, ports.UserUpdateInput{Username: &empty}); !errors.Is(err, domain.ErrInvalidUser) {
		t.Fatalf("expected ErrInvalidUser for empty username, got %v", err)
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	role := domain.RoleAdmin
	if _, err := svc.Update(context.Background(), "missing", ports.UserUpdateInput{Role: &role}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
