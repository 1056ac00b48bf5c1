package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/geocart/geocart-backend/internal/users"
	"github.com/geocart/geocart-backend/pkg/config"
	"github.com/geocart/geocart-backend/pkg/db/models"
	"github.com/geocart/geocart-backend/pkg/enums"
	"github.com/geocart/geocart-backend/pkg/security"
)

type adminRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateSystemRole(ctx context.Context, id uuid.UUID, role enums.SystemRole) error
}

// EnsureAdmin provisions the configured admin account at startup so
// admin login and the admin-only routes are reachable on a fresh
// database. With no credentials configured it is a no-op; a half-set
// pair is a config error. An existing user with the configured email is
// promoted to admin but keeps its own password.
func EnsureAdmin(ctx context.Context, repo adminRepository, passwordCfg config.PasswordConfig, adminCfg config.AdminConfig) error {
	email := strings.ToLower(strings.TrimSpace(adminCfg.Email))
	password := adminCfg.Password
	if email == "" && password == "" {
		return nil
	}
	if email == "" || password == "" {
		return fmt.Errorf("admin bootstrap requires both email and password")
	}

	existing, err := repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.SystemRole == enums.SystemRoleAdmin {
			return nil
		}
		if err := repo.UpdateSystemRole(ctx, existing.ID, enums.SystemRoleAdmin); err != nil {
			return fmt.Errorf("promote admin user: %w", err)
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, err := security.HashPassword(password, passwordCfg)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		if _, err := repo.Create(ctx, users.CreateUserDTO{
			Email:        email,
			Name:         "Admin",
			PasswordHash: hash,
			SystemRole:   enums.SystemRoleAdmin,
		}); err != nil {
			return fmt.Errorf("create admin user: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("lookup admin user: %w", err)
	}
}
