package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/geocart/geocart-backend/pkg/db/models"
	"github.com/geocart/geocart-backend/pkg/enums"
)

// CreateUserDTO carries the fields required to persist a new user.
type CreateUserDTO struct {
	Email        string
	Name         string
	Phone        *string
	PasswordHash string
	SystemRole   enums.SystemRole
}

// UserDTO is the transport-safe projection of a user. The password hash
// never leaves the service layer.
type UserDTO struct {
	ID          uuid.UUID        `json:"id"`
	Email       string           `json:"email"`
	Name        string           `json:"name"`
	Phone       *string          `json:"phone,omitempty"`
	SystemRole  enums.SystemRole `json:"systemRole"`
	IsActive    bool             `json:"isActive"`
	LastLoginAt *time.Time       `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// FromModel converts a persisted user into its DTO form.
func FromModel(user *models.User) *UserDTO {
	if user == nil {
		return nil
	}
	return &UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Phone:       user.Phone,
		SystemRole:  user.SystemRole,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
