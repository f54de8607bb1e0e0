package auth

import (
	"github.com/google/uuid"

	"github.com/surveyops/surveyops-backend/internal/users"
)

// RegisterRequest is the signup wire shape. Callers either reference an
// existing role via roleId or supply moduleAccess to have a custom role
// synthesized for them.
type RegisterRequest struct {
	Email        string         `json:"email" validate:"required,email"`
	Password     string         `json:"password" validate:"required,min=8,max=128"`
	FirstName    string         `json:"firstName" validate:"required,max=100"`
	LastName     string         `json:"lastName" validate:"required,max=100"`
	PhoneNumber  *string        `json:"phoneNumber,omitempty" validate:"omitempty,max=32"`
	RoleID       *uuid.UUID     `json:"roleId,omitempty"`
	ModuleAccess map[string]any `json:"moduleAccess,omitempty"`
}

// LoginRequest is the credential wire shape.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse is returned from register and login.
type SessionResponse struct {
	User  *users.UserDTO `json:"user"`
	Token string         `json:"token"`
}

// RefreshResponse carries a freshly minted token.
type RefreshResponse struct {
	Token string `json:"token"`
}
