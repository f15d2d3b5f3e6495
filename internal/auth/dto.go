package auth

import (
	"github.com/leadflowhq/leadflow-backend/internal/users"
)

// RegisterRequest is the validated payload for creating an account.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=255"`
	Role     string `json:"role" validate:"omitempty,oneof=admin manager"`
}

// LoginRequest is the validated credential payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse pairs the signed token with its user.
type AuthResponse struct {
	User  *users.UserDTO `json:"user"`
	Token string         `json:"token"`
}
