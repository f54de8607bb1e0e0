package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID uuid.UUID
	Email  string
	RoleID uuid.UUID
}

// AccessTokenClaims represents the typed JWT issued to clients. The token
// carries the role id, not the role name; module access is resolved from
// storage when a request is authorized.
type AccessTokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	RoleID uuid.UUID `json:"role_id"`
	jwt.RegisteredClaims
}
