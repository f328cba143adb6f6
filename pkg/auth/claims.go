package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/stridekart/backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	AccountID   uuid.UUID
	Role        enums.Role
	IsSuperuser bool
	JTI         string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	AccountID   uuid.UUID  `json:"account_id"`
	Role        enums.Role `json:"role"`
	IsSuperuser bool       `json:"is_superuser,omitempty"`
	jwt.RegisteredClaims
}
