package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenKind distinguishes short-lived access tokens from long-lived refresh tokens.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Claims is the JWT payload minted for a user. Only the user id, the token
// kind, and the registered expiry/issuer fields are bound into the token.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Kind   TokenKind `json:"kind"`
	jwt.RegisteredClaims
}
