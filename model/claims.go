package model

import "github.com/golang-jwt/jwt/v5"

// TokenClass distinguishes short-lived access tokens from long-lived
// refresh tokens. Each class is signed with its own secret.
type TokenClass string

const (
	TokenClassAccess  TokenClass = "access"
	TokenClassRefresh TokenClass = "refresh"
)

type AppClaims struct {
	UserID     string `json:"user_id"`
	TokenClass string `json:"token_class"`
	jwt.RegisteredClaims
}
