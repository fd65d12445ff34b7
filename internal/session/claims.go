package session

import (
	"github.com/golang-jwt/jwt/v5"
)

type tokenClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// RolesFromToken reads the role claims out of the backend-issued JWT
// without verifying the signature. The client has no signing secret and
// does not need one: roles read here only pick the route partition to
// render, every actual operation is re-authorized server-side.
func RolesFromToken(token string) []string {
	if token == "" {
		return nil
	}
	claims := &tokenClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil
	}
	return claims.Roles
}
