package auth

import (
	"strings"
	"time"
)

// Credential is the bearer token presented by an operator.
type Credential string

// FromAuthorizationHeader extracts the token from an "Authorization: Bearer"
// header value. Anything else yields an empty Credential.
func FromAuthorizationHeader(h string) Credential {
	scheme, token, ok := strings.Cut(strings.TrimSpace(h), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return Credential(strings.TrimSpace(token))
}

// Principal is the operator a credential was issued to.
type Principal struct {
	AdminID   string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Token is the result of a successful login.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}
