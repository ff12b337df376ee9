// Package session issues the opaque token that ties a browser to its cart.
// The token lives in an HTTP-only cookie and doubles as the cart key in the
// store, so a reload (or server restart) finds the same cart again. Tokens
// are never shared across browsers; each one gets its own.
package session

import (
	"time"

	"github.com/google/uuid"
)

// CookieName is the cookie the storefront keeps the cart token in.
const CookieName = "storefront_session"

type Service struct {
	ttl time.Duration
}

func New() *Service {
	return &Service{ttl: 180 * 24 * time.Hour}
}

// Issue returns a fresh session token.
func (s *Service) Issue() string {
	return uuid.NewString()
}

// Valid reports whether the token is one this service could have issued.
// Anything else (tampered cookies, legacy values) is discarded and the
// caller issues a new token, which starts an empty cart.
func (s *Service) Valid(token string) bool {
	if token == "" {
		return false
	}
	_, err := uuid.Parse(token)
	return err == nil
}

// TTLSeconds is the cookie max-age.
func (s *Service) TTLSeconds() int {
	return int(s.ttl.Seconds())
}
