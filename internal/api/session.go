package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Role is the account role carried in the access token.
type Role string

const (
	RoleAdmin    Role = "admin"
	RolePimpinan Role = "pimpinan"
	RoleUser     Role = "user"
)

// claims mirrors the access token issued by the backend.
type claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Session describes the logged-in account.
type Session struct {
	Subject   string
	Name      string
	Email     string
	Role      Role
	ExpiresAt time.Time
}

// Expired reports whether the token expired before now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// ParseSession reads the claims of an access token. The signature is not
// checked here: the backend verifies it on every request and the client only
// uses the claims to choose what to show.
func ParseSession(token string) (Session, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return Session{}, errors.New("no access token configured")
	}
	var c claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err != nil {
		return Session{}, fmt.Errorf("parse access token: %w", err)
	}

	s := Session{
		Subject: c.Subject,
		Name:    c.Name,
		Email:   c.Email,
		Role:    Role(strings.ToLower(c.Role)),
	}
	if s.Role == "" {
		s.Role = RoleUser
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s, nil
}
