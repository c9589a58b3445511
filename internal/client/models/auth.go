package models

import (
	"strings"
	"time"
)

// Credentials are built per login or register attempt and never stored.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	var p problems
	email := strings.TrimSpace(c.Email)
	p.check(email != "", "email is required")
	p.check(email == "" || strings.Contains(email, "@"), "email is not valid")
	p.check(c.Password != "", "password is required")
	return p.err()
}

type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

// AuthResponse is the body of a successful /login or /register call.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Session is the authenticated identity. ExpiresAt is zero when the token
// carries no expiry.
type Session struct {
	Token     string
	UserID    int
	UserEmail string
	ExpiresAt time.Time
}

// Authenticated is true iff the session holds a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !s.ExpiresAt.After(now)
}
