// Package session owns the authenticated session of the running client.
//
// Manager is created once at start-up, loads any persisted session, and is
// handed to the transport as its token source. Logout goes through Clear.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/eatsbalance/internal/client/models"
)

var ErrExpired = errors.New("session expired")

// Store persists the session between runs.
type Store interface {
	Session(ctx context.Context) (models.Session, error)
	SaveSession(ctx context.Context, s models.Session) error
	ClearUserData(ctx context.Context) error
}

type Manager struct {
	store Store
	now   func() time.Time

	mu      sync.RWMutex
	current models.Session
}

func NewManager(store Store) *Manager {
	return &Manager{store: store, now: time.Now}
}

// Load restores the persisted session. An expired one is removed from the
// store and ErrExpired is returned.
func (m *Manager) Load(ctx context.Context) (models.Session, error) {
	s, err := m.store.Session(ctx)
	if err != nil {
		return models.Session{}, fmt.Errorf("load session: %w", err)
	}
	if !s.Authenticated() {
		return models.Session{}, nil
	}

	s.ExpiresAt = tokenExpiry(s.Token)
	if s.Expired(m.now()) {
		if err := m.store.ClearUserData(ctx); err != nil {
			return models.Session{}, fmt.Errorf("drop expired session: %w", err)
		}
		return models.Session{}, ErrExpired
	}

	m.set(s)
	return s, nil
}

// Establish persists a session built from a successful login or register and
// makes it current.
func (m *Manager) Establish(ctx context.Context, resp models.AuthResponse) (models.Session, error) {
	s := models.Session{
		Token:     resp.Token,
		UserID:    resp.User.ID,
		UserEmail: resp.User.Email,
		ExpiresAt: tokenExpiry(resp.Token),
	}

	if err := m.store.SaveSession(ctx, s); err != nil {
		return models.Session{}, fmt.Errorf("save session: %w", err)
	}

	m.set(s)
	return s, nil
}

// Clear forgets the current session and removes it from the store.
func (m *Manager) Clear(ctx context.Context) error {
	m.set(models.Session{})
	if err := m.store.ClearUserData(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (m *Manager) Current() models.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Token returns the current token, or "" once it has expired.
func (m *Manager) Token() string {
	s := m.Current()
	if s.Expired(m.now()) {
		return ""
	}
	return s.Token
}

func (m *Manager) set(s models.Session) {
	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
}

// tokenExpiry reads the exp claim without verifying the signature; the server
// does that. Opaque tokens have no expiry.
func tokenExpiry(token string) time.Time {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
