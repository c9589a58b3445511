package state

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/eatsbalance/internal/client/models"
	"github.com/dmitrijs2005/eatsbalance/internal/client/repositories/accounts"
	"github.com/dmitrijs2005/eatsbalance/internal/client/session"
	"github.com/dmitrijs2005/eatsbalance/internal/logging"
)

// Sessions is the part of session.Manager the auth store drives.
type Sessions interface {
	Load(ctx context.Context) (models.Session, error)
	Establish(ctx context.Context, resp models.AuthResponse) (models.Session, error)
	Clear(ctx context.Context) error
	Current() models.Session
}

var _ Sessions = (*session.Manager)(nil)

type AuthStore struct {
	repo     accounts.Repository
	sessions Sessions
	log      logging.Logger

	mu   sync.Mutex
	slot slot
}

func NewAuthStore(repo accounts.Repository, sessions Sessions, log logging.Logger) *AuthStore {
	if log == nil {
		log = logging.NewNop()
	}
	return &AuthStore{repo: repo, sessions: sessions, log: log.With("component", "auth")}
}

func (a *AuthStore) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.slot.status
}

func (a *AuthStore) Session() models.Session {
	return a.sessions.Current()
}

func (a *AuthStore) begin(st Status) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.slot.begin(st)
}

func (a *AuthStore) settle(gen uint64, st Status) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.slot.set(gen, st)
}

func (a *AuthStore) Login(ctx context.Context, creds models.Credentials) error {
	return a.authenticate(ctx, creds, LoggedIn, a.repo.Login)
}

func (a *AuthStore) Register(ctx context.Context, creds models.Credentials) error {
	return a.authenticate(ctx, creds, Registered, a.repo.Register)
}

type authCall func(context.Context, models.Credentials) (models.AuthResponse, error)

func (a *AuthStore) authenticate(ctx context.Context, creds models.Credentials, done Kind, call authCall) error {
	if err := creds.Validate(); err != nil {
		a.begin(failed(err))
		return err
	}

	gen := a.begin(Status{Kind: Loading})

	resp, err := call(ctx, creds)
	if err != nil {
		a.log.Warn(ctx, "authentication failed", "op", done.String(), "email", creds.Email, "error", err)
		a.settle(gen, failed(err))
		return err
	}

	s, err := a.sessions.Establish(ctx, resp)
	if err != nil {
		a.log.Error(ctx, "cannot persist session", "error", err)
		a.settle(gen, failed(err))
		return err
	}

	a.log.Info(ctx, "authenticated", "user_id", s.UserID)
	a.settle(gen, Status{Kind: done})
	return nil
}

// Logout clears the session. Preferences are kept.
func (a *AuthStore) Logout(ctx context.Context) error {
	gen := a.begin(Status{Kind: Loading})

	if err := a.sessions.Clear(ctx); err != nil {
		a.settle(gen, failed(err))
		return err
	}

	a.settle(gen, Status{Kind: LoggedOut})
	return nil
}

// Restore loads the session persisted by an earlier run.
func (a *AuthStore) Restore(ctx context.Context) (models.Session, error) {
	s, err := a.sessions.Load(ctx)
	switch {
	case errors.Is(err, session.ErrExpired):
		a.begin(Status{Kind: LoggedOut, Message: "session expired", Err: err})
		return models.Session{}, nil
	case err != nil:
		a.begin(failed(err))
		return models.Session{}, err
	}

	if s.Authenticated() {
		a.begin(Status{Kind: LoggedIn})
	}
	return s, nil
}
