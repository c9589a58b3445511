package securestore

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/eatsbalance/internal/client/models"
	"github.com/dmitrijs2005/eatsbalance/internal/client/repositories/kvstore"
	"github.com/dmitrijs2005/eatsbalance/internal/common"
	"github.com/dmitrijs2005/eatsbalance/internal/cryptox"
	"github.com/dmitrijs2005/eatsbalance/internal/dbx"
)

const (
	KeyUserToken            = "user_token"
	KeyUserID               = "user_id"
	KeyUserEmail            = "user_email"
	KeyCalorieGoal          = "calorie_goal"
	KeyNotificationsEnabled = "notifications_enabled"
	KeyDarkMode             = "dark_mode"
	KeyDietType             = "diet_type"
	KeyReminderTime         = "reminder_time"
)

var ErrClosed = errors.New("secure store closed")

// sessionKeys are the only keys ClearUserData removes.
var sessionKeys = []string{KeyUserToken, KeyUserID, KeyUserEmail}

type Store struct {
	db *sql.DB

	mu  sync.RWMutex
	key []byte
}

// Open unlocks the store in db with the key from src. The first Open records
// a verifier; later ones fail with ErrWrongPassphrase on a mismatch.
func Open(ctx context.Context, db *sql.DB, src KeySource) (*Store, error) {
	var key []byte

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		meta := kvstore.NewSQLiteRepository(tx, kvstore.TableMeta)

		k, err := src.Key(ctx, meta)
		if err != nil {
			return err
		}

		saved, err := meta.Get(ctx, metaVerifier)
		switch {
		case errors.Is(err, common.ErrNotFound):
			if err := meta.Set(ctx, metaVerifier, cryptox.MakeVerifier(k)); err != nil {
				return err
			}
		case err != nil:
			return err
		case subtle.ConstantTimeCompare(saved, cryptox.MakeVerifier(k)) == 0:
			return ErrWrongPassphrase
		}

		key = k
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Store{db: db, key: key}, nil
}

// Close wipes the key from memory. The database is left open for its owner.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	common.WipeByteArray(s.key)
	s.key = nil
	return nil
}

func (s *Store) values(db dbx.DBTX) kvstore.Repository {
	return kvstore.NewSQLiteRepository(db, kvstore.TableSecure)
}

func (s *Store) currentKey() ([]byte, error) {
	if s.key == nil {
		return nil, ErrClosed
	}
	return s.key, nil
}

// GetString returns the value under key and whether it was present.
func (s *Store) GetString(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	k, err := s.currentKey()
	if err != nil {
		return "", false, err
	}

	sealed, err := s.values(s.db).Get(ctx, key)
	if errors.Is(err, common.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	plain, err := cryptox.Open(sealed, k)
	if err != nil {
		return "", false, fmt.Errorf("open %s: %w", key, err)
	}
	return string(plain), true, nil
}

func (s *Store) SetString(ctx context.Context, key, value string) error {
	return s.setMany(ctx, map[string]string{key: value})
}

func (s *Store) Remove(ctx context.Context, keys ...string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.currentKey(); err != nil {
		return err
	}
	return s.values(s.db).DeleteKeys(ctx, keys...)
}

func (s *Store) setMany(ctx context.Context, kv map[string]string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	k, err := s.currentKey()
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.values(tx)
		for name, v := range kv {
			sealed, err := cryptox.Seal([]byte(v), k)
			if err != nil {
				return fmt.Errorf("seal %s: %w", name, err)
			}
			if err := repo.Set(ctx, name, sealed); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) GetInt(ctx context.Context, key string, def int) (int, error) {
	v, ok, err := s.GetString(ctx, key)
	if err != nil || !ok {
		return def, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func (s *Store) SetInt(ctx context.Context, key string, v int) error {
	return s.SetString(ctx, key, strconv.Itoa(v))
}

func (s *Store) GetBool(ctx context.Context, key string, def bool) (bool, error) {
	v, ok, err := s.GetString(ctx, key)
	if err != nil || !ok {
		return def, err
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func (s *Store) SetBool(ctx context.Context, key string, v bool) error {
	return s.SetString(ctx, key, strconv.FormatBool(v))
}

// Session returns the persisted session, or the zero Session when none is
// stored.
func (s *Store) Session(ctx context.Context) (models.Session, error) {
	token, ok, err := s.GetString(ctx, KeyUserToken)
	if err != nil || !ok {
		return models.Session{}, err
	}
	id, err := s.GetInt(ctx, KeyUserID, 0)
	if err != nil {
		return models.Session{}, err
	}
	email, _, err := s.GetString(ctx, KeyUserEmail)
	if err != nil {
		return models.Session{}, err
	}
	return models.Session{Token: token, UserID: id, UserEmail: email}, nil
}

// SaveSession writes token, id and email in one transaction.
func (s *Store) SaveSession(ctx context.Context, sess models.Session) error {
	return s.setMany(ctx, map[string]string{
		KeyUserToken: sess.Token,
		KeyUserID:    strconv.Itoa(sess.UserID),
		KeyUserEmail: sess.UserEmail,
	})
}

// ClearUserData removes the session keys and nothing else.
func (s *Store) ClearUserData(ctx context.Context) error {
	return s.Remove(ctx, sessionKeys...)
}

// Preferences reads every preference, falling back to its default.
func (s *Store) Preferences(ctx context.Context) (models.Preferences, error) {
	p := models.DefaultPreferences()
	var err error

	if p.CalorieGoal, err = s.GetInt(ctx, KeyCalorieGoal, p.CalorieGoal); err != nil {
		return models.DefaultPreferences(), err
	}
	if p.NotificationsEnabled, err = s.GetBool(ctx, KeyNotificationsEnabled, p.NotificationsEnabled); err != nil {
		return models.DefaultPreferences(), err
	}
	if p.DarkMode, err = s.GetBool(ctx, KeyDarkMode, p.DarkMode); err != nil {
		return models.DefaultPreferences(), err
	}
	if v, ok, err := s.GetString(ctx, KeyDietType); err != nil {
		return models.DefaultPreferences(), err
	} else if ok {
		p.DietType = v
	}

	return p, nil
}
