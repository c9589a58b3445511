package securestore

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/eatsbalance/internal/client/models"
	"github.com/dmitrijs2005/eatsbalance/internal/client/repositories/kvstore"
	"github.com/dmitrijs2005/eatsbalance/internal/cryptox"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func openStore(t *testing.T, db *sql.DB) *Store {
	t.Helper()
	s, err := Open(context.Background(), db, Passphrase("correct horse"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenDatabase_File(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "store.db")

	db, err := OpenDatabase(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, db.Close())

	db, err = OpenDatabase(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('store_meta','secure_values')`).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestPreferences_Defaults(t *testing.T) {
	s := openStore(t, openDB(t))

	p, err := s.Preferences(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Preferences{CalorieGoal: 2000, NotificationsEnabled: true, DarkMode: false, DietType: "balanced"}, p)
}

func TestPreferences_RoundTrip(t *testing.T) {
	s := openStore(t, openDB(t))
	ctx := context.Background()

	require.NoError(t, s.SetInt(ctx, KeyCalorieGoal, 1800))
	require.NoError(t, s.SetBool(ctx, KeyNotificationsEnabled, false))
	require.NoError(t, s.SetBool(ctx, KeyDarkMode, true))
	require.NoError(t, s.SetString(ctx, KeyDietType, "keto"))

	p, err := s.Preferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Preferences{CalorieGoal: 1800, NotificationsEnabled: false, DarkMode: true, DietType: "keto"}, p)
}

func TestSession_SaveAndClear(t *testing.T) {
	s := openStore(t, openDB(t))
	ctx := context.Background()

	sess, err := s.Session(ctx)
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())

	require.NoError(t, s.SetInt(ctx, KeyCalorieGoal, 2500))
	require.NoError(t, s.SaveSession(ctx, models.Session{Token: "tok", UserID: 12, UserEmail: "ann@example.org"}))

	sess, err = s.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Session{Token: "tok", UserID: 12, UserEmail: "ann@example.org"}, sess)

	require.NoError(t, s.ClearUserData(ctx))

	sess, err = s.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Session{}, sess)

	goal, err := s.GetInt(ctx, KeyCalorieGoal, 0)
	require.NoError(t, err)
	assert.Equal(t, 2500, goal)
}

func TestValuesAreSealedAtRest(t *testing.T) {
	db := openDB(t)
	s := openStore(t, db)
	ctx := context.Background()

	require.NoError(t, s.SetString(ctx, KeyUserEmail, "ann@example.org"))

	raw, err := kvstore.NewSQLiteRepository(db, kvstore.TableSecure).Get(ctx, KeyUserEmail)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "ann@example.org")
}

func TestOpen_WrongPassphrase(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	s := openStore(t, db)
	require.NoError(t, s.SetString(ctx, KeyDietType, "vegan"))
	require.NoError(t, s.Close())

	_, err := Open(ctx, db, Passphrase("wrong"))
	require.ErrorIs(t, err, ErrWrongPassphrase)

	s2 := openStore(t, db)
	v, ok, err := s2.GetString(ctx, KeyDietType)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "vegan", v)
}

func TestKeyFile(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "keys", "device.key")

	s, err := Open(ctx, db, KeyFile(path))
	require.NoError(t, err)
	require.NoError(t, s.SetBool(ctx, KeyDarkMode, true))
	require.NoError(t, s.Close())

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.EqualValues(t, cryptox.KeySize, fi.Size())
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
	}

	s, err = Open(ctx, db, KeyFile(path))
	require.NoError(t, err)
	dark, err := s.GetBool(ctx, KeyDarkMode, false)
	require.NoError(t, err)
	assert.True(t, dark)

	other := filepath.Join(t.TempDir(), "other.key")
	_, err = Open(ctx, db, KeyFile(other))
	assert.ErrorIs(t, err, ErrWrongPassphrase)
}

func TestKeyFile_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.key")
	require.NoError(t, os.WriteFile(path, []byte("short"), 0o600))

	_, err := Open(context.Background(), openDB(t), KeyFile(path))
	assert.ErrorIs(t, err, ErrBadKeyFile)
}

func TestClosedStore(t *testing.T) {
	s := openStore(t, openDB(t))
	require.NoError(t, s.Close())

	_, _, err := s.GetString(context.Background(), KeyUserToken)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.SetString(context.Background(), KeyUserToken, "x"), ErrClosed)
	assert.ErrorIs(t, s.ClearUserData(context.Background()), ErrClosed)
}

func TestGetInt_Corrupt(t *testing.T) {
	s := openStore(t, openDB(t))
	ctx := context.Background()

	require.NoError(t, s.SetString(ctx, KeyCalorieGoal, "lots"))

	v, err := s.GetInt(ctx, KeyCalorieGoal, 2000)
	assert.Error(t, err)
	assert.Equal(t, 2000, v)
}
