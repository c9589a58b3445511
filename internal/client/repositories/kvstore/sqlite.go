package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/eatsbalance/internal/common"
	"github.com/dmitrijs2005/eatsbalance/internal/dbx"
)

type SQLiteRepository struct {
	db    dbx.DBTX
	table string
}

var _ Repository = (*SQLiteRepository)(nil)

// NewSQLiteRepository binds a repository to one of the store tables. It
// panics on an unknown table, which is a programming error.
func NewSQLiteRepository(db dbx.DBTX, table string) *SQLiteRepository {
	if table != TableMeta && table != TableSecure {
		panic(fmt.Sprintf("kvstore: unknown table %q", table))
	}
	return &SQLiteRepository{db: db, table: table}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM `+r.table+` WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s[%s]: %w", r.table, key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO `+r.table+` (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set %s[%s]: %w", r.table, key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	return r.DeleteKeys(ctx, key)
}

func (r *SQLiteRepository) DeleteKeys(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	marks := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}

	_, err := r.db.ExecContext(ctx, `DELETE FROM `+r.table+` WHERE key IN (`+marks+`)`, args...)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", r.table, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM `+r.table)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.table, err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", r.table, err)
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s rows: %w", r.table, err)
	}

	return result, nil
}
