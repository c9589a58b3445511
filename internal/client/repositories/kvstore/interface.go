package kvstore

import "context"

type Repository interface {
	// Get returns common.ErrNotFound when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	DeleteKeys(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
}

// Table names created by the store migrations.
const (
	TableMeta   = "store_meta"
	TableSecure = "secure_values"
)
