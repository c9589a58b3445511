package securestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/eatsbalance/internal/client/repositories/kvstore"
	"github.com/dmitrijs2005/eatsbalance/internal/common"
	"github.com/dmitrijs2005/eatsbalance/internal/cryptox"
)

const (
	metaSalt     = "salt"
	metaVerifier = "verifier"

	saltSize = 16
)

var (
	ErrWrongPassphrase = errors.New("wrong passphrase or key file")
	ErrBadKeyFile      = errors.New("key file is corrupt")
)

// KeySource produces the store key. meta is the plain store_meta table.
type KeySource interface {
	Key(ctx context.Context, meta kvstore.Repository) ([]byte, error)
}

// Passphrase derives the key with argon2id. The salt is created on first use.
type Passphrase []byte

func (p Passphrase) Key(ctx context.Context, meta kvstore.Repository) ([]byte, error) {
	salt, err := meta.Get(ctx, metaSalt)
	if errors.Is(err, common.ErrNotFound) {
		salt = common.GenerateRandByteArray(saltSize)
		if err := meta.Set(ctx, metaSalt, salt); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return cryptox.DeriveKey(p, salt), nil
}

// KeyFile reads a raw key from disk, creating it with mode 0600 if missing.
type KeyFile string

func (f KeyFile) Key(context.Context, kvstore.Repository) ([]byte, error) {
	path := string(f)

	key, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f.create()
	}
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	if len(key) != cryptox.KeySize {
		return nil, ErrBadKeyFile
	}

	return key, nil
}

func (f KeyFile) create() ([]byte, error) {
	path := string(f)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("key file dir: %w", err)
	}

	key := common.GenerateRandByteArray(cryptox.KeySize)

	fh, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create key file: %w", err)
	}
	defer fh.Close()

	if _, err := fh.Write(key); err != nil {
		return nil, fmt.Errorf("write key file: %w", err)
	}

	return key, nil
}
