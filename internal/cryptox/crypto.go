// Package cryptox holds the primitives behind the local secure store:
// argon2id key derivation and AES-256-GCM sealing of small values.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"errors"

	"github.com/dmitrijs2005/eatsbalance/internal/common"
	"golang.org/x/crypto/argon2"
)

// KeySize is the length of keys produced by DeriveKey (AES-256).
const KeySize = 32

// ErrCiphertextTooShort is returned by Open when the input cannot even hold a nonce.
var ErrCiphertextTooShort = errors.New("ciphertext too short")

// DeriveKey stretches a passphrase into a KeySize key with argon2id.
func DeriveKey(passphrase []byte, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, KeySize)
}

// MakeVerifier returns a value that can be stored next to the salt to detect
// a wrong passphrase without keeping the key itself.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// Seal encrypts plaintext with AES-GCM under key. The random nonce is
// prepended to the returned ciphertext.
func Seal(plaintext, key []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	nonce := common.GenerateRandByteArray(aead.NonceSize())
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open reverses Seal.
func Open(sealed, key []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	ns := aead.NonceSize()
	if len(sealed) < ns {
		return nil, ErrCiphertextTooShort
	}
	return aead.Open(nil, sealed[:ns], sealed[ns:], nil)
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
