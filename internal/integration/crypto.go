// Package integration syncs asset balances from external providers
// (exchanges, wallets) into the ledger as balance-adjustment transactions,
// and keeps provider credentials encrypted at rest.
package integration

import (
	"fmt"

	"github.com/fernet/fernet-go"

	"github.com/ymoney/networth-backend/internal/apperrors"
)

// Crypter encrypts and decrypts provider credentials with a fernet key.
// Tokens are stored in the integration table; plaintext exists only in
// memory during a sync.
type Crypter struct {
	keys []*fernet.Key
}

// NewCrypter parses a base64 fernet key. An empty key yields a nil Crypter,
// which refuses to encrypt; integrations without credentials still work.
func NewCrypter(key string) (*Crypter, error) {
	if key == "" {
		return nil, nil
	}
	keys, err := fernet.DecodeKeys(key)
	if err != nil {
		return nil, fmt.Errorf("invalid fernet key: %w", err)
	}
	return &Crypter{keys: keys}, nil
}

// Encrypt returns the fernet token for a plaintext secret. An empty
// plaintext passes through as empty.
func (c *Crypter) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	if c == nil {
		return "", apperrors.ErrMissingEncryptionKey
	}
	token, err := fernet.EncryptAndSign([]byte(plaintext), c.keys[0])
	if err != nil {
		return "", fmt.Errorf("failed to encrypt credential: %w", err)
	}
	return string(token), nil
}

// Decrypt returns the plaintext for a stored fernet token. Tokens never
// expire; the ttl of 0 disables the age check.
func (c *Crypter) Decrypt(token string) (string, error) {
	if token == "" {
		return "", nil
	}
	if c == nil {
		return "", apperrors.ErrMissingEncryptionKey
	}
	plaintext := fernet.VerifyAndDecrypt([]byte(token), 0, c.keys)
	if plaintext == nil {
		return "", apperrors.ErrDataInconsistency
	}
	return string(plaintext), nil
}
