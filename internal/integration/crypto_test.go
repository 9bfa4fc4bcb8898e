package integration

import (
	"errors"
	"testing"

	"github.com/ymoney/networth-backend/internal/apperrors"
)

const testFernetKey = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="

func TestCrypter(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		crypter, err := NewCrypter(testFernetKey)
		if err != nil {
			t.Fatalf("NewCrypter failed: %v", err)
		}

		token, err := crypter.Encrypt("api-secret-value")
		if err != nil {
			t.Fatalf("Encrypt failed: %v", err)
		}
		if token == "api-secret-value" {
			t.Fatal("Token must not equal the plaintext")
		}

		plaintext, err := crypter.Decrypt(token)
		if err != nil {
			t.Fatalf("Decrypt failed: %v", err)
		}
		if plaintext != "api-secret-value" {
			t.Errorf("Expected round-tripped plaintext, got %q", plaintext)
		}
	})

	t.Run("empty strings pass through", func(t *testing.T) {
		crypter, err := NewCrypter(testFernetKey)
		if err != nil {
			t.Fatalf("NewCrypter failed: %v", err)
		}

		if token, err := crypter.Encrypt(""); err != nil || token != "" {
			t.Errorf("Expected empty token, got %q, %v", token, err)
		}
		if plaintext, err := crypter.Decrypt(""); err != nil || plaintext != "" {
			t.Errorf("Expected empty plaintext, got %q, %v", plaintext, err)
		}
	})

	t.Run("no key refuses to encrypt", func(t *testing.T) {
		crypter, err := NewCrypter("")
		if err != nil {
			t.Fatalf("NewCrypter failed: %v", err)
		}
		if crypter != nil {
			t.Fatal("Expected a nil crypter for an empty key")
		}

		_, err = crypter.Encrypt("secret")
		if !errors.Is(err, apperrors.ErrMissingEncryptionKey) {
			t.Errorf("Expected ErrMissingEncryptionKey, got %v", err)
		}
	})

	t.Run("tampered token fails to decrypt", func(t *testing.T) {
		crypter, err := NewCrypter(testFernetKey)
		if err != nil {
			t.Fatalf("NewCrypter failed: %v", err)
		}

		_, err = crypter.Decrypt("not a fernet token")
		if !errors.Is(err, apperrors.ErrDataInconsistency) {
			t.Errorf("Expected ErrDataInconsistency, got %v", err)
		}
	})

	t.Run("garbage key is rejected", func(t *testing.T) {
		if _, err := NewCrypter("???"); err == nil {
			t.Error("Expected an error for an undecodable key")
		}
	})
}
