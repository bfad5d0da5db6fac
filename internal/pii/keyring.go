// Package pii converts extracted identity fields into salted, irreversible
// digests. Raw values never leave the request scope; only the digest and its
// salt are handed to the audit layer.
package pii

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// Keyring owns the process-wide secret material for PII handling: the salt
// entropy source and the reserved key for future reversible export
// encryption. It is loaded once at startup and passed explicitly; nothing in
// this package keeps package-level state.
type Keyring struct {
	encryptionKey []byte
	entropy       io.Reader
}

// Option configures a Keyring.
type Option func(*Keyring)

// WithEntropy overrides the salt entropy source. Tests use this to make salts
// deterministic; production code never should.
func WithEntropy(r io.Reader) Option {
	return func(k *Keyring) {
		k.entropy = r
	}
}

// NewKeyring builds a Keyring from a base64-encoded 32-byte secret. An empty
// secret generates fresh material, which is fine for single-process
// deployments where hashed records never need the export key again.
func NewKeyring(secret string, opts ...Option) (*Keyring, error) {
	k := &Keyring{entropy: rand.Reader}

	if secret == "" {
		k.encryptionKey = make([]byte, 32)
		if _, err := rand.Read(k.encryptionKey); err != nil {
			return nil, fmt.Errorf("generate encryption key: %w", err)
		}
	} else {
		key, err := base64.StdEncoding.DecodeString(secret)
		if err != nil {
			return nil, fmt.Errorf("decode pii secret: %w", err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("pii secret must decode to 32 bytes, got %d", len(key))
		}
		k.encryptionKey = key
	}

	for _, opt := range opts {
		opt(k)
	}
	return k, nil
}

// EncryptionKey exposes the reserved export-encryption key. No component
// encrypts today; the accessor pins the key's lifecycle to the keyring so a
// future export path cannot reach for ambient global state.
func (k *Keyring) EncryptionKey() []byte {
	out := make([]byte, len(k.encryptionKey))
	copy(out, k.encryptionKey)
	return out
}
