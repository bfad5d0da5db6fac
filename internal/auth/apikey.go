package auth

import (
	"kyc-gateway/internal/platform/secrets"
	dErrors "kyc-gateway/pkg/domain-errors"
)

// APIKeyValidator verifies presented API keys against a stored bcrypt hash.
// Only the hash ever reaches configuration; the plaintext key lives with the
// caller.
type APIKeyValidator struct {
	keyHash string
}

// NewAPIKeyValidator builds a validator for the given bcrypt hash.
func NewAPIKeyValidator(keyHash string) *APIKeyValidator {
	return &APIKeyValidator{keyHash: keyHash}
}

// ValidateKey checks a presented key against the stored hash.
func (v *APIKeyValidator) ValidateKey(key string) error {
	if key == "" {
		return dErrors.New(dErrors.CodeUnauthorized, "missing API key")
	}
	if err := secrets.Verify(key, v.keyHash); err != nil {
		return dErrors.New(dErrors.CodeUnauthorized, "invalid API key")
	}
	return nil
}
