package pii

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
)

const saltBytes = 16

// HashedField is the storable form of one identity field. Hash and Salt are
// either both present or both absent.
type HashedField struct {
	Hash *string `json:"hash"`
	Salt *string `json:"salt"`
}

// Present reports whether the source value existed and was hashed.
func (f HashedField) Present() bool {
	return f.Hash != nil && f.Salt != nil
}

// HashedFieldSet maps the four named KYC fields to their digests.
type HashedFieldSet struct {
	Name     HashedField `json:"name"`
	DOB      HashedField `json:"dob"`
	IDNumber HashedField `json:"id_number"`
	Address  HashedField `json:"address"`
}

// HashWithSalt digests a field value with a fresh random salt. Absent or
// empty values propagate as absent: hashing the empty string would collapse
// every missing field onto one digest. The digest is hex-encoded SHA-256 over
// value||salt; the salt is returned base64-encoded.
func (k *Keyring) HashWithSalt(value *string) (HashedField, error) {
	if value == nil || *value == "" {
		return HashedField{}, nil
	}

	salt := make([]byte, saltBytes)
	if _, err := io.ReadFull(k.entropy, salt); err != nil {
		return HashedField{}, fmt.Errorf("read salt: %w", err)
	}

	sum := sha256.Sum256(append([]byte(*value), salt...))
	hash := hex.EncodeToString(sum[:])
	encodedSalt := base64.StdEncoding.EncodeToString(salt)
	return HashedField{Hash: &hash, Salt: &encodedSalt}, nil
}

// HashKYCFields fans HashWithSalt out over the four named fields. Salts are
// never shared across fields or requests.
func (k *Keyring) HashKYCFields(name, dob, idNumber, address *string) (HashedFieldSet, error) {
	var set HashedFieldSet
	var err error

	if set.Name, err = k.HashWithSalt(name); err != nil {
		return HashedFieldSet{}, err
	}
	if set.DOB, err = k.HashWithSalt(dob); err != nil {
		return HashedFieldSet{}, err
	}
	if set.IDNumber, err = k.HashWithSalt(idNumber); err != nil {
		return HashedFieldSet{}, err
	}
	if set.Address, err = k.HashWithSalt(address); err != nil {
		return HashedFieldSet{}, err
	}
	return set, nil
}
