// Package cryptox holds the password hashers used by the local account store.
//
// SHA256Hasher is the default and produces the unsalted hex digest that
// existing account databases were written with. It is deterministic, which
// leaves stored digests open to precomputed-table attacks. Argon2idHasher is
// the salted alternative; it has to be selected explicitly because its
// digests are not interchangeable with SHA-256 ones.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
)

// Hasher turns a plaintext password into a stored digest and checks a
// plaintext against one. Implementations are pure and safe for concurrent use.
type Hasher interface {
	Hash(plaintext string) string
	// Verify is byte-exact: no trimming or case folding happens here.
	Verify(plaintext, digest string) bool
}

const (
	HasherSHA256   = "sha256"
	HasherArgon2id = "argon2id"
)

var ErrUnknownHasher = errors.New("unknown hasher")

// NewHasher returns the hasher registered under name. Empty selects SHA-256.
func NewHasher(name string) (Hasher, error) {
	switch name {
	case "", HasherSHA256:
		return SHA256Hasher{}, nil
	case HasherArgon2id:
		return NewArgon2idHasher(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHasher, name)
	}
}

// SHA256Hasher hashes to the lowercase hex SHA-256 of the UTF-8 bytes.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

func (h SHA256Hasher) Verify(plaintext, digest string) bool {
	return subtle.ConstantTimeCompare([]byte(h.Hash(plaintext)), []byte(digest)) == 1
}
