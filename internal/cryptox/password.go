// Package cryptox implements salted secret hashing used for stored passwords
// and refresh tokens.
package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the length of every generated salt, in bytes.
	SaltSize = 32
	// KeySize is the length of a derived digest, in bytes.
	KeySize = 32
	// DefaultIterations is the PBKDF2 work factor used when none is configured.
	DefaultIterations = 10000
)

// Hasher derives digests with PBKDF2-HMAC-SHA256.
// The zero value is not usable; construct it with NewHasher.
type Hasher struct {
	iterations int
}

// NewHasher returns a Hasher running the given number of PBKDF2 iterations.
// Values below DefaultIterations are raised to DefaultIterations.
func NewHasher(iterations int) *Hasher {
	if iterations < DefaultIterations {
		iterations = DefaultIterations
	}
	return &Hasher{iterations: iterations}
}

// NewSalt returns SaltSize bytes from crypto/rand.
func (h *Hasher) NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// Hash derives a KeySize digest of secret under salt.
// The result is deterministic for a given secret, salt and iteration count.
func (h *Hasher) Hash(secret string, salt []byte) []byte {
	return pbkdf2.Key([]byte(secret), salt, h.iterations, KeySize, sha256.New)
}

// Verify recomputes the digest of secret under salt and compares it with
// digest in constant time.
func (h *Hasher) Verify(secret string, salt, digest []byte) bool {
	candidate := h.Hash(secret, salt)
	return subtle.ConstantTimeCompare(candidate, digest) == 1
}
