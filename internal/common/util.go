package common

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateRandByteArray returns size bytes from crypto/rand.
// It panics if the system random source fails, which crypto/rand
// documents as unrecoverable.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// MakeRandToken returns size random bytes encoded as unpadded base64url,
// suitable for opaque bearer secrets.
func MakeRandToken(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// WipeByteArray overwrites b with zeros. Nil is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
