package models

import "time"

// RefreshToken is the stored form of an outstanding refresh credential.
// Only the salted hash of the opaque token is persisted. A user owns at most
// one RefreshToken at a time.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash []byte
	TokenSalt []byte
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token is past its expiry at now.
func (t *RefreshToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
