package models

import "time"

// User is a registered identity. PasswordHash is derived from the plaintext
// password and PasswordSalt; the plaintext is never stored.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	PasswordSalt []byte
	Name         string
	CreatedAt    time.Time
}
