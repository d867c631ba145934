// Package common defines shared constants and sentinel errors used across
// server and client layers of gophauth. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Signup errors.
	ErrEmailTaken       = errors.New("user with this email already exists")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooShort = errors.New("password is too short")

	// Login and profile errors.
	ErrEmailNotFound   = errors.New("email not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserNotFound    = errors.New("user not found")

	// Access token errors (invalid or malformed bearer).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Refresh token lifecycle errors.
	ErrRefreshTokenNotFound = errors.New("invalid session or user already logged out")
	ErrRefreshTokenMismatch = errors.New("invalid refresh token")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
)

// Kind groups errors into the classes callers branch on.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindAuthentication
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindAuthentication:
		return "authentication"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// KindOf classifies err by the sentinel it wraps. Errors that match none of
// the known sentinels are KindUnknown.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrorValidation),
		errors.Is(err, ErrPasswordMismatch),
		errors.Is(err, ErrPasswordTooShort):
		return KindValidation
	case errors.Is(err, ErrorNotFound),
		errors.Is(err, ErrEmailNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrRefreshTokenNotFound):
		return KindNotFound
	case errors.Is(err, ErrorAlreadyExists),
		errors.Is(err, ErrEmailTaken):
		return KindConflict
	case errors.Is(err, ErrorUnauthorized),
		errors.Is(err, ErrInvalidPassword),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrRefreshTokenMismatch),
		errors.Is(err, ErrRefreshTokenExpired):
		return KindAuthentication
	case errors.Is(err, ErrorInternal):
		return KindPersistence
	default:
		return KindUnknown
	}
}
