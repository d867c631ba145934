// Package users declares the user store contract and its PostgreSQL
// implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Repository persists and looks up users.
type Repository interface {
	// Create inserts user. Implementations return common.ErrorAlreadyExists
	// when the email is already registered.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByEmail returns the user with exactly this email, or
	// common.ErrorNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns the user with this id, or common.ErrorNotFound.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
