// Package refreshtokens declares the refresh token store contract and its
// PostgreSQL implementation. The store keeps at most one token per user.
package refreshtokens

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Repository defines operations for issuing, retrieving and revoking refresh tokens.
type Repository interface {
	// GetActiveForUser returns the user's current token, or common.ErrorNotFound.
	// Inside a transaction the row stays locked until commit.
	GetActiveForUser(ctx context.Context, userID string) (*models.RefreshToken, error)

	// Replace stores token as the only token of token.UserID, discarding any
	// previous one in the same statement.
	Replace(ctx context.Context, token *models.RefreshToken) error

	// FindByID returns the token with this id, or common.ErrorNotFound.
	FindByID(ctx context.Context, id string) (*models.RefreshToken, error)

	// Delete removes the token with this id and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)

	// DeleteForUser removes the user's token and reports whether one existed.
	DeleteForUser(ctx context.Context, userID string) (bool, error)
}
