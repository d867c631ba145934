package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetActiveForUser(ctx context.Context, userID string) (*models.RefreshToken, error) {
	query := `
		SELECT id, user_id, token_hash, token_salt, issued_at, expires_at
		FROM refresh_tokens
		WHERE user_id = $1
		FOR UPDATE
	`
	return r.scanOne(ctx, query, userID)
}

// Replace upserts on the unique user_id, so concurrent issuances for one user
// never leave two rows behind. Every column, id included, is overwritten.
func (r *PostgresRepository) Replace(ctx context.Context, token *models.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (id, user_id, token_hash, token_salt, issued_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET id = EXCLUDED.id,
			token_hash = EXCLUDED.token_hash,
			token_salt = EXCLUDED.token_salt,
			issued_at = EXCLUDED.issued_at,
			expires_at = EXCLUDED.expires_at
	`
	_, err := r.db.ExecContext(ctx, query,
		token.ID, token.UserID, token.TokenHash, token.TokenSalt, token.IssuedAt, token.ExpiresAt)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return common.ErrUserNotFound
		}
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.RefreshToken, error) {
	query := `
		SELECT id, user_id, token_hash, token_salt, issued_at, expires_at
		FROM refresh_tokens
		WHERE id = $1
	`
	return r.scanOne(ctx, query, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	query := `
		DELETE FROM refresh_tokens
		WHERE id = $1
	`
	return r.exec(ctx, query, id)
}

func (r *PostgresRepository) DeleteForUser(ctx context.Context, userID string) (bool, error) {
	query := `
		DELETE FROM refresh_tokens
		WHERE user_id = $1
	`
	return r.exec(ctx, query, userID)
}

func (r *PostgresRepository) exec(ctx context.Context, query string, arg any) (bool, error) {
	res, err := r.db.ExecContext(ctx, query, arg)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) scanOne(ctx context.Context, query string, arg any) (*models.RefreshToken, error) {
	t := &models.RefreshToken{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&t.ID, &t.UserID, &t.TokenHash, &t.TokenSalt, &t.IssuedAt, &t.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}
