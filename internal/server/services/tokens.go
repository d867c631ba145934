// Package services holds the business logic of the server: the token
// lifecycle (issue, validate, rotate, revoke) and the user workflows built on
// top of it.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/cryptox"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// RefreshTokenSize is the number of random bytes in a refresh token.
const RefreshTokenSize = 32

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenService issues, validates, rotates and revokes token pairs. A user has
// at most one refresh token at any time; issuing a new pair discards the old one.
type TokenService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	hasher          *cryptox.Hasher
	signer          *auth.Signer
	refreshTokenTTL time.Duration
	now             func() time.Time
	logger          logging.Logger
}

func NewTokenService(db *sql.DB, m repomanager.RepositoryManager, hasher *cryptox.Hasher,
	signer *auth.Signer, refreshTokenTTL time.Duration, logger logging.Logger) *TokenService {
	return &TokenService{
		db:              db,
		repomanager:     m,
		hasher:          hasher,
		signer:          signer,
		refreshTokenTTL: refreshTokenTTL,
		now:             time.Now,
		logger:          logger.With("module", "tokens"),
	}
}

// IssueTokenPair signs an access token for userID and stores a fresh refresh
// token in place of any previous one.
func (s *TokenService) IssueTokenPair(ctx context.Context, userID string) (*TokenPair, error) {
	pair, err := s.issueTokenPair(ctx, s.db, userID)
	if err != nil {
		return nil, s.mask(ctx, "issue token pair", userID, err)
	}
	return pair, nil
}

// ValidateRefreshToken checks presented against the user's active token and
// returns the owning user id. Failures are, in order of checking,
// common.ErrRefreshTokenNotFound, common.ErrRefreshTokenMismatch and
// common.ErrRefreshTokenExpired.
func (s *TokenService) ValidateRefreshToken(ctx context.Context, userID, presented string) (string, error) {
	owner, err := s.validateRefreshToken(ctx, s.db, userID, presented)
	if err != nil {
		return "", s.mask(ctx, "validate refresh token", userID, err)
	}
	return owner, nil
}

// RotateRefreshToken validates presented and issues a new pair in one
// transaction. The token row stays locked between the two steps, so of two
// concurrent rotations with the same token only one succeeds.
func (s *TokenService) RotateRefreshToken(ctx context.Context, userID, presented string) (*TokenPair, error) {
	var pair *TokenPair

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		owner, err := s.validateRefreshToken(ctx, tx, userID, presented)
		if err != nil {
			return err
		}

		pair, err = s.issueTokenPair(ctx, tx, owner)
		return err
	})
	if err != nil {
		return nil, s.mask(ctx, "rotate refresh token", userID, err)
	}

	return pair, nil
}

// RevokeActiveToken deletes the user's refresh token, if any, and reports
// whether one existed. Revoking twice is not an error.
func (s *TokenService) RevokeActiveToken(ctx context.Context, userID string) (bool, error) {
	existed, err := s.repomanager.RefreshTokens(s.db).DeleteForUser(ctx, userID)
	if err != nil {
		return false, s.mask(ctx, "revoke refresh token", userID, err)
	}
	return existed, nil
}

// mask passes domain errors through and replaces anything else with
// common.ErrorInternal after logging it.
func (s *TokenService) mask(ctx context.Context, op, userID string, err error) error {
	if common.KindOf(err) != common.KindUnknown {
		return err
	}
	s.logger.Error(ctx, op+" failed", "user_id", userID, "error", err)
	return common.ErrorInternal
}

func (s *TokenService) issueTokenPair(ctx context.Context, db dbx.DBTX, userID string) (*TokenPair, error) {
	if _, err := s.repomanager.Users(db).GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	accessToken, err := s.signer.GenerateToken(userID)
	if err != nil {
		return nil, err
	}

	plain, err := common.MakeRandToken(RefreshTokenSize)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	salt, err := s.hasher.NewSalt()
	if err != nil {
		return nil, err
	}

	issued := s.now().UTC()
	token := &models.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		TokenHash: s.hasher.Hash(plain, salt),
		TokenSalt: salt,
		IssuedAt:  issued,
		ExpiresAt: issued.Add(s.refreshTokenTTL),
	}

	if err := s.repomanager.RefreshTokens(db).Replace(ctx, token); err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	s.logger.Debug(ctx, "token pair issued", "user_id", userID, "token_id", token.ID)

	return &TokenPair{AccessToken: accessToken, RefreshToken: plain}, nil
}

func (s *TokenService) validateRefreshToken(ctx context.Context, db dbx.DBTX, userID, presented string) (string, error) {
	token, err := s.repomanager.RefreshTokens(db).GetActiveForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrRefreshTokenNotFound
		}
		return "", fmt.Errorf("lookup refresh token: %w", err)
	}

	if !s.hasher.Verify(presented, token.TokenSalt, token.TokenHash) {
		return "", common.ErrRefreshTokenMismatch
	}

	if token.Expired(s.now()) {
		return "", common.ErrRefreshTokenExpired
	}

	return token.UserID, nil
}
