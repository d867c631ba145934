package services

import (
	"context"
	"database/sql"
	"errors"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/cryptox"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

type SignupInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	Name            string
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	UserID       string
	Name         string
}

type UserInfo struct {
	Email string
	Name  string
}

// UserService implements signup, login, refresh, profile lookup and logout.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *cryptox.Hasher
	tokens      *TokenService
	logger      logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher *cryptox.Hasher,
	tokens *TokenService, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger.With("module", "users"),
	}
}

// Signup registers a new user and returns the stored email. Checks run in
// this order: email taken, passwords differ, password too short.
// No tokens are issued.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (string, error) {
	repo := s.repomanager.Users(s.db)

	_, err := repo.GetUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return "", common.ErrEmailTaken
	case !errors.Is(err, common.ErrorNotFound):
		s.logger.Error(ctx, "signup lookup failed", "error", err)
		return "", common.ErrorInternal
	}

	if in.Password != in.ConfirmPassword {
		return "", common.ErrPasswordMismatch
	}

	if utf8.RuneCountInString(in.Password) < common.MinPasswordLength {
		return "", common.ErrPasswordTooShort
	}

	salt, err := s.hasher.NewSalt()
	if err != nil {
		s.logger.Error(ctx, "salt generation failed", "error", err)
		return "", common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: s.hasher.Hash(in.Password, salt),
		PasswordSalt: salt,
		Name:         in.Name,
	}

	if _, err := repo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", common.ErrEmailTaken
		}
		s.logger.Error(ctx, "user create failed", "error", err)
		return "", common.ErrorInternal
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)

	return user.Email, nil
}

// Login checks the credentials and issues a new token pair, replacing any
// refresh token the user held before.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repomanager.Users(s.db).GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrEmailNotFound
		}
		s.logger.Error(ctx, "login lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	if !s.hasher.Verify(password, user.PasswordSalt, user.PasswordHash) {
		return nil, common.ErrInvalidPassword
	}

	pair, err := s.tokens.IssueTokenPair(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		UserID:       user.ID,
		Name:         user.Name,
	}, nil
}

// Refresh exchanges a valid refresh token for a new pair. The presented token
// stops working once this returns successfully.
func (s *UserService) Refresh(ctx context.Context, userID, refreshToken string) (*TokenPair, error) {
	return s.tokens.RotateRefreshToken(ctx, userID, refreshToken)
}

func (s *UserService) GetInfo(ctx context.Context, userID string) (*UserInfo, error) {
	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		s.logger.Error(ctx, "profile lookup failed", "user_id", userID, "error", err)
		return nil, common.ErrorInternal
	}

	return &UserInfo{Email: user.Email, Name: user.Name}, nil
}

// Logout revokes the user's refresh token. The access token stays valid
// until it expires.
func (s *UserService) Logout(ctx context.Context, userID string) (bool, error) {
	return s.tokens.RevokeActiveToken(ctx, userID)
}
