package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/cryptox"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
)

// memStore backs both fake repositories so that token rows can check their
// owning user the way the foreign key does.
type memStore struct {
	mu     sync.Mutex
	users  map[string]*models.User
	tokens map[string]*models.RefreshToken // keyed by user id

	usersErr  error
	tokensErr error
	createErr error
}

func newMemStore() *memStore {
	return &memStore{
		users:  map[string]*models.User{},
		tokens: map[string]*models.RefreshToken{},
	}
}

func (s *memStore) tokenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

func (s *memStore) token(userID string) *models.RefreshToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[userID]
	if !ok {
		return nil
	}
	cp := *t
	return &cp
}

func (s *memStore) backdate(userID string, expires time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[userID].ExpiresAt = expires
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.createErr != nil {
		return nil, r.s.createErr
	}
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	cp := *u
	cp.CreatedAt = time.Now()
	r.s.users[u.ID] = &cp
	return &cp, nil
}

func (r memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.usersErr != nil {
		return nil, r.s.usersErr
	}
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.usersErr != nil {
		return nil, r.s.usersErr
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

type memTokens struct{ s *memStore }

func (r memTokens) GetActiveForUser(_ context.Context, userID string) (*models.RefreshToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.tokensErr != nil {
		return nil, r.s.tokensErr
	}
	t, ok := r.s.tokens[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *t
	return &cp, nil
}

func (r memTokens) Replace(_ context.Context, t *models.RefreshToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.tokensErr != nil {
		return r.s.tokensErr
	}
	if _, ok := r.s.users[t.UserID]; !ok {
		return common.ErrUserNotFound
	}
	cp := *t
	r.s.tokens[t.UserID] = &cp
	return nil
}

func (r memTokens) FindByID(_ context.Context, id string) (*models.RefreshToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tokens {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memTokens) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for uid, t := range r.s.tokens {
		if t.ID == id {
			delete(r.s.tokens, uid)
			return true, nil
		}
	}
	return false, nil
}

func (r memTokens) DeleteForUser(_ context.Context, userID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.tokensErr != nil {
		return false, r.s.tokensErr
	}
	_, ok := r.s.tokens[userID]
	delete(r.s.tokens, userID)
	return ok, nil
}

type fakeRepoManager struct{ s *memStore }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return memUsers{m.s} }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return memTokens{m.s} }

type fixture struct {
	store  *memStore
	mock   sqlmock.Sqlmock
	hasher *cryptox.Hasher
	tokens *TokenService
	users  *UserService
	signer *auth.Signer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := newMemStore()
	rm := &fakeRepoManager{s: store}
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	hasher := cryptox.NewHasher(cryptox.DefaultIterations)
	signer := auth.NewSigner([]byte("test-secret"), "gophauth", "gophauth-clients", 15*time.Minute)

	tokens := NewTokenService(db, rm, hasher, signer, 14*24*time.Hour, logger)

	return &fixture{
		store:  store,
		mock:   mock,
		hasher: hasher,
		tokens: tokens,
		users:  NewUserService(db, rm, hasher, tokens, logger),
		signer: signer,
	}
}

// seedUser stores a user with the given password and returns its id.
func (f *fixture) seedUser(t *testing.T, id, email, password string) string {
	t.Helper()
	salt, err := f.hasher.NewSalt()
	if err != nil {
		t.Fatalf("NewSalt: %v", err)
	}
	f.store.users[id] = &models.User{
		ID:           id,
		Email:        email,
		PasswordHash: f.hasher.Hash(password, salt),
		PasswordSalt: salt,
		Name:         "Test " + id,
	}
	return id
}

func (f *fixture) expectCommittedTx() {
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
}

func (f *fixture) expectRolledBackTx() {
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
}
