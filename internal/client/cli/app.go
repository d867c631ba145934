package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/common"
)

// AuthClient is the server API the App drives. *client.Client implements it.
type AuthClient interface {
	Signup(ctx context.Context, email, password, confirmPassword, name string) (string, error)
	Login(ctx context.Context, email, password string) (*client.LoginResult, error)
	Refresh(ctx context.Context, userID, refreshToken string) (*client.TokenPair, error)
	Info(ctx context.Context, accessToken string) (*client.UserInfo, error)
	Logout(ctx context.Context, accessToken string) (bool, error)
}

// session is what the CLI remembers after a successful login.
type session struct {
	email        string
	userID       string
	accessToken  string
	refreshToken string
}

type App struct {
	api     AuthClient
	reader  *bufio.Reader
	out     io.Writer
	timeout time.Duration
	session *session
}

func NewApp(api AuthClient, in io.Reader, out io.Writer, timeout time.Duration) *App {
	return &App{api: api, reader: bufio.NewReader(in), out: out, timeout: timeout}
}

// Run starts the REPL and returns when input ends or the user exits.
func (a *App) Run(ctx context.Context) {
	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) status() string {
	if a.session == nil {
		return "guest"
	}
	return a.session.email
}

func (a *App) Signup(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return a.fail(err)
	}
	name, err := GetSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return a.fail(err)
	}
	password, err := GetPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return a.fail(err)
	}
	defer common.WipeByteArray(password)
	confirm, err := GetPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return a.fail(err)
	}
	defer common.WipeByteArray(confirm)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	registered, err := a.api.Signup(ctx, email, string(password), string(confirm), name)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Registered %s, you can log in now\n", registered)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return a.fail(err)
	}
	password, err := GetPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return a.fail(err)
	}
	defer common.WipeByteArray(password)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	res, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		return a.fail(err)
	}

	a.session = &session{
		email:        email,
		userID:       res.UserID,
		accessToken:  res.AccessToken,
		refreshToken: res.RefreshToken,
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", res.Name)
	return a.printJSON(res)
}

func (a *App) Refresh(ctx context.Context) error {
	if a.session == nil {
		return a.fail(errNotLoggedIn)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	pair, err := a.api.Refresh(ctx, a.session.userID, a.session.refreshToken)
	if err != nil {
		return a.fail(err)
	}

	a.session.accessToken = pair.AccessToken
	a.session.refreshToken = pair.RefreshToken
	return a.printJSON(pair)
}

func (a *App) Info(ctx context.Context) error {
	if a.session == nil {
		return a.fail(errNotLoggedIn)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	info, err := a.api.Info(ctx, a.session.accessToken)
	if err != nil {
		return a.fail(err)
	}
	return a.printJSON(info)
}

// Logout revokes the refresh token on the server and forgets the session.
// The local session is dropped even if the server call fails.
func (a *App) Logout(ctx context.Context) error {
	if a.session == nil {
		return a.fail(errNotLoggedIn)
	}
	accessToken := a.session.accessToken
	a.session = nil

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	if _, err := a.api.Logout(ctx, accessToken); err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, string(b))
	return nil
}

func (a *App) fail(err error) error {
	fmt.Fprintf(a.out, "error: %v\n", err)
	return err
}
