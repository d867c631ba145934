package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var errNotLoggedIn = errors.New("not logged in")

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Refresh(ctx context.Context) error
	Info(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// It returns on EOF or on "exit"/"quit". Command errors are reported by the
// commands themselves and do not stop the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "gophauth [%s]> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch cmd := parts[0]; cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: info, refresh, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: signup, login, exit")
			}
		case "signup", "register":
			_ = a.Signup(ctx)
		case "login":
			_ = a.Login(ctx)
		case "refresh":
			_ = a.Refresh(ctx)
		case "info":
			_ = a.Info(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
