// Package cli implements the interactive gophauth command line: a small REPL
// that signs up, logs in, refreshes tokens, shows the profile and logs out
// against a running server.
package cli
