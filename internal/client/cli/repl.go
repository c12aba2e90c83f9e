package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL needs. App satisfies it; tests
// provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
}

// runREPL reads commands from reader until EOF, "exit" or "quit".
// The same reader serves the prompts inside commands, so both share one
// buffer over the input.
//
// Command errors are ignored here; handlers report to the user themselves.
// signup/login are only offered while logged out, profile/logout only
// while logged in.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "auth %s> ", statusFn())
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch {
		case cmd == "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: profile, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: signup, login, exit")
			}

		case cmd == "exit" || cmd == "quit":
			fmt.Fprintln(w, "Bye!")
			return

		case (cmd == "signup" || cmd == "login") && a.isLoggedIn():
			fmt.Fprintln(w, "Already logged in; logout first.")

		case cmd == "signup":
			_ = a.Signup(ctx)

		case cmd == "login":
			_ = a.Login(ctx)

		case (cmd == "profile" || cmd == "logout") && !a.isLoggedIn():
			fmt.Fprintln(w, "Not logged in.")

		case cmd == "profile":
			_ = a.Profile(ctx)

		case cmd == "logout":
			_ = a.Logout(ctx)

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
