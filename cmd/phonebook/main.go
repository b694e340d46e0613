// Package main provides the phonebook command: an interactive contact
// manager backed by PostgreSQL or SQLite.
package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// errStartup marks configuration and connection failures, which abort the
// program before the menu is shown.
var errStartup = errors.New("startup failed")

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the root command with args and returns the exit code.
func run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "phonebook:", err)
		return exitCode(err)
	}
	return exitSuccess
}

func exitCode(err error) int {
	if errors.Is(err, errStartup) {
		return exitSysError
	}
	return exitUserError
}

// startupError wraps err so that exitCode reports a system error.
func startupError(step string, err error) error {
	return fmt.Errorf("%w: %s: %w", errStartup, step, err)
}
