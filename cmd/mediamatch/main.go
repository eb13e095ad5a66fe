// Command mediamatch is the CLI entrypoint for mediamatch.
//
// It reconciles frontend media assets (box art, logos, preview videos)
// against a catalog and a canonical ROM collection: run performs the
// reconciliation, buckets lists what a run would process, and check
// diagnoses the configuration without touching any file.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	err := newRootCmd().Execute()
	if err == nil {
		return 0
	}
	// Errors raised after the logger exists were already logged.
	var logged *loggedError
	if errors.As(err, &logged) {
		return logged.code
	}
	fmt.Fprintf(os.Stderr, "mediamatch: %v\n", err)
	return 1
}

// loggedError carries the exit code of a failure that was already reported
// through the logger.
type loggedError struct {
	err  error
	code int
}

func (e *loggedError) Error() string { return e.err.Error() }

func (e *loggedError) Unwrap() error { return e.err }

// Exit codes.
const (
	exitFailure     = 1   // configuration error or failed file operations
	exitInterrupted = 130 // SIGINT/SIGTERM
)
