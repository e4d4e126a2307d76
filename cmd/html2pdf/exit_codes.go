package main

import "errors"

// Exit codes for the html2pdf CLI.
// Follows Unix conventions: 0=success, 1=fatal error, 2=usage.
const (
	ExitSuccess = 0 // Batch completed, possibly with recoverable item failures
	ExitFatal   = 1 // Validation, browser dispatch, write, config or interrupt
	ExitUsage   = 2 // Invalid flags or unknown command
)

// ErrUsage marks command-line mistakes.
var ErrUsage = errors.New("usage error")

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, ErrUsage) {
		return ExitUsage
	}
	return ExitFatal
}
