package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/deploymenttheory/go-api-account-client/response"
)

// http://tldp.org/LDP/abs/html/exitcodes.html
const (
	ExitSuccess = iota
	ExitError
	ExitBadConnection
	ExitInterrupted
	ExitIO
	ExitBadArgs = 128
)

// usageError marks failures caused by how the command was invoked.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func badArgs(format string, a ...any) error {
	return &usageError{err: fmt.Errorf(format, a...)}
}

// exitCode maps an error onto the process exit status.
func exitCode(err error) int {
	var (
		usage     *usageError
		transport *response.TransportError
		config    *response.ConfigurationError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &usage), errors.As(err, &config):
		return ExitBadArgs
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.As(err, &transport):
		return ExitBadConnection
	default:
		return ExitError
	}
}

// osExit is replaced in tests.
var osExit = os.Exit

// exitWithError reports err on w and exits with code. A failed write still exits with code.
func exitWithError(w io.Writer, code int, err error) {
	_, _ = fmt.Fprintln(w, "Error:", err)
	osExit(code)
}
