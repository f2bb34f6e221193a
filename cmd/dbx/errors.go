package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// errUsage marks user errors that should exit with code 2, matching the
// exit code cobra-style usage failures produce.
var errUsage = errors.New("usage error")

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// usageArgs wraps a cobra positional validator so its failures exit with
// the usage code like the hand-rolled target checks do.
func usageArgs(wrapped cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := wrapped(cmd, args); err != nil {
			return fmt.Errorf("%w: %s", errUsage, err)
		}
		return nil
	}
}

// exitCodeError carries a child process exit code to Execute so test, just
// and editor failures propagate verbatim.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return "command failed"
}

func (e *exitCodeError) Unwrap() error { return e.err }
