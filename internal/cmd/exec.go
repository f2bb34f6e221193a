package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/dbxdev/dbx/internal/log"
)

// ErrNotFound indicates the external tool is not installed or not in PATH.
// Callers use this to distinguish a missing tool from a tool that ran and
// exited non-zero.
var ErrNotFound = errors.New("command not found")

// wrapNotFound converts exec's "executable file not found" into ErrNotFound
// with installation guidance.
func wrapNotFound(name string, err error) error {
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%w: %s (install it and make sure it is on your PATH)", ErrNotFound, name)
	}
	return err
}

// Run executes a command and returns stderr in the error message if it fails.
func Run(cmd *exec.Cmd) error {
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if errMsg := strings.TrimSpace(stderr.String()); errMsg != "" {
			return fmt.Errorf("%s", errMsg)
		}
		return err
	}
	return nil
}

// Output executes a command and returns stdout, with stderr in error if it fails.
func Output(cmd *exec.Cmd) ([]byte, error) {
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		if errMsg := strings.TrimSpace(stderr.String()); errMsg != "" {
			return nil, fmt.Errorf("%s", errMsg)
		}
		return nil, err
	}
	return output, nil
}

// RunContext executes name with args in dir, echoing the invocation when
// verbose logging is enabled. No timeout is applied: a hung child blocks
// the run until the signal context is cancelled, which matches the
// documented behavior of the tool.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	log.FromContext(ctx).Command(name, args...)

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	if err := Run(c); err != nil {
		return wrapNotFound(name, err)
	}
	return nil
}

// OutputContext executes name with args in dir and returns stdout, echoing
// the invocation when verbose logging is enabled.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	log.FromContext(ctx).Command(name, args...)

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	out, err := Output(c)
	if err != nil {
		return nil, wrapNotFound(name, err)
	}
	return out, nil
}

// RunStreaming executes name with args in dir with stdin/stdout/stderr
// connected to the current process, optionally with extra environment
// variables in KEY=VALUE form. Used for children whose output is the point
// (pytest, npm, django-admin) and for interactive tools (editors).
func RunStreaming(ctx context.Context, dir string, env []string, name string, args ...string) error {
	log.FromContext(ctx).Command(name, args...)

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if len(env) > 0 {
		c.Env = append(os.Environ(), env...)
	}
	if err := c.Run(); err != nil {
		return wrapNotFound(name, err)
	}
	return nil
}

// ExitCode extracts the child process exit code from an error returned by
// the helpers above. Returns 1 for errors that carry no exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}

// LookPath reports whether an external tool is available.
func LookPath(name string) error {
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%w: %s (install it and make sure it is on your PATH)", ErrNotFound, name)
	}
	return nil
}
