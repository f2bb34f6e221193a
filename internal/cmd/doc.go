// Package cmd provides helpers for executing external commands with proper
// error handling.
//
// This package wraps [os/exec.Cmd] to capture stderr and include it in error
// messages, making command failures more informative for users. The context
// variants echo the exact invocation to the logger when verbose mode is on.
//
// # Design Notes
//
// dbx shells out to the git/uv/npm/django-admin CLIs rather than using Go
// libraries. This is simpler, more reliable, and ensures compatibility with
// user configurations (SSH keys, credential helpers, active toolchains).
// No timeouts are applied to children; cancellation comes only from the
// process signal context.
package cmd
