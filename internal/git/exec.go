package git

import (
	"context"

	"github.com/dbxdev/dbx/internal/cmd"
)

// gitArgs prepends -C <dir> to args if dir is non-empty.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

// runGit executes a git command with context support and verbose logging.
func runGit(ctx context.Context, dir string, args ...string) error {
	return cmd.RunContext(ctx, "", "git", gitArgs(dir, args)...)
}

// outputGit executes a git command with context support and verbose logging,
// returning stdout.
func outputGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return cmd.OutputContext(ctx, "", "git", gitArgs(dir, args)...)
}

// Run executes an arbitrary git command in dir, streaming output to the
// user's terminal. Fan-out commands like fetch and status use it directly.
func Run(ctx context.Context, dir string, args ...string) error {
	return cmd.RunStreaming(ctx, "", nil, "git", gitArgs(dir, args)...)
}
