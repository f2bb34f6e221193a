package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbxdev/dbx/internal/cmd"
	"github.com/dbxdev/dbx/internal/config"
)

func newEditCmd() *cobra.Command {
	c := &cobra.Command{
		Use:     "edit <repo>",
		Short:   "Open a repository in your editor",
		GroupID: GroupWorkspace,
		Args:    usageArgs(cobra.ExactArgs(1)),
		Long:    `Open a cloned repository in $EDITOR (falling back to vim, nano, vi, or open).`,
		Example: `  dbx edit billing-api
  EDITOR=code dbx edit billing-api`,
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			cfg := config.FromContext(ctx)

			repos, err := findRepo(ctx, cfg, args[0])
			if err != nil {
				return err
			}

			editor, err := chooseEditor()
			if err != nil {
				return err
			}

			err = cmd.RunStreaming(ctx, "", nil, editor, repos[0].Path)
			if errors.Is(ctx.Err(), context.Canceled) {
				return fmt.Errorf("editing cancelled")
			}
			if err != nil {
				return &exitCodeError{code: cmd.ExitCode(err), err: fmt.Errorf("editor exited: %w", err)}
			}
			return nil
		},
	}

	return c
}

// chooseEditor picks $EDITOR or the first common editor on PATH.
func chooseEditor() (string, error) {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor, nil
	}
	for _, candidate := range []string{"vim", "nano", "vi", "open"} {
		if cmd.LookPath(candidate) == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no editor found: set $EDITOR")
}
