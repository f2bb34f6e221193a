package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dbxdev/dbx/internal/cmd"
	"github.com/dbxdev/dbx/internal/config"
	"github.com/dbxdev/dbx/internal/output"
)

func newJustCmd() *cobra.Command {
	c := &cobra.Command{
		Use:     "just <repo> [recipe] [args...]",
		Short:   "Run just recipes in a repository",
		GroupID: GroupPython,
		Args:    usageArgs(cobra.MinimumNArgs(1)),
		Long: `Run a just recipe in a cloned repository, with the group's test_env
variables applied. Without a recipe, just lists what is available. The
recipe's exit code becomes dbx's exit code.`,
		Example: `  dbx just billing-api
  dbx just billing-api lint
  dbx just billing-api test -v`,
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			name, justArgs := args[0], args[1:]
			repos, err := findRepo(ctx, cfg, name)
			if err != nil {
				return err
			}
			repo := repos[0]

			hasJustfile := false
			for _, f := range []string{"justfile", "Justfile", ".justfile"} {
				if _, err := os.Stat(filepath.Join(repo.Path, f)); err == nil {
					hasJustfile = true
					break
				}
			}
			if !hasJustfile {
				return fmt.Errorf("no justfile found in %s", repo.Path)
			}

			out.Printf("Running just in %s...\n", repo.Path)

			env := cfg.ExpandTestEnv(repo.Group)
			err = cmd.RunStreaming(ctx, repo.Path, env, "just", justArgs...)
			if err != nil {
				return &exitCodeError{code: cmd.ExitCode(err), err: fmt.Errorf("just failed in %s", repo.Name)}
			}
			return nil
		},
	}

	c.Flags().SetInterspersed(false)

	return c
}
