package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dbxdev/dbx/internal/cmd"
	"github.com/dbxdev/dbx/internal/config"
	"github.com/dbxdev/dbx/internal/log"
	"github.com/dbxdev/dbx/internal/output"
	"github.com/dbxdev/dbx/internal/ui/static"
	"github.com/dbxdev/dbx/internal/venv"
	"github.com/dbxdev/dbx/internal/workspace"
)

func newTestCmd() *cobra.Command {
	var (
		keyword   string
		venvGroup string
		listRepos bool
	)

	c := &cobra.Command{
		Use:     "test <repo> [test-args...]",
		Short:   "Run a repository's test suite",
		GroupID: GroupPython,
		Args:    cobra.ArbitraryArgs,
		Long: `Run pytest (or the group's configured test_runner script) for a repo
inside its resolved virtual environment, with the group's test_env
variables applied. The test run's exit code becomes dbx's exit code.`,
		Example: `  dbx test billing-api
  dbx test billing-api -k test_invoices
  dbx test billing-api -- -x --lf
  dbx test billing-api -g billing
  dbx test --list`,
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			if listRepos {
				repos, err := workspace.FindAll(cfg.BaseDir)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(repos))
				for _, r := range repos {
					rows = append(rows, []string{r.Group, r.Name})
				}
				out.Print(static.RenderTable([]string{"GROUP", "REPO"}, rows))
				return nil
			}
			if len(args) == 0 {
				return usageErrorf("a repository name is required")
			}

			name, testArgs := args[0], args[1:]
			repos, err := findRepo(ctx, cfg, name)
			if err != nil {
				return err
			}
			repo := repos[0]

			groupPath := cfg.GroupDir(repo.Group)
			if venvGroup != "" {
				if _, ok := cfg.Groups[venvGroup]; !ok {
					return fmt.Errorf("group %q not found", venvGroup)
				}
				groupPath = cfg.GroupDir(venvGroup)
			}

			res := venv.Resolve(repo.Path, groupPath, cfg.BaseDir)
			if !res.Found() {
				return fmt.Errorf("no virtual environment for %s (run 'dbx env init -g %s')", repo.Name, repo.Group)
			}
			l.Printf("using %s venv at %s\n", res.Kind, res.Dir)

			var runCmd []string
			if runner := cfg.Groups[repo.Group].TestRunner[repo.Name]; runner != "" {
				script := filepath.Join(repo.Path, runner)
				if _, err := os.Stat(script); err != nil {
					return fmt.Errorf("test runner not found: %s", script)
				}
				if keyword != "" {
					l.Warnf("-k is not supported with a custom test runner, pass it as a test arg instead")
				}
				runCmd = append([]string{res.Python, script}, testArgs...)
			} else {
				runCmd = append([]string{res.Python, "-m", "pytest"}, testArgs...)
				if keyword != "" {
					runCmd = append(runCmd, "-k", keyword)
				}
			}

			env := cfg.ExpandTestEnv(repo.Group)
			err = cmd.RunStreaming(ctx, repo.Path, env, runCmd[0], runCmd[1:]...)
			if err != nil {
				return &exitCodeError{
					code: cmd.ExitCode(err),
					err:  fmt.Errorf("tests failed in %s", repo.Name),
				}
			}
			out.Printf("\nTests passed in %s\n", repo.Name)
			return nil
		},
	}

	c.Flags().StringVarP(&keyword, "keyword", "k", "", "Only run tests matching this pytest keyword expression")
	c.Flags().StringVarP(&venvGroup, "group", "g", "", "Resolve the venv from this group instead of the repo's own")
	c.Flags().BoolVarP(&listRepos, "list", "l", false, "List testable repositories")
	c.Flags().SetInterspersed(false)

	return c
}
