package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbxdev/dbx/internal/config"
	"github.com/dbxdev/dbx/internal/output"
	"github.com/dbxdev/dbx/internal/resolve"
	"github.com/dbxdev/dbx/internal/ui/prompt"
	"github.com/dbxdev/dbx/internal/ui/static"
	"github.com/dbxdev/dbx/internal/venv"
	"github.com/dbxdev/dbx/internal/workspace"
)

func newEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "env",
		Short:   "Manage virtual environments",
		GroupID: GroupPython,
		Long: `Manage the uv virtual environments dbx installs into.

Venvs live at one of three scopes: the base directory (shared by
everything), a group directory (shared by the group's repos), or a
single repository. Install and test pick the nearest one.`,
	}

	cmd.AddCommand(newEnvInitCmd())
	cmd.AddCommand(newEnvListCmd())
	cmd.AddCommand(newEnvRemoveCmd())

	return cmd
}

// envScope resolves the repo/-g/none targeting shared by the env
// subcommands into a scope directory and a display label.
func envScope(ctx context.Context, cfg config.Config, args []string, group string) (dir, label string, err error) {
	switch {
	case len(args) == 1 && group != "":
		return "", "", fmt.Errorf("%w: a repository name and --group are mutually exclusive", errUsage)
	case len(args) == 1:
		repos, err := findRepo(ctx, cfg, args[0])
		if err != nil {
			return "", "", err
		}
		return repos[0].Path, "repo " + repos[0].Name, nil
	case group != "":
		if _, ok := cfg.Groups[group]; !ok {
			return "", "", resolve.NotFoundError("group", group, cfg.GroupNames())
		}
		return cfg.GroupDir(group), "group " + group, nil
	default:
		return cfg.BaseDir, "base directory", nil
	}
}

func newEnvInitCmd() *cobra.Command {
	var (
		group  string
		python string
	)

	cmd := &cobra.Command{
		Use:   "init [repo]",
		Short: "Create a virtual environment",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		Example: `  dbx env init -g billing
  dbx env init billing-api -p 3.12
  dbx env init`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			dir, label, err := envScope(ctx, cfg, args, group)
			if err != nil {
				return err
			}

			if venv.Exists(dir) {
				res, err := prompt.Confirm(fmt.Sprintf("Virtual environment for %s exists, recreate it?", label))
				if err != nil {
					return err
				}
				if !res.Confirmed {
					out.Println("Aborted.")
					return nil
				}
				if err := venv.Remove(dir); err != nil {
					return err
				}
			}

			if err := venv.Create(ctx, dir, python); err != nil {
				return fmt.Errorf("create venv: %w", err)
			}
			out.Printf("Created virtual environment at %s\n", venv.Dir(dir))
			return nil
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "Create the venv for a group")
	cmd.Flags().StringVarP(&python, "python", "p", "", "Python version for the venv (passed to uv)")

	return cmd
}

func newEnvListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List existing virtual environments",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			row := func(scope, name, path string) []string {
				version := venv.Version(path)
				if version == "" {
					version = "-"
				}
				return []string{scope, name, version, venv.Dir(path)}
			}

			var rows [][]string
			if venv.Exists(cfg.BaseDir) {
				rows = append(rows, row("base", "-", cfg.BaseDir))
			}
			for _, group := range cfg.GroupNames() {
				if venv.Exists(cfg.GroupDir(group)) {
					rows = append(rows, row("group", group, cfg.GroupDir(group)))
				}
			}
			repos, err := workspace.FindAll(cfg.BaseDir)
			if err != nil {
				return err
			}
			for _, r := range repos {
				if venv.Exists(r.Path) {
					rows = append(rows, row("repo", r.Name, r.Path))
				}
			}

			if len(rows) == 0 {
				out.Println("No virtual environments found. Create one with 'dbx env init'.")
				return nil
			}
			out.Print(static.RenderTable([]string{"SCOPE", "NAME", "PYTHON", "PATH"}, rows))
			return nil
		},
	}

	return cmd
}

func newEnvRemoveCmd() *cobra.Command {
	var (
		group string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "remove [repo]",
		Short: "Delete a virtual environment",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			dir, label, err := envScope(ctx, cfg, args, group)
			if err != nil {
				return err
			}
			if !venv.Exists(dir) {
				return fmt.Errorf("no virtual environment for %s", label)
			}

			if !force {
				res, err := prompt.Confirm(fmt.Sprintf("Delete virtual environment for %s?", label))
				if err != nil {
					return err
				}
				if !res.Confirmed {
					out.Println("Aborted.")
					return nil
				}
			}

			if err := venv.Remove(dir); err != nil {
				return err
			}
			out.Printf("Removed %s\n", venv.Dir(dir))
			return nil
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "Target a group's venv")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")

	return cmd
}
