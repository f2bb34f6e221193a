package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbxdev/dbx/internal/config"
	"github.com/dbxdev/dbx/internal/install"
	"github.com/dbxdev/dbx/internal/log"
	"github.com/dbxdev/dbx/internal/output"
	"github.com/dbxdev/dbx/internal/ui/static"
	"github.com/dbxdev/dbx/internal/venv"
	"github.com/dbxdev/dbx/internal/workspace"
)

func newInstallCmd() *cobra.Command {
	var (
		targets     targetFlags
		extras      string
		depGroups   string
		showOptions bool
		listRepos   bool
	)

	cmd := &cobra.Command{
		Use:     "install [repo]",
		Short:   "Install repositories into their virtual environment",
		GroupID: GroupPython,
		Args:    usageArgs(cobra.MaximumNArgs(1)),
		Long: `Install a cloned repository (or every repo in a group) editable into
the resolved virtual environment via uv. Monorepos with configured
install_dirs get each subdirectory installed separately.

Unlike the plain git commands, install refuses to run without a managed
virtual environment and exits non-zero when any package fails.`,
		Example: `  dbx install billing-api
  dbx install billing-api -e test,aws
  dbx install -g billing
  dbx install billing-api --show-options`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
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

			var name string
			if len(args) == 1 {
				name = args[0]
			}
			repos, err := resolveTargets(ctx, cfg, name, targets)
			if err != nil {
				return err
			}

			if showOptions {
				return showInstallOptions(ctx, repos)
			}

			opts := install.Options{
				Extras:           splitCSV(extras),
				DependencyGroups: splitCSV(depGroups),
			}
			return installRepos(ctx, cfg, repos, opts)
		},
	}

	cmd.Flags().StringVarP(&targets.group, "group", "g", "", "Install every repo in a group")
	cmd.Flags().StringVarP(&extras, "extras", "e", "", "Comma-separated extras to install (e.g. 'test,aws')")
	cmd.Flags().StringVar(&depGroups, "dependency-groups", "", "Comma-separated dependency groups to install")
	cmd.Flags().BoolVar(&showOptions, "show-options", false, "Show available extras and dependency groups")
	cmd.Flags().BoolVarP(&listRepos, "list", "l", false, "List installable repositories")

	return cmd
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// installRepos installs each target and aggregates the outcome. Any failed
// package makes the whole command exit non-zero.
func installRepos(ctx context.Context, cfg config.Config, repos []workspace.Repo, opts install.Options) error {
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	installed, skipped, failed := 0, 0, 0
	for _, repo := range repos {
		res := venv.Resolve(repo.Path, cfg.GroupDir(repo.Group), cfg.BaseDir)
		if !res.Found() {
			return fmt.Errorf("no virtual environment for %s (run 'dbx env init -g %s')", repo.Name, repo.Group)
		}
		l.Printf("%s: using %s venv at %s\n", repo.Name, res.Kind, res.Dir)

		opts := opts
		opts.Python = res.Python

		results := install.Repo(ctx, repo.Path, cfg.Groups[repo.Group].InstallDirs[repo.Name], opts)
		for _, r := range results {
			label := repo.Name
			if r.Dir != repo.Path {
				label = repo.Name + "/" + r.Dir
			}
			switch r.Status {
			case install.Installed:
				out.Printf("installed %s\n", label)
				installed++
			case install.Skipped:
				l.Warnf("%s: no pyproject.toml or setup.py, skipped", label)
				skipped++
			case install.Failed:
				l.Warnf("%s: %v", label, r.Err)
				failed++
			}
		}

		if found, err := install.Frontend(ctx, repo.Path); found {
			if err != nil {
				l.Warnf("%s: frontend install failed: %v", repo.Name, err)
				failed++
			} else {
				out.Printf("installed %s frontend\n", repo.Name)
			}
		}
	}

	out.Printf("\n%d installed, %d skipped, %d failed\n", installed, skipped, failed)
	if failed > 0 {
		return &exitCodeError{code: 1, err: fmt.Errorf("%d package(s) failed to install", failed)}
	}
	return nil
}

// showInstallOptions prints the extras and dependency groups each target's
// pyproject.toml offers.
func showInstallOptions(ctx context.Context, repos []workspace.Repo) error {
	out := output.FromContext(ctx)
	l := log.FromContext(ctx)

	for _, repo := range repos {
		opts, err := install.ReadOptions(repo.Path)
		if err != nil {
			l.Warnf("%s: %v", repo.Name, err)
			continue
		}
		out.Printf("%s\n", repo.Name)
		if len(opts.Extras) > 0 {
			out.Printf("  extras: %s\n", strings.Join(opts.Extras, ", "))
		}
		if len(opts.DependencyGroups) > 0 {
			out.Printf("  dependency groups: %s\n", strings.Join(opts.DependencyGroups, ", "))
		}
		if len(opts.Extras) == 0 && len(opts.DependencyGroups) == 0 {
			out.Printf("  no optional dependencies\n")
		}
	}
	return nil
}
