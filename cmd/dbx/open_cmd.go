package main

import (
	"context"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/dbxdev/dbx/internal/cmd"
	"github.com/dbxdev/dbx/internal/config"
	"github.com/dbxdev/dbx/internal/git"
	"github.com/dbxdev/dbx/internal/log"
	"github.com/dbxdev/dbx/internal/output"
	"github.com/dbxdev/dbx/internal/resolve"
	"github.com/dbxdev/dbx/internal/ui/static"
	"github.com/dbxdev/dbx/internal/workspace"
)

func newOpenCmd() *cobra.Command {
	var (
		group    string
		listOnly bool
	)

	c := &cobra.Command{
		Use:     "open [repo]",
		Short:   "Open repositories in the browser",
		GroupID: GroupRepo,
		Args:    usageArgs(cobra.MaximumNArgs(1)),
		Long: `Open a repository's origin URL in the browser, converting ssh clone
URLs into https ones. Groups open every configured repo; repos that are
not cloned yet fall back to their configured URL, so forks open the fork
and everything else opens the canonical repository.`,
		Example: `  dbx open billing-api
  dbx open -g billing
  dbx open --list`,
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			if listOnly {
				cloned, err := workspace.FindAll(cfg.BaseDir)
				if err != nil {
					return err
				}
				out.Print(static.RenderTree(buildTree(cfg, cloned)))
				return nil
			}

			if group != "" {
				if len(args) == 1 {
					return usageErrorf("a repository name and --group are mutually exclusive")
				}
				return openGroup(ctx, cfg, group)
			}

			if len(args) == 0 {
				return usageErrorf("a repository name, --group, or --list is required")
			}

			repos, err := findRepo(ctx, cfg, args[0])
			if err != nil {
				return err
			}
			origin, err := git.RemoteURL(ctx, repos[0].Path, "origin")
			if err != nil {
				return err
			}
			return openBrowser(ctx, git.BrowserURL(origin))
		},
	}

	c.Flags().StringVarP(&group, "group", "g", "", "Open every repo in a group")
	c.Flags().BoolVarP(&listOnly, "list", "l", false, "Show the workspace tree instead of opening anything")

	return c
}

// openGroup opens every configured URL of a group. A cloned checkout's
// origin remote wins over the configured URL so forks open as forks.
func openGroup(ctx context.Context, cfg config.Config, group string) error {
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	g, ok := cfg.Groups[group]
	if !ok {
		return resolve.NotFoundError("group", group, cfg.GroupNames())
	}

	cloned, err := workspace.FindAll(cfg.BaseDir)
	if err != nil {
		return err
	}
	inGroup := make(map[string]workspace.Repo)
	for _, r := range workspace.InGroup(cloned, group) {
		inGroup[r.Name] = r
	}

	for _, url := range g.Repos {
		name := git.RepoName(url)
		target := url
		if r, ok := inGroup[name]; ok {
			if origin, err := git.RemoteURL(ctx, r.Path, "origin"); err == nil {
				target = origin
			}
		}
		out.Printf("Opening %s\n", name)
		if err := openBrowser(ctx, git.BrowserURL(target)); err != nil {
			l.Warnf("%s: %v", name, err)
		}
	}
	return nil
}

// openBrowser launches the platform's URL opener.
func openBrowser(ctx context.Context, url string) error {
	switch runtime.GOOS {
	case "darwin":
		return cmd.RunContext(ctx, "", "open", url)
	case "windows":
		return cmd.RunContext(ctx, "", "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return cmd.RunContext(ctx, "", "xdg-open", url)
	}
}
