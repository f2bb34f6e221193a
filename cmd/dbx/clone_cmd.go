package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbxdev/dbx/internal/config"
	"github.com/dbxdev/dbx/internal/git"
	"github.com/dbxdev/dbx/internal/log"
	"github.com/dbxdev/dbx/internal/output"
	"github.com/dbxdev/dbx/internal/resolve"
	"github.com/dbxdev/dbx/internal/ui/progress"
	"github.com/dbxdev/dbx/internal/ui/static"
)

func newCloneCmd() *cobra.Command {
	var (
		groups     []string
		fork       bool
		forkUser   string
		noInstall  bool
		listGroups bool
	)

	cmd := &cobra.Command{
		Use:     "clone [repo]",
		Short:   "Clone a repository or whole groups",
		GroupID: GroupRepo,
		Args:    usageArgs(cobra.MaximumNArgs(1)),
		Long: `Clone a single repository by name or every repository of one or more
groups. Group clones also pull in the repos of any configured global
groups, so shared repositories are present in every group directory.

With --fork the org segment of each clone URL is rewritten to your fork
user, the canonical URL is kept as the upstream remote, and dbx reports
how far the fork is ahead of upstream.`,
		Example: `  dbx clone billing-api
  dbx clone -g billing
  dbx clone -g billing,docs --fork
  dbx clone -g billing --no-install`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			if listGroups {
				rows := make([][]string, 0, len(cfg.Groups))
				for _, name := range cfg.GroupNames() {
					rows = append(rows, []string{name, fmt.Sprintf("%d", len(cfg.Groups[name].Repos))})
				}
				out.Print(static.RenderTable([]string{"GROUP", "REPOS"}, rows))
				return nil
			}

			user, err := resolveForkUser(cfg, fork, forkUser)
			if err != nil {
				return err
			}

			plans, err := clonePlans(cfg, args, groups)
			if err != nil {
				return err
			}

			for _, plan := range plans {
				if err := cloneGroup(ctx, cfg, plan, user, !noInstall); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&groups, "group", "g", nil, "Group(s) to clone (repeatable or comma-separated)")
	cmd.Flags().BoolVar(&fork, "fork", false, "Clone from your fork (fork_user from config)")
	cmd.Flags().StringVar(&forkUser, "fork-user", "", "Clone from this user's fork")
	cmd.Flags().BoolVar(&noInstall, "no-install", false, "Skip venv setup and package installation")
	cmd.Flags().BoolVarP(&listGroups, "list", "l", false, "List available groups")

	return cmd
}

// resolveForkUser merges the --fork and --fork-user flags with the config
// default. An empty result means the plain (non-fork) workflow.
func resolveForkUser(cfg config.Config, fork bool, forkUser string) (string, error) {
	if forkUser != "" {
		return forkUser, nil
	}
	if !fork {
		return "", nil
	}
	if cfg.ForkUser == "" {
		return "", fmt.Errorf("%w: --fork requires fork_user in the config (or use --fork-user)", errUsage)
	}
	return cfg.ForkUser, nil
}

// clonePlan is one group's resolved clone list.
type clonePlan struct {
	group string
	urls  []string
}

// clonePlans validates the requested targets and expands them into per-group
// URL lists, injecting global-group repos into non-global groups.
func clonePlans(cfg config.Config, args, groups []string) ([]clonePlan, error) {
	if len(args) == 1 && len(groups) > 0 {
		return nil, fmt.Errorf("%w: a repository name and --group are mutually exclusive", errUsage)
	}

	// Bare repo name: search every group's URL list by basename.
	if len(args) == 1 {
		name := args[0]
		for _, group := range cfg.GroupNames() {
			for _, url := range cfg.Groups[group].Repos {
				if git.RepoName(url) == name {
					return []clonePlan{{group: group, urls: []string{url}}}, nil
				}
			}
		}
		var candidates []string
		for _, group := range cfg.GroupNames() {
			for _, url := range cfg.Groups[group].Repos {
				candidates = append(candidates, git.RepoName(url))
			}
		}
		return nil, resolve.NotFoundError("repo", name, candidates)
	}

	if len(groups) == 0 {
		return nil, fmt.Errorf("%w: a repository name or --group is required", errUsage)
	}

	var plans []clonePlan
	for _, group := range groups {
		g, ok := cfg.Groups[group]
		if !ok {
			return nil, resolve.NotFoundError("group", group, cfg.GroupNames())
		}
		if len(g.Repos) == 0 {
			return nil, fmt.Errorf("group %q has no repositories configured", group)
		}

		urls := append([]string{}, g.Repos...)
		if !cfg.IsGlobalGroup(group) {
			for _, global := range cfg.GlobalGroups {
				urls = append(urls, cfg.Groups[global].Repos...)
			}
		}

		seen := make(map[string]bool, len(urls))
		var deduped []string
		for _, url := range urls {
			if !seen[url] {
				seen[url] = true
				deduped = append(deduped, url)
			}
		}
		plans = append(plans, clonePlan{group: group, urls: deduped})
	}
	return plans, nil
}

// cloneGroup clones one plan's URLs into the group directory, then installs
// the new checkouts unless suppressed.
func cloneGroup(ctx context.Context, cfg config.Config, plan clonePlan, forkUser string, install bool) error {
	out := output.FromContext(ctx)
	l := log.FromContext(ctx)
	groupDir := cfg.GroupDir(plan.group)

	if forkUser != "" {
		out.Printf("Cloning %d repository(ies) from %s's forks to %s\n", len(plan.urls), forkUser, groupDir)
	} else {
		out.Printf("Cloning %d repository(ies) from group %q to %s\n", len(plan.urls), plan.group, groupDir)
	}

	spin := progress.New("cloning...")
	spin.Start()

	var cloned []string
	for _, url := range plan.urls {
		name := git.RepoName(url)
		spin.UpdateMessage(fmt.Sprintf("cloning %s", name))

		fresh, err := cloneRepo(ctx, cfg, plan.group, url, forkUser)
		if err != nil {
			l.Warnf("%s: %v", name, err)
			continue
		}
		if fresh {
			cloned = append(cloned, name)
		}
	}
	spin.Stop()

	if install && len(cloned) > 0 {
		if err := installGroupRepos(ctx, cfg, plan.group, cloned); err != nil {
			return err
		}
	}

	out.Printf("Done. Repositories cloned to %s\n", groupDir)
	return nil
}
