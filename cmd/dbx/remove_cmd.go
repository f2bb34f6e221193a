package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbxdev/dbx/internal/config"
	"github.com/dbxdev/dbx/internal/log"
	"github.com/dbxdev/dbx/internal/output"
	"github.com/dbxdev/dbx/internal/resolve"
	"github.com/dbxdev/dbx/internal/ui/prompt"
	"github.com/dbxdev/dbx/internal/workspace"
)

func newRemoveCmd() *cobra.Command {
	var (
		group     string
		repoGroup string
		force     bool
	)

	cmd := &cobra.Command{
		Use:     "remove [<repo>...]",
		Short:   "Delete cloned repositories or a whole group",
		Aliases: []string{"rm"},
		GroupID: GroupWorkspace,
		Long: `Delete cloned checkouts from the base directory. Takes one or more
repository names, or a group name (-g, or bare when it matches no repo)
to delete every checkout in the group along with the group directory
itself. The configuration is left untouched, so anything removed can be
cloned again later.`,
		Example: `  dbx remove payments-api
  dbx remove payments-api -G billing
  dbx remove billing
  dbx remove -g billing --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			repos, groupDir, err := removeTargets(ctx, cfg, args, group, repoGroup)
			if err != nil {
				return err
			}

			out.Printf("Repositories to remove: %d\n\n", len(repos))
			for _, r := range repos {
				out.Printf("  %s (%s)\n", r.Name, r.Group)
			}

			if !force {
				res, err := prompt.Confirm("Remove these repositories?")
				if err != nil {
					return err
				}
				if !res.Confirmed {
					out.Println("Aborted.")
					return nil
				}
			}

			var failed int
			for _, r := range repos {
				if err := os.RemoveAll(r.Path); err != nil {
					out.Printf("Failed to remove %s: %v\n", r.Name, err)
					failed++
					continue
				}
				out.Printf("Removed %s (%s)\n", r.Name, r.Group)
			}

			if failed > 0 {
				return fmt.Errorf("failed to remove %d repositories", failed)
			}

			// Removing a whole group also drops the now-empty group directory.
			if groupDir != "" {
				if err := os.RemoveAll(groupDir); err != nil {
					return err
				}
				out.Printf("Removed %s\n", groupDir)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "Remove every checkout in this group")
	cmd.Flags().StringVarP(&repoGroup, "repo-group", "G", "", "Group to pick when a repo name exists in multiple groups")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")

	return cmd
}

func removeTargets(ctx context.Context, cfg config.Config, names []string, group, repoGroup string) ([]workspace.Repo, string, error) {
	if group != "" && len(names) > 0 {
		return nil, "", fmt.Errorf("%w: cannot combine repository names with --group", errUsage)
	}

	all, err := workspace.FindAll(cfg.BaseDir)
	if err != nil {
		return nil, "", err
	}

	// A bare configured group name that matches no checkout removes the
	// whole group, same as --group.
	if group == "" && repoGroup == "" && len(names) == 1 {
		if _, ok := cfg.Groups[names[0]]; ok && len(matchByName(all, names[0])) == 0 {
			group, names = names[0], nil
		}
	}

	if group != "" {
		repos := workspace.InGroup(all, group)
		if len(repos) == 0 {
			if _, ok := cfg.Groups[group]; ok {
				return nil, "", fmt.Errorf("nothing to remove: group %q has no cloned repos", group)
			}
			return nil, "", resolve.NotFoundError("group", group, cfg.GroupNames())
		}
		return repos, cfg.GroupDir(group), nil
	}

	if len(names) == 0 {
		return nil, "", fmt.Errorf("%w: repository name or --group required", errUsage)
	}

	var repos []workspace.Repo
	for _, name := range names {
		matches := matchByName(all, name)
		if repoGroup != "" {
			matches = workspace.InGroup(matches, repoGroup)
			if len(matches) == 0 {
				return nil, "", fmt.Errorf("repository %q not found in group %q", name, repoGroup)
			}
		}
		if len(matches) == 0 {
			return nil, "", resolve.NotFoundError("repository", name, workspace.Names(all))
		}
		if len(matches) > 1 && repoGroup == "" {
			var groups []string
			for _, m := range matches {
				groups = append(groups, m.Group)
			}
			log.FromContext(ctx).Warnf("%q exists in multiple groups (%s), using %s (use -G to pick another)",
				name, strings.Join(groups, ", "), matches[0].Group)
		}
		repos = append(repos, matches[0])
	}
	return repos, "", nil
}

// matchByName filters repos to those named name, preserving group order.
func matchByName(repos []workspace.Repo, name string) []workspace.Repo {
	var out []workspace.Repo
	for _, r := range repos {
		if r.Name == name {
			out = append(out, r)
		}
	}
	return out
}
