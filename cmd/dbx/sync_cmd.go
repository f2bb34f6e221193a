package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbxdev/dbx/internal/config"
	"github.com/dbxdev/dbx/internal/git"
	"github.com/dbxdev/dbx/internal/log"
	"github.com/dbxdev/dbx/internal/workspace"
)

func newSyncCmd() *cobra.Command {
	var (
		targets targetFlags
		force   bool
	)

	cmd := &cobra.Command{
		Use:     "sync [repo]",
		Short:   "Rebase forks onto upstream and push to origin",
		GroupID: GroupRepo,
		Args:    usageArgs(cobra.MaximumNArgs(1)),
		Long: `Fetch upstream, rebase the current branch onto it, and push to origin.

Only repos with an upstream remote are synced; others are skipped with a
warning. On main or master the rebase target is the same upstream branch;
on feature branches it is upstream's default branch. The push uses
--force-with-lease only when --force is given, so a rebased branch that
diverged from origin fails safely by default.`,
		Example: `  dbx sync billing-api
  dbx sync -g billing
  dbx sync billing-api --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)

			var name string
			if len(args) == 1 {
				name = args[0]
			}
			repos, err := resolveTargets(ctx, cfg, name, targets)
			if err != nil {
				return err
			}

			forEach(ctx, repos, func(repo workspace.Repo) error {
				return syncRepo(ctx, repo, force)
			})
			return nil
		},
	}

	cmd.Flags().StringVarP(&targets.group, "group", "g", "", "Sync every repo in a group")
	cmd.Flags().BoolVar(&force, "force", false, "Push with --force-with-lease after rebasing")

	return cmd
}

// syncRepo runs the fetch/rebase/push cycle for one checkout.
func syncRepo(ctx context.Context, repo workspace.Repo, force bool) error {
	l := log.FromContext(ctx)

	if !git.HasRemote(ctx, repo.Path, "upstream") {
		l.Warnf("%s: no upstream remote, skipping (clone with --fork to set one up)", repo.Name)
		return nil
	}

	branch, err := git.CurrentBranch(ctx, repo.Path)
	if err != nil {
		return err
	}
	if branch == "" {
		l.Warnf("%s: detached HEAD, skipping", repo.Name)
		return nil
	}

	if err := git.Fetch(ctx, repo.Path, "upstream"); err != nil {
		return fmt.Errorf("fetch upstream: %w", err)
	}

	target, err := rebaseTarget(ctx, repo.Path, branch)
	if err != nil {
		return err
	}

	if err := git.Rebase(ctx, repo.Path, target); err != nil {
		return fmt.Errorf("rebase onto %s failed, resolve conflicts and rerun: %w", target, err)
	}
	l.Printf("%s: rebased %s onto %s\n", repo.Name, branch, target)

	if err := git.Push(ctx, repo.Path, "origin", force); err != nil {
		l.Warnf("%s: rebased but not pushed: %v", repo.Name, err)
		l.Warnf("%s: retry with 'dbx sync %s --force'", repo.Name, repo.Name)
		return nil
	}
	l.Printf("%s: pushed %s to origin\n", repo.Name, branch)
	return nil
}

// rebaseTarget picks the upstream ref to rebase onto. The default branches
// track themselves; a feature branch rebases onto upstream's default.
func rebaseTarget(ctx context.Context, dir, branch string) (string, error) {
	if branch == "main" || branch == "master" {
		return "upstream/" + branch, nil
	}
	def, err := git.RemoteDefaultBranch(ctx, dir, "upstream")
	if err != nil {
		return "", err
	}
	return "upstream/" + def, nil
}
