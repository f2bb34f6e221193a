package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dbxdev/dbx/internal/config"
	"github.com/dbxdev/dbx/internal/git"
	"github.com/dbxdev/dbx/internal/install"
	"github.com/dbxdev/dbx/internal/log"
	"github.com/dbxdev/dbx/internal/output"
	"github.com/dbxdev/dbx/internal/venv"
)

// cloneRepo clones one URL into its group directory. Returns whether a new
// checkout was created; existing checkouts are left alone apart from
// switching to the configured preferred branch.
func cloneRepo(ctx context.Context, cfg config.Config, group, url, forkUser string) (bool, error) {
	l := log.FromContext(ctx)
	name := git.RepoName(url)
	dest := filepath.Join(cfg.GroupDir(group), name)
	preferred := cfg.Groups[group].DefaultBranch[name]

	if _, err := os.Stat(dest); err == nil {
		l.Printf("%s already exists, skipping\n", name)
		if preferred != "" {
			if err := git.Switch(ctx, dest, preferred); err != nil {
				l.Warnf("%s: switch to %s: %v", name, preferred, err)
			}
		}
		return false, nil
	}

	if err := os.MkdirAll(cfg.GroupDir(group), 0o755); err != nil {
		return false, err
	}

	if forkUser != "" {
		if err := cloneFork(ctx, url, dest, forkUser); err != nil {
			return false, err
		}
	} else {
		if err := git.Clone(ctx, url, dest); err != nil {
			return false, fmt.Errorf("clone: %w", err)
		}
		l.Printf("%s cloned\n", name)
	}

	if preferred != "" {
		if err := git.Switch(ctx, dest, preferred); err != nil {
			l.Warnf("%s: switch to %s: %v", name, preferred, err)
		}
	}
	return true, nil
}

// cloneFork clones the fork-user rewrite of url, keeping url itself as the
// upstream remote. A failed fork clone falls back to the canonical URL.
func cloneFork(ctx context.Context, url, dest, forkUser string) error {
	l := log.FromContext(ctx)
	name := git.RepoName(url)

	forkURL, err := git.RewriteOwner(url, forkUser)
	if err != nil {
		l.Warnf("%s: cannot derive fork URL (%v), cloning upstream", name, err)
		if err := git.Clone(ctx, url, dest); err != nil {
			return fmt.Errorf("clone: %w", err)
		}
		l.Printf("%s cloned from upstream\n", name)
		return nil
	}

	if err := git.Clone(ctx, forkURL, dest); err != nil {
		l.Warnf("%s: fork clone failed (%v), falling back to upstream", name, err)
		if err := git.Clone(ctx, url, dest); err != nil {
			return fmt.Errorf("clone: %w", err)
		}
		l.Printf("%s cloned from upstream\n", name)
		return nil
	}

	if err := git.AddRemote(ctx, dest, "upstream", url); err != nil {
		return fmt.Errorf("add upstream remote: %w", err)
	}

	// Best effort: report how far the fork has drifted ahead of upstream.
	if ahead, ok := forkAhead(ctx, dest); ok {
		l.Printf("%s cloned from fork, %d commit(s) ahead of upstream\n", name, ahead)
	} else {
		l.Printf("%s cloned from fork (upstream remote added)\n", name)
	}
	return nil
}

// forkAhead counts commits the fork's checked-out branch has on top of
// upstream's default branch.
func forkAhead(ctx context.Context, dest string) (int, bool) {
	if err := git.Fetch(ctx, dest, "upstream"); err != nil {
		return 0, false
	}
	branch, err := git.RemoteDefaultBranch(ctx, dest, "upstream")
	if err != nil {
		return 0, false
	}
	ahead, err := git.AheadCount(ctx, dest, "upstream/"+branch)
	if err != nil {
		return 0, false
	}
	return ahead, true
}

// installGroupRepos sets up the group venv if needed and installs the named
// freshly cloned repos into it.
func installGroupRepos(ctx context.Context, cfg config.Config, group string, names []string) error {
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)
	groupDir := cfg.GroupDir(group)

	if !venv.Exists(groupDir) {
		out.Printf("Creating virtual environment at %s\n", venv.Dir(groupDir))
		if err := venv.Create(ctx, groupDir, ""); err != nil {
			return fmt.Errorf("create venv: %w", err)
		}
	}

	res := venv.Resolve("", groupDir, cfg.BaseDir)
	if !res.Found() {
		return fmt.Errorf("no virtual environment for group %q (run 'dbx env init -g %s')", group, group)
	}

	for _, name := range names {
		repoPath := filepath.Join(groupDir, name)
		results := install.Repo(ctx, repoPath, cfg.Groups[group].InstallDirs[name], install.Options{Python: res.Python})
		for _, r := range results {
			switch r.Status {
			case install.Installed:
				l.Printf("%s: installed\n", name)
			case install.Skipped:
				l.Printf("%s: nothing to install\n", name)
			case install.Failed:
				l.Warnf("%s: install failed: %v", name, r.Err)
			}
		}

		if found, err := install.Frontend(ctx, repoPath); found && err != nil {
			l.Warnf("%s: frontend install failed: %v", name, err)
		}
	}
	return nil
}
