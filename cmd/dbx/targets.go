package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dbxdev/dbx/internal/config"
	"github.com/dbxdev/dbx/internal/log"
	"github.com/dbxdev/dbx/internal/resolve"
	"github.com/dbxdev/dbx/internal/workspace"
)

// targetFlags are the mutually exclusive ways fan-out commands pick repos.
type targetFlags struct {
	group   string
	project string
}

// resolveTargets turns a positional repo name or the -g/-p flags into the
// list of repos to operate on. Exactly one targeting method is required.
func resolveTargets(ctx context.Context, cfg config.Config, name string, flags targetFlags) ([]workspace.Repo, error) {
	methods := 0
	for _, set := range []bool{name != "", flags.group != "", flags.project != ""} {
		if set {
			methods++
		}
	}
	if methods == 0 {
		return nil, fmt.Errorf("%w: a repository name, --group, or --project is required", errUsage)
	}
	if methods > 1 {
		return nil, fmt.Errorf("%w: a repository name, --group, and --project are mutually exclusive", errUsage)
	}

	switch {
	case flags.group != "":
		if _, ok := cfg.Groups[flags.group]; !ok {
			return nil, resolve.NotFoundError("group", flags.group, cfg.GroupNames())
		}
		repos, err := workspace.FindAll(cfg.BaseDir)
		if err != nil {
			return nil, err
		}
		inGroup := workspace.InGroup(repos, flags.group)
		if len(inGroup) == 0 {
			return nil, fmt.Errorf("group %q has no cloned repos (run 'dbx clone -g %s' first)", flags.group, flags.group)
		}
		return inGroup, nil

	case flags.project != "":
		path := filepath.Join(cfg.ProjectsDir(), flags.project)
		if _, err := os.Stat(path); err != nil {
			projects, _ := workspace.FindAll(cfg.BaseDir)
			candidates := workspace.Names(workspace.InGroup(projects, workspace.ProjectsGroup))
			return nil, resolve.NotFoundError("project", flags.project, candidates)
		}
		return []workspace.Repo{{Name: flags.project, Group: workspace.ProjectsGroup, Path: path}}, nil

	default:
		return findRepo(ctx, cfg, name)
	}
}

// findRepo resolves a single repo by name, warning when the name exists in
// more than one group.
func findRepo(ctx context.Context, cfg config.Config, name string) ([]workspace.Repo, error) {
	matches, err := workspace.FindByName(cfg.BaseDir, name)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		all, _ := workspace.FindAll(cfg.BaseDir)
		return nil, resolve.NotFoundError("repo", name, workspace.Names(all))
	}
	if len(matches) > 1 {
		var groups []string
		for _, m := range matches {
			groups = append(groups, m.Group)
		}
		log.FromContext(ctx).Warnf("%q exists in multiple groups (%s), using %s", name, strings.Join(groups, ", "), matches[0].Group)
	}
	return matches[:1], nil
}

// forEach runs fn over the targets sequentially. Per-target failures are
// reported and counted but do not stop the remaining targets; the returned
// count lets install/test turn partial failure into a non-zero exit while
// the plain git fan-outs stay informational.
func forEach(ctx context.Context, targets []workspace.Repo, fn func(workspace.Repo) error) int {
	l := log.FromContext(ctx)
	failed := 0
	for _, repo := range targets {
		if err := fn(repo); err != nil {
			l.Warnf("%s: %v", repo.Name, err)
			failed++
		}
	}
	return failed
}
