package main

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/dbxdev/dbx/internal/config"
	"github.com/dbxdev/dbx/internal/git"
	"github.com/dbxdev/dbx/internal/output"
	"github.com/dbxdev/dbx/internal/ui/static"
	"github.com/dbxdev/dbx/internal/workspace"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List configured and cloned repositories",
		Aliases: []string{"ls"},
		GroupID: GroupWorkspace,
		Args:    usageArgs(cobra.NoArgs),
		Long: `List every group with its repositories and their status.

Repos from global groups are shown as available in every group, since
cloning a group pulls them in alongside the group's own repos.`,
		Example: `  dbx list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			cloned, err := workspace.FindAll(cfg.BaseDir)
			if err != nil {
				return err
			}

			out.Print(static.RenderTree(buildTree(cfg, cloned)))
			return nil
		},
	}

	return cmd
}

// buildTree merges the configured groups with what is on disk. Sorted by
// (group, name) throughout so output is deterministic.
func buildTree(cfg config.Config, cloned []workspace.Repo) []static.TreeGroup {
	clonedIn := make(map[string]map[string]bool)
	for _, r := range cloned {
		if clonedIn[r.Group] == nil {
			clonedIn[r.Group] = make(map[string]bool)
		}
		clonedIn[r.Group][r.Name] = true
	}

	groupNames := cfg.GroupNames()
	configured := make(map[string]bool, len(groupNames))
	for _, name := range groupNames {
		configured[name] = true
	}
	// On-disk groups the config does not know about still show up.
	for group := range clonedIn {
		if !configured[group] && group != workspace.ProjectsGroup {
			groupNames = append(groupNames, group)
		}
	}
	sort.Strings(groupNames)

	var tree []static.TreeGroup
	for _, group := range groupNames {
		tree = append(tree, static.TreeGroup{
			Name:    group,
			Global:  cfg.IsGlobalGroup(group),
			Entries: buildEntries(cfg, group, configured[group], clonedIn[group]),
		})
	}
	return tree
}

// buildEntries lists one group's repos: configured ones (own plus injected
// global-group repos, deduplicated by URL) and anything on disk the config
// does not mention.
func buildEntries(cfg config.Config, group string, configured bool, cloned map[string]bool) []static.TreeEntry {
	var names []string
	seen := make(map[string]bool)

	if configured {
		urls := append([]string{}, cfg.Groups[group].Repos...)
		if !cfg.IsGlobalGroup(group) {
			for _, global := range cfg.GlobalGroups {
				urls = append(urls, cfg.Groups[global].Repos...)
			}
		}
		seenURL := make(map[string]bool)
		for _, url := range urls {
			if seenURL[url] {
				continue
			}
			seenURL[url] = true
			name := git.RepoName(url)
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}

	var entries []static.TreeEntry
	for _, name := range names {
		status := static.Available
		if cloned[name] {
			status = static.Cloned
		}
		entries = append(entries, static.TreeEntry{Name: name, Status: status})
	}

	var untracked []string
	for name := range cloned {
		if !seen[name] {
			untracked = append(untracked, name)
		}
	}
	sort.Strings(untracked)
	for _, name := range untracked {
		entries = append(entries, static.TreeEntry{Name: name, Status: static.Untracked})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}
