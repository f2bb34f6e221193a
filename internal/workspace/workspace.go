// Package workspace discovers cloned repositories under the base directory.
//
// The layout is <base_dir>/<group>/<repo>, where a repo is any directory
// containing a .git entry. The projects directory is special: its children
// are scaffolded projects, marked by a pyproject.toml instead of .git.
package workspace

import (
	"os"
	"path/filepath"
	"sort"
)

// ProjectsGroup is the reserved group name for scaffolded projects.
const ProjectsGroup = "projects"

// Repo is a checkout found on disk.
type Repo struct {
	Name  string
	Group string
	Path  string
}

// FindAll returns every repo under baseDir, sorted by group then name.
// A missing base directory yields an empty result, not an error.
func FindAll(baseDir string) ([]Repo, error) {
	groups, err := os.ReadDir(baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var repos []Repo
	for _, g := range groups {
		if !g.IsDir() {
			continue
		}
		groupDir := filepath.Join(baseDir, g.Name())
		entries, err := os.ReadDir(groupDir)
		if err != nil {
			continue
		}
		marker := ".git"
		if g.Name() == ProjectsGroup {
			marker = "pyproject.toml"
		}
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			path := filepath.Join(groupDir, e.Name())
			if _, err := os.Stat(filepath.Join(path, marker)); err != nil {
				continue
			}
			repos = append(repos, Repo{Name: e.Name(), Group: g.Name(), Path: path})
		}
	}

	sort.Slice(repos, func(i, j int) bool {
		if repos[i].Group != repos[j].Group {
			return repos[i].Group < repos[j].Group
		}
		return repos[i].Name < repos[j].Name
	})
	return repos, nil
}

// FindByName returns every repo named name, in group order. Callers take the
// first match and may warn when the name is ambiguous.
func FindByName(baseDir, name string) ([]Repo, error) {
	repos, err := FindAll(baseDir)
	if err != nil {
		return nil, err
	}
	var matches []Repo
	for _, r := range repos {
		if r.Name == name {
			matches = append(matches, r)
		}
	}
	return matches, nil
}

// InGroup filters repos down to one group.
func InGroup(repos []Repo, group string) []Repo {
	var out []Repo
	for _, r := range repos {
		if r.Group == group {
			out = append(out, r)
		}
	}
	return out
}

// Names returns the repo names of a slice, preserving order.
func Names(repos []Repo) []string {
	names := make([]string, 0, len(repos))
	for _, r := range repos {
		names = append(names, r.Name)
	}
	return names
}
