package install

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
)

// PackageOptions lists what a pyproject.toml offers for installation.
type PackageOptions struct {
	Name             string
	Extras           []string
	DependencyGroups []string
}

// pyproject matches the parts of pyproject.toml we read.
type pyproject struct {
	Project struct {
		Name                 string              `toml:"name"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
	DependencyGroups map[string][]any `toml:"dependency-groups"`
}

// ReadOptions parses dir/pyproject.toml and reports the available extras and
// dependency groups, sorted.
func ReadOptions(dir string) (PackageOptions, error) {
	data, err := os.ReadFile(filepath.Join(dir, "pyproject.toml"))
	if err != nil {
		return PackageOptions{}, err
	}

	var pp pyproject
	if err := toml.Unmarshal(data, &pp); err != nil {
		return PackageOptions{}, err
	}

	opts := PackageOptions{Name: pp.Project.Name}
	for extra := range pp.Project.OptionalDependencies {
		opts.Extras = append(opts.Extras, extra)
	}
	for group := range pp.DependencyGroups {
		opts.DependencyGroups = append(opts.DependencyGroups, group)
	}
	sort.Strings(opts.Extras)
	sort.Strings(opts.DependencyGroups)
	return opts, nil
}
