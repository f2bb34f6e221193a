package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Group describes one named repository group.
type Group struct {
	// Repos is the ordered list of clone URLs for the group.
	Repos []string `toml:"repos"`

	// InstallDirs maps a repo name to the subdirectories that contain
	// installable packages. Repos without an entry install from the root.
	InstallDirs map[string][]string `toml:"install_dirs"`

	// DefaultBranch maps a repo name to the branch to switch to after
	// cloning.
	DefaultBranch map[string]string `toml:"default_branch"`

	// TestRunner maps a repo name to a custom test script, relative to the
	// repo root. Repos without an entry run pytest.
	TestRunner map[string]string `toml:"test_runner"`

	// TestEnv holds extra environment variables for test runs. Values may
	// contain {base_dir} and {group} placeholders.
	TestEnv map[string]string `toml:"test_env"`
}

// Config holds the dbx configuration.
type Config struct {
	BaseDir      string           `toml:"base_dir"`
	ForkUser     string           `toml:"fork_user"`
	GlobalGroups []string         `toml:"global_groups"`
	Groups       map[string]Group `toml:"groups"`
}

// rawConfig matches the on-disk layout, which nests everything under [repo].
type rawConfig struct {
	Repo Config `toml:"repo"`
}

// DefaultBaseDir is used when the config does not set repo.base_dir.
const DefaultBaseDir = "~/repos"

//go:embed default.toml
var defaultConfig []byte

// GroupNames returns the configured group names, sorted.
func (c *Config) GroupNames() []string {
	names := make([]string, 0, len(c.Groups))
	for name := range c.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsGlobalGroup reports whether name is listed under repo.global_groups.
func (c *Config) IsGlobalGroup(name string) bool {
	for _, g := range c.GlobalGroups {
		if g == name {
			return true
		}
	}
	return false
}

// GroupDir returns the directory a group is cloned into.
func (c *Config) GroupDir(group string) string {
	return filepath.Join(c.BaseDir, group)
}

// ProjectsDir returns the directory scaffolded projects live in.
func (c *Config) ProjectsDir() string {
	return filepath.Join(c.BaseDir, "projects")
}

// ExpandTestEnv resolves the {base_dir} and {group} placeholders and ~ in a
// group's test_env values.
func (c *Config) ExpandTestEnv(group string) []string {
	g, ok := c.Groups[group]
	if !ok || len(g.TestEnv) == 0 {
		return nil
	}

	keys := make([]string, 0, len(g.TestEnv))
	for k := range g.TestEnv {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]string, 0, len(keys))
	for _, k := range keys {
		v := g.TestEnv[k]
		v = strings.ReplaceAll(v, "{base_dir}", c.BaseDir)
		v = strings.ReplaceAll(v, "{group}", group)
		if expanded, err := expandPath(v); err == nil {
			v = expanded
		}
		env = append(env, k+"="+v)
	}
	return env
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Path returns the path to the user config file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "dbx", "config.toml"), nil
}

// Load reads the user config, falling back to the embedded default when no
// user file exists. A missing file is not an error; a file that exists but
// does not parse or validate is.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return parse(defaultConfig)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return parse(defaultConfig)
		}
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg, err := parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// parse decodes and validates a TOML config document.
func parse(data []byte) (Config, error) {
	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := raw.Repo
	if cfg.BaseDir == "" {
		cfg.BaseDir = DefaultBaseDir
	}

	expanded, err := expandPath(cfg.BaseDir)
	if err != nil {
		return Config{}, fmt.Errorf("expand base_dir: %w", err)
	}
	cfg.BaseDir = expanded

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate checks cross references once at load time so commands never have
// to re-check the schema.
func (c *Config) validate() error {
	for _, g := range c.GlobalGroups {
		if _, ok := c.Groups[g]; !ok {
			return fmt.Errorf("global_groups references unknown group %q", g)
		}
	}
	for name, group := range c.Groups {
		for i, url := range group.Repos {
			if strings.TrimSpace(url) == "" {
				return fmt.Errorf("group %q: repos[%d] is empty", name, i)
			}
		}
	}
	return nil
}

// ErrExists is returned by Init when the config file is already present and
// force was not set.
var ErrExists = errors.New("config file already exists")

// Init writes the default config to the user config path.
// Returns the path written. Fails if the file exists unless force is set.
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%w: %s", ErrExists, path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, defaultConfig, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
