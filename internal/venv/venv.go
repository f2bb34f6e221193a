// Package venv resolves and manages Python virtual environments.
//
// A venv is any .venv directory with a usable interpreter. Resolution walks
// outward-in: the base directory first, then the repository, then the group,
// then whatever interpreter VIRTUAL_ENV points at. Install and test refuse
// to run without a resolution so they never touch a system Python.
package venv

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/dbxdev/dbx/internal/cmd"
)

// Kind identifies where a resolved interpreter came from.
type Kind string

const (
	KindBase   Kind = "base"
	KindRepo   Kind = "repo"
	KindGroup  Kind = "group"
	KindActive Kind = "active"
	KindNone   Kind = "none"
)

// Resolution is the outcome of a venv lookup.
type Resolution struct {
	// Python is the interpreter path, empty when Kind is none.
	Python string
	Kind   Kind
	// Dir is the venv root, empty for active and none.
	Dir string
}

// Found reports whether an interpreter was resolved.
func (r Resolution) Found() bool {
	return r.Kind != KindNone
}

// interpreter returns the path to the python binary inside a venv dir, or an
// empty string when the venv does not exist.
func interpreter(venvDir string) string {
	python := filepath.Join(venvDir, "bin", "python")
	if _, err := os.Stat(python); err != nil {
		return ""
	}
	return python
}

// Resolve finds the interpreter to use for a repo. Empty path arguments skip
// that scope.
func Resolve(repoPath, groupPath, basePath string) Resolution {
	scopes := []struct {
		path string
		kind Kind
	}{
		{basePath, KindBase},
		{repoPath, KindRepo},
		{groupPath, KindGroup},
	}
	for _, s := range scopes {
		if s.path == "" {
			continue
		}
		dir := filepath.Join(s.path, ".venv")
		if python := interpreter(dir); python != "" {
			return Resolution{Python: python, Kind: s.kind, Dir: dir}
		}
	}

	if active := os.Getenv("VIRTUAL_ENV"); active != "" {
		if python := interpreter(active); python != "" {
			return Resolution{Python: python, Kind: KindActive, Dir: active}
		}
	}

	return Resolution{Kind: KindNone}
}

// Dir returns the venv directory for a scope path.
func Dir(path string) string {
	return filepath.Join(path, ".venv")
}

// Exists reports whether a venv already exists at the scope path.
func Exists(path string) bool {
	return interpreter(Dir(path)) != ""
}

// Create runs uv venv at path. A non-empty pythonVersion pins the
// interpreter version.
func Create(ctx context.Context, path, pythonVersion string) error {
	args := []string{"venv", Dir(path)}
	if pythonVersion != "" {
		args = append(args, "--python", pythonVersion)
	}
	return cmd.RunContext(ctx, "", "uv", args...)
}

// Remove deletes the venv at the scope path.
func Remove(path string) error {
	return os.RemoveAll(Dir(path))
}

// Version reads the interpreter version from the venv's pyvenv.cfg, or an
// empty string when it cannot be determined.
func Version(path string) string {
	data, err := os.ReadFile(filepath.Join(Dir(path), "pyvenv.cfg"))
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "version", "version_info":
			return strings.TrimSpace(value)
		}
	}
	return ""
}
