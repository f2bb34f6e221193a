// Package install drives editable installs of cloned repositories via uv.
package install

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dbxdev/dbx/internal/cmd"
)

// Status classifies the outcome of one package install.
type Status int

const (
	// Installed means uv pip install succeeded.
	Installed Status = iota
	// Skipped means the directory has no installable package.
	Skipped
	// Failed means uv pip install returned an error.
	Failed
)

// Result is the outcome of installing one directory.
type Result struct {
	// Dir is the installed directory, relative to the repo when the repo
	// uses install_dirs.
	Dir    string
	Status Status
	Err    error
}

// Options configure an install run.
type Options struct {
	// Python is the interpreter of the target venv.
	Python string
	// Extras are appended to the requirement as [a,b].
	Extras []string
	// DependencyGroups are installed via --group.
	DependencyGroups []string
}

// installable reports whether dir contains a package definition.
func installable(dir string) bool {
	for _, marker := range []string{"pyproject.toml", "setup.py"} {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

// Package installs one directory editable into the venv owning opts.Python.
func Package(ctx context.Context, dir string, opts Options) Result {
	res := Result{Dir: dir}
	if !installable(dir) {
		res.Status = Skipped
		return res
	}

	requirement := dir
	if len(opts.Extras) > 0 {
		requirement = fmt.Sprintf("%s[%s]", dir, strings.Join(opts.Extras, ","))
	}

	args := []string{"pip", "install", "--python", opts.Python, "-e", requirement}
	for _, g := range opts.DependencyGroups {
		args = append(args, "--group", g)
	}

	if err := cmd.RunContext(ctx, "", "uv", args...); err != nil {
		res.Status = Failed
		res.Err = err
		return res
	}
	res.Status = Installed
	return res
}

// Repo installs a repository. When installDirs is non-empty each listed
// subdirectory is installed on its own, otherwise the repo root is.
func Repo(ctx context.Context, repoPath string, installDirs []string, opts Options) []Result {
	if len(installDirs) == 0 {
		return []Result{Package(ctx, repoPath, opts)}
	}

	results := make([]Result, 0, len(installDirs))
	for _, sub := range installDirs {
		res := Package(ctx, filepath.Join(repoPath, sub), opts)
		res.Dir = sub
		results = append(results, res)
	}
	return results
}

// Uninstall removes a package from the venv owning python.
func Uninstall(ctx context.Context, python, name string) error {
	return cmd.RunContext(ctx, "", "uv", "pip", "uninstall", "--python", python, name)
}

// Frontend runs npm install in repoPath/frontend when that directory holds a
// package.json. Returns false when there is no frontend to install.
func Frontend(ctx context.Context, repoPath string) (bool, error) {
	dir := filepath.Join(repoPath, "frontend")
	if _, err := os.Stat(filepath.Join(dir, "package.json")); err != nil {
		return false, nil
	}
	if err := cmd.RunContext(ctx, dir, "npm", "install"); err != nil {
		return true, err
	}
	return true, nil
}
