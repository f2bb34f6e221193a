package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Clone clones url into dest.
func Clone(ctx context.Context, url, dest string) error {
	return runGit(ctx, "", "clone", url, dest)
}

// CurrentBranch returns the branch checked out in dir, or an empty string on
// a detached HEAD.
func CurrentBranch(ctx context.Context, dir string) (string, error) {
	out, err := outputGit(ctx, dir, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("current branch: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Remotes returns the names of the configured remotes in dir.
func Remotes(ctx context.Context, dir string) ([]string, error) {
	out, err := outputGit(ctx, dir, "remote")
	if err != nil {
		return nil, fmt.Errorf("list remotes: %w", err)
	}
	var remotes []string
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			remotes = append(remotes, line)
		}
	}
	return remotes, nil
}

// HasRemote reports whether dir has a remote with the given name.
func HasRemote(ctx context.Context, dir, name string) bool {
	remotes, err := Remotes(ctx, dir)
	if err != nil {
		return false
	}
	for _, r := range remotes {
		if r == name {
			return true
		}
	}
	return false
}

// AddRemote adds a remote to dir.
func AddRemote(ctx context.Context, dir, name, url string) error {
	return runGit(ctx, dir, "remote", "add", name, url)
}

// RemoteURL returns the fetch URL of a remote in dir.
func RemoteURL(ctx context.Context, dir, name string) (string, error) {
	out, err := outputGit(ctx, dir, "remote", "get-url", name)
	if err != nil {
		return "", fmt.Errorf("remote url %s: %w", name, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Fetch fetches a remote in dir.
func Fetch(ctx context.Context, dir, remote string) error {
	return runGit(ctx, dir, "fetch", remote)
}

// Rebase rebases the current branch of dir onto the given ref.
func Rebase(ctx context.Context, dir, onto string) error {
	return runGit(ctx, dir, "rebase", onto)
}

// Push pushes the current branch of dir to remote. With force set the push
// uses --force-with-lease so an unexpected remote update still fails.
func Push(ctx context.Context, dir, remote string, force bool) error {
	args := []string{"push", remote}
	if force {
		args = []string{"push", "--force-with-lease", remote}
	}
	return runGit(ctx, dir, args...)
}

// Switch checks out a branch in dir.
func Switch(ctx context.Context, dir, branch string) error {
	return runGit(ctx, dir, "switch", branch)
}

// HasBranch reports whether dir has a local branch with the given name.
func HasBranch(ctx context.Context, dir, branch string) bool {
	err := runGit(ctx, dir, "show-ref", "--verify", "--quiet", "refs/heads/"+branch)
	return err == nil
}

// hasRemoteRef reports whether dir knows the given remote-tracking ref.
func hasRemoteRef(ctx context.Context, dir, ref string) bool {
	err := runGit(ctx, dir, "show-ref", "--verify", "--quiet", "refs/remotes/"+ref)
	return err == nil
}

// RemoteDefaultBranch resolves the default branch of a remote. It tries the
// locally recorded symbolic ref first, then asks the remote, then probes for
// main and master.
func RemoteDefaultBranch(ctx context.Context, dir, remote string) (string, error) {
	out, err := outputGit(ctx, dir, "symbolic-ref", "refs/remotes/"+remote+"/HEAD")
	if err == nil {
		ref := strings.TrimSpace(string(out))
		if branch, ok := strings.CutPrefix(ref, "refs/remotes/"+remote+"/"); ok && branch != "" {
			return branch, nil
		}
	}

	out, err = outputGit(ctx, dir, "remote", "show", remote)
	if err == nil {
		if branch := parseHeadBranch(string(out)); branch != "" {
			return branch, nil
		}
	}

	for _, branch := range []string{"main", "master"} {
		if hasRemoteRef(ctx, dir, remote+"/"+branch) {
			return branch, nil
		}
	}
	return "", fmt.Errorf("cannot determine default branch of remote %s", remote)
}

// parseHeadBranch extracts the HEAD branch from git remote show output.
func parseHeadBranch(out string) string {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if branch, ok := strings.CutPrefix(line, "HEAD branch:"); ok {
			return strings.TrimSpace(branch)
		}
	}
	return ""
}

// AheadCount returns how many commits the current branch of dir is ahead of
// ref.
func AheadCount(ctx context.Context, dir, ref string) (int, error) {
	out, err := outputGit(ctx, dir, "rev-list", "--count", ref+"..HEAD")
	if err != nil {
		return 0, fmt.Errorf("ahead count: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		return 0, fmt.Errorf("ahead count: %w", err)
	}
	return n, nil
}
