package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dbxdev/dbx/internal/config"
	"github.com/dbxdev/dbx/internal/log"
	"github.com/dbxdev/dbx/internal/workspace"
)

func testCtx() (context.Context, *bytes.Buffer) {
	var buf bytes.Buffer
	l := log.New(&buf, false, false)
	return log.WithLogger(context.Background(), l), &buf
}

func testWorkspace(t *testing.T) config.Config {
	t.Helper()
	baseDir := t.TempDir()
	for _, repo := range []struct{ group, name string }{
		{"billing", "billing-api"},
		{"billing", "billing-web"},
		{"shared", "common"},
		{"shared", "billing-api"},
	} {
		dir := filepath.Join(baseDir, repo.group, repo.name)
		if err := os.MkdirAll(filepath.Join(dir, ".git"), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return config.Config{
		BaseDir: baseDir,
		Groups: map[string]config.Group{
			"billing": {Repos: []string{"git@github.com:org/billing-api.git", "git@github.com:org/billing-web.git"}},
			"shared":  {Repos: []string{"git@github.com:org/common.git"}},
		},
	}
}

func TestResolveTargetsByName(t *testing.T) {
	ctx, _ := testCtx()
	cfg := testWorkspace(t)

	repos, err := resolveTargets(ctx, cfg, "billing-web", targetFlags{})
	if err != nil {
		t.Fatalf("resolveTargets: %v", err)
	}
	if len(repos) != 1 || repos[0].Name != "billing-web" || repos[0].Group != "billing" {
		t.Errorf("repos = %v", repos)
	}
}

func TestResolveTargetsAmbiguousName(t *testing.T) {
	ctx, buf := testCtx()
	cfg := testWorkspace(t)

	repos, err := resolveTargets(ctx, cfg, "billing-api", targetFlags{})
	if err != nil {
		t.Fatalf("resolveTargets: %v", err)
	}
	if len(repos) != 1 || repos[0].Group != "billing" {
		t.Errorf("repos = %v, want first match from billing", repos)
	}
	if !strings.Contains(buf.String(), "multiple groups") {
		t.Errorf("expected ambiguity warning, got %q", buf.String())
	}
}

func TestResolveTargetsByGroup(t *testing.T) {
	ctx, _ := testCtx()
	cfg := testWorkspace(t)

	repos, err := resolveTargets(ctx, cfg, "", targetFlags{group: "billing"})
	if err != nil {
		t.Fatalf("resolveTargets: %v", err)
	}
	if len(repos) != 2 {
		t.Fatalf("repos = %v, want 2", repos)
	}
	for _, r := range repos {
		if r.Group != "billing" {
			t.Errorf("repo %s in group %s", r.Name, r.Group)
		}
	}
}

func TestResolveTargetsUnknown(t *testing.T) {
	ctx, _ := testCtx()
	cfg := testWorkspace(t)

	if _, err := resolveTargets(ctx, cfg, "nope", targetFlags{}); err == nil {
		t.Error("unknown repo: expected error")
	}
	if _, err := resolveTargets(ctx, cfg, "", targetFlags{group: "nope"}); err == nil {
		t.Error("unknown group: expected error")
	}
}

func TestResolveTargetsUsageErrors(t *testing.T) {
	ctx, _ := testCtx()
	cfg := testWorkspace(t)

	_, err := resolveTargets(ctx, cfg, "", targetFlags{})
	if !errors.Is(err, errUsage) {
		t.Errorf("no target: err = %v, want errUsage", err)
	}

	_, err = resolveTargets(ctx, cfg, "billing-api", targetFlags{group: "billing"})
	if !errors.Is(err, errUsage) {
		t.Errorf("two targets: err = %v, want errUsage", err)
	}
}

func TestResolveTargetsProject(t *testing.T) {
	ctx, _ := testCtx()
	cfg := testWorkspace(t)
	dir := filepath.Join(cfg.ProjectsDir(), "myproject")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "pyproject.toml"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	repos, err := resolveTargets(ctx, cfg, "", targetFlags{project: "myproject"})
	if err != nil {
		t.Fatalf("resolveTargets: %v", err)
	}
	if len(repos) != 1 || repos[0].Group != workspace.ProjectsGroup || repos[0].Path != dir {
		t.Errorf("repos = %v", repos)
	}

	if _, err := resolveTargets(ctx, cfg, "", targetFlags{project: "nope"}); err == nil {
		t.Error("unknown project: expected error")
	}
}

func TestForEachContinuesOnFailure(t *testing.T) {
	ctx, buf := testCtx()

	targets := []workspace.Repo{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	var visited []string
	failed := forEach(ctx, targets, func(r workspace.Repo) error {
		visited = append(visited, r.Name)
		if r.Name == "b" {
			return fmt.Errorf("boom")
		}
		return nil
	})

	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
	if len(visited) != 3 {
		t.Errorf("visited = %v, want all targets", visited)
	}
	if !strings.Contains(buf.String(), "b: boom") {
		t.Errorf("expected warning for b, got %q", buf.String())
	}
}
