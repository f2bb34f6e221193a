package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/dbxdev/dbx/internal/config"
)

func TestRemoveTargetsDisambiguation(t *testing.T) {
	ctx, buf := testCtx()
	cfg := testWorkspace(t)

	repos, _, err := removeTargets(ctx, cfg, []string{"billing-api"}, "", "shared")
	if err != nil {
		t.Fatalf("removeTargets: %v", err)
	}
	if len(repos) != 1 || repos[0].Group != "shared" {
		t.Fatalf("repos = %v", repos)
	}
	if strings.Contains(buf.String(), "multiple groups") {
		t.Errorf("unexpected ambiguity warning with -G: %q", buf.String())
	}
}

func TestRemoveTargetsAmbiguousWarns(t *testing.T) {
	ctx, buf := testCtx()
	cfg := testWorkspace(t)

	repos, _, err := removeTargets(ctx, cfg, []string{"billing-api"}, "", "")
	if err != nil {
		t.Fatalf("removeTargets: %v", err)
	}
	if len(repos) != 1 || repos[0].Group != "billing" {
		t.Fatalf("repos = %v", repos)
	}
	if !strings.Contains(buf.String(), "multiple groups") {
		t.Errorf("expected ambiguity warning, got %q", buf.String())
	}
}

func TestRemoveTargetsGroup(t *testing.T) {
	ctx, _ := testCtx()
	cfg := testWorkspace(t)

	repos, groupDir, err := removeTargets(ctx, cfg, nil, "billing", "")
	if err != nil {
		t.Fatalf("removeTargets: %v", err)
	}
	if len(repos) != 2 {
		t.Fatalf("repos = %v", repos)
	}
	if want := cfg.GroupDir("billing"); groupDir != want {
		t.Errorf("groupDir = %q, want %q", groupDir, want)
	}
}

func TestRemoveTargetsEmptyGroup(t *testing.T) {
	ctx, _ := testCtx()
	cfg := testWorkspace(t)
	cfg.Groups["docs"] = config.Group{}

	_, _, err := removeTargets(ctx, cfg, nil, "docs", "")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "no cloned repos") {
		t.Errorf("err = %v, want no-cloned-repos message", err)
	}
	if strings.Contains(err.Error(), "not found") {
		t.Errorf("err = %v, configured group must not report not found", err)
	}
}

func TestRemoveTargetsBareGroupName(t *testing.T) {
	ctx, _ := testCtx()
	cfg := testWorkspace(t)

	repos, groupDir, err := removeTargets(ctx, cfg, []string{"shared"}, "", "")
	if err != nil {
		t.Fatalf("removeTargets: %v", err)
	}
	if len(repos) != 2 {
		t.Fatalf("repos = %v", repos)
	}
	if want := cfg.GroupDir("shared"); groupDir != want {
		t.Errorf("groupDir = %q, want %q", groupDir, want)
	}
}

func TestRemoveTargetsErrors(t *testing.T) {
	ctx, _ := testCtx()
	cfg := testWorkspace(t)

	tests := []struct {
		name      string
		args      []string
		group     string
		repoGroup string
		usage     bool
	}{
		{name: "no target", usage: true},
		{name: "names with group", args: []string{"billing-api"}, group: "billing", usage: true},
		{name: "wrong disambiguation group", args: []string{"billing-web"}, repoGroup: "shared"},
		{name: "unknown repo", args: []string{"nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := removeTargets(ctx, cfg, tt.args, tt.group, tt.repoGroup)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, errUsage); got != tt.usage {
				t.Errorf("errors.Is(err, errUsage) = %v, want %v (%v)", got, tt.usage, err)
			}
		})
	}
}
