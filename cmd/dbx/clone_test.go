package main

import (
	"errors"
	"testing"

	"github.com/dbxdev/dbx/internal/config"
)

func cloneConfig() config.Config {
	return config.Config{
		BaseDir:      "/srv/repos",
		ForkUser:     "alice",
		GlobalGroups: []string{"shared"},
		Groups: map[string]config.Group{
			"shared": {Repos: []string{"git@github.com:org/common.git"}},
			"billing": {Repos: []string{
				"git@github.com:org/billing-api.git",
				"git@github.com:org/billing-web.git",
				"git@github.com:org/common.git",
			}},
			"docs":  {Repos: []string{"git@github.com:org/handbook.git"}},
			"empty": {},
		},
	}
}

func TestClonePlansSingleRepo(t *testing.T) {
	plans, err := clonePlans(cloneConfig(), []string{"billing-web"}, nil)
	if err != nil {
		t.Fatalf("clonePlans: %v", err)
	}
	if len(plans) != 1 || plans[0].group != "billing" {
		t.Fatalf("plans = %+v", plans)
	}
	if len(plans[0].urls) != 1 || plans[0].urls[0] != "git@github.com:org/billing-web.git" {
		t.Errorf("urls = %v", plans[0].urls)
	}
}

func TestClonePlansGroupInjectsGlobals(t *testing.T) {
	plans, err := clonePlans(cloneConfig(), nil, []string{"docs"})
	if err != nil {
		t.Fatalf("clonePlans: %v", err)
	}
	urls := plans[0].urls
	if len(urls) != 2 {
		t.Fatalf("urls = %v, want handbook plus injected common", urls)
	}
	if urls[0] != "git@github.com:org/handbook.git" || urls[1] != "git@github.com:org/common.git" {
		t.Errorf("urls = %v", urls)
	}
}

func TestClonePlansDeduplicatesInjection(t *testing.T) {
	// billing already lists common, injection must not duplicate it.
	plans, err := clonePlans(cloneConfig(), nil, []string{"billing"})
	if err != nil {
		t.Fatalf("clonePlans: %v", err)
	}
	if len(plans[0].urls) != 3 {
		t.Errorf("urls = %v, want 3 deduplicated", plans[0].urls)
	}
}

func TestClonePlansGlobalGroupClonedDirectly(t *testing.T) {
	plans, err := clonePlans(cloneConfig(), nil, []string{"shared"})
	if err != nil {
		t.Fatalf("clonePlans: %v", err)
	}
	if len(plans[0].urls) != 1 {
		t.Errorf("urls = %v, global group must not duplicate itself", plans[0].urls)
	}
}

func TestClonePlansErrors(t *testing.T) {
	cfg := cloneConfig()

	if _, err := clonePlans(cfg, nil, nil); !errors.Is(err, errUsage) {
		t.Errorf("no target: err = %v, want errUsage", err)
	}
	if _, err := clonePlans(cfg, []string{"x"}, []string{"billing"}); !errors.Is(err, errUsage) {
		t.Errorf("both targets: err = %v, want errUsage", err)
	}
	if _, err := clonePlans(cfg, []string{"nope"}, nil); err == nil {
		t.Error("unknown repo: expected error")
	}
	if _, err := clonePlans(cfg, nil, []string{"nope"}); err == nil {
		t.Error("unknown group: expected error")
	}
	if _, err := clonePlans(cfg, nil, []string{"empty"}); err == nil {
		t.Error("empty group: expected error")
	}
}

func TestResolveForkUser(t *testing.T) {
	cfg := cloneConfig()

	if user, err := resolveForkUser(cfg, false, ""); err != nil || user != "" {
		t.Errorf("plain clone: user = %q, err = %v", user, err)
	}
	if user, err := resolveForkUser(cfg, true, ""); err != nil || user != "alice" {
		t.Errorf("--fork: user = %q, err = %v", user, err)
	}
	if user, err := resolveForkUser(cfg, false, "bob"); err != nil || user != "bob" {
		t.Errorf("--fork-user: user = %q, err = %v", user, err)
	}

	cfg.ForkUser = ""
	if _, err := resolveForkUser(cfg, true, ""); !errors.Is(err, errUsage) {
		t.Errorf("--fork without config: err = %v, want errUsage", err)
	}
}
