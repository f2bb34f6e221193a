package main

import (
	"testing"

	"github.com/dbxdev/dbx/internal/ui/static"
	"github.com/dbxdev/dbx/internal/workspace"
)

func TestBuildTree(t *testing.T) {
	cfg := cloneConfig()
	cloned := []workspace.Repo{
		{Name: "billing-api", Group: "billing"},
		{Name: "scratch", Group: "billing"},
		{Name: "common", Group: "shared"},
		{Name: "stray", Group: "unconfigured"},
	}

	tree := buildTree(cfg, cloned)

	groups := make(map[string]static.TreeGroup, len(tree))
	var order []string
	for _, g := range tree {
		groups[g.Name] = g
		order = append(order, g.Name)
	}

	for i := 1; i < len(order); i++ {
		if order[i-1] > order[i] {
			t.Errorf("groups not sorted: %v", order)
		}
	}

	if _, ok := groups["unconfigured"]; !ok {
		t.Error("on-disk group missing from tree")
	}
	if !groups["shared"].Global {
		t.Error("shared not marked global")
	}

	entries := make(map[string]static.Status)
	for _, e := range groups["billing"].Entries {
		entries[e.Name] = e.Status
	}
	if entries["billing-api"] != static.Cloned {
		t.Errorf("billing-api status = %v, want Cloned", entries["billing-api"])
	}
	if entries["billing-web"] != static.Available {
		t.Errorf("billing-web status = %v, want Available", entries["billing-web"])
	}
	if entries["scratch"] != static.Untracked {
		t.Errorf("scratch status = %v, want Untracked", entries["scratch"])
	}
	// common is injected from the global group and not cloned in billing.
	if entries["common"] != static.Available {
		t.Errorf("injected common status = %v, want Available", entries["common"])
	}

	// docs gets the global repo injected as available too.
	found := false
	for _, e := range groups["docs"].Entries {
		if e.Name == "common" && e.Status == static.Available {
			found = true
		}
	}
	if !found {
		t.Errorf("docs entries = %v, want injected common", groups["docs"].Entries)
	}
}

func TestBuildTreeSkipsProjects(t *testing.T) {
	cfg := cloneConfig()
	cloned := []workspace.Repo{{Name: "myproject", Group: workspace.ProjectsGroup}}
	for _, g := range buildTree(cfg, cloned) {
		if g.Name == workspace.ProjectsGroup {
			t.Error("projects listed as a repo group")
		}
	}
}
