package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func mkRepo(t *testing.T, baseDir, group, name, marker string) {
	t.Helper()
	dir := filepath.Join(baseDir, group, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	var err error
	if marker == ".git" {
		err = os.Mkdir(filepath.Join(dir, marker), 0o755)
	} else {
		err = os.WriteFile(filepath.Join(dir, marker), nil, 0o644)
	}
	if err != nil {
		t.Fatal(err)
	}
}

func TestFindAll(t *testing.T) {
	baseDir := t.TempDir()
	mkRepo(t, baseDir, "billing", "billing-api", ".git")
	mkRepo(t, baseDir, "billing", "billing-web", ".git")
	mkRepo(t, baseDir, "shared", "common", ".git")
	mkRepo(t, baseDir, "projects", "brave-falcon", "pyproject.toml")

	// A directory without a marker is not a repo.
	if err := os.MkdirAll(filepath.Join(baseDir, "billing", "scratch"), 0o755); err != nil {
		t.Fatal(err)
	}
	// A stray file at group level is ignored.
	if err := os.WriteFile(filepath.Join(baseDir, "README.md"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	repos, err := FindAll(baseDir)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}

	want := []Repo{
		{Name: "billing-api", Group: "billing"},
		{Name: "billing-web", Group: "billing"},
		{Name: "brave-falcon", Group: "projects"},
		{Name: "common", Group: "shared"},
	}
	if len(repos) != len(want) {
		t.Fatalf("found %d repos, want %d: %v", len(repos), len(want), repos)
	}
	for i, w := range want {
		if repos[i].Name != w.Name || repos[i].Group != w.Group {
			t.Errorf("repos[%d] = %s/%s, want %s/%s", i, repos[i].Group, repos[i].Name, w.Group, w.Name)
		}
		wantPath := filepath.Join(baseDir, w.Group, w.Name)
		if repos[i].Path != wantPath {
			t.Errorf("repos[%d].Path = %q, want %q", i, repos[i].Path, wantPath)
		}
	}
}

func TestFindAllMissingBaseDir(t *testing.T) {
	repos, err := FindAll(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(repos) != 0 {
		t.Errorf("repos = %v, want none", repos)
	}
}

func TestFindByName(t *testing.T) {
	baseDir := t.TempDir()
	mkRepo(t, baseDir, "billing", "common", ".git")
	mkRepo(t, baseDir, "shared", "common", ".git")
	mkRepo(t, baseDir, "shared", "tool", ".git")

	matches, err := FindByName(baseDir, "common")
	if err != nil {
		t.Fatalf("FindByName: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("matches = %v, want 2", matches)
	}
	if matches[0].Group != "billing" {
		t.Errorf("first match group = %q, want billing", matches[0].Group)
	}

	matches, err = FindByName(baseDir, "missing")
	if err != nil {
		t.Fatalf("FindByName: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("matches = %v, want none", matches)
	}
}

func TestInGroup(t *testing.T) {
	repos := []Repo{
		{Name: "a", Group: "one"},
		{Name: "b", Group: "two"},
		{Name: "c", Group: "one"},
	}
	got := InGroup(repos, "one")
	if len(got) != 2 || got[0].Name != "a" || got[1].Name != "c" {
		t.Errorf("InGroup = %v", got)
	}
}
