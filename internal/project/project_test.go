package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func mkProject(t *testing.T, dir, name string) Project {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(path, "pyproject.toml"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	return Project{Name: name, Path: path}
}

func TestExtractTemplate(t *testing.T) {
	dir, err := extractTemplate("project_template")
	if err != nil {
		t.Fatalf("extractTemplate: %v", err)
	}
	defer os.RemoveAll(dir)

	for _, f := range []string{
		"manage.py",
		filepath.Join("project_name", "settings", "base.py"),
		filepath.Join("project_name", "settings", "mongodb.py"),
		filepath.Join("project_name", "apps.py"),
	} {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			t.Errorf("missing template file %s: %v", f, err)
		}
	}
}

func TestWritePyproject(t *testing.T) {
	dir := t.TempDir()
	p := Project{Name: "myproject", Path: dir}
	if err := writePyproject(p, "settings.myproject"); err != nil {
		t.Fatalf("writePyproject: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "pyproject.toml"))
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, `name = "myproject"`) {
		t.Error("missing project name")
	}
	if !strings.Contains(content, `DJANGO_SETTINGS_MODULE = "myproject.settings.myproject"`) {
		t.Error("missing settings module")
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	mkProject(t, dir, "bravo")
	mkProject(t, dir, "alpha")
	// A directory without pyproject.toml is not a project.
	if err := os.MkdirAll(filepath.Join(dir, "scratch"), 0o755); err != nil {
		t.Fatal(err)
	}

	projects, err := List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(projects) != 2 || projects[0].Name != "alpha" || projects[1].Name != "bravo" {
		t.Errorf("projects = %v", projects)
	}

	missing, err := List(filepath.Join(dir, "nope"))
	if err != nil {
		t.Fatalf("List missing dir: %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("projects = %v, want none", missing)
	}
}

func TestNewest(t *testing.T) {
	dir := t.TempDir()
	old := mkProject(t, dir, "older")
	mkProject(t, dir, "newer")

	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(old.Path, past, past); err != nil {
		t.Fatal(err)
	}

	newest, err := Newest(dir)
	if err != nil {
		t.Fatalf("Newest: %v", err)
	}
	if newest.Name != "newer" {
		t.Errorf("newest = %q, want newer", newest.Name)
	}

	if _, err := Newest(t.TempDir()); err == nil {
		t.Error("expected error for empty projects dir")
	}
}

func TestRandomName(t *testing.T) {
	for range 10 {
		name := RandomName()
		adj, noun, ok := strings.Cut(name, "_")
		if !ok || adj == "" || noun == "" {
			t.Fatalf("malformed name %q", name)
		}
	}
}
