package venv

import (
	"os"
	"path/filepath"
	"testing"
)

func mkVenv(t *testing.T, scope string) {
	t.Helper()
	bin := filepath.Join(scope, ".venv", "bin")
	if err := os.MkdirAll(bin, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(bin, "python"), []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
}

func TestResolveOrder(t *testing.T) {
	base := t.TempDir()
	group := filepath.Join(base, "billing")
	repo := filepath.Join(group, "billing-api")
	if err := os.MkdirAll(repo, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("VIRTUAL_ENV", "")

	if res := Resolve(repo, group, base); res.Found() {
		t.Errorf("resolved %+v, want none", res)
	}

	mkVenv(t, group)
	if res := Resolve(repo, group, base); res.Kind != KindGroup {
		t.Errorf("kind = %q, want group", res.Kind)
	}

	mkVenv(t, repo)
	if res := Resolve(repo, group, base); res.Kind != KindRepo {
		t.Errorf("kind = %q, want repo", res.Kind)
	}

	mkVenv(t, base)
	res := Resolve(repo, group, base)
	if res.Kind != KindBase {
		t.Errorf("kind = %q, want base", res.Kind)
	}
	if want := filepath.Join(base, ".venv", "bin", "python"); res.Python != want {
		t.Errorf("python = %q, want %q", res.Python, want)
	}
}

func TestResolveActive(t *testing.T) {
	active := t.TempDir()
	bin := filepath.Join(active, "bin")
	if err := os.MkdirAll(bin, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(bin, "python"), nil, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("VIRTUAL_ENV", active)

	res := Resolve("", "", "")
	if res.Kind != KindActive {
		t.Fatalf("kind = %q, want active", res.Kind)
	}
	if res.Dir != active {
		t.Errorf("dir = %q, want %q", res.Dir, active)
	}
}

func TestResolveSkipsEmptyScopes(t *testing.T) {
	t.Setenv("VIRTUAL_ENV", "")
	if res := Resolve("", "", ""); res.Found() {
		t.Errorf("resolved %+v, want none", res)
	}
}

func TestVersion(t *testing.T) {
	scope := t.TempDir()
	if got := Version(scope); got != "" {
		t.Errorf("Version = %q without a venv", got)
	}

	mkVenv(t, scope)
	cfg := "home = /usr/bin\nversion = 3.12.4\n"
	if err := os.WriteFile(filepath.Join(scope, ".venv", "pyvenv.cfg"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := Version(scope); got != "3.12.4" {
		t.Errorf("Version = %q, want 3.12.4", got)
	}
}

func TestExistsAndRemove(t *testing.T) {
	scope := t.TempDir()
	if Exists(scope) {
		t.Error("Exists = true before creation")
	}
	mkVenv(t, scope)
	if !Exists(scope) {
		t.Error("Exists = false after creation")
	}
	if err := Remove(scope); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if Exists(scope) {
		t.Error("Exists = true after removal")
	}
}
