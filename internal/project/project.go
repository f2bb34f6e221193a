// Package project scaffolds Django projects from bundled templates.
//
// Scaffolding delegates to django-admin startproject / startapp with a
// --template directory extracted from the embedded templates, then drops a
// generated pyproject.toml into the new project so it installs like any
// other repo.
package project

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/dbxdev/dbx/internal/cmd"
)

//go:embed all:templates
var templates embed.FS

// Project is a scaffolded project on disk.
type Project struct {
	Name string
	Path string
}

// HasFrontend reports whether the project contains a frontend app.
func (p Project) HasFrontend() bool {
	_, err := os.Stat(filepath.Join(p.Path, "frontend"))
	return err == nil
}

// extractTemplate copies an embedded template directory to a temp dir so
// django-admin can read it. The caller removes the returned directory.
func extractTemplate(name string) (string, error) {
	dest, err := os.MkdirTemp("", "dbx-template-")
	if err != nil {
		return "", err
	}

	err = fs.WalkDir(templates, "templates/"+name, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel("templates/"+name, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := templates.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
	if err != nil {
		os.RemoveAll(dest)
		return "", fmt.Errorf("extract template %s: %w", name, err)
	}
	return dest, nil
}

// Create scaffolds a Django project at dir/name.
func Create(ctx context.Context, dir, name, settings string) (Project, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Project{}, err
	}

	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		return Project{}, fmt.Errorf("project %q already exists at %s", name, path)
	}

	template, err := extractTemplate("project_template")
	if err != nil {
		return Project{}, err
	}
	defer os.RemoveAll(template)

	err = cmd.RunContext(ctx, dir, "django-admin", "startproject", "--template", template, name)
	if err != nil {
		return Project{}, fmt.Errorf("scaffold project: %w", err)
	}

	if _, statErr := os.Stat(path); statErr != nil {
		return Project{}, fmt.Errorf("django-admin did not create %s", path)
	}

	p := Project{Name: name, Path: path}
	if err := writePyproject(p, settings); err != nil {
		return p, err
	}
	return p, nil
}

// AddFrontend scaffolds the frontend app inside an existing project.
func AddFrontend(ctx context.Context, p Project) error {
	appPath := filepath.Join(p.Path, "frontend")
	if _, err := os.Stat(appPath); err == nil {
		return fmt.Errorf("app %q already exists in project %q", "frontend", p.Name)
	}

	template, err := extractTemplate("frontend_template")
	if err != nil {
		return err
	}
	defer os.RemoveAll(template)

	err = cmd.RunContext(ctx, "", "django-admin", "startapp", "--template", template, "frontend", p.Path)
	if err != nil {
		return fmt.Errorf("scaffold frontend: %w", err)
	}
	return nil
}

// List returns the projects in dir, sorted by name. A missing directory
// yields an empty list.
func List(dir string) ([]Project, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var projects []Project
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if _, err := os.Stat(filepath.Join(path, "pyproject.toml")); err != nil {
			continue
		}
		projects = append(projects, Project{Name: e.Name(), Path: path})
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })
	return projects, nil
}

// Newest returns the most recently modified project in dir.
func Newest(dir string) (Project, error) {
	projects, err := List(dir)
	if err != nil {
		return Project{}, err
	}
	if len(projects) == 0 {
		return Project{}, fmt.Errorf("no projects found in %s", dir)
	}

	newest := projects[0]
	var newestTime int64
	for _, p := range projects {
		info, err := os.Stat(p.Path)
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); mod > newestTime {
			newest, newestTime = p, mod
		}
	}
	return newest, nil
}

// Remove deletes a project directory.
func Remove(p Project) error {
	return os.RemoveAll(p.Path)
}
