package project

import (
	"fmt"
	"os"
	"path/filepath"
)

const pyprojectTemplate = `[build-system]
requires = ["setuptools", "wheel"]
build-backend = "setuptools.build_meta"

[project]
name = "%[1]s"
version = "0.1.0"
description = "A Django project scaffolded by dbx"
dependencies = [
    "django-debug-toolbar",
    "django-mongodb-backend",
    "python-webpack-boilerplate",
]

[project.optional-dependencies]
dev = [
    "django-debug-toolbar",
]
test = [
    "pytest",
    "pytest-django",
    "ruff",
]
encryption = [
    "pymongocrypt",
]

[tool.pytest.ini_options]
DJANGO_SETTINGS_MODULE = "%[1]s.%[2]s"
python_files = ["tests.py", "test_*.py", "*_tests.py"]

[tool.setuptools]
packages = ["%[1]s"]
`

// writePyproject generates the project's pyproject.toml. The settings
// argument is the module path below the project package, e.g.
// "settings.myproject".
func writePyproject(p Project, settings string) error {
	content := fmt.Sprintf(pyprojectTemplate, p.Name, settings)
	path := filepath.Join(p.Path, "pyproject.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write pyproject.toml: %w", err)
	}
	return nil
}
