package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dbxdev/dbx/internal/config"
	"github.com/dbxdev/dbx/internal/install"
	"github.com/dbxdev/dbx/internal/log"
	"github.com/dbxdev/dbx/internal/output"
	"github.com/dbxdev/dbx/internal/project"
	"github.com/dbxdev/dbx/internal/venv"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Short:   "Scaffold and manage Django projects",
		GroupID: GroupWorkspace,
		Long: `Scaffold Django projects from the bundled templates into the projects
directory under the base directory.`,
	}

	cmd.AddCommand(newProjectAddCmd())
	cmd.AddCommand(newProjectRemoveCmd())
	cmd.AddCommand(newProjectListCmd())

	return cmd
}

func newProjectAddCmd() *cobra.Command {
	var (
		directory  string
		noFrontend bool
		randomName bool
		noInstall  bool
		settings   string
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Create a new Django project",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		Long: `Create a Django project from the bundled template, generate its
pyproject.toml, add a webpack frontend app, and install it into the
resolved virtual environment. Each step after scaffolding is best
effort; a failed install leaves a usable project behind.`,
		Example: `  dbx project add myproject
  dbx project add myproject --no-frontend
  dbx project add --random
  dbx project add myproject -d ~/scratch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			var name string
			switch {
			case len(args) == 1:
				name = args[0]
				if randomName {
					l.Warnf("both a name and --random given, using the name")
				}
			case randomName:
				name = project.RandomName()
				out.Printf("Generated random project name: %s\n", name)
			default:
				return fmt.Errorf("%w: a project name or --random is required", errUsage)
			}

			dir := directory
			if dir == "" {
				dir = cfg.ProjectsDir()
			}
			if settings == "" {
				settings = "settings." + name
			}

			out.Printf("Creating project %s\n", name)
			p, err := project.Create(ctx, dir, name, settings)
			if err != nil {
				return err
			}

			if !noFrontend {
				out.Printf("Adding frontend to %s\n", name)
				if err := project.AddFrontend(ctx, p); err != nil {
					l.Warnf("project created, but frontend scaffolding failed: %v", err)
				}
			}

			if !noInstall {
				if err := installProject(ctx, cfg, p); err != nil {
					l.Warnf("project created, but installation failed: %v", err)
				}
			}

			out.Printf("Project created at %s\n", p.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&directory, "directory", "d", "", "Create the project here instead of the projects directory")
	cmd.Flags().BoolVar(&noFrontend, "no-frontend", false, "Skip the frontend app")
	cmd.Flags().BoolVarP(&randomName, "random", "r", false, "Generate a random project name")
	cmd.Flags().BoolVar(&noInstall, "no-install", false, "Skip installing the project")
	cmd.Flags().StringVar(&settings, "settings", "", "Settings module below the project package (default settings.<name>)")

	return cmd
}

// installProject installs a freshly scaffolded project and its frontend.
func installProject(ctx context.Context, cfg config.Config, p project.Project) error {
	l := log.FromContext(ctx)

	res := venv.Resolve(p.Path, "", cfg.BaseDir)
	if !res.Found() {
		return fmt.Errorf("no virtual environment (run 'dbx env init' first)")
	}

	result := install.Package(ctx, p.Path, install.Options{Python: res.Python})
	if result.Status == install.Failed {
		return result.Err
	}

	if found, err := install.Frontend(ctx, p.Path); found && err != nil {
		l.Warnf("frontend install failed: %v", err)
	}
	return nil
}

func newProjectRemoveCmd() *cobra.Command {
	var directory string

	cmd := &cobra.Command{
		Use:   "remove [name]",
		Short: "Delete a project",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		Long: `Delete a project directory, uninstalling its package from the resolved
virtual environment first. Without a name the newest project is removed.`,
		Example: `  dbx project remove
  dbx project remove myproject`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			dir := directory
			if dir == "" {
				dir = cfg.ProjectsDir()
			}

			var p project.Project
			if len(args) == 1 {
				p = project.Project{Name: args[0], Path: filepath.Join(dir, args[0])}
				if _, err := os.Stat(p.Path); err != nil {
					return fmt.Errorf("project %q does not exist at %s", p.Name, p.Path)
				}
			} else {
				if directory != "" {
					return fmt.Errorf("%w: a project name is required with --directory", errUsage)
				}
				newest, err := project.Newest(dir)
				if err != nil {
					return err
				}
				p = newest
				out.Printf("No project specified, removing newest: %s\n", p.Name)
			}

			// Best effort, the directory removal matters more.
			if res := venv.Resolve(p.Path, "", cfg.BaseDir); res.Found() {
				if err := install.Uninstall(ctx, res.Python, p.Name); err != nil {
					l.Warnf("uninstall failed: %v", err)
				}
			}

			if err := project.Remove(p); err != nil {
				return err
			}
			out.Printf("Removed %s\n", p.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&directory, "directory", "d", "", "Look for the project here instead of the projects directory")

	return cmd
}

func newProjectListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scaffolded projects",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			projects, err := project.List(cfg.ProjectsDir())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				out.Println("No projects found. Create one with 'dbx project add <name>'.")
				return nil
			}

			out.Printf("Projects directory: %s\n\n", cfg.ProjectsDir())
			for _, p := range projects {
				marker := ""
				if p.HasFrontend() {
					marker = "  (frontend)"
				}
				out.Printf("  %s%s\n", p.Name, marker)
			}
			return nil
		},
	}

	return cmd
}
