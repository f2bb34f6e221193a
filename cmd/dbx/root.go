package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/dbxdev/dbx/internal/config"
	"github.com/dbxdev/dbx/internal/git"
	"github.com/dbxdev/dbx/internal/log"
	"github.com/dbxdev/dbx/internal/output"
)

// Global flags
var (
	verbose bool
	quiet   bool
)

// Command group IDs for organizing help output
const (
	GroupRepo      = "repository"
	GroupPython    = "python"
	GroupWorkspace = "workspace"
	GroupConfig    = "config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dbx",
	Short: "Workspace manager for grouped git repositories",
	Long: `dbx manages a workspace of git repositories organized into named groups.

It clones whole groups at once, fans git operations across them, keeps
forks in sync with upstream, and manages the Python environments the
repositories are developed in.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip git check for completion and help commands
		if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
			return nil
		}
		return git.CheckGit()
	},
	// Run is not set - shows help when no subcommand provided
}

// Execute runs the root command and maps errors to exit codes.
func Execute() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dbx: %v\n", err)
		os.Exit(1)
	}

	// Signal handling cancels the context and with it any running child.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Diagnostics go to stderr, primary data to stdout. The color profile
	// writer downgrades styling for pipes and dumb terminals.
	ctx = config.WithConfig(ctx, cfg)
	logger := log.New(os.Stderr, verbose, quiet)
	ctx = log.WithLogger(ctx, logger)
	ctx = output.WithPrinter(ctx, colorprofile.NewWriter(os.Stdout, os.Environ()))

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var exitErr *exitCodeError
		switch {
		case errors.As(err, &exitErr):
			os.Exit(exitErr.code)
		case errors.Is(err, errUsage):
			os.Exit(2)
		default:
			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, "Run 'dbx -h' for help")
			os.Exit(1)
		}
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Flag misuse is a usage error (exit 2), same as bad positionals.
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %s", errUsage, err)
	})

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRepo, Title: "Repository Commands:"},
		&cobra.Group{ID: GroupPython, Title: "Python Commands:"},
		&cobra.Group{ID: GroupWorkspace, Title: "Workspace Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Repository commands
	rootCmd.AddCommand(newCloneCmd())
	rootCmd.AddCommand(newSyncCmd())
	for _, spec := range gitCommands {
		rootCmd.AddCommand(newGitCmd(spec))
	}
	rootCmd.AddCommand(newOpenCmd())

	// Python commands
	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newTestCmd())
	rootCmd.AddCommand(newEnvCmd())
	rootCmd.AddCommand(newJustCmd())

	// Workspace commands
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newProjectCmd())
	rootCmd.AddCommand(newEditCmd())
	rootCmd.AddCommand(newCdCmd())
	rootCmd.AddCommand(newRemoveCmd())

	// Configuration commands
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDocsCmd())
}
