package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbxdev/dbx/internal/cmd"
	"github.com/dbxdev/dbx/internal/config"
	"github.com/dbxdev/dbx/internal/output"
	"github.com/dbxdev/dbx/internal/ui/prompt"
)

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:     "config",
		Short:   "Manage the dbx configuration file",
		GroupID: GroupConfig,
	}

	c.AddCommand(newConfigInitCmd())
	c.AddCommand(newConfigEditCmd())
	c.AddCommand(newConfigPathCmd())

	return c
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			out := output.FromContext(ctx)

			path, err := config.Init(force)
			if errors.Is(err, config.ErrExists) {
				res, cErr := prompt.Confirm("Config file exists, overwrite it?")
				if cErr != nil {
					return cErr
				}
				if !res.Confirmed {
					out.Println("Aborted.")
					return nil
				}
				path, err = config.Init(true)
			}
			if err != nil {
				return err
			}

			out.Printf("Wrote %s\n", path)
			return nil
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")

	return c
}

func newConfigEditCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "edit",
		Short: "Open the configuration file in your editor",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()

			path, err := config.Path()
			if err != nil {
				return err
			}

			editor, err := chooseEditor()
			if err != nil {
				return err
			}

			if err := cmd.RunStreaming(ctx, "", nil, editor, path); err != nil {
				return &exitCodeError{code: cmd.ExitCode(err), err: fmt.Errorf("editor exited: %w", err)}
			}

			// Surface mistakes immediately instead of on the next command.
			if _, err := config.Load(); err != nil {
				return fmt.Errorf("saved config does not validate: %w", err)
			}
			return nil
		},
	}

	return c
}

func newConfigPathCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(c *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			output.FromContext(c.Context()).Println(path)
			return nil
		},
	}

	return c
}
