package main

import (
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/dbxdev/dbx/internal/config"
	"github.com/dbxdev/dbx/internal/log"
	"github.com/dbxdev/dbx/internal/output"
)

func newCdCmd() *cobra.Command {
	var copyToClipboard bool

	cmd := &cobra.Command{
		Use:     "cd <repo>",
		Short:   "Print a repository path for shell scripting",
		GroupID: GroupWorkspace,
		Args:    usageArgs(cobra.ExactArgs(1)),
		Long: `Print the path of a cloned repository.

Use with shell command substitution: cd $(dbx cd billing-api)`,
		Example: `  cd $(dbx cd billing-api)
  dbx cd billing-api --copy`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			repos, err := findRepo(ctx, cfg, args[0])
			if err != nil {
				return err
			}
			path := repos[0].Path

			if copyToClipboard {
				if err := clipboard.WriteAll(path); err != nil {
					log.FromContext(ctx).Warnf("copy to clipboard failed: %v", err)
				}
			}

			out.Println(path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy the path to the clipboard")

	return cmd
}
