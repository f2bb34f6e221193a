package main

import (
	"github.com/spf13/cobra"

	"github.com/dbxdev/dbx/internal/output"
)

const docsURL = "https://github.com/dbxdev/dbx#readme"

func newDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "docs",
		Short:   "Open the dbx documentation in a browser",
		GroupID: GroupConfig,
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			output.FromContext(ctx).Printf("Opening docs: %s\n", docsURL)
			return openBrowser(ctx, docsURL)
		},
	}
}
