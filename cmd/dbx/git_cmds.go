package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbxdev/dbx/internal/config"
	"github.com/dbxdev/dbx/internal/git"
	"github.com/dbxdev/dbx/internal/output"
	"github.com/dbxdev/dbx/internal/ui/static"
	"github.com/dbxdev/dbx/internal/workspace"
)

// gitCmdSpec describes one passthrough git command. Extra CLI args are
// appended to the git invocation unchanged, so 'dbx log -g billing
// --oneline -5' works the way 'git log --oneline -5' does.
type gitCmdSpec struct {
	name    string
	short   string
	base    []string
	example string
}

var gitCommands = []gitCmdSpec{
	{
		name:  "fetch",
		short: "Fetch remotes in one repo or a whole group",
		base:  []string{"fetch"},
		example: `  dbx fetch billing-api
  dbx fetch -g billing --all`,
	},
	{
		name:  "pull",
		short: "Pull in one repo or a whole group",
		base:  []string{"pull"},
		example: `  dbx pull billing-api
  dbx pull -g billing`,
	},
	{
		name:  "status",
		short: "Show working tree status across repos",
		base:  []string{"status"},
		example: `  dbx status billing-api
  dbx status -g billing -s`,
	},
	{
		name:  "log",
		short: "Show commit logs across repos",
		base:  []string{"log"},
		example: `  dbx log billing-api --oneline -5
  dbx log -g billing -1`,
	},
	{
		name:  "branch",
		short: "List or manage branches across repos",
		base:  []string{"branch"},
		example: `  dbx branch billing-api
  dbx branch -g billing -vv`,
	},
	{
		name:  "switch",
		short: "Switch branches across repos",
		base:  []string{"switch"},
		example: `  dbx switch billing-api main
  dbx switch -g billing main`,
	},
	{
		name:  "reset",
		short: "Reset working trees across repos",
		base:  []string{"reset"},
		example: `  dbx reset billing-api --hard HEAD
  dbx reset -g billing`,
	},
	{
		name:  "remote",
		short: "Inspect remotes across repos",
		base:  []string{"remote"},
		example: `  dbx remote billing-api -v
  dbx remote -g billing -v`,
	},
}

// splitGitArgs peels dbx's own flags off the front of the raw argument
// list. Scanning stops at the first token dbx does not own, so git flags
// like -s or --oneline anywhere after the target reach git untouched.
func splitGitArgs(args []string) (flags targetFlags, list, help bool, rest []string, err error) {
	for len(args) > 0 {
		arg := args[0]
		switch {
		case arg == "-g" || arg == "--group":
			if len(args) < 2 {
				return flags, list, help, nil, usageErrorf("flag needs an argument: %s", arg)
			}
			flags.group, args = args[1], args[2:]
		case strings.HasPrefix(arg, "--group="):
			flags.group, args = strings.TrimPrefix(arg, "--group="), args[1:]
		case arg == "-p" || arg == "--project":
			if len(args) < 2 {
				return flags, list, help, nil, usageErrorf("flag needs an argument: %s", arg)
			}
			flags.project, args = args[1], args[2:]
		case strings.HasPrefix(arg, "--project="):
			flags.project, args = strings.TrimPrefix(arg, "--project="), args[1:]
		case arg == "-l" || arg == "--list":
			list, args = true, args[1:]
		case arg == "-h" || arg == "--help":
			help, args = true, args[1:]
		default:
			return flags, list, help, args, nil
		}
	}
	return flags, list, help, nil, nil
}

// newGitCmd builds a fan-out command from a spec. The first positional arg
// is treated as a repo name unless -g/-p is given; everything else is
// passed through to git. Per-repo failures are warnings, the command still
// exits 0.
func newGitCmd(spec gitCmdSpec) *cobra.Command {
	cmd := &cobra.Command{
		Use:     spec.name + " [repo] [git-args...]",
		Short:   spec.short,
		GroupID: GroupRepo,
		Example: spec.example,
		// Cobra must not parse flags here or it rejects git's own flags
		// before RunE ever sees them; splitGitArgs does the parsing.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			targets, list, help, args, err := splitGitArgs(args)
			if err != nil {
				return err
			}
			if help {
				return cmd.Help()
			}
			if list {
				cloned, err := workspace.FindAll(cfg.BaseDir)
				if err != nil {
					return err
				}
				out.Print(static.RenderTree(buildTree(cfg, cloned)))
				return nil
			}

			var name string
			if targets.group == "" && targets.project == "" && len(args) > 0 {
				name, args = args[0], args[1:]
			}

			repos, err := resolveTargets(ctx, cfg, name, targets)
			if err != nil {
				return err
			}

			gitArgs := append(append([]string{}, spec.base...), args...)
			forEach(ctx, repos, func(repo workspace.Repo) error {
				if len(repos) > 1 {
					out.Printf("\n=== %s ===\n", repo.Name)
				}
				return git.Run(ctx, repo.Path, gitArgs...)
			})
			return nil
		},
	}

	// Registered for the help text only; parsing happens in splitGitArgs.
	var helpOnly struct {
		group, project string
		list           bool
	}
	cmd.Flags().StringVarP(&helpOnly.group, "group", "g", "", "Target every repo in a group")
	cmd.Flags().StringVarP(&helpOnly.project, "project", "p", "", "Target a scaffolded project")
	cmd.Flags().BoolVarP(&helpOnly.list, "list", "l", false, "Show the workspace tree instead of running anything")

	return cmd
}
