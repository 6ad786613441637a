package cmd

import (
	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/spf13/cobra"

	"github.com/yahsan2/gh-issue-batch/pkg/args"
	"github.com/yahsan2/gh-issue-batch/pkg/output"
)

const defaultTerminalWidth = 80

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the issues a run would create",
	Long: `List the issues a run would create, after default labels and filters are
applied. Nothing is sent to GitHub.`,
	Example: `  # Show the built-in issues
  gh issue-batch list

  # Only P0 issues
  gh issue-batch list --priority P0

  # Issues from a custom file as JSON
  gh issue-batch list --from-file issues.yml --output json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	args.AddFilterFlags(listCmd, nil)
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, cmdArgs []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	records, err := selectRecords(cmd, cfg)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(cmd, cfg)
	if err != nil {
		return err
	}

	t := term.FromEnv()
	isTTY := t.IsTerminalOutput()
	width := defaultTerminalWidth
	if isTTY {
		if w, _, err := t.Size(); err == nil && w > 0 {
			width = w
		}
	}

	if formatter.Format() == output.FormatTable && len(records) == 0 {
		cmd.PrintErrln("No issues match the given filters")
		return nil
	}

	return formatter.FormatRecords(records, isTTY, width)
}
