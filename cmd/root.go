package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/yahsan2/gh-issue-batch/pkg/args"
	initpkg "github.com/yahsan2/gh-issue-batch/pkg/init"
	"github.com/yahsan2/gh-issue-batch/pkg/output"
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "gh-issue-batch",
	Short: "Create a batch of GitHub issues with the gh CLI",
	Long: `Create a fixed list of GitHub issues in one run.

Each issue is filed with 'gh issue create', one after another. A failed issue
never stops the run: its error is reported and the next issue is attempted.
A summary of created and failed issues is printed at the end.

The built-in list can be replaced with a YAML, JSON or TOML file.`,
	Example: `  # File the built-in issues in the current repository
  gh issue-batch

  # Target another repository
  gh issue-batch --repo owner/repo

  # Preview without creating anything
  gh issue-batch --dry-run

  # Only the P0 backend issues, creating missing labels first
  gh issue-batch --priority P0 --label area:backend --create-labels

  # File issues from a custom list and print a JSON report
  gh issue-batch --from-file issues.toml --output json`,
	Args:          cobra.NoArgs,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runCreate,
}

// Global flags
var (
	fromFile     string
	repoName     string
	outputFormat string
	quiet        bool
	logLevel     string
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&fromFile, "from-file", "", "Read issues from a YAML, JSON or TOML file instead of the built-in list")
	rootCmd.PersistentFlags().StringVarP(&repoName, "repo", "R", "", "Target repository (owner/repo format)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "Output format (table, json, csv, quiet)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only print created issue URLs")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Diagnostic log level on stderr (debug, info, warn, error)")

	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be created without running gh")
	rootCmd.Flags().BoolVar(&skipExisting, "skip-existing", false, "Skip issues whose title already exists in the repository")
	rootCmd.Flags().BoolVar(&createMissingLabels, "create-labels", false, "Create labels the repository does not have yet")
	args.AddFilterFlags(rootCmd, nil)
}

func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(os.Stderr, err)
		return 1
	}
	return 0
}

func reportError(w io.Writer, err error) {
	if format, _ := output.ParseFormat(outputFormat); format == output.FormatJSON && !quiet {
		if output.NewFormatterWithWriter(output.FormatJSON, w).FormatError(err) == nil {
			return
		}
	}

	var initErr *initpkg.InitError
	if errors.As(err, &initErr) {
		initpkg.HandleInitError(w, initErr)
		return
	}
	fmt.Fprintln(w, err)
}
