package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yahsan2/gh-issue-batch/pkg/catalog"
	"github.com/yahsan2/gh-issue-batch/pkg/config"
	initpkg "github.com/yahsan2/gh-issue-batch/pkg/init"
	"github.com/yahsan2/gh-issue-batch/pkg/issue"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize gh-issue-batch configuration",
	Long: `Initialize a new gh-issue-batch configuration file (.gh-issue-batch.yml) in the current directory.

This command will:
- Record the target repository, detected from the current directory unless --repo is given
- Add a label entry for every label the issue list uses, for --create-labels
- Record the issue file given with --from-file as the default source`,
	Example: `  # Initialize for the current repository
  gh issue-batch init

  # Initialize for another repository with a custom issue file
  gh issue-batch init --repo owner/repo --from-file issues.yml

  # Overwrite an existing configuration without asking
  gh issue-batch init --force`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing configuration without asking")
}

// initOptions holds the inputs of init
type initOptions struct {
	path     string
	repo     string
	source   string
	force    bool
	detector *initpkg.RepoDetector
}

func runInit(cmd *cobra.Command, args []string) error {
	return writeConfig(initOptions{
		path:     config.ConfigFileName,
		repo:     repoName,
		source:   fromFile,
		force:    initForce,
		detector: initpkg.NewRepoDetector(),
	}, cmd.InOrStdin(), cmd.OutOrStdout())
}

// writeConfig builds the configuration and saves it to opts.path
func writeConfig(opts initOptions, in io.Reader, out io.Writer) error {
	prompt := initpkg.NewInteractivePrompt(in, out)

	if _, err := os.Stat(opts.path); err == nil && !opts.force {
		if !prompt.ConfirmOverwrite(opts.path) {
			fmt.Fprintln(out, "Initialization cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()

	repo, err := opts.detector.ResolveInteractive(opts.repo, prompt)
	if err != nil {
		var initErr *initpkg.InitError
		if opts.repo != "" || (errors.As(err, &initErr) && initErr.Type == initpkg.ErrorTypeValidation) {
			return err
		}
		fmt.Fprintf(out, "Warning: %v\n", err)
		fmt.Fprintln(out, "The repository can be set later in the configuration file.")
	} else {
		cfg.Repository = initpkg.FullName(repo)
		fmt.Fprintf(out, "✓ Repository: %s\n", cfg.Repository)
	}

	var records []issue.IssueRecord
	if opts.source != "" {
		cfg.Source = opts.source
		records, err = catalog.LoadFile(opts.source)
	} else {
		records, err = catalog.Default()
	}
	if err != nil {
		return initpkg.NewConfigError("failed to load the issue list", err)
	}

	if added := initpkg.SeedLabels(cfg, records); len(added) > 0 {
		fmt.Fprintf(out, "✓ Added %d label definitions\n", len(added))
	}

	if err := cfg.Validate(); err != nil {
		return initpkg.NewConfigError("invalid configuration", err)
	}

	if err := cfg.Save(opts.path); err != nil {
		return initpkg.NewFileSystemError("failed to save configuration", err)
	}

	fmt.Fprintf(out, "\n✓ Configuration saved to %s\n", opts.path)
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintf(out, "  1. Review and edit %s to customize label colors\n", config.ConfigFileName)
	fmt.Fprintln(out, "  2. Run 'gh issue-batch list' to review the issues")
	fmt.Fprintln(out, "  3. Run 'gh issue-batch --dry-run' and then 'gh issue-batch' to create them")

	return nil
}
