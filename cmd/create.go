package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/yahsan2/gh-issue-batch/pkg/args"
	"github.com/yahsan2/gh-issue-batch/pkg/catalog"
	"github.com/yahsan2/gh-issue-batch/pkg/config"
	initpkg "github.com/yahsan2/gh-issue-batch/pkg/init"
	"github.com/yahsan2/gh-issue-batch/pkg/issue"
	"github.com/yahsan2/gh-issue-batch/pkg/logging"
	"github.com/yahsan2/gh-issue-batch/pkg/output"
)

// Command flags
var (
	dryRun              bool
	skipExisting        bool
	createMissingLabels bool
)

// repoClient is the repository state needed before filing
type repoClient interface {
	Repository() string
	ExistingTitles() (map[string]bool, error)
	EnsureLabels(wanted []issue.Label) ([]string, error)
}

// CreateCommand files a list of records and reports the outcome
type CreateCommand struct {
	config    *config.Config
	records   []issue.IssueRecord
	executor  issue.Executor
	client    repoClient
	formatter *output.Formatter
	errOut    io.Writer
	logger    *slog.Logger

	repo         string
	dryRun       bool
	skipExisting bool
	createLabels bool
}

func runCreate(cmd *cobra.Command, cmdArgs []string) error {
	logger := logging.New(os.Stderr, logging.ParseLevel(logLevel))

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

	repo := repoName
	if repo == "" {
		repo = cfg.Repository
	}
	if repo != "" {
		if _, err := config.ParseRepository(repo); err != nil {
			return issue.NewValidationError("invalid --repo value", err)
		}
	}

	command := &CreateCommand{
		config:       cfg,
		records:      records,
		executor:     newExecutor(dryRun),
		formatter:    formatter,
		errOut:       cmd.ErrOrStderr(),
		logger:       logger,
		repo:         repo,
		dryRun:       dryRun,
		skipExisting: skipExisting,
		createLabels: createMissingLabels,
	}

	if skipExisting || createMissingLabels {
		target, err := initpkg.NewRepoDetector().Resolve(repo)
		if err != nil {
			return err
		}
		client, err := issue.NewClient(target)
		if err != nil {
			return err
		}
		command.client = client
	}

	_, err = command.Run(cmd.Context())
	return err
}

// newExecutor returns the executor for a run
func newExecutor(dryRun bool) issue.Executor {
	if dryRun {
		return &issue.DryRunExecutor{}
	}
	return issue.NewGHExecutor()
}

// Run prepares the repository, files every record in order and prints the
// report. Individual failures are part of the result, not an error.
func (c *CreateCommand) Run(ctx context.Context) (*issue.BatchResult, error) {
	if c.logger == nil {
		c.logger = logging.Discard()
	}
	if c.errOut == nil {
		c.errOut = io.Discard
	}

	var runnerOpts []issue.RunnerOption

	if c.createLabels {
		if err := c.ensureLabels(); err != nil {
			return nil, err
		}
	}

	if c.skipExisting {
		titles, err := c.client.ExistingTitles()
		if err != nil {
			return nil, issue.WrapError(err, "failed to check existing issues")
		}
		c.logger.Info("loaded existing issue titles", logging.Repo(c.client.Repository()), slog.Int("count", len(titles)))
		runnerOpts = append(runnerOpts, issue.WithSkip(issue.SkipExisting(titles)))
	}

	creator := issue.NewCreator(c.executor,
		issue.WithRepository(c.repo),
		issue.WithLogger(c.logger))

	runnerOpts = append(runnerOpts,
		issue.WithDryRun(c.dryRun),
		issue.WithResultHook(func(item issue.ItemResult) {
			if err := c.formatter.FormatItem(item); err != nil {
				c.logger.Error("failed to print result", logging.Title(item.Title), logging.Err(err))
			}
		}))

	if err := c.formatter.FormatStart(len(c.records), c.repo, c.dryRun); err != nil {
		return nil, err
	}

	result := issue.NewRunner(creator, runnerOpts...).RunAll(ctx, c.records)

	c.logger.Info("run finished",
		slog.Int("processed", result.Processed()),
		slog.Int("succeeded", result.Succeeded),
		slog.Int("failed", result.Failed),
		slog.Int("skipped", result.Skipped))

	if err := c.formatter.FormatBatchResult(result); err != nil {
		return result, err
	}

	// table output already carries the install guidance inline
	if result.HasDependencyError() && c.formatter.Format() != output.FormatTable {
		fmt.Fprintf(c.errOut, "gh CLI not found. Please install GitHub CLI first:\n   %s\n", issue.InstallURL)
	}
	return result, nil
}

func (c *CreateCommand) ensureLabels() error {
	var wanted []issue.Label
	for _, name := range catalog.Labels(c.records) {
		wanted = append(wanted, issue.Label{
			Name:        name,
			Color:       c.config.LabelColor(name),
			Description: c.config.LabelDescription(name),
		})
	}

	if c.dryRun {
		c.logger.Info("dry run: labels not created", slog.Int("count", len(wanted)))
		return nil
	}

	created, err := c.client.EnsureLabels(wanted)
	if err != nil {
		return issue.WrapError(err, "failed to create missing labels")
	}
	for _, name := range created {
		c.logger.Info("label created", logging.Repo(c.client.Repository()), slog.String("label", name))
	}
	return c.formatter.FormatLabels(created)
}

// loadConfig loads the nearest configuration file, or the defaults
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return nil, issue.NewConfigurationError("failed to load configuration", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, issue.NewConfigurationError("invalid configuration", err)
	}
	return cfg, nil
}

// loadRecords reads --from-file, then the configured source, then the built-in list
func loadRecords(cfg *config.Config) ([]issue.IssueRecord, error) {
	path := fromFile
	if path == "" {
		path = cfg.SourcePath()
	}
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

// selectRecords loads the records, adds the configured default labels and
// applies the filter flags of cmd
func selectRecords(cmd *cobra.Command, cfg *config.Config) ([]issue.IssueRecord, error) {
	records, err := loadRecords(cfg)
	if err != nil {
		return nil, err
	}

	if len(cfg.Defaults.Labels) > 0 {
		for i := range records {
			records[i] = records[i].WithLabels(cfg.Defaults.Labels)
		}
	}

	filters, err := args.ParseFilterFlags(cmd, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse filter flags: %w", err)
	}
	return filters.Apply(records), nil
}

// newFormatter picks the output format: --quiet, then --output, then the config
func newFormatter(cmd *cobra.Command, cfg *config.Config) (*output.Formatter, error) {
	if quiet {
		return output.NewFormatterWithWriter(output.FormatQuiet, cmd.OutOrStdout()), nil
	}

	name := outputFormat
	if name == "" {
		name = cfg.Output.Format
	}
	format, err := output.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	return output.NewFormatterWithWriter(format, cmd.OutOrStdout()), nil
}
