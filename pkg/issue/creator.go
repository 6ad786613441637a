package issue

import (
	"context"
	"log/slog"
	"strings"

	"github.com/yahsan2/gh-issue-batch/pkg/logging"
)

// Creator files single issues through an Executor
type Creator struct {
	exec   Executor
	repo   string
	logger *slog.Logger
}

// CreatorOption configures a Creator
type CreatorOption func(*Creator)

// WithRepository targets an explicit owner/repo instead of the current directory's repository
func WithRepository(repo string) CreatorOption {
	return func(c *Creator) {
		c.repo = repo
	}
}

// WithLogger sets the logger used for per-invocation diagnostics
func WithLogger(logger *slog.Logger) CreatorOption {
	return func(c *Creator) {
		c.logger = logger
	}
}

// NewCreator creates a new issue creator
func NewCreator(exec Executor, opts ...CreatorOption) *Creator {
	c := &Creator{
		exec:   exec,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BuildArgs returns the gh arguments that create record
func (c *Creator) BuildArgs(record IssueRecord) []string {
	args := []string{
		"issue", "create",
		"--title", record.Title,
		"--label", record.LabelString(),
		"--body", record.Body,
	}
	if c.repo != "" {
		args = append(args, "--repo", c.repo)
	}
	return args
}

// CreateOne files a single record. Failures are reported in the returned
// ItemResult; it never returns an error.
func (c *Creator) CreateOne(ctx context.Context, record IssueRecord) ItemResult {
	result := ItemResult{
		Title:  record.Title,
		Labels: record.LabelString(),
	}
	logger := c.logger.With(logging.Title(record.Title))

	args := c.BuildArgs(record)
	logger.Debug("invoking gh", logging.Operation("issue create"), slog.String(logging.KeyLabels, result.Labels))

	res, err := c.exec.Exec(ctx, args...)
	if err != nil {
		return c.fail(logger, result, AsIssueError(err))
	}
	if !res.Success() {
		return c.fail(logger, result, NewCommandError(res.ExitCode, res.Stderr))
	}

	result.Status = OutcomeCreated
	result.URL = strings.TrimSpace(res.Stdout)
	logger.Info("issue created", logging.Status(logging.StatusSuccess), slog.String(logging.KeyURL, result.URL))
	return result
}

func (c *Creator) fail(logger *slog.Logger, result ItemResult, err *IssueError) ItemResult {
	result.Status = OutcomeFailed
	result.Err = err
	result.Error = err.Message
	result.Hint = err.Suggestion
	logger.Warn("issue creation failed",
		logging.Status(logging.StatusError),
		slog.String(logging.KeyKind, err.Type.String()),
		logging.Err(err))
	return result
}
