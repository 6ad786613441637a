package issue

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"

	gh "github.com/cli/go-gh/v2"
)

// ExecResult holds the outcome of one external command invocation
type ExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the command exited with status zero
func (r *ExecResult) Success() bool {
	return r.ExitCode == 0
}

// Executor runs the tracker client synchronously with the given arguments.
// A non-zero exit is reported through ExecResult, not as an error; the
// returned error is reserved for failures to launch the command at all.
type Executor interface {
	Exec(ctx context.Context, args ...string) (*ExecResult, error)
}

// GHExecutor runs commands through the installed gh CLI
type GHExecutor struct{}

// NewGHExecutor creates an executor backed by the gh binary on PATH (or GH_PATH)
func NewGHExecutor() *GHExecutor {
	return &GHExecutor{}
}

var _ Executor = (*GHExecutor)(nil)

// Exec runs gh with args and captures its exit status and output
func (e *GHExecutor) Exec(ctx context.Context, args ...string) (*ExecResult, error) {
	if _, err := gh.Path(); err != nil {
		return nil, NewDependencyError(err)
	}

	stdout, stderr, err := gh.ExecContext(ctx, args...)
	result := &ExecResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	switch {
	case ctx.Err() != nil:
		return nil, NewCanceledError(ctx.Err())
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return nil, NewDependencyError(err)
	default:
		return nil, &IssueError{
			Type:    ErrorTypeCommand,
			Message: "failed to run gh",
			Cause:   err,
		}
	}
}

// DryRunExecutor records invocations instead of running them
type DryRunExecutor struct {
	Calls [][]string
}

var _ Executor = (*DryRunExecutor)(nil)

// Exec records args and reports a successful preview
func (e *DryRunExecutor) Exec(ctx context.Context, args ...string) (*ExecResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewCanceledError(err)
	}
	e.Calls = append(e.Calls, append([]string(nil), args...))
	return &ExecResult{
		Stdout: fmt.Sprintf("(dry-run) gh %s", previewArgs(args)),
	}, nil
}

// previewArgs renders args on one line, quoting values with spaces and
// collapsing multi-line values so the preview stays readable
func previewArgs(args []string) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		if strings.Contains(arg, "\n") {
			lines := strings.Count(arg, "\n") + 1
			parts[i] = fmt.Sprintf("<%d lines>", lines)
			continue
		}
		if strings.ContainsAny(arg, " \t\"") {
			parts[i] = fmt.Sprintf("%q", arg)
			continue
		}
		parts[i] = arg
	}
	return strings.Join(parts, " ")
}
