package issue

import (
	"errors"
	"fmt"
	"strings"
)

// InstallURL is where users are sent when the gh executable is missing
const InstallURL = "https://cli.github.com/manual/installation"

// ErrorType represents the type of error that occurred
type ErrorType int

const (
	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation ErrorType = iota
	// ErrorTypeConfiguration indicates a configuration error
	ErrorTypeConfiguration
	// ErrorTypeCommand indicates the gh command ran and exited non-zero
	ErrorTypeCommand
	// ErrorTypeDependency indicates the gh executable could not be found or launched
	ErrorTypeDependency
	// ErrorTypeCanceled indicates the run was interrupted before the item was attempted
	ErrorTypeCanceled
	// ErrorTypeAPI indicates a general API error
	ErrorTypeAPI
)

// String returns a short name for the error type
func (t ErrorType) String() string {
	switch t {
	case ErrorTypeValidation:
		return "validation"
	case ErrorTypeConfiguration:
		return "configuration"
	case ErrorTypeCommand:
		return "command"
	case ErrorTypeDependency:
		return "dependency"
	case ErrorTypeCanceled:
		return "canceled"
	default:
		return "api"
	}
}

// IssueError represents a structured error with type and suggestion
type IssueError struct {
	Type       ErrorType
	Message    string
	Cause      error
	Suggestion string
}

// Error implements the error interface
func (e *IssueError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("caused by: %v", e.Cause))
	}

	if e.Suggestion != "" {
		parts = append(parts, fmt.Sprintf("\n💡 %s", e.Suggestion))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *IssueError) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *IssueError) Is(target error) bool {
	t, ok := target.(*IssueError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// Sentinels for errors.Is checks against an error type
var (
	ErrCommand    = &IssueError{Type: ErrorTypeCommand}
	ErrDependency = &IssueError{Type: ErrorTypeDependency}
	ErrCanceled   = &IssueError{Type: ErrorTypeCanceled}
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *IssueError {
	return &IssueError{
		Type:       ErrorTypeValidation,
		Message:    message,
		Cause:      cause,
		Suggestion: "Check the issue records and try again",
	}
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(message string, cause error) *IssueError {
	return &IssueError{
		Type:       ErrorTypeConfiguration,
		Message:    message,
		Cause:      cause,
		Suggestion: "Run 'gh issue-batch init' to create or update your configuration",
	}
}

// NewCommandError creates an error for a gh invocation that exited non-zero.
// The captured stderr becomes the message.
func NewCommandError(exitCode int, stderr string) *IssueError {
	msg := strings.TrimSpace(stderr)
	if msg == "" {
		msg = fmt.Sprintf("gh exited with status %d", exitCode)
	}
	return &IssueError{
		Type:    ErrorTypeCommand,
		Message: msg,
	}
}

// NewDependencyError creates an error for a missing gh executable
func NewDependencyError(cause error) *IssueError {
	return &IssueError{
		Type:       ErrorTypeDependency,
		Message:    "gh CLI not found",
		Cause:      cause,
		Suggestion: fmt.Sprintf("Please install GitHub CLI first: %s", InstallURL),
	}
}

// NewCanceledError creates an error for an item skipped by cancellation
func NewCanceledError(cause error) *IssueError {
	return &IssueError{
		Type:    ErrorTypeCanceled,
		Message: "run interrupted before this issue was created",
		Cause:   cause,
	}
}

// NewAPIError creates a new general API error
func NewAPIError(message string, cause error) *IssueError {
	return &IssueError{
		Type:       ErrorTypeAPI,
		Message:    message,
		Cause:      cause,
		Suggestion: "Check 'gh auth status' and GitHub status at https://www.githubstatus.com/",
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, message string) *IssueError {
	var issueErr *IssueError
	if errors.As(err, &issueErr) {
		return &IssueError{
			Type:       issueErr.Type,
			Message:    message,
			Cause:      err,
			Suggestion: issueErr.Suggestion,
		}
	}

	return NewAPIError(message, err)
}

// AsIssueError returns err as an *IssueError, wrapping unknown errors as API errors
func AsIssueError(err error) *IssueError {
	if err == nil {
		return nil
	}
	var issueErr *IssueError
	if errors.As(err, &issueErr) {
		return issueErr
	}
	return NewAPIError(err.Error(), nil)
}

// IsAbort reports whether err means no further items should be attempted
func IsAbort(err error) bool {
	return errors.Is(err, ErrDependency) || errors.Is(err, ErrCanceled)
}
