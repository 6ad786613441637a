package init

import (
	"fmt"
	"io"
)

// ErrorType represents the type of initialization error
type ErrorType int

const (
	// ErrorTypeConfig indicates a configuration file error
	ErrorTypeConfig ErrorType = iota
	// ErrorTypeGitHub indicates a GitHub lookup error
	ErrorTypeGitHub
	// ErrorTypeFileSystem indicates a file system error
	ErrorTypeFileSystem
	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation
)

// InitError represents an initialization error with context
type InitError struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface
func (e *InitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *InitError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new configuration error
func NewConfigError(message string, cause error) *InitError {
	return &InitError{
		Type:    ErrorTypeConfig,
		Message: message,
		Cause:   cause,
	}
}

// NewGitHubError creates a new GitHub lookup error
func NewGitHubError(message string, cause error) *InitError {
	return &InitError{
		Type:    ErrorTypeGitHub,
		Message: message,
		Cause:   cause,
	}
}

// NewFileSystemError creates a new file system error
func NewFileSystemError(message string, cause error) *InitError {
	return &InitError{
		Type:    ErrorTypeFileSystem,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *InitError {
	return &InitError{
		Type:    ErrorTypeValidation,
		Message: message,
		Cause:   nil,
	}
}

// HandleInitError writes err to w with a hint matching its type
func HandleInitError(w io.Writer, err error) {
	if err == nil {
		return
	}

	switch e := err.(type) {
	case *InitError:
		switch e.Type {
		case ErrorTypeConfig:
			fmt.Fprintf(w, "Configuration error: %v\n", e)
			fmt.Fprintln(w, "Please check your .gh-issue-batch.yml file format and try again.")
		case ErrorTypeGitHub:
			fmt.Fprintf(w, "GitHub error: %v\n", e)
			fmt.Fprintln(w, "Run inside a clone of the target repository, or pass --repo owner/repo.")
			fmt.Fprintln(w, "  Check authentication with: gh auth status")
		case ErrorTypeFileSystem:
			fmt.Fprintf(w, "File system error: %v\n", e)
			fmt.Fprintln(w, "Please check file permissions and disk space.")
		case ErrorTypeValidation:
			fmt.Fprintf(w, "Validation error: %v\n", e)
			fmt.Fprintln(w, "Please check your input values and try again.")
		default:
			fmt.Fprintf(w, "Error: %v\n", e)
		}
	default:
		fmt.Fprintf(w, "Unexpected error: %v\n", err)
	}
}
