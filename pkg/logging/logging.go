// Package logging sets up the structured diagnostics logger. The human
// readable run report goes to stdout; these logs go to stderr.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Common log attribute keys
const (
	KeyOperation = "operation"
	KeyTitle     = "title"
	KeyLabels    = "labels"
	KeyURL       = "url"
	KeyStatus    = "status"
	KeyKind      = "kind"
	KeyError     = "error"
	KeyRepo      = "repo"
)

// Status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// New creates a text logger writing to w at the given level
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// ParseLevel parses a log level string into slog.Level.
// Unknown values fall back to warn.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Title returns a slog attribute for an issue title.
func Title(title string) slog.Attr {
	return slog.String(KeyTitle, title)
}

// Repo returns a slog attribute for the target repository.
func Repo(repo string) slog.Attr {
	return slog.String(KeyRepo, repo)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Err returns a slog attribute for an error.
// A nil error yields an empty group, which slog omits.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}
