// Package errors formats user-facing CLI errors and holds the error kinds
// shared across packages.
package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/foundersandcoders/lift/internal/logger"
)

// ErrNotFound is matched by every NotFoundError.
var ErrNotFound = stderrors.New("not found")

// NotFoundError reports a missing statement, action or question.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound builds a NotFoundError.
func NotFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...any) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Warn prints a non-fatal "Warning: " line, e.g. for unsynced statements.
func Warn(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logger.Warn(msg)
	fmt.Fprintf(w, "Warning: %s\n", msg)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("command failed", "error", err)
		fmt.Fprintln(os.Stderr, Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...any) {
	logger.Error("command failed", "error", fmt.Sprintf(format, args...))
	fmt.Fprintln(os.Stderr, Formatf(format, args...))
	os.Exit(1)
}
