package errors

import (
	"errors"
	"fmt"
)

// Exit codes for hearth-ctl
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitProfileError = 2
	ExitRenderError  = 3
	ExitInstallError = 4
	ExitRebuildError = 5
)

// HearthError is the base error type for hearth-ctl
type HearthError struct {
	Code    int
	Message string
	Cause   error
}

func (e *HearthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *HearthError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *HearthError) ExitCode() int {
	return e.Code
}

// New creates a new HearthError
func New(code int, message string) *HearthError {
	return &HearthError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a HearthError
func Wrap(code int, message string, cause error) *HearthError {
	return &HearthError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// ProfileError returns an error for host profile problems
func ProfileError(message string, cause error) *HearthError {
	return Wrap(ExitProfileError, message, cause)
}

// ProfileNotFound returns an error for a missing named profile
func ProfileNotFound(name string) *HearthError {
	return New(ExitProfileError, fmt.Sprintf("profile not found: %s", name))
}

// RenderError returns an error for document rendering failures
func RenderError(cause error) *HearthError {
	return Wrap(ExitRenderError, "failed to render system configuration", cause)
}

// InstallError returns an error for installation step failures
func InstallError(step string, cause error) *HearthError {
	return Wrap(ExitInstallError, fmt.Sprintf("install %s failed", step), cause)
}

// RebuildError returns an error for nixos-rebuild invocations
func RebuildError(message string, cause error) *HearthError {
	return Wrap(ExitRebuildError, message, cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *HearthError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var hearthErr *HearthError
	if errors.As(err, &hearthErr) {
		return hearthErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
