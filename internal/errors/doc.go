// Package errors provides typed errors with exit codes for hearth-ctl.
//
// # Error Types
//
// HearthError is the base error type that wraps an error with an exit code:
//
//	type HearthError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
// Defined exit codes for different error categories:
//
//	ExitSuccess      = 0  // Success
//	ExitGeneralError = 1  // General/unknown errors
//	ExitProfileError = 2  // Host profile missing or invalid
//	ExitRenderError  = 3  // Document rendering failed
//	ExitInstallError = 4  // Filesystem installation step failed
//	ExitRebuildError = 5  // nixos-rebuild invocation failed
//
// # Error Constructors
//
// Use the provided constructors for consistent error creation:
//
//	errors.ProfileNotFound("livingroom")
//	errors.InstallError("write", err)
//	errors.RebuildError("switch failed", err)
//
// # Extracting Exit Codes
//
// Use GetExitCode to extract the exit code from an error chain:
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
