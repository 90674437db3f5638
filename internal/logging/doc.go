// Package logging provides logging utilities for hearth-ctl.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("rendering flake", "hostname", hostname)
//	logging.Warn("profile missing, using defaults", "path", path)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Loading profile %s...", name)
//	logging.UserSuccess("Configuration installed to %s", path)
//	logging.UserWarning("Default service passwords are in use")
//	logging.UserError("Failed to install configuration: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
