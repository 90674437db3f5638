// Package rebuild locates and invokes nixos-rebuild for the apply command.
package rebuild

import (
	"context"
	"fmt"

	"github.com/hearth-home/hearth-ctl/internal/config"
	"github.com/hearth-home/hearth-ctl/internal/errors"
	"github.com/hearth-home/hearth-ctl/internal/installer"
	"github.com/hearth-home/hearth-ctl/internal/logging"
	"github.com/hearth-home/hearth-ctl/internal/system"
)

// wellKnownPaths are checked when nixos-rebuild is not on PATH.
// The per-user root profile matters when apply runs under sudo with a
// stripped environment.
var wellKnownPaths = []string{
	"/run/current-system/sw/bin/nixos-rebuild",
	"/etc/profiles/per-user/root/bin/nixos-rebuild",
}

// Runner applies an installed configuration with nixos-rebuild.
type Runner struct {
	fs   system.FileSystem
	exec system.CommandExecutor
}

// NewRunner creates a Runner with the given system abstractions.
func NewRunner(fs system.FileSystem, exec system.CommandExecutor) *Runner {
	return &Runner{fs: fs, exec: exec}
}

// Detect locates the nixos-rebuild binary.
func (r *Runner) Detect() (string, error) {
	if path, err := r.exec.LookPath("nixos-rebuild"); err == nil {
		logging.Debug("found nixos-rebuild on PATH", "path", path)
		return path, nil
	}

	for _, path := range wellKnownPaths {
		if r.fs.Exists(path) {
			logging.Debug("found nixos-rebuild at well-known path", "path", path)
			return path, nil
		}
	}

	return "", fmt.Errorf("nixos-rebuild not found (is this a NixOS host?)")
}

// Switch runs nixos-rebuild switch against the installed flake, with the
// command's output connected to the terminal.
func (r *Runner) Switch(ctx context.Context, paths *config.Paths, hostname string) error {
	binary, err := r.Detect()
	if err != nil {
		return errors.RebuildError("cannot apply configuration", err)
	}

	argv := installer.RebuildCommand(paths, hostname)
	logging.Debug("applying configuration", "binary", binary, "args", argv[1:])

	if err := r.exec.ExecuteInteractive(ctx, binary, argv[1:]...); err != nil {
		return errors.RebuildError("nixos-rebuild switch failed", err)
	}

	return nil
}
