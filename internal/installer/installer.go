package installer

import (
	"fmt"
	"io"
	"strings"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/hearth-home/hearth-ctl/internal/config"
	"github.com/hearth-home/hearth-ctl/internal/errors"
	"github.com/hearth-home/hearth-ctl/internal/generator"
	"github.com/hearth-home/hearth-ctl/internal/logging"
	"github.com/hearth-home/hearth-ctl/internal/system"
)

// Installer writes the rendered flake document to the target directory.
// All filesystem access goes through the injected FileSystem, so the
// privileged write path is fully testable.
type Installer struct {
	fs    system.FileSystem
	out   io.Writer
	paths *config.Paths
}

// Result describes a completed installation.
type Result struct {
	Path  string
	Bytes int
}

// New creates an Installer. out receives the user-facing status lines and
// the next-step guidance.
func New(fs system.FileSystem, out io.Writer, paths *config.Paths) *Installer {
	return &Installer{fs: fs, out: out, paths: paths}
}

// Install renders the flake for the profile and installs it at the target
// path. The sequence is strict and fail-fast: render, ensure the target
// directory exists, overwrite the file, then print guidance. Any failing
// step aborts immediately; no step retries.
func (i *Installer) Install(profile *config.Profile) (*Result, error) {
	content, err := generator.GenerateFlake(profile)
	if err != nil {
		return nil, errors.RenderError(err)
	}

	target := i.paths.FlakePath()
	logging.Debug("installing flake", "path", target, "bytes", len(content))

	if err := i.fs.MkdirAll(i.paths.OutputDir, 0755); err != nil {
		return nil, errors.InstallError("mkdir", err)
	}

	if err := i.fs.WriteFile(target, []byte(content), 0644); err != nil {
		return nil, errors.InstallError("write", err)
	}

	fmt.Fprintf(i.out, "Installed %s (%d bytes)\n", target, len(content))

	if profile.UsesDefaultPassword() {
		logging.UserWarning("Placeholder credentials are still in use; edit your profile before rebuilding")
	}

	fmt.Fprint(i.out, Guidance(profile, i.paths))

	return &Result{Path: target, Bytes: len(content)}, nil
}

// RebuildCommand returns the argv that applies the installed configuration.
func RebuildCommand(paths *config.Paths, hostname string) []string {
	return []string{"nixos-rebuild", "switch", "--flake", paths.OutputDir + "#" + hostname}
}

// Guidance returns the four-step follow-up instructions printed after a
// successful install. The installer never runs these commands itself.
func Guidance(profile *config.Profile, paths *config.Paths) string {
	rebuild := shellquote.Join(append([]string{"sudo"}, RebuildCommand(paths, profile.Hostname)...)...)

	var containers []string
	if profile.DNSFilter.Enabled {
		containers = append(containers, "container@dnsfilter")
	}
	if profile.VoiceChat.Enabled {
		containers = append(containers, "container@voicechat")
	}

	var b strings.Builder
	b.WriteString("\nNext steps:\n")
	fmt.Fprintf(&b, "  1. Review %s and replace any placeholder credentials.\n", paths.FlakePath())
	fmt.Fprintf(&b, "  2. Run: %s\n", rebuild)
	if len(containers) > 0 {
		fmt.Fprintf(&b, "  3. Check the services: systemctl status %s\n", strings.Join(containers, " "))
	} else {
		b.WriteString("  3. Check the host came up: systemctl status sshd\n")
	}
	b.WriteString("  4. Point your LAN clients at this host for DNS and voice chat.\n")
	return b.String()
}
