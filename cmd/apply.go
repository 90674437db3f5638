package cmd

import (
	"bufio"
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hearth-home/hearth-ctl/internal/errors"
	"github.com/hearth-home/hearth-ctl/internal/logging"
	"github.com/hearth-home/hearth-ctl/internal/rebuild"
	"github.com/hearth-home/hearth-ctl/internal/system"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply the installed configuration with nixos-rebuild",
	Long: `Run nixos-rebuild switch against the installed flake. The flake must
have been installed first; this command never renders or writes configuration
itself.`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

var (
	applyProfile string
	applyYes     bool
)

func init() {
	applyCmd.Flags().StringVarP(&applyProfile, "profile", "p", "", "Named profile whose hostname selects the flake output")
	applyCmd.Flags().BoolVarP(&applyYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	paths := resolvePaths("")

	profile, err := resolveProfile(paths, applyProfile)
	if err != nil {
		return err
	}

	fs := system.DefaultFS()
	if !fs.Exists(paths.FlakePath()) {
		return errors.New(errors.ExitInstallError,
			"no flake installed at "+paths.FlakePath()+" (run hearth-ctl install first)")
	}

	if profile.UsesDefaultPassword() {
		logWarning("Placeholder credentials are still in use")
	}

	if !applyYes {
		logInfo("About to run: sudo nixos-rebuild switch --flake %s#%s", paths.OutputDir, profile.Hostname)
		if !confirm(cmd, "Continue? [y/N] ") {
			logInfo("Aborted")
			return nil
		}
	}

	runner := rebuild.NewRunner(fs, system.DefaultExecutor())
	if err := runner.Switch(context.Background(), paths, profile.Hostname); err != nil {
		return err
	}

	logSuccess("Configuration applied")
	logging.Info("rebuild complete", "hostname", profile.Hostname)
	return nil
}

// confirm reads a yes/no answer from the command's input stream.
func confirm(cmd *cobra.Command, prompt string) bool {
	logInfo("%s", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
