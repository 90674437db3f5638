package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hearth-home/hearth-ctl/internal/config"
	"github.com/hearth-home/hearth-ctl/internal/errors"
	"github.com/hearth-home/hearth-ctl/internal/system"
	"github.com/hearth-home/hearth-ctl/internal/tui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a host profile interactively",
	Long: `Walk through an interactive wizard and save the answers as the host
profile. Fields left blank keep their defaults, including placeholder
passwords, which install will warn about until they are replaced.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var (
	initName  string
	initForce bool
)

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "Save as a named profile instead of the active one")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing profile")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	paths := resolvePaths("")

	target := paths.ProfilePath
	if initName != "" {
		if err := config.ValidateProfileName(initName); err != nil {
			return errors.ProfileError(err.Error(), nil)
		}
		target = filepath.Join(paths.ProfilesDir, initName+".toml")
	}

	if !initForce && system.DefaultFS().Exists(target) {
		return errors.ProfileError("profile already exists at "+target+" (use --force to overwrite)", nil)
	}

	profile, err := tui.RunSetup(config.DefaultProfile())
	if err != nil {
		return errors.New(errors.ExitGeneralError, err.Error())
	}
	if profile == nil {
		logInfo("Cancelled, no profile written")
		return nil
	}

	if err := config.SaveProfile(target, profile); err != nil {
		return errors.ProfileError("failed to save profile", err)
	}

	logSuccess("Profile written to %s", target)
	if profile.UsesDefaultPassword() {
		logWarning("Placeholder credentials are still in use; edit %s before installing", target)
	}
	logInfo("Next: hearth-ctl install")

	return nil
}
