package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hearth-home/hearth-ctl/internal/errors"
	"github.com/hearth-home/hearth-ctl/internal/generator"
	"github.com/hearth-home/hearth-ctl/internal/logging"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the profile and render the flake without installing",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

var (
	checkProfile string
	checkPrint   bool
)

func init() {
	checkCmd.Flags().StringVarP(&checkProfile, "profile", "p", "", "Named profile to check instead of the active one")
	checkCmd.Flags().BoolVar(&checkPrint, "print", false, "Print the rendered flake to stdout")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	paths := resolvePaths("")

	profile, err := resolveProfile(paths, checkProfile)
	if err != nil {
		return err
	}

	content, err := generator.GenerateFlake(profile)
	if err != nil {
		return errors.RenderError(err)
	}

	logging.Debug("rendered flake", "hostname", profile.Hostname, "bytes", len(content))

	if checkPrint {
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}

	if profile.UsesDefaultPassword() {
		logWarning("Placeholder credentials are still in use; edit your profile before installing")
	}

	logSuccess("Profile %s is valid (%d bytes rendered)", profile.Hostname, len(content))
	return nil
}
