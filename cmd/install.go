package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hearth-home/hearth-ctl/internal/installer"
	"github.com/hearth-home/hearth-ctl/internal/logging"
	"github.com/hearth-home/hearth-ctl/internal/system"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Render the flake and install it to /etc/nixos",
	Long: `Render the NixOS flake from the host profile and write it to the
output directory, overwriting any previous flake. The configuration is not
applied; follow the printed steps or run "hearth-ctl apply".`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

var (
	installProfile   string
	installOutputDir string
)

func init() {
	installCmd.Flags().StringVarP(&installProfile, "profile", "p", "", "Named profile to install instead of the active one")
	installCmd.Flags().StringVarP(&installOutputDir, "output-dir", "o", "", "Directory to install the flake into (default /etc/nixos)")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	paths := resolvePaths(installOutputDir)

	profile, err := resolveProfile(paths, installProfile)
	if err != nil {
		return err
	}

	logging.Debug("installing configuration", "hostname", profile.Hostname, "output", paths.OutputDir)

	result, err := installer.New(system.DefaultFS(), cmd.OutOrStdout(), paths).Install(profile)
	if err != nil {
		return err
	}

	logging.Debug("install complete", "path", result.Path, "bytes", result.Bytes)
	return nil
}
