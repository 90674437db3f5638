package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hearth-home/hearth-ctl/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "hearth-ctl",
	Short: "Hearth home server configuration CLI",
	Long: `hearth-ctl turns a host profile into a complete NixOS flake for a
small home server, typically a Raspberry Pi.

The generated configuration covers:
  - Static or DHCP networking with a locked-down firewall
  - SSH access for a single admin user
  - DNS ad blocking container (AdGuard Home)
  - Voice chat container (Murmur)`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	logError   = logging.UserError
)
