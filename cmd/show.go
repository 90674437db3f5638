package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hearth-home/hearth-ctl/internal/network"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the host profile and what would be installed",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

var showProfile string

func init() {
	showCmd.Flags().StringVarP(&showProfile, "profile", "p", "", "Named profile to show instead of the active one")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	paths := resolvePaths("")

	profile, err := resolveProfile(paths, showProfile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Hostname: %s\n", profile.Hostname)
	fmt.Fprintf(out, "Timezone: %s\n", profile.Timezone)
	fmt.Fprintf(out, "System: %s\n", profile.System)
	fmt.Fprintf(out, "State Version: %s\n", profile.StateVersion)
	fmt.Fprintf(out, "Admin: %s\n", profile.Admin.User)

	if len(profile.Admin.AuthorizedKeys) > 0 {
		fmt.Fprintf(out, "SSH Keys: %d\n", len(profile.Admin.AuthorizedKeys))
	} else {
		fmt.Fprintf(out, "SSH Keys: none (password bootstrap)\n")
	}

	if profile.Network.Static() {
		fmt.Fprintf(out, "Network: static %s on %s via %s\n",
			profile.Network.Address, profile.Network.Interface, profile.Network.Gateway)
	} else {
		fmt.Fprintf(out, "Network: DHCP on %s\n", profile.Network.Interface)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Services:")
	fmt.Fprintf(out, "  DNS filter: %s\n", serviceStatus(profile.DNSFilter.Enabled))
	if profile.DNSFilter.Enabled {
		fmt.Fprintf(out, "    Container address: %s\n", network.LocalAddress(profile.DNSFilter.Slot))
		fmt.Fprintf(out, "    Web interface: port %d\n", profile.DNSFilter.WebPort)
		fmt.Fprintf(out, "    Upstreams: %s\n", strings.Join(profile.DNSFilter.Upstreams, ", "))
	}
	fmt.Fprintf(out, "  Voice chat: %s\n", serviceStatus(profile.VoiceChat.Enabled))
	if profile.VoiceChat.Enabled {
		fmt.Fprintf(out, "    Container address: %s\n", network.LocalAddress(profile.VoiceChat.Slot))
		fmt.Fprintf(out, "    Port: %d\n", profile.VoiceChat.Port)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Install target: %s\n", paths.FlakePath())

	if profile.UsesDefaultPassword() {
		logWarning("Placeholder credentials are still in use")
	}

	return nil
}

func serviceStatus(enabled bool) string {
	if enabled {
		return "✓ enabled"
	}
	return "✗ disabled"
}
