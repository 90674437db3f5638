package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hearth-home/hearth-ctl/internal/health"
	"github.com/hearth-home/hearth-ctl/internal/system"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the installed configuration and its services",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

var statusProfile string

func init() {
	statusCmd.Flags().StringVarP(&statusProfile, "profile", "p", "", "Named profile to check against instead of the active one")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	paths := resolvePaths("")

	profile, err := resolveProfile(paths, statusProfile)
	if err != nil {
		return err
	}

	result := health.Check(context.Background(), system.DefaultFS(), system.DefaultExecutor(), profile, paths)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Host: %s\n", profile.Hostname)
	fmt.Fprintf(out, "Flake: %s %s\n", paths.FlakePath(), boolStatus(result.FlakeInstalled))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Units:")
	for _, u := range result.Units {
		if u.Active && u.Uptime != "" && u.Uptime != "unknown" {
			fmt.Fprintf(out, "  %s %s (up %s)\n", boolStatus(u.Active), u.Name, u.Uptime)
		} else {
			fmt.Fprintf(out, "  %s %s\n", boolStatus(u.Active), u.Name)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Summary: %s\n", health.GetSummary(result))

	return nil
}

func boolStatus(b bool) string {
	if b {
		return "✓"
	}
	return "✗"
}
