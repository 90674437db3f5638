package health

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hearth-home/hearth-ctl/internal/config"
	"github.com/hearth-home/hearth-ctl/internal/system"
)

// Status summarizes the state of the managed host.
type Status string

const (
	StatusHealthy      Status = "healthy"
	StatusDegraded     Status = "degraded"
	StatusNotInstalled Status = "not-installed"
)

// CheckResult contains the results of the per-unit checks.
type CheckResult struct {
	FlakeInstalled bool
	Units          []UnitStatus
}

// UnitStatus is the state of one systemd unit the profile expects.
type UnitStatus struct {
	Name   string
	Active bool
	Uptime string
}

// ExpectedUnits returns the systemd units the profile's services map to.
// sshd is always expected since the host is managed over SSH.
func ExpectedUnits(profile *config.Profile) []string {
	units := []string{"sshd.service"}
	if profile.DNSFilter.Enabled {
		units = append(units, "container@dnsfilter.service")
	}
	if profile.VoiceChat.Enabled {
		units = append(units, "container@voicechat.service")
	}
	return units
}

// CheckUnit asks systemctl whether a unit is active.
func CheckUnit(ctx context.Context, exec system.CommandExecutor, unit string) bool {
	output, err := exec.Execute(ctx, "systemctl", "is-active", unit)
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(output)) == "active"
}

// GetUnitUptime returns how long a unit has been active, in human-readable
// form.
func GetUnitUptime(ctx context.Context, exec system.CommandExecutor, unit string) string {
	output, err := exec.Execute(ctx, "systemctl", "show", unit, "--property=ActiveEnterTimestamp", "--value")
	if err != nil {
		return "unknown"
	}

	since := strings.TrimSpace(string(output))
	if since == "" || since == "n/a" {
		return "unknown"
	}

	// Try common timestamp formats
	var t time.Time
	formats := []string{
		"Mon 2006-01-02 15:04:05 MST",
		time.RFC3339,
		time.RFC3339Nano,
	}

	for _, format := range formats {
		if parsed, err := time.Parse(format, since); err == nil {
			t = parsed
			break
		}
	}

	if t.IsZero() {
		return since // Return raw value if can't parse
	}

	return formatDuration(time.Since(t))
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	} else if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	} else if d < 24*time.Hour {
		hours := int(d.Hours())
		mins := int(d.Minutes()) % 60
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	return fmt.Sprintf("%dd %dh", days, hours)
}

// Check inspects the installed flake and the expected units.
func Check(ctx context.Context, fs system.FileSystem, exec system.CommandExecutor, profile *config.Profile, paths *config.Paths) *CheckResult {
	result := &CheckResult{
		FlakeInstalled: fs.Exists(paths.FlakePath()),
	}

	for _, unit := range ExpectedUnits(profile) {
		us := UnitStatus{Name: unit}
		us.Active = CheckUnit(ctx, exec, unit)
		if us.Active {
			us.Uptime = GetUnitUptime(ctx, exec, unit)
		}
		result.Units = append(result.Units, us)
	}

	return result
}

// GetSummary reduces a check result to a single status.
func GetSummary(result *CheckResult) Status {
	if !result.FlakeInstalled {
		return StatusNotInstalled
	}
	for _, u := range result.Units {
		if !u.Active {
			return StatusDegraded
		}
	}
	return StatusHealthy
}
