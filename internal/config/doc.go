// Package config defines the host profile for hearth-ctl.
//
// A profile is a TOML document describing the target system: host identity
// (hostname, timezone, platform), the admin user with its SSH keys, host
// networking, and the per-service sections for the DNS filter and voice chat
// containers. Credentials are profile data by design; the rendering templates
// never embed them.
//
// The default profile location is /etc/hearth/profile.toml. Additional named
// profiles live under /etc/hearth/profiles/<name>.toml and are selected with
// the --profile flag.
package config
