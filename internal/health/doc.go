// Package health checks the state of a managed host: whether the flake is
// installed and whether the systemd units the profile expects are active.
package health
