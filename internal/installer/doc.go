// Package installer performs the generate-and-install procedure: render the
// flake document from a host profile, ensure the target directory exists,
// overwrite the flake file, and print operator guidance.
//
// The write is a plain overwrite with no merge, backup, or atomic rename;
// two concurrent runs race with last-writer-wins semantics. Applying the
// installed configuration (nixos-rebuild) is deliberately not part of
// Install; it stays an explicit operator step, also reachable through the
// separate apply command.
package installer
