// Package generator renders the declarative NixOS flake document from a host
// profile.
//
// Rendering is a pure function of the profile: no filesystem access, no
// clock, no host inspection. The flake describes the Raspberry Pi host
// (boot loader, networking, SSH) plus one NixOS container per enabled
// service: the AdGuard Home DNS filter and the murmur voice-chat server.
package generator
