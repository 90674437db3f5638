package generator

import (
	"bytes"
	"fmt"

	"github.com/hearth-home/hearth-ctl/internal/config"
	"github.com/hearth-home/hearth-ctl/internal/network"
)

// GenerateFlake renders the flake document for a host profile.
// Rendering is pure: the same profile always yields the same bytes.
func GenerateFlake(profile *config.Profile) (string, error) {
	if err := profile.Validate(); err != nil {
		return "", fmt.Errorf("invalid profile: %w", err)
	}

	data := buildFlakeData(profile)

	var buf bytes.Buffer
	if err := flakeTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute flake template: %w", err)
	}

	return buf.String(), nil
}

// buildFlakeData constructs FlakeData from a Profile.
func buildFlakeData(profile *config.Profile) *FlakeData {
	data := &FlakeData{
		Hostname:       profile.Hostname,
		Timezone:       profile.Timezone,
		System:         profile.System,
		StateVersion:   profile.StateVersion,
		NixpkgsChannel: "nixos-" + profile.StateVersion,
		AdminUser:      profile.Admin.User,
		AdminPassword:  profile.Admin.InitialPassword,
		AuthorizedKeys: profile.Admin.AuthorizedKeys,
		// Password auth over SSH only as a bootstrap path when no key is
		// configured yet; any configured key switches it off.
		PasswordAuth: len(profile.Admin.AuthorizedKeys) == 0,
	}

	var slots []int
	if profile.DNSFilter.Enabled {
		data.DNSFilter = &DNSFilterData{
			HostAddress:   network.HostAddress(profile.DNSFilter.Slot),
			LocalAddress:  network.LocalAddress(profile.DNSFilter.Slot),
			WebPort:       profile.DNSFilter.WebPort,
			AdminPassword: profile.DNSFilter.AdminPassword,
			Upstreams:     profile.DNSFilter.Upstreams,
		}
		slots = append(slots, profile.DNSFilter.Slot)
	}

	if profile.VoiceChat.Enabled {
		data.VoiceChat = &VoiceChatData{
			HostAddress:    network.HostAddress(profile.VoiceChat.Slot),
			LocalAddress:   network.LocalAddress(profile.VoiceChat.Slot),
			Port:           profile.VoiceChat.Port,
			ServerPassword: profile.VoiceChat.ServerPassword,
			Welcome:        profile.VoiceChat.Welcome,
		}
		slots = append(slots, profile.VoiceChat.Slot)
	}

	ports := network.ServicePorts(
		profile.DNSFilter.Enabled, profile.DNSFilter.WebPort,
		profile.VoiceChat.Enabled, profile.VoiceChat.Port,
	)

	netCfg := &network.Config{
		Interface:   profile.Network.Interface,
		Address:     profile.Network.Address,
		Gateway:     profile.Network.Gateway,
		Nameservers: profile.Network.Nameservers,
	}
	data.NetworkConfig = network.GenerateHostConfig(netCfg, ports)
	data.NATConfig = network.GenerateNATConfig(profile.Network.Interface, slots)

	return data
}
