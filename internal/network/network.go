// Package network generates the NixOS networking snippets for the hearth host.
package network

import (
	"fmt"
	"sort"
	"strings"
)

// Config holds host network settings for rendering. An empty Address means
// the interface is configured via DHCP.
type Config struct {
	Interface   string
	Address     string // CIDR notation
	Gateway     string
	Nameservers []string
}

// Ports is the firewall surface derived from the enabled services.
type Ports struct {
	TCP []int
	UDP []int
}

// HostAddress returns the host-side address of a container slot.
// Containers use the 10.233.X.0/24 network where X is the slot.
func HostAddress(slot int) string {
	return fmt.Sprintf("10.233.%d.1", slot)
}

// LocalAddress returns the container-side address of a container slot.
func LocalAddress(slot int) string {
	return fmt.Sprintf("10.233.%d.2", slot)
}

// ServicePorts computes the firewall surface for the host. SSH is always
// open; DNS (53/tcp+udp) and the filter's web UI open with the DNS filter,
// the voice port (tcp+udp) opens with the voice chat server.
func ServicePorts(dnsEnabled bool, dnsWebPort int, voiceEnabled bool, voicePort int) Ports {
	p := Ports{TCP: []int{22}}

	if dnsEnabled {
		p.TCP = append(p.TCP, 53, dnsWebPort)
		p.UDP = append(p.UDP, 53)
	}

	if voiceEnabled {
		p.TCP = append(p.TCP, voicePort)
		p.UDP = append(p.UDP, voicePort)
	}

	sort.Ints(p.TCP)
	sort.Ints(p.UDP)
	return p
}

// GenerateHostConfig generates the NixOS host networking block: interface
// addressing plus the firewall surface.
func GenerateHostConfig(cfg *Config, ports Ports) string {
	var b strings.Builder

	if cfg.Address == "" {
		fmt.Fprintf(&b, `networking.useDHCP = false;
        networking.interfaces.%s.useDHCP = true;`, cfg.Interface)
	} else {
		addr, prefix := splitCIDR(cfg.Address)
		fmt.Fprintf(&b, `networking.useDHCP = false;
        networking.interfaces.%s.ipv4.addresses = [
          {
            address = "%s";
            prefixLength = %s;
          }
        ];
        networking.defaultGateway = "%s";`, cfg.Interface, addr, prefix, cfg.Gateway)

		if len(cfg.Nameservers) > 0 {
			fmt.Fprintf(&b, "\n        networking.nameservers = [ %s ];", formatNixStringList(cfg.Nameservers))
		}
	}

	fmt.Fprintf(&b, `

        networking.firewall = {
          enable = true;
          allowedTCPPorts = [ %s ];
          allowedUDPPorts = [ %s ];
        };`, formatNixIntList(ports.TCP), formatNixIntList(ports.UDP))

	return b.String()
}

// GenerateNATConfig generates the NAT block that gives the private container
// network outbound access through the host interface.
func GenerateNATConfig(externalInterface string, slots []int) string {
	if len(slots) == 0 {
		return ""
	}

	return fmt.Sprintf(`networking.nat = {
          enable = true;
          internalInterfaces = [ "ve-+" ];
          externalInterface = "%s";
        };`, externalInterface)
}

// splitCIDR splits "a.b.c.d/n" into address and prefix length. The input is
// validated during profile loading, so a malformed value falls back to /24.
func splitCIDR(cidr string) (addr, prefix string) {
	i := strings.IndexByte(cidr, '/')
	if i < 0 {
		return cidr, "24"
	}
	return cidr[:i], cidr[i+1:]
}

func formatNixIntList(items []int) string {
	if len(items) == 0 {
		return ""
	}
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("%d", item)
	}
	return strings.Join(parts, " ")
}

func formatNixStringList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return strings.Join(quoted, " ")
}
