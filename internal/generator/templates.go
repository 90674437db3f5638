package generator

import (
	"strings"
	"text/template"
)

// FlakeData holds all data needed to render the flake document.
type FlakeData struct {
	Hostname       string
	Timezone       string
	System         string
	StateVersion   string
	NixpkgsChannel string // e.g. "nixos-24.05", derived from StateVersion

	AdminUser      string
	AdminPassword  string   // initial password; empty disables password login
	AuthorizedKeys []string
	PasswordAuth   bool // allow SSH password auth (only when no keys are set)

	NetworkConfig string // pre-rendered from network package
	NATConfig     string // pre-rendered from network package

	DNSFilter *DNSFilterData // nil when the service is disabled
	VoiceChat *VoiceChatData // nil when the service is disabled
}

// DNSFilterData describes the DNS ad-blocking container.
type DNSFilterData struct {
	HostAddress   string
	LocalAddress  string
	WebPort       int
	AdminPassword string
	Upstreams     []string
}

// VoiceChatData describes the voice-chat container.
type VoiceChatData struct {
	HostAddress    string
	LocalAddress   string
	Port           int
	ServerPassword string
	Welcome        string
}

// nixBool returns "true" or "false" for use in Nix configuration.
func nixBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// nixEscape escapes a string for safe inclusion inside a Nix "..." string literal.
// It handles backslashes, double quotes, and ${} interpolation sequences.
func nixEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "${", "\\${")
	return s
}

// flakeTemplateText is the main Go template for generating the flake document.
const flakeTemplateText = `{
  description = "Hearth home server ({{.Hostname}})";

  inputs.nixpkgs.url = "github:NixOS/nixpkgs/{{.NixpkgsChannel}}";

  outputs =
    { self, nixpkgs }:
    {
      nixosConfigurations.{{.Hostname}} = nixpkgs.lib.nixosSystem {
        system = "{{.System}}";
        modules = [
          (
            { config, pkgs, ... }:
            {
              system.stateVersion = "{{.StateVersion}}";

              boot.loader.grub.enable = false;
              boot.loader.generic-extlinux-compatible.enable = true;

              networking.hostName = "{{.Hostname}}";
              time.timeZone = "{{.Timezone}}";

              {{.NetworkConfig}}
{{- if .NATConfig}}

              {{.NATConfig}}
{{- end}}

              users.users.{{.AdminUser}} = {
                isNormalUser = true;
                extraGroups = [ "wheel" ];
{{- if .AdminPassword}}
                initialPassword = "{{.AdminPassword | nixEscape}}";
{{- end}}
                openssh.authorizedKeys.keys = [
{{- range .AuthorizedKeys}}
                  {{. | printf "%q"}}
{{- end}}
                ];
              };

              security.sudo.wheelNeedsPassword = false;

              services.openssh = {
                enable = true;
                settings = {
                  PasswordAuthentication = {{.PasswordAuth | nixBool}};
                  PermitRootLogin = "no";
                };
              };

              environment.systemPackages = with pkgs; [
                git
                vim
                htop
              ];
{{- if .DNSFilter}}

              containers.dnsfilter = {
                autoStart = true;
                privateNetwork = true;
                hostAddress = "{{.DNSFilter.HostAddress}}";
                localAddress = "{{.DNSFilter.LocalAddress}}";
                forwardPorts = [
                  {
                    protocol = "udp";
                    hostPort = 53;
                    containerPort = 53;
                  }
                  {
                    protocol = "tcp";
                    hostPort = 53;
                    containerPort = 53;
                  }
                  {
                    protocol = "tcp";
                    hostPort = {{.DNSFilter.WebPort}};
                    containerPort = {{.DNSFilter.WebPort}};
                  }
                ];

                config =
                  { pkgs, ... }:
                  {
                    system.stateVersion = "{{.StateVersion}}";

                    services.adguardhome = {
                      enable = true;
                      mutableSettings = false;
                      settings = {
                        http.address = "0.0.0.0:{{.DNSFilter.WebPort}}";
                        users = [
                          {
                            name = "{{.AdminUser}}";
                            password = "{{.DNSFilter.AdminPassword | nixEscape}}";
                          }
                        ];
                        dns = {
                          bind_hosts = [ "0.0.0.0" ];
                          upstream_dns = [
{{- range .DNSFilter.Upstreams}}
                            "{{.}}"
{{- end}}
                          ];
                        };
                        filtering.protection_enabled = true;
                      };
                    };

                    networking.firewall = {
                      enable = true;
                      allowedTCPPorts = [
                        53
                        {{.DNSFilter.WebPort}}
                      ];
                      allowedUDPPorts = [ 53 ];
                    };
                  };
              };
{{- end}}
{{- if .VoiceChat}}

              containers.voicechat = {
                autoStart = true;
                privateNetwork = true;
                hostAddress = "{{.VoiceChat.HostAddress}}";
                localAddress = "{{.VoiceChat.LocalAddress}}";
                forwardPorts = [
                  {
                    protocol = "tcp";
                    hostPort = {{.VoiceChat.Port}};
                    containerPort = {{.VoiceChat.Port}};
                  }
                  {
                    protocol = "udp";
                    hostPort = {{.VoiceChat.Port}};
                    containerPort = {{.VoiceChat.Port}};
                  }
                ];

                config =
                  { pkgs, ... }:
                  {
                    system.stateVersion = "{{.StateVersion}}";

                    services.murmur = {
                      enable = true;
                      port = {{.VoiceChat.Port}};
                      password = "{{.VoiceChat.ServerPassword | nixEscape}}";
{{- if .VoiceChat.Welcome}}
                      welcometext = "{{.VoiceChat.Welcome | nixEscape}}";
{{- end}}
                    };

                    networking.firewall = {
                      enable = true;
                      allowedTCPPorts = [ {{.VoiceChat.Port}} ];
                      allowedUDPPorts = [ {{.VoiceChat.Port}} ];
                    };
                  };
              };
{{- end}}
            }
          )
        ];
      };
    };
}
`

// flakeTemplate is the parsed template, initialized at package load time.
var flakeTemplate *template.Template

func init() {
	funcs := template.FuncMap{
		"nixBool":   nixBool,
		"nixEscape": nixEscape,
	}
	flakeTemplate = template.Must(template.New("flake").Funcs(funcs).Parse(flakeTemplateText))
}
