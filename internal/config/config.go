package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
	securejoin "github.com/cyphar/filepath-securejoin"
)

// profileNameRegex validates named profile identifiers.
// Names must start with a lowercase letter or digit, followed by lowercase
// letters, digits, underscores, or hyphens. Maximum length is 63 characters.
var profileNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,62}$`)

// hostnameRegex validates host names per the usual DNS label rules.
var hostnameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,62}$`)

const (
	DefaultConfigDir = "/etc/hearth"
	DefaultOutputDir = "/etc/nixos"
	FlakeFileName    = "flake.nix"

	// DefaultAdminPassword is the placeholder initial password used when no
	// profile overrides it. Install warns loudly whenever it is still in use.
	DefaultAdminPassword = "changeme"
)

// ValidateProfileName checks if a named profile identifier is valid.
func ValidateProfileName(name string) error {
	if name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}

	if !profileNameRegex.MatchString(name) {
		return fmt.Errorf("invalid profile name %q: must start with a lowercase letter or digit, contain only lowercase letters, digits, underscores, or hyphens, and be at most 63 characters", name)
	}

	return nil
}

// Profile describes the target system: host identity, admin access, and the
// two service containers. It is the single input to flake rendering; all
// credentials live here, never in the template.
type Profile struct {
	Hostname     string `toml:"hostname"`
	Timezone     string `toml:"timezone"`
	System       string `toml:"system"`
	StateVersion string `toml:"state-version"`

	Admin     AdminConfig     `toml:"admin"`
	Network   NetworkConfig   `toml:"network"`
	DNSFilter DNSFilterConfig `toml:"dnsfilter"`
	VoiceChat VoiceChatConfig `toml:"voicechat"`
}

// AdminConfig holds the administrative user and its credentials.
type AdminConfig struct {
	User            string   `toml:"user"`
	AuthorizedKeys  []string `toml:"authorized-keys"`
	InitialPassword string   `toml:"initial-password"`
}

// NetworkConfig holds host networking. An empty Address means DHCP.
type NetworkConfig struct {
	Interface   string   `toml:"interface"`
	Address     string   `toml:"address"` // CIDR, e.g. 192.168.1.2/24
	Gateway     string   `toml:"gateway"`
	Nameservers []string `toml:"nameservers"`
}

// DNSFilterConfig configures the DNS ad-blocking container.
type DNSFilterConfig struct {
	Enabled       bool     `toml:"enabled"`
	Slot          int      `toml:"slot"`
	AdminPassword string   `toml:"admin-password"`
	Upstreams     []string `toml:"upstreams"`
	WebPort       int      `toml:"web-port"`
}

// VoiceChatConfig configures the voice-chat container.
type VoiceChatConfig struct {
	Enabled        bool   `toml:"enabled"`
	Slot           int    `toml:"slot"`
	ServerPassword string `toml:"server-password"`
	Welcome        string `toml:"welcome"`
	Port           int    `toml:"port"`
}

// DefaultProfile returns the built-in profile used when no profile file
// exists. It carries placeholder credentials the operator is expected to
// replace.
func DefaultProfile() *Profile {
	return &Profile{
		Hostname:     "hearth",
		Timezone:     "Etc/UTC",
		System:       "aarch64-linux",
		StateVersion: "24.05",
		Admin: AdminConfig{
			User:            "admin",
			InitialPassword: DefaultAdminPassword,
		},
		Network: NetworkConfig{
			Interface: "eth0",
		},
		DNSFilter: DNSFilterConfig{
			Enabled:       true,
			Slot:          1,
			AdminPassword: DefaultAdminPassword,
			Upstreams:     []string{"1.1.1.1", "9.9.9.9"},
			WebPort:       3000,
		},
		VoiceChat: VoiceChatConfig{
			Enabled:        true,
			Slot:           2,
			ServerPassword: DefaultAdminPassword,
			Welcome:        "Welcome to hearth",
			Port:           64738,
		},
	}
}

// applyDefaults fills unset fields from the built-in profile.
func (p *Profile) applyDefaults() {
	def := DefaultProfile()

	if p.Hostname == "" {
		p.Hostname = def.Hostname
	}
	if p.Timezone == "" {
		p.Timezone = def.Timezone
	}
	if p.System == "" {
		p.System = def.System
	}
	if p.StateVersion == "" {
		p.StateVersion = def.StateVersion
	}
	if p.Admin.User == "" {
		p.Admin.User = def.Admin.User
	}
	if p.Network.Interface == "" {
		p.Network.Interface = def.Network.Interface
	}
	if p.DNSFilter.Slot == 0 {
		p.DNSFilter.Slot = def.DNSFilter.Slot
	}
	if len(p.DNSFilter.Upstreams) == 0 {
		p.DNSFilter.Upstreams = def.DNSFilter.Upstreams
	}
	if p.DNSFilter.WebPort == 0 {
		p.DNSFilter.WebPort = def.DNSFilter.WebPort
	}
	if p.VoiceChat.Slot == 0 {
		p.VoiceChat.Slot = def.VoiceChat.Slot
	}
	if p.VoiceChat.Port == 0 {
		p.VoiceChat.Port = def.VoiceChat.Port
	}
}

// Validate checks that the Profile is internally consistent.
func (p *Profile) Validate() error {
	if !hostnameRegex.MatchString(p.Hostname) {
		return fmt.Errorf("invalid hostname %q: must be a lowercase DNS label", p.Hostname)
	}

	if p.System != "aarch64-linux" && p.System != "x86_64-linux" {
		return fmt.Errorf("invalid system %q: must be aarch64-linux or x86_64-linux", p.System)
	}

	if p.Admin.User == "" {
		return fmt.Errorf("admin user is required")
	}

	if len(p.Admin.AuthorizedKeys) == 0 && p.Admin.InitialPassword == "" {
		return fmt.Errorf("admin needs at least one authorized key or an initial password")
	}

	if err := p.Network.validate(); err != nil {
		return fmt.Errorf("network: %w", err)
	}

	if p.DNSFilter.Enabled {
		if err := p.DNSFilter.validate(); err != nil {
			return fmt.Errorf("dnsfilter: %w", err)
		}
	}

	if p.VoiceChat.Enabled {
		if err := p.VoiceChat.validate(); err != nil {
			return fmt.Errorf("voicechat: %w", err)
		}
	}

	if p.DNSFilter.Enabled && p.VoiceChat.Enabled && p.DNSFilter.Slot == p.VoiceChat.Slot {
		return fmt.Errorf("dnsfilter and voicechat must use distinct slots (both have %d)", p.DNSFilter.Slot)
	}

	return nil
}

func (n *NetworkConfig) validate() error {
	if n.Interface == "" {
		return fmt.Errorf("interface is required")
	}

	if n.Address == "" {
		return nil // DHCP
	}

	if _, _, err := net.ParseCIDR(n.Address); err != nil {
		return fmt.Errorf("invalid address %q: must be CIDR notation", n.Address)
	}

	if n.Gateway == "" {
		return fmt.Errorf("gateway is required for a static address")
	}
	if net.ParseIP(n.Gateway) == nil {
		return fmt.Errorf("invalid gateway %q", n.Gateway)
	}

	for _, ns := range n.Nameservers {
		if net.ParseIP(ns) == nil {
			return fmt.Errorf("invalid nameserver %q", ns)
		}
	}

	return nil
}

// Static reports whether a static address is configured.
func (n *NetworkConfig) Static() bool {
	return n.Address != ""
}

func (d *DNSFilterConfig) validate() error {
	if d.Slot < 1 || d.Slot > 254 {
		return fmt.Errorf("invalid slot: %d (must be 1-254)", d.Slot)
	}
	if d.AdminPassword == "" {
		return fmt.Errorf("admin-password is required")
	}
	if len(d.Upstreams) == 0 {
		return fmt.Errorf("at least one upstream resolver is required")
	}
	for _, u := range d.Upstreams {
		if net.ParseIP(u) == nil {
			return fmt.Errorf("invalid upstream %q", u)
		}
	}
	if d.WebPort < 1 || d.WebPort > 65535 {
		return fmt.Errorf("invalid web-port: %d", d.WebPort)
	}
	return nil
}

func (v *VoiceChatConfig) validate() error {
	if v.Slot < 1 || v.Slot > 254 {
		return fmt.Errorf("invalid slot: %d (must be 1-254)", v.Slot)
	}
	if v.ServerPassword == "" {
		return fmt.Errorf("server-password is required")
	}
	if v.Port < 1 || v.Port > 65535 {
		return fmt.Errorf("invalid port: %d", v.Port)
	}
	return nil
}

// UsesDefaultPassword reports whether any credential still carries the
// built-in placeholder.
func (p *Profile) UsesDefaultPassword() bool {
	return p.Admin.InitialPassword == DefaultAdminPassword ||
		(p.DNSFilter.Enabled && p.DNSFilter.AdminPassword == DefaultAdminPassword) ||
		(p.VoiceChat.Enabled && p.VoiceChat.ServerPassword == DefaultAdminPassword)
}

// Paths holds the configured filesystem locations.
type Paths struct {
	ConfigDir   string
	ProfilePath string
	ProfilesDir string
	OutputDir   string
}

// DefaultPaths returns the default path configuration.
func DefaultPaths() *Paths {
	return &Paths{
		ConfigDir:   DefaultConfigDir,
		ProfilePath: filepath.Join(DefaultConfigDir, "profile.toml"),
		ProfilesDir: filepath.Join(DefaultConfigDir, "profiles"),
		OutputDir:   DefaultOutputDir,
	}
}

// FlakePath returns the installation target for the flake document.
func (p *Paths) FlakePath() string {
	return filepath.Join(p.OutputDir, FlakeFileName)
}

// LoadProfile loads a profile from the given path. A missing file yields the
// built-in defaults so a bare host can still be installed.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultProfile(), nil
		}
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var profile Profile
	if err := toml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	profile.applyDefaults()

	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	return &profile, nil
}

// LoadNamedProfile loads a profile from the profiles directory by name.
// The joined path is confined to profilesDir so a crafted name cannot escape it.
func LoadNamedProfile(profilesDir, name string) (*Profile, error) {
	if err := ValidateProfileName(name); err != nil {
		return nil, err
	}

	path, err := securejoin.SecureJoin(profilesDir, name+".toml")
	if err != nil {
		return nil, fmt.Errorf("invalid profile path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profile not found: %s", name)
	}

	var profile Profile
	if err := toml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", name, err)
	}

	profile.applyDefaults()

	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", name, err)
	}

	return &profile, nil
}

// SaveProfile writes a profile as TOML, creating the parent directory if
// needed.
func SaveProfile(path string, profile *Profile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(profile); err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	return nil
}
