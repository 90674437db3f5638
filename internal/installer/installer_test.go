package installer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/hearth-home/hearth-ctl/internal/config"
	hearthErrors "github.com/hearth-home/hearth-ctl/internal/errors"
	"github.com/hearth-home/hearth-ctl/internal/generator"
	"github.com/hearth-home/hearth-ctl/internal/system"
)

func testProfile() *config.Profile {
	p := config.DefaultProfile()
	p.Hostname = "pi-test"
	p.Admin.AuthorizedKeys = []string{"ssh-ed25519 AAAA... op@laptop"}
	p.Admin.InitialPassword = ""
	p.DNSFilter.AdminPassword = "dns-pw"
	p.VoiceChat.ServerPassword = "voice-pw"
	return p
}

func testPaths() *config.Paths {
	return &config.Paths{
		ConfigDir:   "/etc/hearth",
		ProfilePath: "/etc/hearth/profile.toml",
		ProfilesDir: "/etc/hearth/profiles",
		OutputDir:   "/etc/nixos",
	}
}

func TestInstall_ExactContent(t *testing.T) {
	fs := system.NewMockFS()
	var out bytes.Buffer
	profile := testProfile()

	result, err := New(fs, &out, testPaths()).Install(profile)
	if err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	if result.Path != "/etc/nixos/flake.nix" {
		t.Errorf("Path = %q, want /etc/nixos/flake.nix", result.Path)
	}

	want, err := generator.GenerateFlake(profile)
	if err != nil {
		t.Fatalf("GenerateFlake failed: %v", err)
	}

	got, ok := fs.GetFile("/etc/nixos/flake.nix")
	if !ok {
		t.Fatal("flake file was not written")
	}
	if string(got) != want {
		t.Error("installed content should be byte-for-byte the rendered document")
	}
	if result.Bytes != len(want) {
		t.Errorf("Bytes = %d, want %d", result.Bytes, len(want))
	}
}

func TestInstall_CreatesTargetDirectory(t *testing.T) {
	fs := system.NewMockFS()
	var out bytes.Buffer

	if fs.HasDir("/etc/nixos") {
		t.Fatal("precondition: target directory should be absent")
	}

	if _, err := New(fs, &out, testPaths()).Install(testProfile()); err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	if !fs.HasDir("/etc/nixos") {
		t.Error("Install should create the target directory")
	}
}

func TestInstall_Idempotent(t *testing.T) {
	fs := system.NewMockFS()
	var out bytes.Buffer
	inst := New(fs, &out, testPaths())
	profile := testProfile()

	if _, err := inst.Install(profile); err != nil {
		t.Fatalf("first Install failed: %v", err)
	}
	first, _ := fs.GetFile("/etc/nixos/flake.nix")

	if _, err := inst.Install(profile); err != nil {
		t.Fatalf("second Install failed: %v", err)
	}
	second, _ := fs.GetFile("/etc/nixos/flake.nix")

	if !bytes.Equal(first, second) {
		t.Error("running Install twice should yield the same final content")
	}
}

func TestInstall_OverwritesPriorContent(t *testing.T) {
	fs := system.NewMockFS()
	fs.AddFile("/etc/nixos/flake.nix", []byte("# stale previous configuration\n"), 0644)
	var out bytes.Buffer

	if _, err := New(fs, &out, testPaths()).Install(testProfile()); err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	got, _ := fs.GetFile("/etc/nixos/flake.nix")
	if strings.Contains(string(got), "stale previous") {
		t.Error("prior content should be fully replaced")
	}
}

func TestInstall_FailFastOnMkdir(t *testing.T) {
	fs := system.NewMockFS()
	fs.MkdirAllErr = errors.New("permission denied")
	var out bytes.Buffer

	_, err := New(fs, &out, testPaths()).Install(testProfile())
	if err == nil {
		t.Fatal("Install should fail when the directory cannot be created")
	}

	if hearthErrors.GetExitCode(err) != hearthErrors.ExitInstallError {
		t.Errorf("exit code = %d, want %d", hearthErrors.GetExitCode(err), hearthErrors.ExitInstallError)
	}
	if !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("underlying diagnostic should surface, got: %v", err)
	}

	// Fail-fast: nothing after the failing step runs.
	if out.Len() != 0 {
		t.Errorf("no output should be printed after a failed step, got: %s", out.String())
	}
	if _, ok := fs.GetFile("/etc/nixos/flake.nix"); ok {
		t.Error("no file should be written after mkdir fails")
	}
}

func TestInstall_FailFastOnWrite(t *testing.T) {
	fs := system.NewMockFS()
	fs.WriteFileErr = errors.New("read-only file system")
	var out bytes.Buffer

	_, err := New(fs, &out, testPaths()).Install(testProfile())
	if err == nil {
		t.Fatal("Install should fail when the file cannot be written")
	}

	if !strings.Contains(err.Error(), "read-only file system") {
		t.Errorf("underlying diagnostic should surface, got: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("guidance must not be printed after a failed write, got: %s", out.String())
	}
}

func TestInstall_InvalidProfileTouchesNothing(t *testing.T) {
	fs := system.NewMockFS()
	var out bytes.Buffer

	profile := testProfile()
	profile.Hostname = "Not Valid"

	_, err := New(fs, &out, testPaths()).Install(profile)
	if err == nil {
		t.Fatal("Install should fail for an invalid profile")
	}
	if hearthErrors.GetExitCode(err) != hearthErrors.ExitRenderError {
		t.Errorf("exit code = %d, want %d", hearthErrors.GetExitCode(err), hearthErrors.ExitRenderError)
	}
	if fs.HasDir("/etc/nixos") {
		t.Error("nothing should be created before rendering succeeds")
	}
}

func TestInstall_PrintsFourStepGuidance(t *testing.T) {
	fs := system.NewMockFS()
	var out bytes.Buffer

	if _, err := New(fs, &out, testPaths()).Install(testProfile()); err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	output := out.String()
	for _, step := range []string{"1.", "2.", "3.", "4."} {
		if !strings.Contains(output, step) {
			t.Errorf("guidance should contain step %q, got:\n%s", step, output)
		}
	}
	if !strings.Contains(output, "sudo nixos-rebuild switch --flake /etc/nixos#pi-test") {
		t.Errorf("guidance should name the rebuild command, got:\n%s", output)
	}
	if !strings.Contains(output, "container@dnsfilter container@voicechat") {
		t.Errorf("guidance should list enabled containers, got:\n%s", output)
	}
}

func TestGuidance_NoContainers(t *testing.T) {
	profile := testProfile()
	profile.DNSFilter.Enabled = false
	profile.VoiceChat.Enabled = false

	text := Guidance(profile, testPaths())
	if strings.Contains(text, "container@") {
		t.Errorf("guidance should not mention containers when none are enabled:\n%s", text)
	}
	if !strings.Contains(text, "systemctl status sshd") {
		t.Errorf("guidance should fall back to checking sshd:\n%s", text)
	}
}

func TestRebuildCommand(t *testing.T) {
	got := RebuildCommand(testPaths(), "pi-test")
	want := "nixos-rebuild switch --flake /etc/nixos#pi-test"
	if strings.Join(got, " ") != want {
		t.Errorf("RebuildCommand = %v, want %q", got, want)
	}
}
