package system

import (
	"context"
	"errors"
	"io/fs"
	"testing"
)

func TestMockFS_WriteReadRoundTrip(t *testing.T) {
	m := NewMockFS()

	if err := m.WriteFile("/etc/nixos/flake.nix", []byte("{ }"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := m.ReadFile("/etc/nixos/flake.nix")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "{ }" {
		t.Errorf("ReadFile = %q, want %q", data, "{ }")
	}
}

func TestMockFS_ReadMissingFile(t *testing.T) {
	m := NewMockFS()

	_, err := m.ReadFile("/missing")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile error = %v, want fs.ErrNotExist", err)
	}
}

func TestMockFS_MkdirAllCreatesParents(t *testing.T) {
	m := NewMockFS()

	if err := m.MkdirAll("/etc/hearth/profiles", 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	for _, dir := range []string{"/etc", "/etc/hearth", "/etc/hearth/profiles"} {
		if !m.HasDir(dir) {
			t.Errorf("directory %s should exist", dir)
		}
	}
}

func TestMockFS_ErrorInjection(t *testing.T) {
	m := NewMockFS()
	injected := errors.New("read-only file system")

	m.WriteFileErr = injected
	if err := m.WriteFile("/etc/nixos/flake.nix", []byte("x"), 0644); !errors.Is(err, injected) {
		t.Errorf("WriteFile error = %v, want injected error", err)
	}

	m.MkdirAllErr = injected
	if err := m.MkdirAll("/etc/nixos", 0755); !errors.Is(err, injected) {
		t.Errorf("MkdirAll error = %v, want injected error", err)
	}
}

func TestMockFS_Exists(t *testing.T) {
	m := NewMockFS()

	if m.Exists("/etc/nixos/flake.nix") {
		t.Error("Exists should be false for missing path")
	}

	m.AddFile("/etc/nixos/flake.nix", []byte("{ }"), 0644)

	if !m.Exists("/etc/nixos/flake.nix") {
		t.Error("Exists should be true for added file")
	}
	if !m.Exists("/etc/nixos") {
		t.Error("Exists should be true for implied parent directory")
	}
}

func TestMockFS_Stat(t *testing.T) {
	m := NewMockFS()
	m.AddFile("/etc/nixos/flake.nix", []byte("content"), 0644)

	info, err := m.Stat("/etc/nixos/flake.nix")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Size() != int64(len("content")) {
		t.Errorf("Size = %d, want %d", info.Size(), len("content"))
	}
	if info.IsDir() {
		t.Error("file should not be a directory")
	}

	dirInfo, err := m.Stat("/etc/nixos")
	if err != nil {
		t.Fatalf("Stat dir failed: %v", err)
	}
	if !dirInfo.IsDir() {
		t.Error("directory should report IsDir")
	}
}

func TestMockExecutor_RecordsCalls(t *testing.T) {
	m := NewMockExecutor()
	m.Outputs["nixos-rebuild"] = []byte("building...")

	out, err := m.Execute(context.Background(), "nixos-rebuild", "switch", "--flake", "/etc/nixos#hearth")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if string(out) != "building..." {
		t.Errorf("output = %q, want %q", out, "building...")
	}

	if len(m.Calls) != 1 {
		t.Fatalf("Calls = %d, want 1", len(m.Calls))
	}
	if m.Calls[0][0] != "nixos-rebuild" || m.Calls[0][1] != "switch" {
		t.Errorf("recorded call = %v", m.Calls[0])
	}
}

func TestMockExecutor_LookPath(t *testing.T) {
	m := NewMockExecutor()

	if _, err := m.LookPath("nixos-rebuild"); err == nil {
		t.Error("LookPath should fail for unknown command")
	}

	m.Paths["nixos-rebuild"] = "/run/current-system/sw/bin/nixos-rebuild"
	p, err := m.LookPath("nixos-rebuild")
	if err != nil {
		t.Fatalf("LookPath failed: %v", err)
	}
	if p != "/run/current-system/sw/bin/nixos-rebuild" {
		t.Errorf("LookPath = %q", p)
	}
}

func TestSetDefaultFS(t *testing.T) {
	defer ResetDefaults()

	m := NewMockFS()
	SetDefaultFS(m)

	if DefaultFS() != FileSystem(m) {
		t.Error("DefaultFS should return the mock after SetDefaultFS")
	}

	ResetDefaults()
	if DefaultFS() == FileSystem(m) {
		t.Error("ResetDefaults should restore the OS implementation")
	}
}
