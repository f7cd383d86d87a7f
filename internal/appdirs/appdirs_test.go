//go:build !windows

package appdirs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AdamGardelov/paneboard/internal/runenv"
)

func TestRuntimeDirOverride(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "rt")
	t.Setenv(runenv.RuntimeDirEnv, dir)

	got, err := RuntimeDir()
	if err != nil {
		t.Fatalf("RuntimeDir: %v", err)
	}
	if got != dir {
		t.Fatalf("RuntimeDir = %q, want %q", got, dir)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o700 {
		t.Fatalf("runtime dir perm = %v, want 0700", perm)
	}
}

func TestRuntimeDirXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv(runenv.RuntimeDirEnv, "")
	t.Setenv("XDG_RUNTIME_DIR", base)

	got, err := RuntimeDir()
	if err != nil {
		t.Fatalf("RuntimeDir: %v", err)
	}
	if filepath.Dir(got) != base {
		t.Fatalf("RuntimeDir = %q, want subdir of %q", got, base)
	}
}

func TestRuntimeDirTightensPermissions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "loose")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Setenv(runenv.RuntimeDirEnv, dir)

	if _, err := RuntimeDir(); err != nil {
		t.Fatalf("RuntimeDir: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o700 {
		t.Fatalf("perm after ensure = %v, want 0700", perm)
	}
}

func TestRuntimeDirRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv(runenv.RuntimeDirEnv, path)

	if _, err := RuntimeDir(); err == nil {
		t.Fatal("expected error for non-directory runtime path")
	}
}

func TestConfigDirOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(runenv.ConfigDirEnv, dir)

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir: %v", err)
	}
	if got != dir {
		t.Fatalf("ConfigDir = %q, want %q", got, dir)
	}
}
