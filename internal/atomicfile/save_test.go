package atomicfile

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestSaveWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := Save(path, []byte("session: demo\n"), 0o644); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(got) != "session: demo\n" {
		t.Fatalf("content = %q", string(got))
	}
	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Stat() error: %v", err)
		}
		if info.Mode().Perm() != 0o644 {
			t.Fatalf("perm = %o, want 0644", info.Mode().Perm())
		}
	}
}

func TestSaveReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := Save(path, []byte("old"), 0o644); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := Save(path, []byte("new"), 0o644); err != nil {
		t.Fatalf("Save() overwrite error: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(got) != "new" {
		t.Fatalf("content = %q, want %q", string(got), "new")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestSaveCreatesParentDirs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "out.txt")

	if err := Save(path, []byte("x"), 0); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Stat() error: %v", err)
		}
		if info.Mode().Perm() != 0o600 {
			t.Fatalf("default perm = %o, want 0600", info.Mode().Perm())
		}
	}
}

func TestSaveEmptyPath(t *testing.T) {
	if err := Save("", []byte("x"), 0o600); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
