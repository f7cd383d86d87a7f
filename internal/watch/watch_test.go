package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func startWatcher(t *testing.T, debounce time.Duration) *Watcher {
	t.Helper()
	w, err := New(debounce)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = w.Run(ctx) }()
	return w
}

func expectEvent(t *testing.T, w *Watcher, want string) {
	t.Helper()
	select {
	case got := <-w.Events():
		if got != want {
			t.Fatalf("event = %q, want %q", got, want)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for %q event", want)
	}
}

func expectQuiet(t *testing.T, w *Watcher, wait time.Duration) {
	t.Helper()
	select {
	case got := <-w.Events():
		t.Fatalf("unexpected event %q", got)
	case <-time.After(wait):
	}
}

func TestWatchFileDeliversDebouncedEvent(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "paneboard.yaml")
	if err := os.WriteFile(file, []byte("session: a\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	w := startWatcher(t, 20*time.Millisecond)
	if err := w.WatchFile(file, "layout"); err != nil {
		t.Fatalf("WatchFile: %v", err)
	}

	if err := os.WriteFile(file, []byte("session: b\n"), 0o600); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	expectEvent(t, w, "layout")
}

func TestWatchFileIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "paneboard.yaml")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	w := startWatcher(t, 20*time.Millisecond)
	if err := w.WatchFile(file, "layout"); err != nil {
		t.Fatalf("WatchFile: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("y"), 0o600); err != nil {
		t.Fatalf("write sibling: %v", err)
	}
	expectQuiet(t, w, 200*time.Millisecond)
}

func TestWatchFileSurvivesRenameReplace(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(file, []byte("a = 1\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	w := startWatcher(t, 20*time.Millisecond)
	if err := w.WatchFile(file, "settings"); err != nil {
		t.Fatalf("WatchFile: %v", err)
	}

	// Editors write a temp file and rename it over the target.
	tmp := filepath.Join(dir, ".config.toml.tmp")
	if err := os.WriteFile(tmp, []byte("a = 2\n"), 0o600); err != nil {
		t.Fatalf("write tmp: %v", err)
	}
	if err := os.Rename(tmp, file); err != nil {
		t.Fatalf("rename: %v", err)
	}
	expectEvent(t, w, "settings")
}

func TestWatchFileNotYetExisting(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "paneboard.yaml")

	w := startWatcher(t, 20*time.Millisecond)
	if err := w.WatchFile(file, "layout"); err != nil {
		t.Fatalf("WatchFile: %v", err)
	}

	if err := os.WriteFile(file, []byte("session: new\n"), 0o600); err != nil {
		t.Fatalf("create: %v", err)
	}
	expectEvent(t, w, "layout")
}

func TestWatchTreeDeliversForNestedWrites(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "pkg")
	if err := os.MkdirAll(sub, 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	w := startWatcher(t, 20*time.Millisecond)
	if err := w.WatchTree(root, "source"); err != nil {
		t.Fatalf("WatchTree: %v", err)
	}

	if err := os.WriteFile(filepath.Join(sub, "main.go"), []byte("package pkg\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	expectEvent(t, w, "source")
}

func TestWatchTreeFollowsNewDirectories(t *testing.T) {
	root := t.TempDir()

	w := startWatcher(t, 20*time.Millisecond)
	if err := w.WatchTree(root, "source"); err != nil {
		t.Fatalf("WatchTree: %v", err)
	}

	sub := filepath.Join(root, "newpkg")
	if err := os.Mkdir(sub, 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	expectEvent(t, w, "source")

	if err := os.WriteFile(filepath.Join(sub, "a.go"), []byte("package newpkg\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	expectEvent(t, w, "source")
}

func TestWatchTreeIgnoresEditorDroppings(t *testing.T) {
	root := t.TempDir()

	w := startWatcher(t, 20*time.Millisecond)
	if err := w.WatchTree(root, "source"); err != nil {
		t.Fatalf("WatchTree: %v", err)
	}

	for _, name := range []string{".#lock", "buffer~", "x.swp", "build.tmp"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte("x"), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	expectQuiet(t, w, 200*time.Millisecond)
}

func TestIgnoreNameHelpers(t *testing.T) {
	if !ignoreDirName(".git") || !ignoreDirName("node_modules") || ignoreDirName("src") {
		t.Fatal("unexpected ignoreDirName results")
	}
	cases := []struct {
		name string
		want bool
	}{
		{".#foo", true},
		{"foo~", true},
		{"foo.swp", true},
		{"foo.tmp", true},
		{"foo.go", false},
	}
	for _, tc := range cases {
		if got := ignoreFileName(tc.name); got != tc.want {
			t.Fatalf("ignoreFileName(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	w, err := New(0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if err := w.WatchFile(filepath.Join(t.TempDir(), "x"), "x"); err == nil {
		t.Fatal("WatchFile after Close should fail")
	}
}
