// Package watch delivers debounced change notifications for a fixed
// set of files, used to hot-reload configuration while the dashboard
// runs.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces editor write bursts (save + rename +
// chmod) into one notification.
const DefaultDebounce = 250 * time.Millisecond

// Watcher watches individual files by watching their parent
// directories, which survives the rename-and-replace dance editors do
// on save.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	events   chan string

	mu        sync.Mutex
	files     map[string]string // clean absolute path -> reason tag
	trees     map[string]string // clean absolute root -> reason tag
	dirs      map[string]struct{}
	timer     *time.Timer
	pending   string
	closed    bool
	closeOnce sync.Once
}

// New returns a watcher with no files registered. debounce <= 0 uses
// DefaultDebounce.
func New(debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &Watcher{
		fsw:      fsw,
		debounce: debounce,
		events:   make(chan string, 1),
		files:    make(map[string]string),
		trees:    make(map[string]string),
		dirs:     make(map[string]struct{}),
	}, nil
}

// WatchFile registers path; changes to it surface on Events tagged
// with reason. The file itself may not exist yet as long as its
// directory does.
func (w *Watcher) WatchFile(path, reason string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	abs = filepath.Clean(abs)
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return fmt.Errorf("watcher closed")
	}
	if _, ok := w.dirs[dir]; !ok {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.dirs[dir] = struct{}{}
	}
	w.files[abs] = reason
	return nil
}

// WatchTree registers root and every directory below it, skipping
// build and VCS clutter. Directories created later join the watch set
// as they appear.
func (w *Watcher) WatchTree(root, reason string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	abs = filepath.Clean(abs)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return fmt.Errorf("watcher closed")
	}
	if err := w.addTree(abs); err != nil {
		return err
	}
	w.trees[abs] = reason
	return nil
}

// addTree walks root adding its non-ignored directories. Caller holds
// mu.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && ignoreDirName(d.Name()) {
			return filepath.SkipDir
		}
		if _, ok := w.dirs[path]; ok {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		w.dirs[path] = struct{}{}
		return nil
	})
}

// Events yields one reason tag per debounced change burst. Bursts
// touching several files coalesce into the most recent reason.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Run pumps filesystem events until ctx ends or the watcher closes.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if reason, ok := w.match(event); ok {
				w.schedule(reason)
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			// Watch errors are transient; keep pumping.
		}
	}
}

func (w *Watcher) match(event fsnotify.Event) (string, bool) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return "", false
	}
	name := filepath.Clean(event.Name)

	w.mu.Lock()
	if reason, ok := w.files[name]; ok {
		w.mu.Unlock()
		return reason, true
	}
	for root, reason := range w.trees {
		if name != root && !strings.HasPrefix(name, root+string(filepath.Separator)) {
			continue
		}
		base := filepath.Base(name)
		if event.Op&fsnotify.Create != 0 && !ignoreDirName(base) && isDir(name) {
			_ = w.addTree(name)
		}
		w.mu.Unlock()
		if ignoreDirName(base) || ignoreFileName(base) {
			return "", false
		}
		return reason, true
	}
	w.mu.Unlock()
	return "", false
}

func ignoreDirName(name string) bool {
	switch name {
	case ".git", "node_modules", "vendor", "bin", "dist", ".idea", ".vscode":
		return true
	}
	return strings.HasPrefix(name, ".") && name != "."
}

// ignoreFileName drops editor droppings that would otherwise restart
// the loop on every keystroke.
func ignoreFileName(name string) bool {
	if strings.HasPrefix(name, ".#") || strings.HasSuffix(name, "~") {
		return true
	}
	return strings.HasSuffix(name, ".swp") || strings.HasSuffix(name, ".tmp")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (w *Watcher) schedule(reason string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.pending = reason
	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, w.fire)
		return
	}
	w.timer.Reset(w.debounce)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	reason := w.pending
	w.pending = ""
	w.timer = nil
	w.mu.Unlock()

	select {
	case w.events <- reason:
	default:
	}
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		if w.timer != nil {
			w.timer.Stop()
			w.timer = nil
		}
		w.mu.Unlock()
		err = w.fsw.Close()
	})
	return err
}
