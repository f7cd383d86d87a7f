//go:build !windows

package appdirs

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"syscall"

	"github.com/AdamGardelov/paneboard/internal/identity"
	"github.com/AdamGardelov/paneboard/internal/runenv"
)

var warnLoosePerms sync.Once

// RuntimeDir returns the per-user directory for sockets, pid files and
// other transient state. Resolution order: explicit override via
// PANEBOARD_RUNTIME_DIR, then XDG_RUNTIME_DIR, then a uid-scoped
// directory under the system temp dir. The directory is created with
// mode 0700 and must be owned by the current user.
func RuntimeDir() (string, error) {
	if override := runenv.RuntimeDir(); override != "" {
		return ensureRuntimeDir(override)
	}
	if xdg := os.Getenv("XDG_RUNTIME_DIR"); xdg != "" {
		return ensureRuntimeDir(filepath.Join(xdg, identity.AppSlug))
	}
	dir := filepath.Join(os.TempDir(), identity.AppSlug+"-"+strconv.Itoa(os.Getuid()))
	return ensureRuntimeDir(dir)
}

// ConfigDir returns the directory holding user configuration. An
// explicit PANEBOARD_CONFIG_DIR override wins; otherwise the platform
// config dir (usually ~/.config) plus the app slug is used. The
// directory is not created here; callers create it when writing.
func ConfigDir() (string, error) {
	if override := runenv.ConfigDir(); override != "" {
		return override, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, identity.AppSlug), nil
}

func ensureRuntimeDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create runtime dir %s: %w", dir, err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("stat runtime dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("runtime path %s is not a directory", dir)
	}
	if !ownedByCurrentUser(info) {
		return "", fmt.Errorf("runtime dir %s is not owned by the current user", dir)
	}
	if perm := info.Mode().Perm(); perm&0o077 != 0 {
		if err := os.Chmod(dir, 0o700); err != nil {
			warnLoosePerms.Do(func() {
				slog.Warn("runtime dir has loose permissions", "dir", dir, "perm", perm.String())
			})
		}
	}
	return dir, nil
}

func ownedByCurrentUser(info os.FileInfo) bool {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return true
	}
	return int(st.Uid) == os.Getuid()
}
