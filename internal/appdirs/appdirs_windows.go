//go:build windows

package appdirs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AdamGardelov/paneboard/internal/identity"
	"github.com/AdamGardelov/paneboard/internal/runenv"
)

// RuntimeDir returns the per-user directory for transient state. On
// Windows this lives under %LOCALAPPDATA%.
func RuntimeDir() (string, error) {
	if override := runenv.RuntimeDir(); override != "" {
		if err := os.MkdirAll(override, 0o700); err != nil {
			return "", fmt.Errorf("create runtime dir %s: %w", override, err)
		}
		return override, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve user cache dir: %w", err)
	}
	dir := filepath.Join(base, identity.AppSlug, "runtime")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create runtime dir %s: %w", dir, err)
	}
	return dir, nil
}

// ConfigDir returns the directory holding user configuration.
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
