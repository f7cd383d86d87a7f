// Package userpath converts between ~-prefixed and absolute paths.
package userpath

import (
	"os"
	"path/filepath"
	"strings"
)

// Expand expands a leading ~ to the current user's home directory.
func Expand(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	// ~otheruser is left alone.
	return path
}

// Shorten replaces the current user's home directory prefix with ~ for
// display.
func Shorten(path string) string {
	if path == "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+string(filepath.Separator)) {
		return "~" + path[len(home):]
	}
	return path
}
