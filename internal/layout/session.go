package layout

import (
	"path/filepath"
	"strings"
)

// SanitizeSessionName normalizes a name into something tmux accepts:
// lowercase, dashes for separators, no dots or colons.
func SanitizeSessionName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "session"
	}
	var b strings.Builder
	lastDash := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			lastDash = false
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case r == '-' || r == '_' || r == ' ' || r == '.':
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	result := strings.Trim(b.String(), "-")
	if result == "" {
		return "session"
	}
	return result
}

// ResolveSessionName picks the session name for a project start:
// explicit request, then the project config's pinned name, then the
// sanitized project directory name.
func ResolveSessionName(projectPath, requested string, cfg *Config) string {
	requested = strings.TrimSpace(requested)
	if requested != "" {
		return requested
	}
	if cfg != nil {
		if session := strings.TrimSpace(cfg.Session); session != "" {
			return session
		}
	}
	return SanitizeSessionName(filepath.Base(projectPath))
}
