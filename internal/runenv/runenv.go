// Package runenv reads the environment overrides the binary honors. All
// variables share the identity prefix; empty values mean "use the default".
package runenv

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/AdamGardelov/paneboard/internal/identity"
)

var (
	RuntimeDirEnv     = identity.EnvVar("RUNTIME_DIR")
	ConfigDirEnv      = identity.EnvVar("CONFIG_DIR")
	CommandTimeoutEnv = identity.EnvVar("TMUX_TIMEOUT")
)

// RuntimeDir returns the runtime-state directory override, if any.
func RuntimeDir() string {
	return strings.TrimSpace(os.Getenv(RuntimeDirEnv))
}

// ConfigDir returns the configuration directory override, if any.
func ConfigDir() string {
	return strings.TrimSpace(os.Getenv(ConfigDirEnv))
}

// CommandTimeout returns the maximum time a single tmux invocation may
// take. Accepts Go durations ("7s") or plain seconds ("7").
func CommandTimeout() time.Duration {
	const fallback = 5 * time.Second
	raw := strings.TrimSpace(os.Getenv(CommandTimeoutEnv))
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		if d <= 0 {
			return fallback
		}
		return d
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}

// Enabled reports whether a boolean-style variable is switched on.
func Enabled(name string) bool {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return false
	}
	switch strings.ToLower(value) {
	case "0", "false", "no", "off":
		return false
	default:
		return true
	}
}
