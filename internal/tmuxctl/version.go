package tmuxctl

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// display-popup landed in tmux 3.2.
const popupMinVersion = "3.2"

// ServerVersion reports the tmux version string with the leading
// "tmux " stripped, e.g. "3.3a" or "next-3.4".
func (c *Client) ServerVersion(ctx context.Context) (string, error) {
	out, err := c.cmd(ctx, "-V").CombinedOutput()
	if err != nil {
		return "", wrapTmuxErr("-V", err, out)
	}
	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "tmux "), nil
}

// SupportsPopup reports whether the server understands display-popup.
// The version gate handles releases; builds with unparseable versions
// ("master", openbsd snapshots) are probed through list-commands
// instead.
func (c *Client) SupportsPopup(ctx context.Context) bool {
	if version, err := c.ServerVersion(ctx); err == nil {
		if ok, err := versionAtLeast(version, popupMinVersion); err == nil {
			return ok
		}
	}
	out, err := c.cmd(ctx, "list-commands").CombinedOutput()
	if err != nil {
		return false
	}
	return strings.Contains(string(out), "display-popup")
}

func versionAtLeast(raw, min string) (bool, error) {
	normalized := normalizeTmuxVersion(raw)
	if normalized == "" {
		return false, fmt.Errorf("unparseable tmux version %q", raw)
	}
	v, err := semver.NewVersion(normalized)
	if err != nil {
		return false, fmt.Errorf("parse tmux version %q: %w", raw, err)
	}
	floor, err := semver.NewVersion(min)
	if err != nil {
		return false, err
	}
	return !v.LessThan(floor), nil
}

// normalizeTmuxVersion strips the decorations tmux attaches to release
// numbers: "3.3a" -> "3.3", "next-3.4" -> "3.4", "3.4-rc2" -> "3.4".
func normalizeTmuxVersion(raw string) string {
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "tmux "))
	raw = strings.TrimPrefix(raw, "next-")
	end := len(raw)
	for i, r := range raw {
		if (r < '0' || r > '9') && r != '.' {
			end = i
			break
		}
	}
	return strings.Trim(raw[:end], ".")
}
