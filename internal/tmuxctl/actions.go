package tmuxctl

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// KillSession destroys the session. Killing a session that is already
// gone is not an error.
func (c *Client) KillSession(ctx context.Context, session string) error {
	out, err := c.cmd(ctx, "kill-session", "-t", session).CombinedOutput()
	if err != nil && !isBenignServerError(err, out) {
		return wrapTmuxErr("kill-session", err, out)
	}
	return nil
}

// RenameSession renames a session in place.
func (c *Client) RenameSession(ctx context.Context, oldName, newName string) error {
	if strings.TrimSpace(newName) == "" {
		return fmt.Errorf("new session name is empty")
	}
	out, err := c.cmd(ctx, "rename-session", "-t", oldName, newName).CombinedOutput()
	if err != nil {
		return wrapTmuxErr("rename-session", err, out)
	}
	return nil
}

// PopupOptions size and place a display-popup overlay.
type PopupOptions struct {
	Width    int
	Height   int
	StartDir string
}

// DisplayPopup opens a tmux popup running command and blocks until the
// command exits. Requires a server new enough for display-popup; call
// SupportsPopup first.
func (c *Client) DisplayPopup(ctx context.Context, opts PopupOptions, command ...string) error {
	if len(command) == 0 {
		return fmt.Errorf("popup command is empty")
	}
	args := []string{"display-popup", "-E"}
	if opts.Width > 0 {
		args = append(args, "-w", strconv.Itoa(opts.Width))
	}
	if opts.Height > 0 {
		args = append(args, "-h", strconv.Itoa(opts.Height))
	}
	if opts.StartDir != "" {
		args = append(args, "-d", opts.StartDir)
	}
	args = append(args, command...)
	out, err := c.cmd(ctx, args...).CombinedOutput()
	if err != nil {
		return wrapTmuxErr("display-popup", err, out)
	}
	return nil
}
