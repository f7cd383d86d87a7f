package tmuxctl

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/AdamGardelov/paneboard/internal/limits"
	"github.com/AdamGardelov/paneboard/internal/logging"
)

// SessionInfo is one row of list-sessions.
type SessionInfo struct {
	Name     string
	Path     string
	Attached bool
	Windows  int
	Activity time.Time
}

// WindowInfo is one row of list-windows.
type WindowInfo struct {
	Index  int
	Name   string
	Active bool
	Panes  int
}

// PaneInfo is one row of list-panes.
type PaneInfo struct {
	ID          string
	WindowIndex int
	Index       int
	Active      bool
	Title       string
	Command     string
	PID         int
	Path        string
	Left        int
	Top         int
	Width       int
	Height      int
	Dead        bool
	DeadStatus  int
}

// Tab-separated -F formats. The full variants need format variables
// that old servers lack; when a listing fails the basic variant is
// retried so the dashboard still gets names out of a tmux from a
// distro's stale package.
const (
	sessionFmtFull  = "#{session_name}\t#{session_path}\t#{session_attached}\t#{session_windows}\t#{session_activity}"
	sessionFmtBasic = "#{session_name}"

	windowFmt = "#{window_index}\t#{window_name}\t#{window_active}\t#{window_panes}"

	paneFmtFull  = "#{pane_id}\t#{window_index}\t#{pane_index}\t#{pane_active}\t#{pane_title}\t#{pane_current_command}\t#{pane_pid}\t#{pane_current_path}\t#{pane_left}\t#{pane_top}\t#{pane_width}\t#{pane_height}\t#{pane_dead}\t#{pane_dead_status}"
	paneFmtBasic = "#{pane_id}\t#{window_index}\t#{pane_index}\t#{pane_active}\t#{pane_title}\t#{pane_current_command}\t#{pane_current_path}"
)

// ListSessionsInfo returns every session on the server, oldest fields
// first. A stopped or absent server yields an empty slice.
func (c *Client) ListSessionsInfo(ctx context.Context) ([]SessionInfo, error) {
	out, err := c.cmd(ctx, "list-sessions", "-F", sessionFmtFull).CombinedOutput()
	if err != nil {
		if isBenignServerError(err, out) {
			return nil, nil
		}
		out, err = c.cmd(ctx, "list-sessions", "-F", sessionFmtBasic).CombinedOutput()
		if err != nil {
			if isBenignServerError(err, out) {
				return nil, nil
			}
			return nil, wrapTmuxErr("list-sessions", err, out)
		}
	}
	return parseSessions(string(out)), nil
}

func parseSessions(out string) []SessionInfo {
	var sessions []SessionInfo
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		info := SessionInfo{Name: fields[0]}
		if len(fields) >= 5 {
			info.Path = fields[1]
			info.Attached = parseFlag(fields[2])
			info.Windows = parseInt(fields[3])
			if secs := parseInt(fields[4]); secs > 0 {
				info.Activity = time.Unix(int64(secs), 0)
			}
		}
		sessions = append(sessions, info)
	}
	return sessions
}

// CurrentSession names the session the calling client is attached to,
// or "" when run outside tmux.
func (c *Client) CurrentSession(ctx context.Context) (string, error) {
	out, err := c.cmd(ctx, "display-message", "-p", "#{session_name}").CombinedOutput()
	if err != nil {
		if isBenignServerError(err, out) {
			return "", nil
		}
		return "", wrapTmuxErr("display-message", err, out)
	}
	return strings.TrimSpace(string(out)), nil
}

// ListWindows returns the windows of one session.
func (c *Client) ListWindows(ctx context.Context, session string) ([]WindowInfo, error) {
	out, err := c.cmd(ctx, "list-windows", "-t", session, "-F", windowFmt).CombinedOutput()
	if err != nil {
		if isBenignServerError(err, out) {
			return nil, nil
		}
		return nil, wrapTmuxErr("list-windows", err, out)
	}
	var windows []WindowInfo
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Split(strings.TrimRight(line, "\r"), "\t")
		if len(fields) < 4 || strings.TrimSpace(fields[0]) == "" {
			continue
		}
		windows = append(windows, WindowInfo{
			Index:  parseInt(fields[0]),
			Name:   fields[1],
			Active: parseFlag(fields[2]),
			Panes:  parseInt(fields[3]),
		})
	}
	return windows, nil
}

// ListPanesDetailed returns every pane of a session across all of its
// windows, with geometry and process details where the server can
// report them.
func (c *Client) ListPanesDetailed(ctx context.Context, session string) ([]PaneInfo, error) {
	out, err := c.cmd(ctx, "list-panes", "-s", "-t", session, "-F", paneFmtFull).CombinedOutput()
	if err == nil {
		if panes, ok := parsePanes(string(out), 14); ok {
			return panes, nil
		}
	} else if isBenignServerError(err, out) {
		return nil, nil
	}

	// Full format failed or came back mangled; ask again with the
	// fields every supported server has.
	out, err = c.cmd(ctx, "list-panes", "-s", "-t", session, "-F", paneFmtBasic).CombinedOutput()
	if err != nil {
		if isBenignServerError(err, out) {
			return nil, nil
		}
		return nil, wrapTmuxErr("list-panes", err, out)
	}
	panes, ok := parsePanes(string(out), 7)
	if !ok {
		return nil, fmt.Errorf("tmux list-panes: unexpected output %q", strings.TrimSpace(string(out)))
	}
	return panes, nil
}

func parsePanes(out string, want int) ([]PaneInfo, bool) {
	var panes []PaneInfo
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < want {
			return nil, false
		}
		pane := PaneInfo{
			ID:          fields[0],
			WindowIndex: parseInt(fields[1]),
			Index:       parseInt(fields[2]),
			Active:      parseFlag(fields[3]),
			Title:       fields[4],
			Command:     fields[5],
		}
		if want >= 14 {
			pane.PID = parseInt(fields[6])
			pane.Path = fields[7]
			pane.Left = parseInt(fields[8])
			pane.Top = parseInt(fields[9])
			pane.Width = parseInt(fields[10])
			pane.Height = parseInt(fields[11])
			pane.Dead = parseFlag(fields[12])
			pane.DeadStatus = parseInt(fields[13])
		} else {
			pane.Path = fields[6]
		}
		panes = append(panes, pane)
	}
	return panes, true
}

// CapturePaneLines grabs the trailing lines of a pane with escape
// sequences preserved. Panes running a full-screen program are read
// from the alternate screen; everything else comes from the normal
// screen plus enough scrollback to fill the request.
func (c *Client) CapturePaneLines(ctx context.Context, target string, lines int) (string, error) {
	if lines <= 0 {
		lines = limits.DefaultCaptureLines
	}
	if lines > limits.MaxCaptureLines {
		lines = limits.MaxCaptureLines
	}

	out, err := c.cmd(ctx, "capture-pane", "-p", "-J", "-e", "-a", "-S", "0", "-E", "-", "-t", target).CombinedOutput()
	if err != nil {
		start := "-" + strconv.Itoa(lines)
		out, err = c.cmd(ctx, "capture-pane", "-p", "-J", "-e", "-S", start, "-E", "-", "-t", target).CombinedOutput()
		if err != nil {
			if isBenignServerError(err, out) {
				return "", nil
			}
			return "", wrapTmuxErr("capture-pane", err, out)
		}
	}
	text := tailLines(string(out), lines)
	slog.Debug("captured pane", "target", target, logging.CaptureAttr("capture", []byte(text)))
	return text, nil
}

// tailLines keeps the last n lines after dropping trailing blanks.
func tailLines(text string, n int) string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

// SessionHasClients reports whether any client is attached to the
// session right now.
func (c *Client) SessionHasClients(ctx context.Context, session string) (bool, error) {
	out, err := c.cmd(ctx, "list-clients", "-t", session, "-F", "#{client_tty}").CombinedOutput()
	if err != nil {
		if isBenignServerError(err, out) {
			return false, nil
		}
		return false, wrapTmuxErr("list-clients", err, out)
	}
	return strings.TrimSpace(string(out)) != "", nil
}

func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func parseFlag(s string) bool {
	return strings.TrimSpace(s) == "1"
}
