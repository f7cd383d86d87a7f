// Package tmuxctl drives a tmux server through its command-line
// interface. Every operation shells out to the tmux binary; the exec
// hook is injectable so tests can substitute a fake server.
package tmuxctl

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/AdamGardelov/paneboard/internal/layout"
	"github.com/AdamGardelov/paneboard/internal/logging"
	"github.com/AdamGardelov/paneboard/internal/runenv"
)

// Client runs tmux commands against a single server.
type Client struct {
	bin      string
	baseArgs []string
	run      func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewClient resolves the tmux binary and returns a client bound to it.
// binary overrides the lookup; a value with spaces is split shell-style
// so "tmux -L test" selects an alternate socket.
func NewClient(binary string) (*Client, error) {
	bin := "tmux"
	var baseArgs []string
	if strings.TrimSpace(binary) != "" {
		parts, err := shellquote.Split(binary)
		if err != nil {
			return nil, fmt.Errorf("parse tmux binary override %q: %w", binary, err)
		}
		if len(parts) == 0 {
			return nil, fmt.Errorf("empty tmux binary override")
		}
		bin = parts[0]
		baseArgs = parts[1:]
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("tmux not found in PATH: %w", err)
	}
	return &Client{bin: path, baseArgs: baseArgs, run: exec.CommandContext}, nil
}

// WithExec replaces the process runner. Tests use this to avoid
// touching a real server.
func (c *Client) WithExec(run func(ctx context.Context, name string, args ...string) *exec.Cmd) *Client {
	c.run = run
	return c
}

// Binary reports the resolved tmux executable path.
func (c *Client) Binary() string { return c.bin }

func (c *Client) cmd(ctx context.Context, args ...string) *exec.Cmd {
	full := append(append([]string{}, c.baseArgs...), args...)
	return c.run(ctx, c.bin, full...)
}

// Options describe a session to create or reuse.
type Options struct {
	Session  string
	Grid     layout.Grid
	StartDir string
	Commands []string
	Titles   []string
	Attach   bool
	Timeout  time.Duration
}

// Result reports what EnsureSession actually did.
type Result struct {
	Created  bool
	Attached bool
}

// EnsureSession creates the session with its pane grid if it does not
// exist, types the configured commands into the panes, and optionally
// attaches. An existing session is left untouched apart from the
// attach.
func (c *Client) EnsureSession(ctx context.Context, opts Options) (Result, error) {
	var res Result
	if strings.TrimSpace(opts.Session) == "" {
		return res, fmt.Errorf("session name is empty")
	}
	grid := opts.Grid
	if grid.Rows == 0 && grid.Columns == 0 {
		grid = layout.DefaultGrid
	}
	if err := grid.Validate(); err != nil {
		return res, err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = runenv.CommandTimeout()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	exists, err := c.sessionExists(ctx, opts.Session)
	if err != nil {
		return res, err
	}
	if !exists {
		paneIDs, err := c.createGrid(ctx, opts.Session, grid, opts.StartDir)
		if err != nil {
			return res, err
		}
		res.Created = true
		if err := c.applyPaneSetup(ctx, paneIDs, opts.Commands, opts.Titles); err != nil {
			return res, err
		}
	}

	if opts.Attach {
		if err := c.Attach(ctx, opts.Session); err != nil {
			return res, err
		}
		res.Attached = true
	}
	return res, nil
}

func (c *Client) sessionExists(ctx context.Context, session string) (bool, error) {
	out, err := c.cmd(ctx, "has-session", "-t", session).CombinedOutput()
	if err == nil {
		return true, nil
	}
	if isBenignServerError(err, out) {
		return false, nil
	}
	return false, wrapTmuxErr("has-session", err, out)
}

// createGrid builds a rows x columns pane grid in a fresh detached
// session and returns the pane IDs in row-major order. Rows are split
// off vertically first, then each row is divided into columns, and a
// final tiled select-layout evens the sizes out.
func (c *Client) createGrid(ctx context.Context, session string, grid layout.Grid, startDir string) ([]string, error) {
	args := []string{"new-session", "-d", "-s", session}
	if startDir != "" {
		args = append(args, "-c", startDir)
	}
	args = append(args, "-P", "-F", "#{pane_id}")
	out, err := c.cmd(ctx, args...).CombinedOutput()
	if err != nil {
		return nil, wrapTmuxErr("new-session", err, out)
	}
	root := strings.TrimSpace(string(out))
	if root == "" {
		return nil, fmt.Errorf("tmux new-session: no pane id returned")
	}

	rowRoots := []string{root}
	for r := 1; r < grid.Rows; r++ {
		id, err := c.splitPane(ctx, rowRoots[len(rowRoots)-1], "-v", startDir)
		if err != nil {
			return nil, err
		}
		rowRoots = append(rowRoots, id)
	}

	var paneIDs []string
	for _, rowRoot := range rowRoots {
		rowPanes := []string{rowRoot}
		for col := 1; col < grid.Columns; col++ {
			id, err := c.splitPane(ctx, rowPanes[len(rowPanes)-1], "-h", startDir)
			if err != nil {
				return nil, err
			}
			rowPanes = append(rowPanes, id)
		}
		paneIDs = append(paneIDs, rowPanes...)
	}

	if grid.Panes() > 1 {
		target := session + ":0"
		if out, err := c.cmd(ctx, "select-layout", "-t", target, "tiled").CombinedOutput(); err != nil {
			return nil, wrapTmuxErr("select-layout", err, out)
		}
	}
	return paneIDs, nil
}

func (c *Client) splitPane(ctx context.Context, target, direction, startDir string) (string, error) {
	args := []string{"split-window", direction, "-t", target}
	if startDir != "" {
		args = append(args, "-c", startDir)
	}
	args = append(args, "-P", "-F", "#{pane_id}")
	out, err := c.cmd(ctx, args...).CombinedOutput()
	if err != nil {
		return "", wrapTmuxErr("split-window", err, out)
	}
	id := strings.TrimSpace(string(out))
	if id == "" {
		return "", fmt.Errorf("tmux split-window: no pane id returned")
	}
	return id, nil
}

func (c *Client) applyPaneSetup(ctx context.Context, paneIDs, commands, titles []string) error {
	for i, id := range paneIDs {
		if i < len(commands) && strings.TrimSpace(commands[i]) != "" {
			if err := c.SendKeys(ctx, id, commands[i]); err != nil {
				return err
			}
		}
		if i < len(titles) && strings.TrimSpace(titles[i]) != "" {
			out, err := c.cmd(ctx, "select-pane", "-t", id, "-T", titles[i]).CombinedOutput()
			if err != nil {
				return wrapTmuxErr("select-pane", err, out)
			}
		}
	}
	return nil
}

// SendKeys types command into the target pane and presses Enter.
func (c *Client) SendKeys(ctx context.Context, target, command string) error {
	slog.Debug("send keys", "target", target, "command", logging.SanitizeCommand(command))
	out, err := c.cmd(ctx, "send-keys", "-t", target, command, "Enter").CombinedOutput()
	if err != nil {
		return wrapTmuxErr("send-keys", err, out)
	}
	return nil
}

// Attach joins the session, using switch-client when already inside a
// tmux client because nesting attach-session is refused by the server.
func (c *Client) Attach(ctx context.Context, session string) error {
	if os.Getenv("TMUX") != "" {
		out, err := c.cmd(ctx, "switch-client", "-t", session).CombinedOutput()
		if err != nil {
			return wrapTmuxErr("switch-client", err, out)
		}
		return nil
	}
	cmd := c.cmd(ctx, "attach-session", "-t", session)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return wrapTmuxErr("attach-session", err, nil)
	}
	return nil
}
