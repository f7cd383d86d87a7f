package mux

import (
	"context"
	"os"

	"github.com/AdamGardelov/paneboard/internal/tmuxctl"
)

// TmuxClient adapts tmuxctl to the Client interface.
type TmuxClient struct {
	client *tmuxctl.Client
}

var _ Client = (*TmuxClient)(nil)

// NewTmuxClient resolves the tmux binary (binary overrides PATH
// lookup) and returns the adapter.
func NewTmuxClient(binary string) (*TmuxClient, error) {
	client, err := tmuxctl.NewClient(binary)
	if err != nil {
		return nil, err
	}
	return &TmuxClient{client: client}, nil
}

// WrapTmux adapts an existing tmuxctl client; tests use it with a
// fake exec hook installed.
func WrapTmux(client *tmuxctl.Client) *TmuxClient {
	return &TmuxClient{client: client}
}

func (t *TmuxClient) Binary() string { return t.client.Binary() }

func (t *TmuxClient) IsInside() bool { return insideTmux() }

func insideTmux() bool {
	return os.Getenv("TMUX") != "" || os.Getenv("TMUX_PANE") != ""
}

func (t *TmuxClient) ListSessionsInfo(ctx context.Context) ([]SessionInfo, error) {
	rows, err := t.client.ListSessionsInfo(ctx)
	if err != nil {
		return nil, err
	}
	sessions := make([]SessionInfo, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, SessionInfo{
			Name:     row.Name,
			Path:     row.Path,
			Attached: row.Attached,
			Windows:  row.Windows,
			Activity: row.Activity,
		})
	}
	return sessions, nil
}

func (t *TmuxClient) CurrentSession(ctx context.Context) (string, error) {
	return t.client.CurrentSession(ctx)
}

func (t *TmuxClient) ListWindows(ctx context.Context, session string) ([]WindowInfo, error) {
	rows, err := t.client.ListWindows(ctx, session)
	if err != nil {
		return nil, err
	}
	windows := make([]WindowInfo, 0, len(rows))
	for _, row := range rows {
		windows = append(windows, WindowInfo{
			Index:  row.Index,
			Name:   row.Name,
			Active: row.Active,
			Panes:  row.Panes,
		})
	}
	return windows, nil
}

func (t *TmuxClient) ListPanesDetailed(ctx context.Context, session string) ([]PaneInfo, error) {
	rows, err := t.client.ListPanesDetailed(ctx, session)
	if err != nil {
		return nil, err
	}
	panes := make([]PaneInfo, 0, len(rows))
	for _, row := range rows {
		panes = append(panes, PaneInfo{
			ID:          row.ID,
			WindowIndex: row.WindowIndex,
			Index:       row.Index,
			Active:      row.Active,
			Title:       row.Title,
			Command:     row.Command,
			PID:         row.PID,
			Path:        row.Path,
			Left:        row.Left,
			Top:         row.Top,
			Width:       row.Width,
			Height:      row.Height,
			Dead:        row.Dead,
			DeadStatus:  row.DeadStatus,
		})
	}
	return panes, nil
}

func (t *TmuxClient) CapturePaneLines(ctx context.Context, target string, lines int) (string, error) {
	return t.client.CapturePaneLines(ctx, target, lines)
}

func (t *TmuxClient) SessionHasClients(ctx context.Context, session string) (bool, error) {
	return t.client.SessionHasClients(ctx, session)
}

func (t *TmuxClient) EnsureSession(ctx context.Context, opts EnsureOptions) (EnsureResult, error) {
	res, err := t.client.EnsureSession(ctx, tmuxctl.Options{
		Session:  opts.Session,
		Grid:     opts.Grid,
		StartDir: opts.StartDir,
		Commands: opts.Commands,
		Titles:   opts.Titles,
		Attach:   opts.Attach,
		Timeout:  opts.Timeout,
	})
	return EnsureResult{Created: res.Created, Attached: res.Attached}, err
}

func (t *TmuxClient) KillSession(ctx context.Context, session string) error {
	return t.client.KillSession(ctx, session)
}

func (t *TmuxClient) RenameSession(ctx context.Context, oldName, newName string) error {
	return t.client.RenameSession(ctx, oldName, newName)
}

func (t *TmuxClient) SendKeys(ctx context.Context, target, command string) error {
	return t.client.SendKeys(ctx, target, command)
}

func (t *TmuxClient) Attach(ctx context.Context, session string) error {
	return t.client.Attach(ctx, session)
}

func (t *TmuxClient) ServerVersion(ctx context.Context) (string, error) {
	return t.client.ServerVersion(ctx)
}

func (t *TmuxClient) SupportsPopup(ctx context.Context) bool {
	return t.client.SupportsPopup(ctx)
}

func (t *TmuxClient) DisplayPopup(ctx context.Context, opts PopupOptions, command ...string) error {
	return t.client.DisplayPopup(ctx, tmuxctl.PopupOptions{
		Width:    opts.Width,
		Height:   opts.Height,
		StartDir: opts.StartDir,
	}, command...)
}
