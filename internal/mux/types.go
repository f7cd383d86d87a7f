// Package mux abstracts the terminal multiplexer behind an interface
// so the dashboard and CLI can be exercised against a fake server.
package mux

import (
	"context"
	"time"

	"github.com/AdamGardelov/paneboard/internal/layout"
)

// SessionInfo describes one multiplexer session.
type SessionInfo struct {
	Name     string
	Path     string
	Attached bool
	Windows  int
	Activity time.Time
}

// WindowInfo describes one window within a session.
type WindowInfo struct {
	Index  int
	Name   string
	Active bool
	Panes  int
}

// PaneInfo describes one pane, with geometry when the server reports
// it.
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

// EnsureOptions describe the session EnsureSession should create or
// reuse.
type EnsureOptions struct {
	Session  string
	Grid     layout.Grid
	StartDir string
	Commands []string
	Titles   []string
	Attach   bool
	Timeout  time.Duration
}

// EnsureResult reports what EnsureSession did.
type EnsureResult struct {
	Created  bool
	Attached bool
}

// PopupOptions size and place an overlay window.
type PopupOptions struct {
	Width    int
	Height   int
	StartDir string
}

// Client is the full multiplexer surface the application depends on.
type Client interface {
	// Binary reports the resolved multiplexer executable.
	Binary() string
	// IsInside reports whether the process runs inside a multiplexer
	// client.
	IsInside() bool

	ListSessionsInfo(ctx context.Context) ([]SessionInfo, error)
	CurrentSession(ctx context.Context) (string, error)
	ListWindows(ctx context.Context, session string) ([]WindowInfo, error)
	ListPanesDetailed(ctx context.Context, session string) ([]PaneInfo, error)
	CapturePaneLines(ctx context.Context, target string, lines int) (string, error)
	SessionHasClients(ctx context.Context, session string) (bool, error)

	EnsureSession(ctx context.Context, opts EnsureOptions) (EnsureResult, error)
	KillSession(ctx context.Context, session string) error
	RenameSession(ctx context.Context, oldName, newName string) error
	SendKeys(ctx context.Context, target, command string) error
	Attach(ctx context.Context, session string) error

	ServerVersion(ctx context.Context) (string, error)
	SupportsPopup(ctx context.Context) bool
	DisplayPopup(ctx context.Context, opts PopupOptions, command ...string) error
}
