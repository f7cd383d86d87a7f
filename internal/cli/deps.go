// Package cli wires the paneboard command tree: a bare invocation opens
// the dashboard, subcommands cover one-shot session work (new, ls,
// layouts, init, capture, kill, version). External services arrive
// through Deps so tests can run every command against a fake
// multiplexer.
package cli

import (
	"io"
	"os"

	"github.com/AdamGardelov/paneboard/internal/boardconfig"
	"github.com/AdamGardelov/paneboard/internal/mux"
)

// Deps provides external services for command handlers.
type Deps struct {
	Version string
	// WorkDir overrides the working directory; empty means os.Getwd.
	WorkDir string

	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	// Connect builds the multiplexer client. binary may be empty, in
	// which case the client resolves tmux from PATH.
	Connect func(binary string) (mux.Client, error)
	// GlobalPath resolves the global config file path.
	GlobalPath func() (string, error)
}

// DefaultDeps returns dependencies wired to production services.
func DefaultDeps(version string) Deps {
	return Deps{
		Version: version,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Stdin:   os.Stdin,
		Connect: func(binary string) (mux.Client, error) {
			client, err := mux.NewTmuxClient(binary)
			if err != nil {
				return nil, err
			}
			return client, nil
		},
		GlobalPath: boardconfig.DefaultPath,
	}
}

func (d Deps) withDefaults() Deps {
	if d.Stdout == nil {
		d.Stdout = os.Stdout
	}
	if d.Stderr == nil {
		d.Stderr = os.Stderr
	}
	if d.Stdin == nil {
		d.Stdin = os.Stdin
	}
	if d.Connect == nil {
		d.Connect = DefaultDeps(d.Version).Connect
	}
	if d.GlobalPath == nil {
		d.GlobalPath = boardconfig.DefaultPath
	}
	return d
}
