package dashboard

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AdamGardelov/paneboard/internal/ansi"
	"github.com/AdamGardelov/paneboard/internal/identity"
)

func (m *Model) attachSelected() tea.Cmd {
	name := m.selectedName()
	if name == "" {
		return nil
	}
	return m.attachCmd(name)
}

// attachCmd hands the terminal to the multiplexer. Inside a client a
// switch keeps the dashboard pane alive; outside, attach suspends the
// dashboard until detach.
func (m *Model) attachCmd(session string) tea.Cmd {
	args := []string{"attach-session", "-t", session}
	if m.insideMux {
		args = []string{"switch-client", "-t", session}
	}
	cmd := exec.Command(m.client.Binary(), args...)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		if err != nil {
			return execDoneMsg{Err: fmt.Errorf("attach %s: %w", session, err)}
		}
		return execDoneMsg{}
	})
}

// newSessionCmd re-invokes the binary's create flow so the dashboard
// and the CLI share one session-creation path.
func (m *Model) newSessionCmd() tea.Cmd {
	bin, err := os.Executable()
	if err != nil || bin == "" {
		bin = identity.CLIName
	}
	cmd := exec.Command(bin, "new")
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		if err != nil {
			return execDoneMsg{Err: fmt.Errorf("new session: %w", err)}
		}
		return execDoneMsg{}
	})
}

// yankSelected copies the selected session's active pane capture to
// the clipboard, escape sequences stripped.
func (m *Model) yankSelected() tea.Cmd {
	if m.snapshot == nil {
		return nil
	}
	pane := activePaneView(m.snapshot.Panes)
	if pane == nil || len(pane.Lines) == 0 {
		m.setToast("Nothing to copy", toastInfo)
		return nil
	}
	var b strings.Builder
	for i, line := range pane.Lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(ansi.Strip(line))
	}
	if err := clipboard.WriteAll(b.String()); err != nil {
		m.setToast("Copy failed: "+err.Error(), toastError)
		return nil
	}
	m.setToast(fmt.Sprintf("Copied %d lines from %s", len(pane.Lines), m.snapshot.Selected), toastSuccess)
	return nil
}

func activePaneView(panes []PaneView) *PaneView {
	for i := range panes {
		if panes[i].Info.Active {
			return &panes[i]
		}
	}
	if len(panes) > 0 {
		return &panes[0]
	}
	return nil
}
