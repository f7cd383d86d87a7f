package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/AdamGardelov/paneboard/internal/identity"
	"github.com/AdamGardelov/paneboard/internal/tui/theme"
)

const (
	headerRows         = 1
	headerGap          = 1
	footerRows         = 1
	panelGap           = 2
	previewHeadingRows = 1
	minListWidth       = 24
	maxListWidth       = 48
	minPreviewWidth    = 20
)

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	switch m.state {
	case stateConfirmKill:
		return m.viewConfirmKill()
	case stateRename:
		return m.viewRename()
	case stateHelp:
		return m.viewHelp()
	}
	return theme.App.Render(m.viewBoard())
}

func (m *Model) contentSize() (int, int) {
	h, v := theme.App.GetFrameSize()
	return m.width - h, m.height - v
}

// applySize distributes the terminal into list and preview columns and
// resizes the embedded components. The footer swaps between key hints
// and the filter input, so it always costs one row.
func (m *Model) applySize() {
	width, height := m.contentSize()

	bodyHeight := height - headerRows - headerGap - footerRows
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	listWidth := clamp(2*width/5, minListWidth, maxListWidth)
	if width-listWidth-panelGap < minPreviewWidth {
		listWidth = width / 2
	}
	if listWidth < 1 {
		listWidth = 1
	}
	previewWidth := width - listWidth - panelGap
	if previewWidth < 1 {
		previewWidth = 1
	}

	m.list.SetSize(listWidth, bodyHeight)

	frameW, frameH := theme.PreviewBorder.GetFrameSize()
	m.preview.Width = previewWidth - frameW
	if m.preview.Width < 1 {
		m.preview.Width = 1
	}
	m.preview.Height = bodyHeight - frameH - previewHeadingRows
	if m.preview.Height < 1 {
		m.preview.Height = 1
	}
	m.syncPreview()
}

func (m *Model) viewBoard() string {
	width, height := m.contentSize()
	if width <= 10 || height <= 6 {
		return "Terminal too small"
	}
	bodyHeight := height - headerRows - headerGap - footerRows
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(width),
		"",
		m.viewBody(width, bodyHeight),
		m.viewFooterRow(width),
	)
}

func (m *Model) viewHeader(width int) string {
	left := theme.Title.Render(identity.BrandName)
	if m.snapshot != nil {
		count := len(m.snapshot.Sessions)
		label := "sessions"
		if count == 1 {
			label = "session"
		}
		left += theme.ListDimmed.Render(fmt.Sprintf("  %d %s", count, label))
	}
	return fitLineSuffix(left, theme.LogoStyle.Render(logoCompact), width)
}

func (m *Model) viewBody(width, height int) string {
	if m.snapshot == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.ListDimmed.Render("Loading sessions…"))
	}
	if len(m.snapshot.Sessions) == 0 {
		return m.viewSplash(width, height)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.viewListPanel(),
		strings.Repeat(" ", panelGap),
		m.viewPreviewPanel(),
	)
}

func (m *Model) viewListPanel() string {
	if len(m.visibleRows()) == 0 && m.filterQuery != "" {
		return lipgloss.Place(m.list.Width(), m.list.Height(), lipgloss.Center, lipgloss.Center,
			theme.ListDimmed.Render("No sessions match the filter."))
	}
	return m.list.View()
}

func (m *Model) viewPreviewPanel() string {
	border := theme.PreviewBorder
	if !m.preview.AtTop() {
		border = theme.PreviewBorderFocused
	}
	heading := xansi.Truncate(m.previewHeading(), m.preview.Width, "…")
	return border.Render(heading + "\n" + m.preview.View())
}

func (m *Model) previewHeading() string {
	snap := m.snapshot
	if snap == nil || snap.Selected == "" {
		return theme.SectionTitle.Render("Preview")
	}
	heading := theme.SectionTitle.Render(snap.Selected)
	if snap.WindowName != "" {
		heading += theme.ListDimmed.Render(fmt.Sprintf(" · window %d: %s", snap.WindowIndex, snap.WindowName))
	} else if snap.WindowIndex >= 0 {
		heading += theme.ListDimmed.Render(fmt.Sprintf(" · window %d", snap.WindowIndex))
	}
	return heading
}

func (m *Model) viewFooterRow(width int) string {
	if m.filtering {
		hint := theme.ShortcutHint.Render("enter apply · esc clear")
		return fitLineSuffix(m.filterInput.View(), hint, width)
	}
	return m.viewFooter(width)
}

func (m *Model) viewSplash(width, height int) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.LogoStyle.Render(logoBlock(width)),
		"",
		"No sessions found.",
		"",
		theme.DialogNote.Render(m.splashHint()),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) splashHint() string {
	return fmt.Sprintf("Hit %s to create a session and %s for help.",
		keyLabel(m.keys.NewSession), keyLabel(m.keys.Help))
}

// ===== Dialogs =====

func (m *Model) viewConfirmKill() string {
	var b strings.Builder
	b.WriteString(theme.DialogTitle.Render("Kill Session?"))
	b.WriteString("\n\n")
	b.WriteString(theme.DialogLabel.Render("Session: "))
	b.WriteString(theme.DialogValue.Render(m.confirmKill))
	b.WriteString("\n\n")
	b.WriteString(theme.DialogNote.Render("Commands running in its panes will be terminated."))
	b.WriteString("\n\n")
	b.WriteString(theme.DialogChoiceKey.Render("y"))
	b.WriteString(theme.DialogChoiceSep.Render(" kill • "))
	b.WriteString(theme.DialogChoiceKey.Render("n"))
	b.WriteString(theme.DialogChoiceSep.Render(" cancel"))
	return m.overlayDialog(theme.Dialog.Render(b.String()))
}

func (m *Model) viewRename() string {
	var b strings.Builder
	b.WriteString(theme.DialogTitle.Render("Rename Session"))
	b.WriteString("\n\n")
	b.WriteString(theme.DialogLabel.Render("Session: "))
	b.WriteString(theme.DialogValue.Render(m.renameTarget))
	b.WriteString("\n\n")
	b.WriteString(theme.DialogLabel.Render("New name: "))
	b.WriteString(m.renameInput.View())
	b.WriteString("\n\n")
	b.WriteString(theme.DialogChoiceKey.Render("enter"))
	b.WriteString(theme.DialogChoiceSep.Render(" confirm • "))
	b.WriteString(theme.DialogChoiceKey.Render("esc"))
	b.WriteString(theme.DialogChoiceSep.Render(" cancel"))
	return m.overlayDialog(theme.Dialog.Render(b.String()))
}

func (m *Model) viewHelp() string {
	keys := m.keys
	groups := []struct {
		title string
		rows  [][2]string
	}{
		{"Navigate", [][2]string{
			{keyLabel(keys.Up), "previous session"},
			{keyLabel(keys.Down), "next session"},
			{keyLabel(keys.PreviewUp), "scroll preview up"},
			{keyLabel(keys.PreviewDown), "scroll preview down"},
			{keyLabel(keys.Filter), "filter sessions"},
		}},
		{"Session", [][2]string{
			{keyLabel(keys.Attach), "attach or switch"},
			{keyLabel(keys.NewSession), "create session"},
			{keyLabel(keys.Rename), "rename session"},
			{keyLabel(keys.Kill), "kill session"},
			{keyLabel(keys.Yank), "copy pane output"},
		}},
		{"Board", [][2]string{
			{keyLabel(keys.Refresh), "refresh now"},
			{keyLabel(keys.Help), "toggle help"},
			{keyLabel(keys.Quit), "quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(theme.DialogTitle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, group := range groups {
		b.WriteString("\n")
		b.WriteString(theme.SectionTitle.Render(group.title))
		b.WriteString("\n")
		for _, row := range group.rows {
			b.WriteString(theme.ShortcutKey.Render(row[0]))
			b.WriteString(theme.ShortcutDesc.Render(row[1]))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(theme.ShortcutHint.Render("esc closes help"))
	return m.overlayDialog(theme.Dialog.Render(b.String()))
}

func (m *Model) overlayDialog(dialog string) string {
	if m.width == 0 || m.height == 0 {
		return dialog
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
