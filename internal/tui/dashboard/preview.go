package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AdamGardelov/paneboard/internal/ansi"
	"github.com/AdamGardelov/paneboard/internal/tui/theme"
)

// renderPreview builds the viewport content for the selected session.
// Grid mode stacks every pane of the active window at the configured
// depth; layout mode gives the active pane the whole panel.
func renderPreview(snap *Snapshot, width int) string {
	if width <= 0 {
		return ""
	}
	panes := snap.Panes
	if len(panes) == 0 {
		return theme.ListDimmed.Render("No panes to preview.")
	}
	if snap.Settings.PreviewMode == PreviewModeLayout {
		if active := activePaneView(panes); active != nil {
			panes = []PaneView{*active}
		}
	}
	sections := make([]string, 0, len(panes))
	for _, pane := range panes {
		sections = append(sections, renderPaneSection(pane, snap.Settings, width))
	}
	return strings.Join(sections, "\n\n")
}

func renderPaneSection(pane PaneView, settings Settings, width int) string {
	lines := pane.Lines
	if settings.PreviewMode == PreviewModeGrid && len(lines) > settings.PreviewLines {
		lines = lines[len(lines)-settings.PreviewLines:]
	}
	var b strings.Builder
	b.WriteString(paneHeading(pane))
	if len(lines) == 0 {
		b.WriteByte('\n')
		b.WriteString(theme.ListDimmed.Render(" (no output)"))
		return b.String()
	}
	for _, raw := range lines {
		b.WriteByte('\n')
		b.WriteString(renderStyledLine(raw, width))
	}
	return b.String()
}

func paneHeading(pane PaneView) string {
	label := fmt.Sprintf("pane %d", pane.Info.Index)
	if title := strings.TrimSpace(pane.Info.Title); title != "" && title != pane.Info.Command {
		label += " · " + title
	}
	if cmd := strings.TrimSpace(pane.Info.Command); cmd != "" {
		label += " · " + cmd
	}
	return theme.SectionTitle.Render(label) + " " + statusBadge(pane.Status)
}

func statusBadge(s PaneStatus) string {
	switch s {
	case StatusDone:
		return theme.StatusBadgeDone.Render("done")
	case StatusError:
		return theme.StatusBadgeError.Render("error")
	case StatusIdle:
		return theme.StatusBadgeIdle.Render("idle")
	default:
		return theme.StatusBadgeRunning.Render("running")
	}
}

// renderStyledLine re-renders one captured line through the shared
// SGR parser, so the preview shows the pane's own colors instead of
// raw escape bytes.
func renderStyledLine(raw string, width int) string {
	var b strings.Builder
	it := ansi.RenderLine(raw, width)
	for {
		seg, ok := it.Next()
		if !ok || seg.LineBreak {
			break
		}
		if seg.Text == "" {
			continue
		}
		b.WriteString(styleSegment(seg))
	}
	return b.String()
}

func styleSegment(seg ansi.Segment) string {
	if seg.Style.IsZero() {
		return seg.Text
	}
	style := lipgloss.NewStyle()
	if seg.Style.FgSet {
		style = style.Foreground(lipgloss.Color(hexColor(seg.Style.Fg)))
	}
	if seg.Style.BgSet {
		style = style.Background(lipgloss.Color(hexColor(seg.Style.Bg)))
	}
	if seg.Style.Attrs.Has(ansi.AttrBold) {
		style = style.Bold(true)
	}
	if seg.Style.Attrs.Has(ansi.AttrDim) {
		style = style.Faint(true)
	}
	if seg.Style.Attrs.Has(ansi.AttrItalic) {
		style = style.Italic(true)
	}
	if seg.Style.Attrs.Has(ansi.AttrUnderline) {
		style = style.Underline(true)
	}
	return style.Render(seg.Text)
}

func hexColor(c ansi.Color) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
