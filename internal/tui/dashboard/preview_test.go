package dashboard

import (
	"strings"
	"testing"

	"github.com/AdamGardelov/paneboard/internal/ansi"
	"github.com/AdamGardelov/paneboard/internal/mux"
)

func TestRenderPreviewNoPanes(t *testing.T) {
	snap := &Snapshot{}
	got := ansi.Strip(renderPreview(snap, 80))
	if !strings.Contains(got, "No panes to preview.") {
		t.Fatalf("renderPreview() = %q", got)
	}
}

func TestRenderPreviewZeroWidth(t *testing.T) {
	snap := &Snapshot{Panes: []PaneView{{Lines: []string{"hi"}}}}
	if got := renderPreview(snap, 0); got != "" {
		t.Fatalf("renderPreview(0) = %q", got)
	}
}

func TestRenderPreviewGridTrimsLines(t *testing.T) {
	snap := &Snapshot{
		Settings: Settings{PreviewMode: PreviewModeGrid, PreviewLines: 2},
		Panes: []PaneView{
			{Info: mux.PaneInfo{Index: 0}, Lines: []string{"one", "two", "three"}},
			{Info: mux.PaneInfo{Index: 1}, Lines: []string{"solo"}},
		},
	}
	got := ansi.Strip(renderPreview(snap, 80))
	if strings.Contains(got, "one") {
		t.Fatalf("renderPreview() kept trimmed line: %q", got)
	}
	for _, want := range []string{"pane 0", "two", "three", "pane 1", "solo"} {
		if !strings.Contains(got, want) {
			t.Fatalf("renderPreview() = %q, missing %q", got, want)
		}
	}
}

func TestRenderPreviewLayoutMode(t *testing.T) {
	snap := &Snapshot{
		Settings: Settings{PreviewMode: PreviewModeLayout, PreviewLines: 1},
		Panes: []PaneView{
			{Info: mux.PaneInfo{Index: 0}, Lines: []string{"inactive"}},
			{Info: mux.PaneInfo{Index: 1, Active: true}, Lines: []string{"line1", "line2"}},
		},
	}
	got := ansi.Strip(renderPreview(snap, 80))
	if strings.Contains(got, "pane 0") {
		t.Fatalf("renderPreview() kept inactive pane: %q", got)
	}
	if !strings.Contains(got, "pane 1") {
		t.Fatalf("renderPreview() = %q, missing active pane", got)
	}
	// Layout mode shows the full depth, not the grid trim.
	if !strings.Contains(got, "line1") || !strings.Contains(got, "line2") {
		t.Fatalf("renderPreview() = %q, missing pane lines", got)
	}
}

func TestRenderPaneSectionEmpty(t *testing.T) {
	pane := PaneView{Info: mux.PaneInfo{Index: 0}}
	got := ansi.Strip(renderPaneSection(pane, Settings{PreviewMode: PreviewModeGrid, PreviewLines: 5}, 80))
	if !strings.Contains(got, "(no output)") {
		t.Fatalf("renderPaneSection() = %q", got)
	}
}

func TestPaneHeading(t *testing.T) {
	pane := PaneView{
		Info:   mux.PaneInfo{Index: 2, Title: "editor", Command: "vim"},
		Status: StatusRunning,
	}
	got := ansi.Strip(paneHeading(pane))
	if !strings.Contains(got, "pane 2 · editor · vim") {
		t.Fatalf("paneHeading() = %q", got)
	}
	if !strings.Contains(got, "running") {
		t.Fatalf("paneHeading() = %q, missing badge", got)
	}

	// A title that just repeats the command is dropped.
	pane.Info.Title = "vim"
	got = ansi.Strip(paneHeading(pane))
	if strings.Contains(got, "vim · vim") {
		t.Fatalf("paneHeading() = %q, duplicated command", got)
	}
	if !strings.Contains(got, "pane 2 · vim") {
		t.Fatalf("paneHeading() = %q", got)
	}
}

func TestStatusBadge(t *testing.T) {
	cases := map[PaneStatus]string{
		StatusDone:    "done",
		StatusError:   "error",
		StatusIdle:    "idle",
		StatusRunning: "running",
	}
	for status, want := range cases {
		if got := ansi.Strip(statusBadge(status)); !strings.Contains(got, want) {
			t.Fatalf("statusBadge(%v) = %q, want %q", status, got, want)
		}
	}
}

func TestRenderStyledLine(t *testing.T) {
	// Every rendered line starts with the reserved padding cell.
	if got := renderStyledLine("hi", 80); got != " hi" {
		t.Fatalf("renderStyledLine() = %q", got)
	}
	if got := renderStyledLine("abcdef", 4); got != " abc" {
		t.Fatalf("renderStyledLine(narrow) = %q", got)
	}
	if got := ansi.Strip(renderStyledLine("\x1b[31mred\x1b[0m plain", 80)); got != " red plain" {
		t.Fatalf("renderStyledLine(styled) = %q", got)
	}
}

func TestHexColor(t *testing.T) {
	if got := hexColor(ansi.Color{R: 255, G: 0, B: 128}); got != "#FF0080" {
		t.Fatalf("hexColor() = %q", got)
	}
	if got := hexColor(ansi.Color{}); got != "#000000" {
		t.Fatalf("hexColor(zero) = %q", got)
	}
}
