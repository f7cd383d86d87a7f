package dashboard

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AdamGardelov/paneboard/internal/ansi"
)

func TestViewBeforeFirstSize(t *testing.T) {
	client := twoSessionClient(time.Now())
	layouts, global := testLoaders(t, t.TempDir())
	m, err := New(Options{Client: client, Layouts: layouts, Global: global})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if got := m.View(); got != "" {
		t.Fatalf("View() = %q", got)
	}
}

func TestViewLoading(t *testing.T) {
	client := twoSessionClient(time.Now())
	layouts, global := testLoaders(t, t.TempDir())
	m, err := New(Options{Client: client, Layouts: layouts, Global: global})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	got := ansi.Strip(m.View())
	if !strings.Contains(got, "Loading sessions") {
		t.Fatalf("View() = %q", got)
	}
}

func TestViewBoard(t *testing.T) {
	m, _ := seededModel(t)
	got := ansi.Strip(m.View())
	for _, want := range []string{
		"Paneboard",
		"2 sessions",
		"web (current)",
		"window 0: main",
		"npm run dev",
		"attach",
		"quit",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("View() missing %q in:\n%s", want, got)
		}
	}
}

func TestViewTooSmall(t *testing.T) {
	m, _ := seededModel(t)
	m.Update(tea.WindowSizeMsg{Width: 12, Height: 8})
	got := ansi.Strip(m.View())
	if !strings.Contains(got, "Terminal too small") {
		t.Fatalf("View() = %q", got)
	}
}

func TestViewSplash(t *testing.T) {
	client := &fakeClient{}
	layouts, global := testLoaders(t, t.TempDir())
	m, err := New(Options{Client: client, Layouts: layouts, Global: global})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	m.width, m.height = 100, 40
	m.applySize()
	snap, err := buildSnapshot(context.Background(), client, layouts, global, "")
	if err != nil {
		t.Fatalf("buildSnapshot() error: %v", err)
	}
	m.applySnapshot(snapshotMsg{Snapshot: snap, Seq: m.beginRefresh()})

	got := ansi.Strip(m.View())
	if !strings.Contains(got, "No sessions found.") {
		t.Fatalf("View() = %q", got)
	}
	if !strings.Contains(got, "Hit n to create a session and ? for help.") {
		t.Fatalf("View() missing splash hint:\n%s", got)
	}
}

func TestViewFilterFooter(t *testing.T) {
	m, _ := seededModel(t)
	m.Update(keyMsg("/"))
	got := ansi.Strip(m.View())
	if !strings.Contains(got, "enter apply · esc clear") {
		t.Fatalf("View() = %q", got)
	}
}

func TestViewDialogs(t *testing.T) {
	m, _ := seededModel(t)

	m.Update(keyMsg("x"))
	got := ansi.Strip(m.View())
	if !strings.Contains(got, "Kill Session?") || !strings.Contains(got, "api") {
		t.Fatalf("kill dialog = %q", got)
	}
	m.Update(keyMsg("esc"))

	m.Update(keyMsg("R"))
	got = ansi.Strip(m.View())
	if !strings.Contains(got, "Rename Session") {
		t.Fatalf("rename dialog = %q", got)
	}
	m.Update(keyMsg("esc"))

	m.Update(keyMsg("?"))
	got = ansi.Strip(m.View())
	if !strings.Contains(got, "Keyboard Shortcuts") || !strings.Contains(got, "esc closes help") {
		t.Fatalf("help dialog = %q", got)
	}
}

func TestPreviewHeading(t *testing.T) {
	m, _ := seededModel(t)
	got := ansi.Strip(m.previewHeading())
	if got != "web · window 0: main" {
		t.Fatalf("previewHeading() = %q", got)
	}

	m.snapshot = nil
	got = ansi.Strip(m.previewHeading())
	if got != "Preview" {
		t.Fatalf("previewHeading(no snapshot) = %q", got)
	}
}

func TestLogoBlock(t *testing.T) {
	full := logoBlock(200)
	if !strings.Contains(full, "\n") {
		t.Fatalf("wide logo not multi-line: %q", full)
	}
	if got := logoBlock(logoWidth()); got != full {
		t.Fatalf("exact-width logo fell back to compact")
	}
	if got := logoBlock(logoWidth() - 1); got != logoCompact {
		t.Fatalf("narrow logo = %q", got)
	}
}

func TestClamp(t *testing.T) {
	if got := clamp(5, 1, 10); got != 5 {
		t.Fatalf("clamp(5) = %d", got)
	}
	if got := clamp(0, 1, 10); got != 1 {
		t.Fatalf("clamp(low) = %d", got)
	}
	if got := clamp(11, 1, 10); got != 10 {
		t.Fatalf("clamp(high) = %d", got)
	}
}
