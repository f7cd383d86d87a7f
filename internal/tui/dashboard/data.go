package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/AdamGardelov/paneboard/internal/boardconfig"
	"github.com/AdamGardelov/paneboard/internal/layout"
	"github.com/AdamGardelov/paneboard/internal/limits"
	"github.com/AdamGardelov/paneboard/internal/logging"
	"github.com/AdamGardelov/paneboard/internal/mux"
	"github.com/AdamGardelov/paneboard/internal/userpath"
)

// thumbnailMaxWidth caps the per-session output snippet shown in the
// list; the list delegate truncates the whole description line anyway,
// so a longer thumbnail would only crowd out the path and counts.
const thumbnailMaxWidth = 48

// SessionRow is one entry in the dashboard session list.
type SessionRow struct {
	Info         mux.SessionInfo
	Current      bool
	WindowCount  int
	ActiveWindow int
	Thumbnail    string
	Status       PaneStatus
	StatusKnown  bool
}

// Title implements list.DefaultItem.
func (r SessionRow) Title() string {
	title := r.Info.Name
	if r.Current {
		title += " (current)"
	} else if r.Info.Attached {
		title += " (attached)"
	}
	return title
}

// Description implements list.DefaultItem.
func (r SessionRow) Description() string {
	parts := make([]string, 0, 3)
	if r.Info.Path != "" {
		parts = append(parts, userpath.Shorten(r.Info.Path))
	}
	if r.WindowCount == 1 {
		parts = append(parts, "1 window")
	} else if r.WindowCount > 1 {
		parts = append(parts, fmt.Sprintf("%d windows", r.WindowCount))
	}
	if r.Thumbnail != "" {
		thumb := r.Thumbnail
		if r.StatusKnown {
			thumb = statusSymbol(r.Status) + " " + thumb
		}
		parts = append(parts, thumb)
	}
	return strings.Join(parts, " · ")
}

// FilterValue implements list.Item.
func (r SessionRow) FilterValue() string { return r.Info.Name }

// PaneView is one captured pane of the selected session's active
// window, raw escape sequences intact.
type PaneView struct {
	Info   mux.PaneInfo
	Lines  []string
	Status PaneStatus
}

// Snapshot is one immutable poll of the multiplexer plus the config
// resolved at the same moment. The model swaps whole snapshots so a
// render never sees half-updated state.
type Snapshot struct {
	Sessions    []SessionRow
	Current     string
	Selected    string
	WindowIndex int
	WindowName  string
	Panes       []PaneView
	RefreshedAt time.Time
	Settings    Settings
	Keys        *KeyMap
	ConfigPath  string
}

// buildSnapshot polls the multiplexer and reloads config in one pass,
// so edits to either config file land on the next tick without a
// restart. selected names the session whose panes get the deep
// capture; it falls back to the current session, then the first.
func buildSnapshot(ctx context.Context, client mux.Client, layouts *layout.Loader, global *boardconfig.Loader, selected string) (*Snapshot, error) {
	started := time.Now()

	cfg, err := layouts.Load()
	if err != nil {
		return nil, err
	}
	globalCfg, _ := global.Load()
	settings, err := resolveSettings(cfg, globalCfg)
	if err != nil {
		return nil, err
	}
	keys, err := buildKeyMap(cfg.Keymap)
	if err != nil {
		return nil, err
	}

	current, _ := client.CurrentSession(ctx)
	infos, err := client.ListSessionsInfo(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	selected = resolveSelected(infos, selected, current)

	snap := &Snapshot{
		Sessions:    make([]SessionRow, 0, len(infos)),
		Current:     current,
		Selected:    selected,
		WindowIndex: -1,
		Settings:    settings,
		Keys:        keys,
		ConfigPath:  layouts.ConfigPath(),
	}

	for _, info := range infos {
		row := SessionRow{
			Info:         info,
			Current:      current != "" && info.Name == current,
			ActiveWindow: -1,
		}
		windows, err := client.ListWindows(ctx, info.Name)
		if err != nil {
			return nil, err
		}
		row.WindowCount = len(windows)
		row.ActiveWindow = activeWindowIndex(windows)

		deep := info.Name == selected
		if deep {
			snap.WindowIndex = row.ActiveWindow
			snap.WindowName = windowNameAt(windows, row.ActiveWindow)
		}

		if (settings.ShowThumbnails || deep) && len(windows) > 0 {
			panes, err := client.ListPanesDetailed(ctx, info.Name)
			if err != nil {
				return nil, err
			}
			windowPanes := panesInWindow(panes, row.ActiveWindow)

			if settings.ShowThumbnails {
				if active := pickActivePane(windowPanes); active != nil {
					raw, err := client.CapturePaneLines(ctx, active.ID, settings.ThumbnailLines)
					if err != nil {
						return nil, err
					}
					lines := splitCaptureLines(raw)
					row.Thumbnail = runewidth.Truncate(summaryLine(lines), thumbnailMaxWidth, "…")
					row.Status = settings.matcher.classifyPane(*active, lines, info.Activity, settings.IdleThreshold)
					row.StatusKnown = true
				}
			}
			if deep {
				views, err := capturePaneViews(ctx, client, windowPanes, settings, info.Activity)
				if err != nil {
					return nil, err
				}
				snap.Panes = views
			}
		}
		snap.Sessions = append(snap.Sessions, row)
	}

	snap.RefreshedAt = time.Now()
	logging.LogEvery(ctx, "dashboard.snapshot", 30*time.Second, slog.LevelDebug, "dashboard snapshot built",
		slog.Int("sessions", len(snap.Sessions)),
		slog.Int("panes", len(snap.Panes)),
		slog.Duration("took", time.Since(started)))
	return snap, nil
}

func capturePaneViews(ctx context.Context, client mux.Client, panes []mux.PaneInfo, settings Settings, lastActive time.Time) ([]PaneView, error) {
	views := make([]PaneView, 0, len(panes))
	for _, pane := range panes {
		depth := limits.CaptureLinesFor(pane.Height, settings.PreviewLines)
		raw, err := client.CapturePaneLines(ctx, pane.ID, depth)
		if err != nil {
			return nil, err
		}
		lines := splitCaptureLines(raw)
		views = append(views, PaneView{
			Info:   pane,
			Lines:  lines,
			Status: settings.matcher.classifyPane(pane, lines, lastActive, settings.IdleThreshold),
		})
	}
	return views, nil
}

func resolveSelected(infos []mux.SessionInfo, desired, current string) string {
	if desired != "" && sessionExists(infos, desired) {
		return desired
	}
	if current != "" && sessionExists(infos, current) {
		return current
	}
	if len(infos) > 0 {
		return infos[0].Name
	}
	return ""
}

func sessionExists(infos []mux.SessionInfo, name string) bool {
	for _, info := range infos {
		if info.Name == name {
			return true
		}
	}
	return false
}

func activeWindowIndex(windows []mux.WindowInfo) int {
	for _, w := range windows {
		if w.Active {
			return w.Index
		}
	}
	if len(windows) > 0 {
		return windows[0].Index
	}
	return -1
}

func windowNameAt(windows []mux.WindowInfo, index int) string {
	for _, w := range windows {
		if w.Index == index {
			return w.Name
		}
	}
	return ""
}

func panesInWindow(panes []mux.PaneInfo, window int) []mux.PaneInfo {
	if window < 0 {
		return nil
	}
	var out []mux.PaneInfo
	for _, p := range panes {
		if p.WindowIndex == window {
			out = append(out, p)
		}
	}
	return out
}

func pickActivePane(panes []mux.PaneInfo) *mux.PaneInfo {
	for i := range panes {
		if panes[i].Active {
			return &panes[i]
		}
	}
	if len(panes) > 0 {
		return &panes[0]
	}
	return nil
}

func splitCaptureLines(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "\n")
}
