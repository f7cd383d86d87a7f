package dashboard

import (
	"fmt"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"

	"github.com/AdamGardelov/paneboard/internal/tui/theme"
	"github.com/AdamGardelov/paneboard/internal/update"
)

const minFooterGap = 2

func (m *Model) viewFooter(width int) string {
	keys := m.keys
	attach := keyLabel(keys.Attach)
	newKey := keyLabel(keys.NewSession)
	kill := keyLabel(keys.Kill)
	rename := keyLabel(keys.Rename)
	yank := keyLabel(keys.Yank)
	filter := keyLabel(keys.Filter)
	help := keyLabel(keys.Help)
	quit := keyLabel(keys.Quit)

	labels := []string{attach, newKey, kill, rename, yank, filter, help, quit}
	commonMods := commonChordMods(labels)
	prefix := ""
	if len(commonMods) > 0 {
		prefix = strings.Join(commonMods, "+") + ": "
		attach = stripChordMods(attach, commonMods)
		newKey = stripChordMods(newKey, commonMods)
		kill = stripChordMods(kill, commonMods)
		rename = stripChordMods(rename, commonMods)
		yank = stripChordMods(yank, commonMods)
		filter = stripChordMods(filter, commonMods)
		help = stripChordMods(help, commonMods)
		quit = stripChordMods(quit, commonMods)
	}

	base := fmt.Sprintf(
		"%s%s attach · %s new · %s kill · %s rename · %s yank · %s filter · %s help · %s quit",
		prefix, attach, newKey, kill, rename, yank, filter, help, quit,
	)
	base = theme.ListDimmed.Render(base)

	if toast := m.toastView(); toast != "" {
		base = base + "  " + toast
	}
	return fitLineSuffix(base, m.footerStatus(), width)
}

func (m *Model) footerStatus() string {
	parts := make([]string, 0, 4)
	if m.filterQuery != "" {
		parts = append(parts, fmt.Sprintf("filter %q", m.filterQuery))
	}
	if m.snapshot != nil && !m.snapshot.RefreshedAt.IsZero() {
		parts = append(parts, m.snapshot.RefreshedAt.Format("15:04:05"))
	}
	if m.insideMux {
		parts = append(parts, "inside "+m.client.Binary())
	}
	if m.showDevNotice() {
		parts = append(parts, theme.StatusWarning.Render("dev build"))
	}
	if len(parts) == 0 {
		return ""
	}
	return theme.ListDimmed.Render(strings.Join(parts, " · "))
}

func (m *Model) showDevNotice() bool {
	if !update.IsDevelopmentVersion(m.version) {
		return false
	}
	cfg, err := m.global.Load()
	if err != nil {
		return true
	}
	return cfg.ShowNotice()
}

// fitLineSuffix right-aligns suffix after line within width. The
// suffix is dropped first when space runs out, then the line itself is
// truncated, escape sequences kept intact.
func fitLineSuffix(line, suffix string, width int) string {
	if width <= 0 {
		return line
	}
	lineWidth := xansi.StringWidth(line)
	if suffix != "" {
		suffixWidth := xansi.StringWidth(suffix)
		if lineWidth+suffixWidth+minFooterGap <= width {
			gap := width - lineWidth - suffixWidth
			return line + strings.Repeat(" ", gap) + suffix
		}
	}
	if lineWidth <= width {
		return line
	}
	return xansi.Truncate(line, width, "…")
}

// commonChordMods returns the modifiers shared by every chord of every
// label, so the footer can print "ctrl: a session · b pane" instead of
// repeating the modifier on each hint.
func commonChordMods(labels []string) []string {
	var common map[string]struct{}
	for _, label := range labels {
		for _, chord := range splitChords(label) {
			mods := chordMods(chord)
			if len(mods) == 0 {
				return nil
			}
			if common == nil {
				common = make(map[string]struct{}, len(mods))
				for _, mod := range mods {
					common[mod] = struct{}{}
				}
				continue
			}
			next := make(map[string]struct{}, len(common))
			for _, mod := range mods {
				if _, ok := common[mod]; ok {
					next[mod] = struct{}{}
				}
			}
			common = next
			if len(common) == 0 {
				return nil
			}
		}
	}
	return orderedMods(common)
}

func splitChords(label string) []string {
	parts := strings.Split(strings.TrimSpace(label), "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func chordMods(chord string) []string {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(chord)), "+")
	if len(parts) <= 1 {
		return nil
	}
	mods := make([]string, 0, len(parts)-1)
	for _, p := range parts[:len(parts)-1] {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		mods = append(mods, p)
	}
	return mods
}

func orderedMods(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	order := []string{"ctrl", "alt", "shift"}
	out := make([]string, 0, len(order))
	for _, k := range order {
		if _, ok := set[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

func stripChordMods(label string, common []string) string {
	commonSet := make(map[string]struct{}, len(common))
	for _, mod := range common {
		commonSet[mod] = struct{}{}
	}
	chords := splitChords(label)
	if len(chords) == 0 {
		return strings.TrimSpace(label)
	}
	out := make([]string, 0, len(chords))
	for _, chord := range chords {
		parts := strings.Split(strings.TrimSpace(chord), "+")
		if len(parts) == 0 {
			continue
		}
		base := strings.TrimSpace(parts[len(parts)-1])
		mods := make([]string, 0, len(parts)-1)
		for _, p := range parts[:len(parts)-1] {
			p = strings.ToLower(strings.TrimSpace(p))
			if p == "" {
				continue
			}
			if _, ok := commonSet[p]; ok {
				continue
			}
			mods = append(mods, p)
		}
		if len(mods) == 0 {
			out = append(out, base)
			continue
		}
		out = append(out, strings.Join(append(mods, base), "+"))
	}
	return strings.Join(out, "/")
}
