package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/AdamGardelov/paneboard/internal/boardconfig"
	"github.com/AdamGardelov/paneboard/internal/layout"
	"github.com/AdamGardelov/paneboard/internal/limits"
)

const (
	defaultThumbnailLines = 1
	defaultIdleThreshold  = 20 * time.Second
	minRefreshInterval    = 500 * time.Millisecond
)

// Preview modes: grid stacks every pane of the active window, layout
// shows just the active pane at full depth.
const (
	PreviewModeGrid   = "grid"
	PreviewModeLayout = "layout"
)

// Settings are the resolved dashboard knobs for one refresh cycle.
// The per-project layout file wins over the global config file; both
// fall back to built-in defaults. Resolved fresh on every refresh so
// edits land without a restart.
type Settings struct {
	Refresh        time.Duration
	PreviewLines   int
	ThumbnailLines int
	IdleThreshold  time.Duration
	ShowThumbnails bool
	PreviewMode    string

	matcher *statusMatcher
}

func resolveSettings(cfg *layout.Config, global boardconfig.Config) (Settings, error) {
	s := Settings{
		Refresh:        global.PollIntervalDuration(),
		PreviewLines:   limits.DefaultCaptureLines,
		ThumbnailLines: defaultThumbnailLines,
		IdleThreshold:  defaultIdleThreshold,
		ShowThumbnails: true,
		PreviewMode:    PreviewModeGrid,
	}
	if global.Dashboard.PreviewLines > 0 {
		s.PreviewLines = clampPreviewLines(global.Dashboard.PreviewLines)
	}

	var regex layout.StatusRegexConfig
	if cfg != nil {
		d := cfg.Dashboard
		if d.RefreshMS > 0 {
			refresh := time.Duration(d.RefreshMS) * time.Millisecond
			if refresh < minRefreshInterval {
				refresh = minRefreshInterval
			}
			s.Refresh = refresh
		}
		if d.PreviewLines > 0 {
			s.PreviewLines = clampPreviewLines(d.PreviewLines)
		}
		if d.ThumbnailLines > 0 {
			s.ThumbnailLines = d.ThumbnailLines
		}
		if d.IdleSeconds > 0 {
			s.IdleThreshold = time.Duration(d.IdleSeconds) * time.Second
		}
		if d.ShowThumbnails != nil {
			s.ShowThumbnails = *d.ShowThumbnails
		}
		if mode := strings.TrimSpace(d.PreviewMode); mode != "" {
			if mode != PreviewModeGrid && mode != PreviewModeLayout {
				return Settings{}, fmt.Errorf("invalid preview_mode %q (use grid or layout)", mode)
			}
			s.PreviewMode = mode
		}
		regex = cfg.StatusRegex
	}

	matcher, err := compileStatusMatcher(regex.Success, regex.Error, regex.Running)
	if err != nil {
		return Settings{}, err
	}
	s.matcher = matcher
	return s, nil
}

func clampPreviewLines(lines int) int {
	if lines > limits.MaxCaptureLines {
		return limits.MaxCaptureLines
	}
	return lines
}
