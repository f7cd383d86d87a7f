package dashboard

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/AdamGardelov/paneboard/internal/ansi"
	"github.com/AdamGardelov/paneboard/internal/mux"
)

// PaneStatus summarizes what a pane appears to be doing, derived from
// its captured output and liveness.
type PaneStatus int

const (
	StatusRunning PaneStatus = iota
	StatusDone
	StatusError
	StatusIdle
)

func (s PaneStatus) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	case StatusIdle:
		return "idle"
	default:
		return "unknown"
	}
}

const (
	defaultSuccessPattern = `(?i)done|finished|success|completed|✅`
	defaultErrorPattern   = `(?i)error|failed|panic|❌`
	defaultRunningPattern = `(?i)running|in progress|building|installing|▶`
)

type statusMatcher struct {
	success *regexp.Regexp
	error   *regexp.Regexp
	running *regexp.Regexp
}

func compileStatusMatcher(success, errPattern, running string) (*statusMatcher, error) {
	if success == "" {
		success = defaultSuccessPattern
	}
	if errPattern == "" {
		errPattern = defaultErrorPattern
	}
	if running == "" {
		running = defaultRunningPattern
	}

	successRe, err := regexp.Compile(success)
	if err != nil {
		return nil, fmt.Errorf("invalid success regex: %w", err)
	}
	errorRe, err := regexp.Compile(errPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid error regex: %w", err)
	}
	runningRe, err := regexp.Compile(running)
	if err != nil {
		return nil, fmt.Errorf("invalid running regex: %w", err)
	}

	return &statusMatcher{success: successRe, error: errorRe, running: runningRe}, nil
}

// classifyPane decides a pane's status. Dead panes win outright, then
// the tail output is matched error > success > running, then idle by
// activity age, and anything else counts as running.
func (m *statusMatcher) classifyPane(pane mux.PaneInfo, lines []string, lastActive time.Time, idleThreshold time.Duration) PaneStatus {
	if pane.Dead {
		if pane.DeadStatus != 0 {
			return StatusError
		}
		return StatusDone
	}

	if len(lines) > 0 {
		text := ansi.Strip(strings.Join(lines, "\n"))
		switch {
		case m.error.MatchString(text):
			return StatusError
		case m.success.MatchString(text):
			return StatusDone
		case m.running.MatchString(text):
			return StatusRunning
		}
	}

	if idleThreshold > 0 && !lastActive.IsZero() && time.Since(lastActive) > idleThreshold {
		return StatusIdle
	}
	return StatusRunning
}

// statusSymbol is the plain-text marker shown beside list thumbnails,
// where the list delegate owns the colors.
func statusSymbol(s PaneStatus) string {
	switch s {
	case StatusDone:
		return "✓"
	case StatusError:
		return "✗"
	case StatusIdle:
		return "◌"
	default:
		return "▶"
	}
}

// summaryLine returns the last non-blank captured line, stripped of
// escape sequences, for use as a one-line pane summary.
func summaryLine(lines []string) string {
	for i := len(lines) - 1; i >= 0; i-- {
		text := strings.TrimSpace(ansi.Strip(lines[i]))
		if text != "" {
			return text
		}
	}
	return ""
}
