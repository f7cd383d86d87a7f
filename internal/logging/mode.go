package logging

import "strings"

// Mode distinguishes a plain CLI invocation from a dashboard run. The
// dashboard owns the terminal, so its logs have to go to a file.
type Mode uint8

const (
	ModeCLI Mode = iota + 1
	ModeDashboard
)

// ModeFromArgs guesses the run mode from os.Args before the CLI parser
// has run. A bare invocation or an explicit "dashboard" subcommand
// opens the dashboard; everything else is a one-shot command.
func ModeFromArgs(args []string) Mode {
	if len(args) < 2 {
		return ModeDashboard
	}
	cmd := strings.ToLower(strings.TrimSpace(args[1]))
	if cmd == "" || cmd == "dashboard" || strings.HasPrefix(cmd, "-") {
		return ModeDashboard
	}
	return ModeCLI
}

func (m Mode) String() string {
	switch m {
	case ModeDashboard:
		return "dashboard"
	default:
		return "cli"
	}
}
