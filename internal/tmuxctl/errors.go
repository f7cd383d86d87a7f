package tmuxctl

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// wrapTmuxErr folds whatever detail tmux left behind into the error chain.
// Output() populates ExitError.Stderr while CombinedOutput() hands stderr
// back through out, so both paths are checked.
func wrapTmuxErr(op string, err error, out []byte) error {
	detail := strings.TrimSpace(string(out))
	if detail == "" {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			detail = strings.TrimSpace(string(exitErr.Stderr))
		}
	}
	if detail == "" {
		return fmt.Errorf("tmux %s: %w", op, err)
	}
	return fmt.Errorf("tmux %s: %w: %s", op, err, detail)
}

// benignServerMessages are the ways tmux says "there is nothing here".
// A dashboard polling an idle machine hits these constantly; they mean
// an empty result, not a failure.
var benignServerMessages = []string{
	"no server",
	"no such file",
	"failed to connect",
	"error connecting to",
	"no sessions",
	"no session",
	"can't find",
}

func isBenignServerError(err error, out []byte) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	if exitErr.ExitCode() != 1 {
		return false
	}
	msg := strings.ToLower(string(out))
	if msg == "" {
		msg = strings.ToLower(string(exitErr.Stderr))
	}
	for _, benign := range benignServerMessages {
		if strings.Contains(msg, benign) {
			return true
		}
	}
	// Exit 1 with no message is how older servers report an empty list.
	return strings.TrimSpace(msg) == ""
}
