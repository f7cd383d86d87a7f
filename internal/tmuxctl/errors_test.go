package tmuxctl

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestWrapTmuxErrUsesStderr(t *testing.T) {
	cmd := helperCmd(context.Background(), "", "stderr message", 1)
	_, err := cmd.Output()
	if err == nil {
		t.Fatal("helper unexpectedly succeeded")
	}

	wrapped := wrapTmuxErr("test", err, nil)
	if !strings.Contains(wrapped.Error(), "stderr message") {
		t.Fatalf("wrapped = %q, want stderr detail", wrapped)
	}
	if !strings.Contains(wrapped.Error(), "tmux test") {
		t.Fatalf("wrapped = %q, want op prefix", wrapped)
	}
}

func TestWrapTmuxErrUsesCombinedOutput(t *testing.T) {
	wrapped := wrapTmuxErr("test", errors.New("exit status 1"), []byte("combined output\n"))
	if !strings.Contains(wrapped.Error(), "combined output") {
		t.Fatalf("wrapped = %q, want combined detail", wrapped)
	}
}

func TestWrapTmuxErrBareError(t *testing.T) {
	base := errors.New("context deadline exceeded")
	wrapped := wrapTmuxErr("list-sessions", base, nil)
	if !errors.Is(wrapped, base) {
		t.Fatal("wrapped error lost its cause")
	}
}

func TestIsBenignServerError(t *testing.T) {
	tests := map[string]struct {
		stderr string
		exit   int
		want   bool
	}{
		"no server":        {stderr: "no server running on /tmp/tmux-1000/default", exit: 1, want: true},
		"socket missing":   {stderr: "error connecting to /tmp/tmux-1000/default (No such file or directory)", exit: 1, want: true},
		"no sessions":      {stderr: "no sessions", exit: 1, want: true},
		"missing target":   {stderr: "can't find session: dev", exit: 1, want: true},
		"empty exit one":   {stderr: "", exit: 1, want: true},
		"real failure":     {stderr: "lost server", exit: 2, want: false},
		"usage error":      {stderr: "usage: list-sessions [-F format]", exit: 1, want: false},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cmd := helperCmd(context.Background(), "", tc.stderr, tc.exit)
			out, err := cmd.CombinedOutput()
			if err == nil {
				t.Fatal("helper unexpectedly succeeded")
			}
			if got := isBenignServerError(err, out); got != tc.want {
				t.Fatalf("isBenignServerError(%q, exit %d) = %v, want %v", tc.stderr, tc.exit, got, tc.want)
			}
		})
	}
}

func TestIsBenignServerErrorNonExit(t *testing.T) {
	if isBenignServerError(errors.New("context canceled"), nil) {
		t.Fatal("non-exec error reported benign")
	}
}
