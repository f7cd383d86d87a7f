package tmuxctl

import (
	"context"
	"testing"
)

func TestServerVersionStripsPrefix(t *testing.T) {
	client, runner := newTestClient(t,
		cmdSpec{args: []string{"-V"}, stdout: "tmux 3.3a\n"},
	)

	version, err := client.ServerVersion(context.Background())
	if err != nil {
		t.Fatalf("ServerVersion: %v", err)
	}
	if version != "3.3a" {
		t.Fatalf("version = %q, want 3.3a", version)
	}
	runner.done()
}

func TestNormalizeTmuxVersion(t *testing.T) {
	tests := map[string]struct {
		in   string
		want string
	}{
		"letter suffix":     {"3.3a", "3.3"},
		"next prefix":       {"next-3.4", "3.4"},
		"rc suffix":         {"3.4-rc2", "3.4"},
		"plain":             {"3.2", "3.2"},
		"tmux prefix":       {"tmux 3.2", "3.2"},
		"master is empty":   {"master", ""},
		"openbsd snapshot":  {"openbsd-7.4", ""},
		"trailing dot trim": {"3.", "3"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := normalizeTmuxVersion(tc.in); got != tc.want {
				t.Fatalf("normalizeTmuxVersion(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestVersionAtLeast(t *testing.T) {
	tests := map[string]struct {
		version string
		want    bool
		wantErr bool
	}{
		"newer release":   {version: "3.3a", want: true},
		"exact floor":     {version: "3.2", want: true},
		"older release":   {version: "3.1c", want: false},
		"much older":      {version: "2.9", want: false},
		"next branch":     {version: "next-3.4", want: true},
		"release cand":    {version: "3.4-rc2", want: true},
		"unparseable":     {version: "master", wantErr: true},
		"empty":           {version: "", wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := versionAtLeast(tc.version, popupMinVersion)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("versionAtLeast(%q) err = nil, want error", tc.version)
				}
				return
			}
			if err != nil {
				t.Fatalf("versionAtLeast(%q): %v", tc.version, err)
			}
			if got != tc.want {
				t.Fatalf("versionAtLeast(%q) = %v, want %v", tc.version, got, tc.want)
			}
		})
	}
}

func TestSupportsPopupByVersion(t *testing.T) {
	client, runner := newTestClient(t,
		cmdSpec{args: []string{"-V"}, stdout: "tmux 3.3a\n"},
	)

	if !client.SupportsPopup(context.Background()) {
		t.Fatal("SupportsPopup = false for tmux 3.3a")
	}
	runner.done()
}

func TestSupportsPopupOldVersion(t *testing.T) {
	client, runner := newTestClient(t,
		cmdSpec{args: []string{"-V"}, stdout: "tmux 3.1c\n"},
	)

	if client.SupportsPopup(context.Background()) {
		t.Fatal("SupportsPopup = true for tmux 3.1c")
	}
	runner.done()
}

func TestSupportsPopupFallsBackToListCommands(t *testing.T) {
	client, runner := newTestClient(t,
		cmdSpec{args: []string{"-V"}, stdout: "tmux master\n"},
		cmdSpec{args: []string{"list-commands"}, stdout: "display-menu\ndisplay-popup [-BCE] ...\n"},
	)

	if !client.SupportsPopup(context.Background()) {
		t.Fatal("SupportsPopup = false for master build with display-popup")
	}
	runner.done()
}
