package tmuxctl

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/AdamGardelov/paneboard/internal/layout"
)

func TestEnsureSessionCreatesGridAndRunsCommands(t *testing.T) {
	client, runner := newTestClient(t,
		cmdSpec{args: []string{"has-session", "-t", "dev"}, stderr: "can't find session: dev", exit: 1},
		cmdSpec{args: []string{"new-session", "-d", "-s", "dev", "-c", "/tmp/proj", "-P", "-F", "#{pane_id}"}, stdout: "%0\n"},
		cmdSpec{args: []string{"split-window", "-v", "-t", "%0", "-c", "/tmp/proj", "-P", "-F", "#{pane_id}"}, stdout: "%1\n"},
		cmdSpec{args: []string{"select-layout", "-t", "dev:0", "tiled"}},
		cmdSpec{args: []string{"send-keys", "-t", "%0", "vim .", "Enter"}},
		cmdSpec{args: []string{"select-pane", "-t", "%0", "-T", "editor"}},
		cmdSpec{args: []string{"select-pane", "-t", "%1", "-T", "shell"}},
	)

	res, err := client.EnsureSession(context.Background(), Options{
		Session:  "dev",
		Grid:     layout.Grid{Rows: 2, Columns: 1},
		StartDir: "/tmp/proj",
		Commands: []string{"vim .", ""},
		Titles:   []string{"editor", "shell"},
	})
	if err != nil {
		t.Fatalf("EnsureSession: %v", err)
	}
	if !res.Created || res.Attached {
		t.Fatalf("result = %+v, want created without attach", res)
	}
	runner.done()
}

func TestCreateGridReturnsRowMajorPaneIDs(t *testing.T) {
	client, runner := newTestClient(t,
		cmdSpec{args: []string{"new-session", "-d", "-s", "demo", "-P", "-F", "#{pane_id}"}, stdout: "%0\n"},
		cmdSpec{args: []string{"split-window", "-v", "-t", "%0", "-P", "-F", "#{pane_id}"}, stdout: "%1\n"},
		cmdSpec{args: []string{"split-window", "-h", "-t", "%0", "-P", "-F", "#{pane_id}"}, stdout: "%2\n"},
		cmdSpec{args: []string{"split-window", "-h", "-t", "%1", "-P", "-F", "#{pane_id}"}, stdout: "%3\n"},
		cmdSpec{args: []string{"select-layout", "-t", "demo:0", "tiled"}},
	)

	ids, err := client.createGrid(context.Background(), "demo", layout.Grid{Rows: 2, Columns: 2}, "")
	if err != nil {
		t.Fatalf("createGrid: %v", err)
	}
	want := []string{"%0", "%2", "%1", "%3"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("pane ids = %v, want %v", ids, want)
	}
	runner.done()
}

func TestEnsureSessionLeavesExistingSessionAlone(t *testing.T) {
	client, runner := newTestClient(t,
		cmdSpec{args: []string{"has-session", "-t", "dev"}},
	)

	res, err := client.EnsureSession(context.Background(), Options{Session: "dev"})
	if err != nil {
		t.Fatalf("EnsureSession: %v", err)
	}
	if res.Created {
		t.Fatal("existing session reported as created")
	}
	runner.done()
}

func TestEnsureSessionRejectsEmptyName(t *testing.T) {
	client, _ := newTestClient(t)
	if _, err := client.EnsureSession(context.Background(), Options{Session: "  "}); err == nil {
		t.Fatal("expected error for empty session name")
	}
}

func TestEnsureSessionRejectsOversizedGrid(t *testing.T) {
	client, _ := newTestClient(t)
	_, err := client.EnsureSession(context.Background(), Options{
		Session: "dev",
		Grid:    layout.Grid{Rows: 4, Columns: 4},
	})
	if err == nil {
		t.Fatal("expected error for oversized grid")
	}
}

func TestAttachInsideTmuxSwitchesClient(t *testing.T) {
	t.Setenv("TMUX", "/tmp/tmux-1000/default,1234,0")
	client, runner := newTestClient(t,
		cmdSpec{args: []string{"switch-client", "-t", "dev"}},
	)

	if err := client.Attach(context.Background(), "dev"); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	runner.done()
}

func TestClientBaseArgsPrefixEveryCall(t *testing.T) {
	runner := &fakeRunner{t: t, specs: []cmdSpec{
		{args: []string{"-L", "test", "has-session", "-t", "dev"}},
	}}
	client := &Client{bin: "tmux", baseArgs: []string{"-L", "test"}, run: runner.run}

	exists, err := client.sessionExists(context.Background(), "dev")
	if err != nil {
		t.Fatalf("sessionExists: %v", err)
	}
	if !exists {
		t.Fatal("sessionExists = false, want true")
	}
	runner.done()
}

func TestNewClientRejectsMalformedOverride(t *testing.T) {
	if _, err := NewClient("tmux 'unterminated"); err == nil {
		t.Fatal("expected error for unbalanced quote in override")
	}
}

func TestSessionExistsNoServer(t *testing.T) {
	client, runner := newTestClient(t,
		cmdSpec{args: []string{"has-session", "-t", "dev"}, stderr: "no server running on /tmp/tmux-1000/default", exit: 1},
	)

	exists, err := client.sessionExists(context.Background(), "dev")
	if err != nil {
		t.Fatalf("sessionExists: %v", err)
	}
	if exists {
		t.Fatal("sessionExists = true for stopped server")
	}
	runner.done()
}

func TestSendKeysWrapsFailure(t *testing.T) {
	client, _ := newTestClient(t,
		cmdSpec{args: []string{"send-keys", "-t", "%9", "ls", "Enter"}, stderr: "can't find pane: %9", exit: 1},
	)

	err := client.SendKeys(context.Background(), "%9", "ls")
	if err == nil {
		t.Fatal("expected error for missing pane")
	}
	if !strings.Contains(err.Error(), "can't find pane") {
		t.Fatalf("error %q missing tmux detail", err)
	}
}
