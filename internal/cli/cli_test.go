package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/AdamGardelov/paneboard/internal/identity"
	"github.com/AdamGardelov/paneboard/internal/mux"
	"github.com/AdamGardelov/paneboard/internal/runenv"
)

type captureCall struct {
	target string
	lines  int
}

// stubClient is a canned multiplexer for command tests.
type stubClient struct {
	sessions   []mux.SessionInfo
	listErr    error
	captures   map[string]string
	captureErr error
	killErr    error
	ensureRes  mux.EnsureResult
	ensureErr  error

	captureCalls []captureCall
	killed       []string
	ensured      []mux.EnsureOptions
}

func (c *stubClient) Binary() string { return "tmux" }
func (c *stubClient) IsInside() bool { return false }

func (c *stubClient) ListSessionsInfo(context.Context) ([]mux.SessionInfo, error) {
	return c.sessions, c.listErr
}

func (c *stubClient) CurrentSession(context.Context) (string, error) {
	return "", errors.New("no current session")
}

func (c *stubClient) ListWindows(context.Context, string) ([]mux.WindowInfo, error) {
	return nil, nil
}

func (c *stubClient) ListPanesDetailed(context.Context, string) ([]mux.PaneInfo, error) {
	return nil, nil
}

func (c *stubClient) CapturePaneLines(_ context.Context, target string, lines int) (string, error) {
	c.captureCalls = append(c.captureCalls, captureCall{target: target, lines: lines})
	if c.captureErr != nil {
		return "", c.captureErr
	}
	return c.captures[target], nil
}

func (c *stubClient) SessionHasClients(context.Context, string) (bool, error) {
	return false, nil
}

func (c *stubClient) EnsureSession(_ context.Context, opts mux.EnsureOptions) (mux.EnsureResult, error) {
	c.ensured = append(c.ensured, opts)
	return c.ensureRes, c.ensureErr
}

func (c *stubClient) KillSession(_ context.Context, session string) error {
	if c.killErr != nil {
		return c.killErr
	}
	c.killed = append(c.killed, session)
	return nil
}

func (c *stubClient) RenameSession(context.Context, string, string) error { return nil }
func (c *stubClient) SendKeys(context.Context, string, string) error      { return nil }
func (c *stubClient) Attach(context.Context, string) error                { return nil }

func (c *stubClient) ServerVersion(context.Context) (string, error) { return "3.4", nil }
func (c *stubClient) SupportsPopup(context.Context) bool            { return false }

func (c *stubClient) DisplayPopup(context.Context, mux.PopupOptions, ...string) error {
	return nil
}

// testCLI bundles a stub client with buffered deps rooted in temp dirs.
type testCLI struct {
	client *stubClient
	out    *bytes.Buffer
	errOut *bytes.Buffer
	dir    string
	deps   Deps
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()
	cfgDir := t.TempDir()
	t.Setenv(runenv.ConfigDirEnv, cfgDir)
	tc := &testCLI{
		client: &stubClient{},
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
		dir:    t.TempDir(),
	}
	tc.deps = Deps{
		Version: "1.2.3",
		WorkDir: tc.dir,
		Stdout:  tc.out,
		Stderr:  tc.errOut,
		Stdin:   strings.NewReader(""),
		Connect: func(string) (mux.Client, error) { return tc.client, nil },
		GlobalPath: func() (string, error) {
			return filepath.Join(cfgDir, identity.GlobalConfigFile), nil
		},
	}
	return tc
}

func (tc *testCLI) run(t *testing.T, args ...string) error {
	t.Helper()
	root := New(tc.deps)
	return root.Run(context.Background(), append([]string{identity.CLIName}, args...))
}

// interceptExit captures the exit code cli.Exit errors trigger so the
// test binary survives them.
func interceptExit(t *testing.T) *int {
	t.Helper()
	code := -1
	prevExiter := cli.OsExiter
	prevErrWriter := cli.ErrWriter
	cli.OsExiter = func(c int) { code = c }
	cli.ErrWriter = io.Discard
	t.Cleanup(func() {
		cli.OsExiter = prevExiter
		cli.ErrWriter = prevErrWriter
	})
	return &code
}

func writeProjectConfig(t *testing.T, dir, content string) {
	t.Helper()
	path := filepath.Join(dir, identity.ProjectConfigFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}
}

func TestNewCommandTree(t *testing.T) {
	root := New(DefaultDeps("test"))
	if root.Name != identity.CLIName {
		t.Fatalf("root name = %q, want %q", root.Name, identity.CLIName)
	}
	have := make(map[string]bool, len(root.Commands))
	for _, cmd := range root.Commands {
		have[cmd.Name] = true
	}
	for _, name := range []string{"dashboard", "new", "ls", "layouts", "init", "capture", "kill", "version"} {
		if !have[name] {
			t.Fatalf("command %q missing from tree %v", name, have)
		}
	}
}

func TestRootVersionFlag(t *testing.T) {
	code := interceptExit(t)
	tc := newTestCLI(t)
	err := tc.run(t, "--version")
	if err != nil {
		if _, ok := err.(cli.ExitCoder); !ok {
			t.Fatalf("--version unexpected error: %T %v", err, err)
		}
	}
	if *code != 0 {
		t.Fatalf("--version exit code = %d", *code)
	}
	if got := tc.out.String(); !strings.Contains(got, "paneboard 1.2.3") {
		t.Fatalf("--version output = %q", got)
	}
}

func TestServicesConnectError(t *testing.T) {
	tc := newTestCLI(t)
	tc.deps.Connect = func(string) (mux.Client, error) {
		return nil, errors.New("tmux not found")
	}
	err := tc.run(t, "ls")
	if err == nil || !strings.Contains(err.Error(), "tmux not found") {
		t.Fatalf("expected connect error, got %v", err)
	}
}

func TestServicesUsesConfiguredBinary(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv(runenv.ConfigDirEnv, cfgDir)
	globalPath := filepath.Join(cfgDir, identity.GlobalConfigFile)
	if err := os.WriteFile(globalPath, []byte("[tmux]\nbinary = \"/opt/tmux\"\n"), 0o644); err != nil {
		t.Fatalf("write global config: %v", err)
	}

	var gotBinary string
	a := &app{deps: Deps{
		Version: "test",
		WorkDir: t.TempDir(),
		Stdout:  io.Discard,
		Stderr:  io.Discard,
		Stdin:   strings.NewReader(""),
		Connect: func(binary string) (mux.Client, error) {
			gotBinary = binary
			return &stubClient{}, nil
		},
		GlobalPath: func() (string, error) { return globalPath, nil },
	}.withDefaults()}
	if _, err := a.services(); err != nil {
		t.Fatalf("services() error: %v", err)
	}
	if gotBinary != "/opt/tmux" {
		t.Fatalf("connect binary = %q, want %q", gotBinary, "/opt/tmux")
	}
}
