package tmuxctl

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"reflect"
	"strconv"
	"testing"
)

// cmdSpec is one expected tmux invocation and the output the fake
// server should produce for it. A nil args skips the argument check.
type cmdSpec struct {
	args   []string
	stdout string
	stderr string
	exit   int
}

type fakeRunner struct {
	t     *testing.T
	specs []cmdSpec
	calls int
}

func (f *fakeRunner) run(ctx context.Context, name string, args ...string) *exec.Cmd {
	f.t.Helper()
	if f.calls >= len(f.specs) {
		f.t.Fatalf("unexpected tmux call #%d: %s %v", f.calls, name, args)
	}
	spec := f.specs[f.calls]
	f.calls++
	if spec.args != nil && !reflect.DeepEqual(args, spec.args) {
		f.t.Fatalf("call #%d args = %v, want %v", f.calls-1, args, spec.args)
	}
	return helperCmd(ctx, spec.stdout, spec.stderr, spec.exit)
}

func (f *fakeRunner) done() {
	f.t.Helper()
	if f.calls != len(f.specs) {
		f.t.Fatalf("tmux calls = %d, want %d", f.calls, len(f.specs))
	}
}

func newTestClient(t *testing.T, specs ...cmdSpec) (*Client, *fakeRunner) {
	runner := &fakeRunner{t: t, specs: specs}
	return &Client{bin: "tmux", run: runner.run}, runner
}

// helperCmd re-executes the test binary so the returned Cmd behaves
// like a real subprocess with the given streams and exit code.
func helperCmd(ctx context.Context, stdout, stderr string, exit int) *exec.Cmd {
	cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess", "--")
	cmd.Env = append(os.Environ(),
		"GO_WANT_HELPER_PROCESS=1",
		"PANEBOARD_HELPER_STDOUT="+stdout,
		"PANEBOARD_HELPER_STDERR="+stderr,
		"PANEBOARD_HELPER_EXIT="+strconv.Itoa(exit),
	)
	return cmd
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	fmt.Fprint(os.Stdout, os.Getenv("PANEBOARD_HELPER_STDOUT"))
	fmt.Fprint(os.Stderr, os.Getenv("PANEBOARD_HELPER_STDERR"))
	code, _ := strconv.Atoi(os.Getenv("PANEBOARD_HELPER_EXIT"))
	os.Exit(code)
}
