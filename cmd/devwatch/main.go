// devwatch rebuilds and reruns paneboard whenever the source tree
// changes. Development helper, not part of the shipped CLI.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/AdamGardelov/paneboard/internal/identity"
	"github.com/AdamGardelov/paneboard/internal/watch"
)

const (
	defaultWatchDirs = "cmd,internal"
	stopTimeout      = 2 * time.Second
)

type config struct {
	watchDirs []string
	debounce  time.Duration
	args      []string
}

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "devwatch:", err)
		os.Exit(1)
	}
	if err := ensureRepoRoot(); err != nil {
		fmt.Fprintln(os.Stderr, "devwatch:", err)
		os.Exit(1)
	}
	bin, err := resolveBin()
	if err != nil {
		fmt.Fprintln(os.Stderr, "devwatch:", err)
		os.Exit(1)
	}

	r := &runner{}
	if err := runCycle(r, bin, cfg.args); err != nil {
		fmt.Fprintln(os.Stderr, "devwatch:", err)
	}

	watcher, err := watch.New(cfg.debounce)
	if err != nil {
		fmt.Fprintln(os.Stderr, "devwatch:", err)
		os.Exit(1)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "devwatch:", err)
		}
	}()
	for _, dir := range cfg.watchDirs {
		if err := watcher.WatchTree(dir, dir); err != nil {
			fmt.Fprintln(os.Stderr, "devwatch:", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = watcher.Run(ctx) }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-watcher.Events():
			if err := runCycle(r, bin, cfg.args); err != nil {
				fmt.Fprintln(os.Stderr, "devwatch:", err)
			}
		case <-sigCh:
			r.Stop(stopTimeout)
			return
		}
	}
}

func parseConfig(args []string) (config, error) {
	fs := flag.NewFlagSet("devwatch", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	watchFlag := fs.String("watch", defaultWatchDirs, "comma-separated watch roots")
	debounce := fs.Duration("debounce", watch.DefaultDebounce, "debounce duration")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	watchDirs := parseWatchDirs(*watchFlag)
	if len(watchDirs) == 0 {
		return config{}, errors.New("no watch directories configured")
	}
	for _, dir := range watchDirs {
		info, err := os.Stat(dir)
		if err != nil {
			return config{}, fmt.Errorf("watch dir %q: %w", dir, err)
		}
		if !info.IsDir() {
			return config{}, fmt.Errorf("watch dir %q: not a directory", dir)
		}
	}

	cmdArgs := fs.Args()
	if len(cmdArgs) == 0 {
		cmdArgs = []string{"ls"}
	}

	return config{
		watchDirs: watchDirs,
		debounce:  *debounce,
		args:      cmdArgs,
	}, nil
}

func parseWatchDirs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		dir := strings.TrimSpace(part)
		if dir == "" {
			continue
		}
		out = append(out, dir)
	}
	return out
}

func ensureRepoRoot() error {
	if _, err := os.Stat("go.mod"); err == nil {
		return nil
	}
	return errors.New("run from repo root (go.mod not found)")
}

func resolveBin() (string, error) {
	gobin := strings.TrimSpace(os.Getenv("GOBIN"))
	if gobin == "" {
		out, err := exec.Command("go", "env", "GOPATH").Output()
		if err != nil {
			return "", fmt.Errorf("go env GOPATH: %w", err)
		}
		gobin = filepath.Join(strings.TrimSpace(string(out)), "bin")
	}
	bin := filepath.Join(gobin, identity.CLIName)
	if runtime.GOOS == "windows" {
		bin += ".exe"
	}
	return bin, nil
}

func runCycle(r *runner, bin string, args []string) error {
	r.Stop(stopTimeout)
	if err := goInstall(); err != nil {
		return err
	}
	return r.Start(bin, args)
}

func goInstall() error {
	cmd := exec.Command("go", "install", "./cmd/"+identity.CLIName)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

type runner struct {
	mu   sync.Mutex
	cmd  *exec.Cmd
	done chan error
}

func (r *runner) Start(bin string, args []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cmd := exec.Command(bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()
	if err := cmd.Start(); err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	r.cmd = cmd
	r.done = done
	return nil
}

// Stop interrupts the running child and waits for it to exit. The exit
// status is not an error here: the child was told to die.
func (r *runner) Stop(timeout time.Duration) {
	r.mu.Lock()
	cmd, done := r.cmd, r.done
	r.cmd, r.done = nil, nil
	r.mu.Unlock()
	if cmd == nil || cmd.Process == nil {
		return
	}
	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		_ = cmd.Process.Kill()
	}
	select {
	case <-done:
	case <-time.After(timeout):
		// Hard kill; the Start goroutine reaps once Wait returns.
		_ = cmd.Process.Kill()
	}
}
