//go:build profiler

// Package profiling captures pprof/fgprof profiles and serves a gops
// agent when the binary is built with the profiler tag. Everything is
// driven by environment variables so a build can sit in a user's PATH
// unchanged until a profile is wanted.
package profiling

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/felixge/fgprof"
	"github.com/google/gops/agent"

	"github.com/AdamGardelov/paneboard/internal/identity"
	"github.com/AdamGardelov/paneboard/internal/userpath"
)

var (
	envCPUProfile  = identity.EnvVar("CPU_PROFILE")
	envCPUSeconds  = identity.EnvVar("CPU_PROFILE_SECS")
	envHeapProfile = identity.EnvVar("MEM_PROFILE")
	envFgprof      = identity.EnvVar("FGPROF")
	envFgprofSecs  = identity.EnvVar("FGPROF_SECS")
	envGops        = identity.EnvVar("GOPS")
	envGopsAddr    = identity.EnvVar("GOPS_ADDR")
)

const defaultProfileSecs = 30

type profiler struct {
	cpuPath  string
	heapPath string
	fgPath   string

	mu      sync.Mutex
	cpuFile *os.File
	fgFile  *os.File
	fgStop  func() error

	stopOnce sync.Once
}

// Start begins the profiles requested through the environment and
// returns a stop function, or nil when nothing is enabled.
func Start(ctx context.Context) func() {
	p := &profiler{
		cpuPath:  strings.TrimSpace(os.Getenv(envCPUProfile)),
		heapPath: strings.TrimSpace(os.Getenv(envHeapProfile)),
		fgPath:   strings.TrimSpace(os.Getenv(envFgprof)),
	}
	gopsEnabled := envBool(envGops)
	if p.cpuPath == "" && p.heapPath == "" && p.fgPath == "" && !gopsEnabled {
		return nil
	}

	if gopsEnabled {
		startGopsAgent()
	}
	p.startCPU(ctx, durationEnv(envCPUSeconds, defaultProfileSecs*time.Second))
	p.startFgprof(ctx, durationEnv(envFgprofSecs, defaultProfileSecs*time.Second))

	go func() {
		<-ctx.Done()
		p.stop()
	}()
	return p.stop
}

func (p *profiler) startCPU(ctx context.Context, duration time.Duration) {
	if p.cpuPath == "" {
		return
	}
	path, err := sanitizeProfilePath(p.cpuPath)
	if err != nil {
		slog.Warn("cpu profile path invalid", "err", err)
		return
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		slog.Warn("open cpu profile failed", "err", err)
		return
	}
	if err := pprof.StartCPUProfile(file); err != nil {
		_ = file.Close()
		slog.Warn("start cpu profile failed", "err", err)
		return
	}
	p.mu.Lock()
	p.cpuFile = file
	p.mu.Unlock()
	slog.Info("cpu profile started", "path", path)

	if duration > 0 {
		go func() {
			timer := time.NewTimer(duration)
			defer timer.Stop()
			select {
			case <-ctx.Done():
			case <-timer.C:
			}
			p.stopCPU()
		}()
	}
}

func (p *profiler) startFgprof(ctx context.Context, duration time.Duration) {
	if p.fgPath == "" {
		return
	}
	path, err := sanitizeProfilePath(p.fgPath)
	if err != nil {
		slog.Warn("fgprof path invalid", "err", err)
		return
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		slog.Warn("open fgprof profile failed", "err", err)
		return
	}
	stop := fgprof.Start(file, fgprof.FormatPprof)
	p.mu.Lock()
	p.fgFile = file
	p.fgStop = stop
	p.mu.Unlock()
	slog.Info("fgprof profile started", "path", path)

	if duration > 0 {
		go func() {
			timer := time.NewTimer(duration)
			defer timer.Stop()
			select {
			case <-ctx.Done():
			case <-timer.C:
			}
			p.stopFgprof()
		}()
	}
}

func (p *profiler) stopCPU() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cpuFile == nil {
		return
	}
	pprof.StopCPUProfile()
	_ = p.cpuFile.Close()
	p.cpuFile = nil
}

func (p *profiler) stopFgprof() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fgFile == nil {
		return
	}
	if p.fgStop != nil {
		if err := p.fgStop(); err != nil {
			slog.Warn("fgprof stop failed", "err", err)
		}
	}
	_ = p.fgFile.Close()
	p.fgFile = nil
	p.fgStop = nil
}

func (p *profiler) stop() {
	p.stopOnce.Do(func() {
		p.stopCPU()
		p.stopFgprof()
		if p.heapPath != "" {
			if err := writeHeapProfile(p.heapPath); err != nil {
				slog.Warn("heap profile failed", "err", err)
			}
		}
	})
}

func writeHeapProfile(raw string) error {
	path, err := sanitizeProfilePath(raw)
	if err != nil {
		return err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()
	runtime.GC()
	if err := pprof.WriteHeapProfile(file); err != nil {
		return err
	}
	slog.Info("heap profile written", "path", path)
	return nil
}

func startGopsAgent() {
	opts := agent.Options{ShutdownCleanup: true}
	if addr := strings.TrimSpace(os.Getenv(envGopsAddr)); addr != "" {
		opts.Addr = addr
	}
	if err := agent.Listen(opts); err != nil {
		slog.Warn("gops agent failed", "err", err)
	}
}

func sanitizeProfilePath(raw string) (string, error) {
	path := strings.TrimSpace(raw)
	if path == "" {
		return "", errors.New("profile path is required")
	}
	for _, r := range path {
		if r == 0 || unicode.IsControl(r) {
			return "", fmt.Errorf("profile path contains control characters: %q", path)
		}
	}
	abs, err := filepath.Abs(userpath.Expand(path))
	if err != nil {
		return "", fmt.Errorf("resolve profile path %q: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create profile dir: %w", err)
	}
	return abs, nil
}

// durationEnv accepts a Go duration ("45s") or a bare second count.
func durationEnv(env string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(env))
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	secs, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("invalid profile duration", "env", env, "value", raw)
		return fallback
	}
	return time.Duration(secs) * time.Second
}

func envBool(name string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
