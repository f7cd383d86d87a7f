package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/AdamGardelov/paneboard/internal/boardconfig"
	"github.com/AdamGardelov/paneboard/internal/identity"
	"github.com/AdamGardelov/paneboard/internal/layout"
	"github.com/AdamGardelov/paneboard/internal/mux"
)

type app struct {
	deps Deps
}

// New builds the root command. The default action opens the dashboard;
// everything else is a one-shot subcommand.
func New(deps Deps) *cli.Command {
	a := &app{deps: deps.withDefaults()}
	root := &cli.Command{
		Name:      identity.CLIName,
		Usage:     "tmux session dashboard and launcher",
		Writer:    a.deps.Stdout,
		ErrWriter: a.deps.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "layout config file (skips the project/global search)",
			},
			&cli.BoolFlag{
				Name:    "version",
				Aliases: []string{"v"},
				Usage:   "print the version and exit",
			},
		},
		Commands: []*cli.Command{
			a.dashboardCommand(),
			a.newCommand(),
			a.lsCommand(),
			a.layoutsCommand(),
			a.initCommand(),
			a.captureCommand(),
			a.killCommand(),
			a.versionCommand(),
		},
	}
	root.Before = func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		if cmd != nil && cmd.Bool("version") {
			fmt.Fprintf(a.deps.Stdout, "%s %s\n", identity.CLIName, a.deps.Version)
			return ctx, cli.Exit("", 0)
		}
		return ctx, nil
	}
	root.Action = func(ctx context.Context, cmd *cli.Command) error {
		return a.runDashboard(ctx, cmd.String("config"))
	}
	return root
}

// services bundles the per-invocation wiring every subcommand needs.
type services struct {
	workDir string
	client  mux.Client
	global  *boardconfig.Loader
	cfg     boardconfig.Config
}

// services resolves the working directory and global config, then
// connects the multiplexer client with the configured binary. A broken
// global config degrades to defaults; only a missing client is fatal.
func (a *app) services() (*services, error) {
	workDir, err := a.resolveWorkDir()
	if err != nil {
		return nil, err
	}
	globalPath, err := a.deps.GlobalPath()
	if err != nil {
		globalPath = ""
	}
	global := boardconfig.NewLoader(globalPath)
	cfg, err := global.Load()
	if err != nil {
		slog.Warn("global config unreadable; using defaults", "path", globalPath, "err", err)
		cfg = boardconfig.Defaults()
	}
	client, err := a.deps.Connect(cfg.Tmux.Binary)
	if err != nil {
		return nil, err
	}
	return &services{
		workDir: workDir,
		client:  client,
		global:  global,
		cfg:     cfg,
	}, nil
}

// resolveWorkDir returns the injected working directory or the process
// cwd. Commands that never talk to tmux use this instead of services.
func (a *app) resolveWorkDir() (string, error) {
	workDir := strings.TrimSpace(a.deps.WorkDir)
	if workDir != "" {
		return workDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return wd, nil
}

// layoutLoader builds the layout loader for svc's project directory.
// explicitPath pins the config file when the --config flag is set.
func (svc *services) layoutLoader(explicitPath string) (*layout.Loader, error) {
	return layout.NewLoader(svc.workDir, strings.TrimSpace(explicitPath))
}
