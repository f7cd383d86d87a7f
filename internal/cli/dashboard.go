package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/AdamGardelov/paneboard/internal/identity"
	"github.com/AdamGardelov/paneboard/internal/layout"
	"github.com/AdamGardelov/paneboard/internal/tui/dashboard"
	"github.com/AdamGardelov/paneboard/internal/watch"
)

func (a *app) dashboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "open the session dashboard (the default when no command is given)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "layout config file (skips the project/global search)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return a.runDashboard(ctx, cmd.String("config"))
		},
	}
}

func (a *app) runDashboard(ctx context.Context, configPath string) error {
	svc, err := a.services()
	if err != nil {
		return err
	}
	layouts, err := svc.layoutLoader(configPath)
	if err != nil {
		return err
	}
	model, err := dashboard.New(dashboard.Options{
		Client:  svc.client,
		Layouts: layouts,
		Global:  svc.global,
		Version: a.deps.Version,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stopWatch := a.watchConfigs(watchCtx, layouts, p)
	defer stopWatch()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}

// configSender is the part of tea.Program the config watcher uses.
type configSender interface {
	Send(tea.Msg)
}

// watchConfigs hot-reloads the board while it runs: the layout files
// (project, hidden project, global) and the global TOML are watched,
// and each debounced change is forwarded to the program as a
// ConfigReloadMsg. Watch failures only cost the live reload, so they
// log and move on.
func (a *app) watchConfigs(ctx context.Context, layouts *layout.Loader, p configSender) func() {
	watcher, err := watch.New(0)
	if err != nil {
		slog.Warn("config watcher unavailable", "err", err)
		return func() {}
	}
	if path := layouts.ProjectPath(); path != "" {
		registerWatch(watcher, path, "layout changed")
		hidden := filepath.Join(filepath.Dir(path), identity.HiddenProjectConfigFile)
		registerWatch(watcher, hidden, "layout changed")
	}
	if path := layouts.GlobalPath(); path != "" {
		registerWatch(watcher, path, "layout changed")
	}
	if path, err := a.deps.GlobalPath(); err == nil && path != "" {
		registerWatch(watcher, path, "config changed")
	}

	go func() { _ = watcher.Run(ctx) }()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case reason, ok := <-watcher.Events():
				if !ok {
					return
				}
				p.Send(dashboard.ConfigReloadMsg{Reason: reason})
			}
		}
	}()
	return func() { _ = watcher.Close() }
}

func registerWatch(watcher *watch.Watcher, path, reason string) {
	if err := watcher.WatchFile(path, reason); err != nil {
		slog.Debug("watch config file failed", "path", path, "err", err)
	}
}
