package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	ucli "github.com/urfave/cli/v3"

	"github.com/AdamGardelov/paneboard/internal/boardconfig"
	"github.com/AdamGardelov/paneboard/internal/cli"
	"github.com/AdamGardelov/paneboard/internal/identity"
	"github.com/AdamGardelov/paneboard/internal/logging"
	"github.com/AdamGardelov/paneboard/internal/profiling"
)

// version is stamped by the release build; "dev" marks local builds.
var version = "dev"

func main() {
	os.Exit(run(context.Background(), os.Args))
}

func run(ctx context.Context, args []string) int {
	stopProfiler := profiling.Start(ctx)
	if stopProfiler != nil {
		defer stopProfiler()
	}

	mode := logging.ModeFromArgs(args)
	logCfg := logging.Config{}
	if path, err := boardconfig.DefaultPath(); err == nil && path != "" {
		if cfg, err := boardconfig.NewLoader(path).Load(); err == nil {
			logCfg = cfg.Logging
		} else {
			fmt.Fprintf(os.Stderr, "%s: load config: %v\n", identity.CLIName, err)
			return 1
		}
	}
	closeLogger, err := logging.Init(ctx, logCfg, logging.InitOptions{
		App:     identity.AppSlug,
		Version: version,
		Mode:    mode,
	})
	if err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
		slog.Error("init logging failed; using stderr fallback", "err", err)
	} else if closeLogger != nil {
		defer func() { _ = closeLogger() }()
	}

	root := cli.New(cli.DefaultDeps(version))
	if err := root.Run(ctx, args); err != nil {
		if exitErr, ok := err.(ucli.ExitCoder); ok {
			return exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", identity.CLIName, err)
		return 1
	}
	return 0
}
