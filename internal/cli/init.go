package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/AdamGardelov/paneboard/internal/atomicfile"
	"github.com/AdamGardelov/paneboard/internal/identity"
	"github.com/AdamGardelov/paneboard/internal/layout"
	"github.com/AdamGardelov/paneboard/internal/userpath"
)

func (a *app) initCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "write a starter project config (or the global one with --global)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "layout",
				Aliases: []string{"l"},
				Usage:   "layout the starter config is based on",
				Value:   "default",
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"C"},
				Usage:   "project directory to write into (defaults to current)",
			},
			&cli.BoolFlag{
				Name:  "global",
				Usage: "write the global settings file instead of a project config",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "overwrite an existing config",
			},
		},
		Action: a.runInit,
	}
}

func (a *app) runInit(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("global") {
		return a.initGlobal(cmd.Bool("force"))
	}
	return a.initProject(
		strings.TrimSpace(cmd.String("dir")),
		strings.TrimSpace(cmd.String("layout")),
		cmd.Bool("force"),
	)
}

func (a *app) initProject(dir, layoutName string, force bool) error {
	if dir == "" {
		wd, err := a.resolveWorkDir()
		if err != nil {
			return err
		}
		dir = wd
	}
	dir, err := filepath.Abs(userpath.Expand(dir))
	if err != nil {
		return fmt.Errorf("resolve project directory: %w", err)
	}
	if layoutName == "" {
		layoutName = "default"
	}

	target := filepath.Join(dir, identity.ProjectConfigFile)
	hidden := filepath.Join(dir, identity.HiddenProjectConfigFile)
	if !force {
		if fileExists(target) {
			return fmt.Errorf("%s already exists (use --force to overwrite)", target)
		}
		// A hidden config would silently lose to the new visible one.
		if fileExists(hidden) {
			return fmt.Errorf("%s already configures this project (use --force to write %s anyway)",
				hidden, identity.ProjectConfigFile)
		}
	}

	layouts, err := layout.NewLoader(dir, "")
	if err != nil {
		return err
	}
	content, err := projectStarter(layouts, layoutName, layout.SanitizeSessionName(filepath.Base(dir)))
	if err != nil {
		return err
	}
	if err := layout.ValidateSchema(content); err != nil {
		return fmt.Errorf("generated config is invalid: %w", err)
	}
	if err := atomicfile.Save(target, content, 0o644); err != nil {
		return err
	}

	fmt.Fprintf(a.deps.Stdout, "Created %s (layout %s)\n\n", target, layoutName)
	fmt.Fprintf(a.deps.Stdout, "Edit it to customize, then:\n")
	fmt.Fprintf(a.deps.Stdout, "  %s new    create the session\n", identity.CLIName)
	fmt.Fprintf(a.deps.Stdout, "  %s        open the dashboard\n", identity.CLIName)
	return nil
}

// projectStarter renders the starter YAML: a commented header, the
// sanitized session name and the chosen layout inlined under layouts.
func projectStarter(layouts *layout.Loader, layoutName, session string) ([]byte, error) {
	def, _, err := layouts.GetLayout(layoutName)
	if err != nil {
		return nil, err
	}
	inline := *def
	inline.Name = "" // the map key carries the name
	body, err := yaml.Marshal(&inline)
	if err != nil {
		return nil, fmt.Errorf("encode layout %s: %w", layoutName, err)
	}

	var b strings.Builder
	b.WriteString("# paneboard project layout\n")
	b.WriteString("# Commit this file so the whole team gets the same session layout.\n")
	b.WriteString("#\n")
	b.WriteString("# Commands may use ${PROJECT_NAME}, ${PROJECT_PATH} or any\n")
	b.WriteString("# environment variable; ${VAR:-fallback} supplies a default.\n\n")
	fmt.Fprintf(&b, "session: %s\n\n", session)
	b.WriteString("layouts:\n")
	fmt.Fprintf(&b, "  %s:\n", layoutName)
	for _, line := range strings.Split(strings.TrimRight(string(body), "\n"), "\n") {
		b.WriteString("    ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return []byte(b.String()), nil
}

func (a *app) initGlobal(force bool) error {
	target, err := a.deps.GlobalPath()
	if err != nil {
		return fmt.Errorf("resolve global config path: %w", err)
	}
	if !force && fileExists(target) {
		return fmt.Errorf("%s already exists (use --force to overwrite)", target)
	}
	if err := atomicfile.Save(target, []byte(globalStarter), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(a.deps.Stdout, "Created %s\n", target)
	fmt.Fprintf(a.deps.Stdout, "Project layouts live in %s next to each project.\n", identity.ProjectConfigFile)
	return nil
}

// globalStarter documents every setting the global file knows; all
// values start commented out so defaults stay in code.
const globalStarter = `# paneboard global settings
# Per-project layouts belong in paneboard.yaml inside each project.

[tmux]
# binary = "tmux"            # or "tmux -L mysocket"

[dashboard]
# default_layout = "default"
# poll_interval = "2s"
# preview_lines = 12

[files]                       # bounds for project-directory suggestions
# show_hidden = false
# max_depth = 4
# max_items = 500

[logging]
# level = "info"              # debug | info | warn | error
# format = "json"             # json | text
# max_size_mb = 10
# max_backups = 3

[update]
# notice = true               # dev-build notice in the dashboard footer
`

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
