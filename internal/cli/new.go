package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/AdamGardelov/paneboard/internal/filelist"
	"github.com/AdamGardelov/paneboard/internal/layout"
	"github.com/AdamGardelov/paneboard/internal/mux"
	"github.com/AdamGardelov/paneboard/internal/userpath"
)

func (a *app) newCommand() *cli.Command {
	return &cli.Command{
		Name:  "new",
		Usage: "create a session from a layout and attach to it",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "session",
				Aliases: []string{"s"},
				Usage:   "session name (defaults to the project config or directory name)",
			},
			&cli.StringFlag{
				Name:    "layout",
				Aliases: []string{"l"},
				Usage:   "layout name from the project, global or builtin set",
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"C"},
				Usage:   "starting directory for all panes (defaults to current)",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "layout config file (skips the project/global search)",
			},
			&cli.BoolFlag{
				Name:  "no-attach",
				Usage: "create the session but do not attach/switch to it",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "maximum time multiplexer commands may take",
				Value: 5 * time.Second,
			},
		},
		Action: a.runNew,
	}
}

func (a *app) runNew(ctx context.Context, cmd *cli.Command) error {
	svc, err := a.services()
	if err != nil {
		return err
	}
	layouts, err := svc.layoutLoader(cmd.String("config"))
	if err != nil {
		return err
	}

	session := strings.TrimSpace(cmd.String("session"))
	layoutName := strings.TrimSpace(cmd.String("layout"))
	dir := strings.TrimSpace(cmd.String("dir"))

	if session == "" || layoutName == "" {
		if err := a.newSessionForm(svc, layouts, &session, &layoutName, &dir); err != nil {
			return err
		}
	}
	if dir == "" {
		dir = svc.workDir
	}
	dir, err = filepath.Abs(userpath.Expand(dir))
	if err != nil {
		return fmt.Errorf("resolve project directory: %w", err)
	}

	projectCfg, err := layouts.Load()
	if err != nil {
		return err
	}
	name := layout.SanitizeSessionName(layout.ResolveSessionName(dir, session, projectCfg))

	def, _, err := layouts.GetLayout(layoutName)
	if err != nil {
		return err
	}
	def = layout.ExpandLayoutVars(def, projectCfg.Vars, dir, filepath.Base(dir))
	grid, err := def.GridOf()
	if err != nil {
		return err
	}

	result, err := svc.client.EnsureSession(ctx, mux.EnsureOptions{
		Session:  name,
		Grid:     grid,
		StartDir: dir,
		Commands: def.PaneCommands(grid.Panes()),
		Titles:   def.PaneTitles(grid.Panes()),
		Attach:   !cmd.Bool("no-attach"),
		Timeout:  cmd.Duration("timeout"),
	})
	if err != nil {
		return err
	}

	if result.Created {
		fmt.Fprintf(a.deps.Stdout, "Created session %q with layout %s\n", name, grid)
	} else {
		fmt.Fprintf(a.deps.Stdout, "Session %q already exists\n", name)
	}
	if result.Attached {
		fmt.Fprintf(a.deps.Stdout, "Attached to session %q\n", name)
	}
	return nil
}

// newSessionForm collects the fields the flags left empty. The session
// input is prefilled with the name the project would resolve to, the
// layout select is seeded with the configured default, and the
// directory input suggests project directories under the configured
// roots.
func (a *app) newSessionForm(svc *services, layouts *layout.Loader, session, layoutName, dir *string) error {
	var fields []huh.Field

	if strings.TrimSpace(*session) == "" {
		*session = suggestedSessionName(svc, layouts, *dir)
		fields = append(fields, huh.NewInput().
			Title("Session name").
			Value(session).
			Validate(func(v string) error {
				if strings.TrimSpace(v) == "" {
					return errors.New("session name cannot be empty")
				}
				return nil
			}))
	}

	if strings.TrimSpace(*layoutName) == "" {
		names := layoutNames(layouts)
		*layoutName = defaultLayoutName(svc, names)
		fields = append(fields, huh.NewSelect[string]().
			Title("Layout").
			Options(huh.NewOptions(names...)...).
			Value(layoutName))
	}

	if strings.TrimSpace(*dir) == "" {
		*dir = svc.workDir
		fields = append(fields, huh.NewInput().
			Title("Project directory").
			Description("Tab completes from the configured project roots").
			Suggestions(a.projectSuggestions(svc, layouts)).
			Value(dir))
	}

	if len(fields) == 0 {
		return nil
	}
	form := huh.NewForm(huh.NewGroup(fields...))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return cli.Exit("", 1)
		}
		return err
	}
	return nil
}

// suggestedSessionName is the name a bare invocation would pick: the
// project config's pinned session if one is set, otherwise the
// directory name.
func suggestedSessionName(svc *services, layouts *layout.Loader, dir string) string {
	base := strings.TrimSpace(dir)
	if base == "" {
		base = svc.workDir
	}
	var projectCfg *layout.Config
	if cfg, err := layouts.Load(); err == nil {
		projectCfg = cfg
	}
	return layout.ResolveSessionName(base, "", projectCfg)
}

func layoutNames(layouts *layout.Loader) []string {
	infos, err := layouts.ListLayouts()
	if err != nil || len(infos) == 0 {
		names, err := layout.BuiltinLayoutNames()
		if err != nil {
			return nil
		}
		return names
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	return names
}

func defaultLayoutName(svc *services, names []string) string {
	want := strings.TrimSpace(svc.cfg.Dashboard.DefaultLayout)
	for _, name := range names {
		if name == want {
			return want
		}
	}
	if len(names) > 0 {
		return names[0]
	}
	return want
}

// projectSuggestions lists directories under the configured project
// roots. With no roots configured the parent of the working directory
// stands in, which makes sibling checkouts one tab away.
func (a *app) projectSuggestions(svc *services, layouts *layout.Loader) []string {
	var roots []string
	if cfg, err := layouts.Load(); err == nil {
		roots = cfg.Dashboard.ProjectRoots
	}
	if len(roots) == 0 {
		roots = []string{filepath.Dir(svc.workDir)}
	}
	opts := filelist.Options{
		MaxDepth:   svc.cfg.Files.MaxDepth,
		MaxItems:   svc.cfg.Files.MaxItems,
		ShowHidden: svc.cfg.Files.ShowHidden != nil && *svc.cfg.Files.ShowHidden,
	}
	var out []string
	for _, root := range roots {
		root = userpath.Expand(strings.TrimSpace(root))
		if root == "" {
			continue
		}
		entries, _, err := filelist.Dirs(root, opts)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			out = append(out, filepath.Join(root, filepath.FromSlash(entry.Path)))
			if opts.MaxItems > 0 && len(out) >= opts.MaxItems {
				return out
			}
		}
	}
	return out
}
