package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/AdamGardelov/paneboard/internal/identity"
	"github.com/AdamGardelov/paneboard/internal/layout"
)

func (a *app) layoutsCommand() *cli.Command {
	return &cli.Command{
		Name:      "layouts",
		Usage:     "list available layouts, or print one as YAML",
		ArgsUsage: "[NAME]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "layout config file (skips the project/global search)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "emit machine-readable JSON",
			},
		},
		Action: a.runLayouts,
	}
}

type layoutSummary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Grid        string `json:"grid,omitempty"`
	Source      string `json:"source"`
	Path        string `json:"path,omitempty"`
}

func (a *app) runLayouts(ctx context.Context, cmd *cli.Command) error {
	workDir, err := a.resolveWorkDir()
	if err != nil {
		return err
	}
	layouts, err := layout.NewLoader(workDir, strings.TrimSpace(cmd.String("config")))
	if err != nil {
		return err
	}
	if name := strings.TrimSpace(cmd.Args().First()); name != "" {
		return a.exportLayout(layouts, name)
	}

	infos, err := layouts.ListLayouts()
	if err != nil {
		return err
	}
	summaries := make([]layoutSummary, 0, len(infos))
	for _, info := range infos {
		summaries = append(summaries, layoutSummary{
			Name:        info.Name,
			Description: info.Description,
			Grid:        layoutGrid(layouts, info.Name),
			Source:      info.Source,
			Path:        info.Path,
		})
	}
	if cmd.Bool("json") {
		return writeLayoutsJSON(a.deps.Stdout, summaries)
	}
	return writeLayoutsTable(a.deps.Stdout, summaries)
}

// exportLayout prints a layout as commented YAML ready to drop into a
// project config.
func (a *app) exportLayout(layouts *layout.Loader, name string) error {
	def, source, err := layouts.GetLayout(name)
	if err != nil {
		return err
	}
	out := *def
	out.Name = "" // the map key carries the name in a project config
	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("encode layout %s: %w", name, err)
	}
	fmt.Fprintf(a.deps.Stdout, "# layout %s (%s)\n", name, source)
	fmt.Fprintf(a.deps.Stdout, "# paste under layouts.%s in %s\n\n", name, identity.ProjectConfigFile)
	_, err = a.deps.Stdout.Write(data)
	return err
}

func layoutGrid(layouts *layout.Loader, name string) string {
	def, _, err := layouts.GetLayout(name)
	if err != nil {
		return ""
	}
	grid, err := def.GridOf()
	if err != nil {
		return ""
	}
	return grid.String()
}

func writeLayoutsJSON(out io.Writer, summaries []layoutSummary) error {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(struct {
		Layouts []layoutSummary `json:"layouts"`
		Total   int             `json:"total"`
	}{Layouts: summaries, Total: len(summaries)}); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func writeLayoutsTable(out io.Writer, summaries []layoutSummary) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(out, "No layouts found.")
		return err
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "NAME\tGRID\tSOURCE\tDESCRIPTION"); err != nil {
		return err
	}
	for _, s := range summaries {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Name, s.Grid, s.Source, truncateDescription(s.Description)); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\nUse '%s layouts NAME' to print a layout as YAML\n", identity.CLIName)
	return err
}

func truncateDescription(desc string) string {
	if len(desc) > 50 {
		return desc[:47] + "..."
	}
	return desc
}
