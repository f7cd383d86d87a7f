package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/AdamGardelov/paneboard/internal/mux"
)

func (a *app) lsCommand() *cli.Command {
	return &cli.Command{
		Name:  "ls",
		Usage: "list multiplexer sessions",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "emit machine-readable JSON",
			},
		},
		Action: a.runLs,
	}
}

type sessionSummary struct {
	Name     string    `json:"name"`
	Path     string    `json:"path,omitempty"`
	Windows  int       `json:"windows"`
	Attached bool      `json:"attached"`
	Activity time.Time `json:"activity"`
}

func (a *app) runLs(ctx context.Context, cmd *cli.Command) error {
	svc, err := a.services()
	if err != nil {
		return err
	}
	infos, err := svc.client.ListSessionsInfo(ctx)
	if err != nil {
		return err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })

	if cmd.Bool("json") {
		return writeSessionsJSON(a.deps.Stdout, infos)
	}
	return writeSessionsTable(a.deps.Stdout, infos)
}

func writeSessionsJSON(out io.Writer, infos []mux.SessionInfo) error {
	summaries := make([]sessionSummary, 0, len(infos))
	for _, info := range infos {
		summaries = append(summaries, sessionSummary{
			Name:     info.Name,
			Path:     info.Path,
			Windows:  info.Windows,
			Attached: info.Attached,
			Activity: info.Activity,
		})
	}
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(struct {
		Sessions []sessionSummary `json:"sessions"`
		Total    int              `json:"total"`
	}{Sessions: summaries, Total: len(summaries)}); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func writeSessionsTable(out io.Writer, infos []mux.SessionInfo) error {
	if len(infos) == 0 {
		_, err := fmt.Fprintln(out, "No sessions found.")
		return err
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "NAME\tWINDOWS\tATTACHED\tPATH"); err != nil {
		return err
	}
	for _, info := range infos {
		attached := "-"
		if info.Attached {
			attached = "yes"
		}
		if _, err := fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", info.Name, info.Windows, attached, info.Path); err != nil {
			return err
		}
	}
	return w.Flush()
}
