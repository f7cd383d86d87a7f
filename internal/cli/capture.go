package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/urfave/cli/v3"

	"github.com/AdamGardelov/paneboard/internal/ansi"
	"github.com/AdamGardelov/paneboard/internal/limits"
	"github.com/AdamGardelov/paneboard/internal/termrender"
)

const defaultCaptureWidth = 80

func (a *app) captureCommand() *cli.Command {
	return &cli.Command{
		Name:  "capture",
		Usage: "print a pane's recent output, re-rendered for this terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "target",
				Aliases: []string{"t"},
				Usage:   "target pane (%id or session:window.pane)",
			},
			&cli.IntFlag{
				Name:  "lines",
				Usage: fmt.Sprintf("scrollback lines to capture (max %d)", limits.MaxCaptureLines),
				Value: limits.DefaultCaptureLines,
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: "render width in cells",
				Value: defaultCaptureWidth,
			},
			&cli.BoolFlag{
				Name:  "plain",
				Usage: "strip all styling from the output",
			},
		},
		Action: a.runCapture,
	}
}

func (a *app) runCapture(ctx context.Context, cmd *cli.Command) error {
	target := strings.TrimSpace(cmd.String("target"))
	if target == "" {
		return errors.New("target pane is required (-t)")
	}
	svc, err := a.services()
	if err != nil {
		return err
	}

	lines := limits.CaptureLinesFor(0, cmd.Int("lines"))
	width := cmd.Int("width")
	if width <= 0 {
		width = defaultCaptureWidth
	}

	raw, err := svc.client.CapturePaneLines(ctx, target, lines)
	if err != nil {
		return fmt.Errorf("capture %s: %w", target, err)
	}

	rendered := renderCapture(raw, width)
	out := termrender.Encode(rendered, termrender.Options{
		Profile: colorprofile.Detect(a.deps.Stdout, os.Environ()),
		Plain:   cmd.Bool("plain"),
	})
	_, err = fmt.Fprintln(a.deps.Stdout, out)
	return err
}

// renderCapture runs each captured line through the width-bounded
// segment renderer, producing the same clipped view the dashboard
// preview shows.
func renderCapture(raw string, width int) [][]ansi.Segment {
	if raw == "" {
		return nil
	}
	lines := strings.Split(raw, "\n")
	rendered := make([][]ansi.Segment, 0, len(lines))
	for _, line := range lines {
		it := ansi.RenderLine(line, width)
		var segs []ansi.Segment
		for {
			seg, ok := it.Next()
			if !ok || seg.LineBreak {
				break
			}
			segs = append(segs, seg)
		}
		rendered = append(rendered, segs)
	}
	return rendered
}
