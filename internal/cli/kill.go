package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"
)

func (a *app) killCommand() *cli.Command {
	return &cli.Command{
		Name:      "kill",
		Usage:     "kill a session",
		ArgsUsage: "SESSION",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "skip the confirmation prompt",
			},
		},
		Action: a.runKill,
	}
}

func (a *app) runKill(ctx context.Context, cmd *cli.Command) error {
	name := strings.TrimSpace(cmd.Args().First())
	if name == "" {
		return fmt.Errorf("session name is required")
	}
	if !cmd.Bool("yes") {
		ok, err := promptConfirm(a.deps.Stdin, a.deps.Stderr, fmt.Sprintf("Kill session %q", name))
		if err != nil {
			return err
		}
		if !ok {
			return cli.Exit("", 1)
		}
	}
	svc, err := a.services()
	if err != nil {
		return err
	}
	if err := svc.client.KillSession(ctx, name); err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.deps.Stdout, "Killed session %s\n", name)
	return err
}

// promptConfirm asks the user to confirm a destructive action.
func promptConfirm(in io.Reader, out io.Writer, message string) (bool, error) {
	if out != nil {
		if _, err := fmt.Fprintf(out, "%s [y/N]: ", message); err != nil {
			return false, err
		}
	}
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
