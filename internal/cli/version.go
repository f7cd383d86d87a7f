package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/AdamGardelov/paneboard/internal/identity"
	"github.com/AdamGardelov/paneboard/internal/update"
)

const releasesURL = "https://github.com/AdamGardelov/paneboard/releases"

func (a *app) versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print the version",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "check",
				Usage: "print where to look for newer releases",
			},
		},
		Action: a.runVersion,
	}
}

func (a *app) runVersion(ctx context.Context, cmd *cli.Command) error {
	if _, err := fmt.Fprintf(a.deps.Stdout, "%s %s\n", identity.CLIName, a.deps.Version); err != nil {
		return err
	}
	if !cmd.Bool("check") {
		return nil
	}
	if update.IsDevelopmentVersion(a.deps.Version) {
		_, err := fmt.Fprintln(a.deps.Stdout, "development build; install a tagged release to track updates")
		return err
	}
	_, err := fmt.Fprintf(a.deps.Stdout, "current release %s; newer tags appear at %s\n",
		update.NormalizeVersion(a.deps.Version), releasesURL)
	return err
}
