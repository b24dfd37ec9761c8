package cmd

import (
	"context"

	"github.com/urfave/cli"

	"github.com/kawunus/mslu-schedule-parser/internal/config"
)

var SyncCmd = cli.Command{
	Name:  "sync",
	Usage: "Runs one reconciliation pass against the target calendar",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "start",
			Usage: "Date at which to start, as YYYY-MM-DD",
		},
		&cli.StringFlag{
			Name:  "end",
			Usage: "Date at which to stop, as YYYY-MM-DD",
		},
	},
	Action: runSync,
}

func runSync(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx := context.Background()
	s, err := buildSyncer(ctx, c, cfg, logger(c))
	if err != nil {
		return err
	}
	return s.Run(ctx, c.String("start"), c.String("end"))
}
