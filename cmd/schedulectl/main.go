package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/kawunus/mslu-schedule-parser/internal/cmd"
)

func main() {
	var err error

	ctl := cli.App{
		Name:    fmt.Sprintf("%sctl", cmd.AppName),
		Version: cmd.AppVersion,
		Usage:   "Keeps a Google calendar in sync with the university timetable",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Usage: "The path for credentials and token storage",
				Value: cmd.DataPath(),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Output debug messages",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Compute the plan without touching the calendar",
			},
		},
		Commands: []cli.Command{
			cmd.AuthorizeCmd,
			cmd.ShowCalendarsCmd,
			cmd.FetchCmd,
			cmd.SyncCmd,
			cmd.StartCmd,
		},
	}

	err = ctl.Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
