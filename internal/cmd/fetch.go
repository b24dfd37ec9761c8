package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli"

	"github.com/kawunus/mslu-schedule-parser/internal/config"
	"github.com/kawunus/mslu-schedule-parser/timetable"
)

var FetchCmd = cli.Command{
	Name:  "fetch",
	Usage: "Fetches the timetable and prints it, without touching the calendar",
	Flags: []cli.Flag{
		&cli.Int64Flag{
			Name:  "group",
			Usage: "Group id to load the schedule for (overrides the configured one)",
		},
		&cli.StringFlag{
			Name:  "start",
			Usage: "Date at which to start, as YYYY-MM-DD",
		},
		&cli.StringFlag{
			Name:  "end",
			Usage: "Date at which to stop, as YYYY-MM-DD",
		},
	},
	Action: fetchSchedule,
}

func fetchSchedule(c *cli.Context) error {
	l := logger(c)
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	group := cfg.Group
	if g := c.Int64("group"); g > 0 {
		group = g
	}

	fetcher := timetable.New(timetable.Config{
		Group:     group,
		StopWords: cfg.StopWords,
		Subgroup:  cfg.Subgroup,
		LogFn:     timetable.LoggerFn(l.Debugf),
		ErrFn:     timetable.LoggerFn(l.Warnf),
	})
	schedule, err := fetcher.Fetch(context.Background(), c.String("start"), c.String("end"))
	if err != nil {
		return err
	}
	if len(schedule) == 0 {
		info("No lessons in the requested window")
		return nil
	}
	fmt.Printf("%s", schedule)
	return nil
}
