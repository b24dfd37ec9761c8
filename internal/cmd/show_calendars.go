package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli"

	"github.com/kawunus/mslu-schedule-parser/gcal"
)

var ShowCalendarsCmd = cli.Command{
	Name:   "calendars",
	Usage:  "Lists the calendars visible to the authorized account",
	Action: showCalendars,
}

func showCalendars(c *cli.Context) error {
	ctx := context.Background()
	svc, err := buildService(ctx, c, logger(c))
	if err != nil {
		return err
	}
	items, err := gcal.New(svc, "").Calendars(ctx)
	if err != nil {
		return err
	}
	for _, it := range items {
		label := it.Id
		if it.Primary {
			label += " (primary)"
		}
		fmt.Printf("%s\t%s\n", label, it.Summary)
	}
	return nil
}
