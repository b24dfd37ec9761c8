package cmd

import (
	"context"
	"syscall"
	"time"

	w "git.sr.ht/~mariusor/wrapper"
	"github.com/urfave/cli"

	"github.com/kawunus/mslu-schedule-parser/internal/config"
)

var StartCmd = cli.Command{
	Name:   "start",
	Usage:  "Starts the periodic synchronization daemon",
	Action: startDaemon,
}

// startDaemon runs the reconciliation pass forever, one pass per configured
// interval. A failed pass is logged and waited out like a successful one; the
// only way out of the loop is a termination signal.
func startDaemon(c *cli.Context) error {
	l := logger(c)
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := buildSyncer(ctx, c, cfg, l)
	if err != nil {
		return err
	}

	w.RegisterSignalHandlers(w.SignalHandlers{
		syscall.SIGHUP: func(_ chan int) {
			l.Infof("SIGHUP received, configuration is only read at startup")
		},
		syscall.SIGINT: func(exit chan int) {
			l.Infof("SIGINT received, stopping")
			cancel()
			exit <- 0
		},
		syscall.SIGTERM: func(exit chan int) {
			l.Infof("SIGTERM received, force stopping")
			cancel()
			exit <- 0
		},
		syscall.SIGQUIT: func(exit chan int) {
			l.Infof("SIGQUIT received, force stopping with core-dump")
			cancel()
			exit <- 0
		},
	}).Exec(func() error {
		for {
			l.Infof("updating the schedule")
			if err := s.Run(ctx, "", ""); err != nil {
				l.Errorf("unable to update the schedule: %s", err)
			} else {
				l.Infof("schedule updated")
			}
			l.Infof("next update in %s", cfg.Interval())
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(cfg.Interval()):
			}
		}
	})

	return nil
}
