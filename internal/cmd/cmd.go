package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"git.sr.ht/~mariusor/lw"
	"github.com/urfave/cli"
	"google.golang.org/api/calendar/v3"

	"github.com/kawunus/mslu-schedule-parser/gcal"
	"github.com/kawunus/mslu-schedule-parser/internal/config"
	"github.com/kawunus/mslu-schedule-parser/storage/boltdb"
	"github.com/kawunus/mslu-schedule-parser/syncer"
	"github.com/kawunus/mslu-schedule-parser/timetable"
)

const (
	AppName    = "schedule"
	AppVersion = "(unknown)"
)

const CredentialsFile = "credentials.json"

func MkDirIfNotExists(p string) error {
	fi, err := os.Stat(p)
	if err != nil && os.IsNotExist(err) {
		err = os.MkdirAll(p, os.ModeDir|os.ModePerm|0700)
	}
	if err != nil {
		return err
	}
	fi, err = os.Stat(p)
	if err != nil {
		return err
	} else if !fi.IsDir() {
		return fmt.Errorf("path exists, and is not a folder %s", p)
	}
	return nil
}

func DataPath() string {
	homeDir, _ := os.UserHomeDir()
	xdgDataPath := filepath.Join(homeDir, ".local", "share")
	appPath := filepath.Join(xdgDataPath, AppName)

	if _, err := os.Stat(appPath); err != nil && errors.Is(err, os.ErrNotExist) {
		err := MkDirIfNotExists(appPath)
		if err != nil {
			log.Fatalf("Error: %s", err.Error())
		}
	}
	return appPath
}

var info = func(s string, args ...interface{}) {
	fmt.Printf(s+"\n", args...)
}

func logger(c *cli.Context) lw.Logger {
	if c.GlobalBool("debug") {
		return lw.Dev()
	}
	return lw.Prod()
}

func credentialsPath(c *cli.Context) string {
	if p := stringValue(c, "credentials"); p != "" {
		return p
	}
	return filepath.Join(c.GlobalString("path"), CredentialsFile)
}

func stringValue(c *cli.Context, p string) string {
	for {
		if c.IsSet(p) {
			if val := c.String(p); val != "" {
				return val
			}
		}
		if c = c.Parent(); c == nil {
			break
		}
	}
	return ""
}

func tokenStore(c *cli.Context, l lw.Logger) gcal.TokenStore {
	return boltdb.New(boltdb.Config{
		Path:  filepath.Join(c.GlobalString("path"), boltdb.DefaultFile),
		LogFn: boltdb.LoggerFn(l.Debugf),
		ErrFn: boltdb.LoggerFn(l.Errorf),
	})
}

func buildService(ctx context.Context, c *cli.Context, l lw.Logger) (*calendar.Service, error) {
	conf, err := gcal.OAuthConfig(credentialsPath(c))
	if err != nil {
		return nil, err
	}
	return gcal.NewService(ctx, conf, tokenStore(c, l))
}

func buildSyncer(ctx context.Context, c *cli.Context, cfg config.Config, l lw.Logger) (*syncer.Syncer, error) {
	if cfg.TargetCalendarID == "" {
		return nil, fmt.Errorf("%sTARGET_CALENDAR_ID must be set", config.EnvPrefix)
	}
	svc, err := buildService(ctx, c, l)
	if err != nil {
		return nil, err
	}
	fetcher := timetable.New(timetable.Config{
		Group:     cfg.Group,
		StopWords: cfg.StopWords,
		Subgroup:  cfg.Subgroup,
		LogFn:     timetable.LoggerFn(l.Debugf),
		ErrFn:     timetable.LoggerFn(l.Warnf),
	})
	return syncer.New(syncer.Config{
		Fetcher:  fetcher,
		Calendar: gcal.New(svc, cfg.TargetCalendarID),
		Colors:   cfg.Colors(),
		Pause:    cfg.Pause(),
		DryRun:   c.GlobalBool("dry-run"),
		LogFn:    syncer.LoggerFn(l.Infof),
		ErrFn:    syncer.LoggerFn(l.Errorf),
	}), nil
}
