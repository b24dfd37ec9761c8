// Package config holds the process-wide configuration, read once at startup
// and passed explicitly into each component constructor.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces every environment variable the application reads.
const EnvPrefix = "SCHEDULE_"

// FileEnv optionally points at a YAML config file layered under the
// environment.
const FileEnv = "SCHEDULE_CONFIG"

type Config struct {
	// TargetCalendarID is the Google calendar the syncer owns.
	TargetCalendarID string `koanf:"target_calendar_id"`
	// Group is the timetable group to fetch.
	Group int64 `koanf:"group"`
	// UpdateInterval is the pause between daemon passes, in seconds.
	UpdateInterval int `koanf:"update_interval"`
	// PauseBetweenRequests spaces out mutating calendar calls, in seconds.
	PauseBetweenRequests float64 `koanf:"pause_between_requests"`
	Subgroup             string  `koanf:"subgroup"`
	// StopWords drop cross-listed sections whose discipline or teacher
	// surname matches.
	StopWords []string `koanf:"stop_words"`

	ColorSem string `koanf:"color_sem"`
	ColorPr  string `koanf:"color_pr"`
	ColorLk  string `koanf:"color_lk"`
}

func Default() Config {
	return Config{
		Group:                224003553,
		UpdateInterval:       86400,
		PauseBetweenRequests: 0.2,
		StopWords:            []string{"Пашкевич", "Иванов"},
		ColorSem:             "9",
		ColorPr:              "10",
		ColorLk:              "11",
	}
}

// Load layers, lowest to highest: defaults, the YAML file named by
// SCHEDULE_CONFIG when set, then SCHEDULE_* environment variables.
func Load() (Config, error) {
	cfg := Default()

	k := koanf.New(".")
	if path := os.Getenv(FileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("unable to load config file %s: %w", path, err)
		}
	}

	envProvider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if key == "stop_words" {
			return key, strings.Split(value, ",")
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return cfg, fmt.Errorf("unable to load environment: %w", err)
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return cfg, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	if cfg.Group <= 0 {
		return cfg, fmt.Errorf("%sGROUP must be a positive group id", EnvPrefix)
	}
	return cfg, nil
}

// Interval is the daemon sleep between passes.
func (c Config) Interval() time.Duration {
	return time.Duration(c.UpdateInterval) * time.Second
}

// Pause is the gap between consecutive calendar mutations.
func (c Config) Pause() time.Duration {
	return time.Duration(c.PauseBetweenRequests * float64(time.Second))
}

// Colors maps discipline types to calendar color codes; types configured
// with an empty code stay colorless.
func (c Config) Colors() map[string]string {
	colors := make(map[string]string, 3)
	if c.ColorSem != "" {
		colors["Сем"] = c.ColorSem
	}
	if c.ColorPr != "" {
		colors["Практ"] = c.ColorPr
	}
	if c.ColorLk != "" {
		colors["Лек"] = c.ColorLk
	}
	return colors
}
