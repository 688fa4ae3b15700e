package scheduler

import (
	"fmt"
	"os"
	"time"

	"github.com/ethanbaker/ephemeris/pkg/utils"
	"gopkg.in/yaml.v3"
)

// Defaults of the daily generation run
const (
	DefaultCron    = "1 0 * * *"
	DefaultTimeout = 30 * time.Second
)

// Options contains the schedule of the generation job
type Options struct {
	Cron     string        `yaml:"cron"`     // Standard five field cron spec
	Timezone string        `yaml:"timezone"` // IANA zone the spec is evaluated in
	Timeout  time.Duration `yaml:"timeout"`  // Limit for a single call to the generator
}

// DefaultOptions runs one minute after midnight, Madrid time
func DefaultOptions() *Options {
	return &Options{
		Cron:     DefaultCron,
		Timezone: utils.DefaultTimezone,
		Timeout:  DefaultTimeout,
	}
}

// LoadOptions starts from the defaults, applies the YAML file named by
// SCHEDULE_CONFIG_PATH and finally SCHEDULE_CRON / SCHEDULE_TIMEZONE
func LoadOptions(cfg *utils.Config) (*Options, error) {
	opts := DefaultOptions()

	if path := cfg.Get("SCHEDULE_CONFIG_PATH"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read schedule config: %w", err)
		}
		if err := yaml.Unmarshal(data, opts); err != nil {
			return nil, fmt.Errorf("failed to parse schedule config: %w", err)
		}
	}

	if spec := cfg.Get("SCHEDULE_CRON"); spec != "" {
		opts.Cron = spec
	}
	if tz := cfg.Get("SCHEDULE_TIMEZONE"); tz != "" {
		opts.Timezone = tz
	}

	return opts, nil
}

// Location loads the configured timezone
func (o *Options) Location() (*time.Location, error) {
	if o.Timezone == "" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(o.Timezone)
	if err != nil {
		return nil, &utils.ConfigError{Key: "SCHEDULE_TIMEZONE", Reason: err.Error()}
	}
	return loc, nil
}
