// Package config provides configuration management for zipnest using Viper.
package config

import (
	"github.com/spf13/viper"

	"github.com/thoreinstein/zipnest/internal/archive"
	"github.com/thoreinstein/zipnest/internal/errors"
	"github.com/thoreinstein/zipnest/internal/paths"
)

// AppName is the application name used for config file naming and the
// environment variable prefix.
const AppName = "zipnest"

// Default values applied when the config file omits a key.
const (
	DefaultKeepDays = 14
	DefaultSchedule = "0 * * * *"
)

// Config represents the top-level configuration structure.
type Config struct {
	Source    SourceConfig    `mapstructure:"source" toml:"source" yaml:"source" json:"source"`
	Archive   ArchiveConfig   `mapstructure:"archive" toml:"archive" yaml:"archive" json:"archive"`
	Retention RetentionConfig `mapstructure:"retention" toml:"retention" yaml:"retention" json:"retention"`
	Watch     WatchConfig     `mapstructure:"watch" toml:"watch" yaml:"watch" json:"watch"`
	Logging   LoggingConfig   `mapstructure:"logging" toml:"logging" yaml:"logging" json:"logging"`
}

// SourceConfig describes how the live session directory is discovered.
// The three fields are consulted in order; the first that yields a
// directory wins.
type SourceConfig struct {
	// Path is a fixed session directory.
	Path string `mapstructure:"path" toml:"path" yaml:"path" json:"path"`

	// PathEnv names an environment variable holding the session directory.
	PathEnv string `mapstructure:"path_env" toml:"path_env" yaml:"path_env" json:"path_env"`

	// SessionFile is a state file maintained by the live application;
	// its first non-empty line is the session directory.
	SessionFile string `mapstructure:"session_file" toml:"session_file" yaml:"session_file" json:"session_file"`
}

// ArchiveConfig controls archive naming and exclusion.
type ArchiveConfig struct {
	// RootName is the subdirectory under the session directory that
	// holds all produced archives. Always excluded from archiving.
	RootName string `mapstructure:"root_name" toml:"root_name" yaml:"root_name" json:"root_name"`

	// DailyFormat is the Go time layout for the daily archive filename.
	DailyFormat string `mapstructure:"daily_format" toml:"daily_format" yaml:"daily_format" json:"daily_format"`

	// HourlyFormat is the Go time layout for the hourly archive filename.
	HourlyFormat string `mapstructure:"hourly_format" toml:"hourly_format" yaml:"hourly_format" json:"hourly_format"`

	// Exclude lists additional directory names to skip anywhere in the tree.
	Exclude []string `mapstructure:"exclude" toml:"exclude" yaml:"exclude" json:"exclude"`
}

// RetentionConfig controls pruning of aged archives.
type RetentionConfig struct {
	// KeepDays is how many days of archives to retain. 0 disables pruning.
	KeepDays int `mapstructure:"keep_days" toml:"keep_days" yaml:"keep_days" json:"keep_days"`
}

// WatchConfig controls scheduled operation.
type WatchConfig struct {
	// Schedule is a standard 5-field cron expression.
	Schedule string `mapstructure:"schedule" toml:"schedule" yaml:"schedule" json:"schedule"`
}

// LoggingConfig controls default log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" yaml:"level" json:"level"`
	Format string `mapstructure:"format" toml:"format" yaml:"format" json:"format"`
}

// Init initializes Viper with defaults and search paths.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	// Environment variable support, e.g. ZIPNEST_SOURCE_PATH
	viper.SetEnvPrefix("ZIPNEST")
	viper.AutomaticEnv()

	viper.SetDefault("archive.root_name", archive.DefaultRootName)
	viper.SetDefault("archive.daily_format", archive.DefaultDailyFormat)
	viper.SetDefault("archive.hourly_format", archive.DefaultHourlyFormat)
	viper.SetDefault("retention.keep_days", DefaultKeepDays)
	viper.SetDefault("watch.schedule", DefaultSchedule)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Archive: ArchiveConfig{
			RootName:     archive.DefaultRootName,
			DailyFormat:  archive.DefaultDailyFormat,
			HourlyFormat: archive.DefaultHourlyFormat,
		},
		Retention: RetentionConfig{KeepDays: DefaultKeepDays},
		Watch:     WatchConfig{Schedule: DefaultSchedule},
		Logging:   LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches the default locations and falls back to
// defaults when no file is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If the user named a path explicitly, a missing file is an error.
			if path != "" {
				return nil, errors.Wrapf(err, "config file not found at %s", path)
			}
			// Implicit load with no file present: defaults apply.
		} else {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errs[0], "invalid configuration")
	}

	return &cfg, nil
}

// Layout returns the archive layout described by the configuration.
func (c *Config) Layout() archive.Layout {
	return archive.Layout{
		RootName:     c.Archive.RootName,
		DailyFormat:  c.Archive.DailyFormat,
		HourlyFormat: c.Archive.HourlyFormat,
	}
}
