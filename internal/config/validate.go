package config

import (
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/thoreinstein/zipnest/internal/errors"
)

// granularity reference: two instants one hour apart on the same day.
// Formatting both with a layout reveals whether the layout resolves hours.
var (
	granularityBase = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	granularityNext = granularityBase.Add(time.Hour)
)

// Validate checks the configuration for consistency and returns all
// problems found.
func Validate(cfg *Config) []error {
	var errs []error

	if err := validateName(cfg.Archive.RootName, "archive.root_name"); err != nil {
		errs = append(errs, err)
	}
	for _, name := range cfg.Archive.Exclude {
		if err := validateName(name, "archive.exclude"); err != nil {
			errs = append(errs, err)
		}
	}

	errs = append(errs, validateFormats(cfg.Archive.DailyFormat, cfg.Archive.HourlyFormat)...)

	if cfg.Retention.KeepDays < 0 {
		errs = append(errs, errors.Newf("retention.keep_days must be non-negative, got %d", cfg.Retention.KeepDays))
	}

	if cfg.Watch.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Watch.Schedule); err != nil {
			errs = append(errs, errors.Wrapf(err, "watch.schedule %q is not a valid cron expression", cfg.Watch.Schedule))
		}
	}

	return errs
}

// validateName rejects empty names and names containing path separators:
// exclusion matches single path segments, and the archive root is a
// direct subdirectory of the session directory.
func validateName(name, key string) error {
	if name == "" {
		return errors.Newf("%s must not be empty", key)
	}
	if strings.ContainsAny(name, `/\`) {
		return errors.Newf("%s %q must be a bare directory name, not a path", key, name)
	}
	if name == "." || name == ".." {
		return errors.Newf("%s %q is not a usable directory name", key, name)
	}
	return nil
}

// validateFormats enforces the granularity contract between the two
// layouts: the hourly format must produce a distinct name each hour, and
// the daily format must be stable across hours within a day so the
// nesting step is meaningful.
func validateFormats(daily, hourly string) []error {
	var errs []error

	if daily == "" {
		errs = append(errs, errors.New("archive.daily_format must not be empty"))
	}
	if hourly == "" {
		errs = append(errs, errors.New("archive.hourly_format must not be empty"))
	}
	if len(errs) > 0 {
		return errs
	}

	if granularityBase.Format(hourly) == granularityNext.Format(hourly) {
		errs = append(errs, errors.Newf(
			"archive.hourly_format %q does not vary by hour", hourly))
	}
	if granularityBase.Format(daily) != granularityNext.Format(daily) {
		errs = append(errs, errors.Newf(
			"archive.daily_format %q varies within a day; it must be coarser than the hourly format", daily))
	}

	return errs
}
