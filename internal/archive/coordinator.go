package archive

import (
	"context"
	"time"

	"github.com/thoreinstein/zipnest/internal/errors"
	"github.com/thoreinstein/zipnest/internal/logging"
	"github.com/thoreinstein/zipnest/internal/paths"
)

// Runner orchestrates one backup run: ensure the archive root exists,
// rebuild the hourly archive from the session directory, then fold the
// finished hourly archive into the daily archive. Each stage must fully
// complete before the next begins; the first failure aborts the run.
type Runner struct {
	Layout Layout
	Filter *Filter
}

// NewRunner creates a Runner with the given layout and extra excluded
// directory names.
func NewRunner(layout Layout, exclude ...string) *Runner {
	return &Runner{
		Layout: layout,
		Filter: NewFilter(layout, exclude...),
	}
}

// Result describes a completed run.
type Result struct {
	// ArchiveRoot is the directory holding all produced archives.
	ArchiveRoot string

	// HourlyPath is the rebuilt hourly archive.
	HourlyPath string

	// DailyPath is the updated daily archive.
	DailyPath string

	// Entries is the number of entries written to the hourly archive.
	Entries int

	// Replaced reports whether the daily archive already held an entry
	// for this hour (a rerun within the same hour).
	Replaced bool
}

// Run performs one backup of sourceRoot at the given wall-clock time.
func (r *Runner) Run(ctx context.Context, sourceRoot string, now time.Time) (*Result, error) {
	log := logging.FromContext(ctx)

	p := r.Layout.Resolve(sourceRoot, now)
	log.Debug("resolved archive paths",
		"root", p.ArchiveRoot, "daily", p.Daily, "hourly", p.Hourly)

	if err := paths.EnsureDir(p.ArchiveRoot, 0); err != nil {
		return nil, errors.Wrapf(ErrDirectoryCreate, "%s: %v", p.ArchiveRoot, err)
	}

	entries, err := Build(p.Hourly, sourceRoot, r.Filter)
	if err != nil {
		return nil, err
	}
	log.Debug("hourly archive built", "path", p.Hourly, "entries", entries)

	replaced, err := UpdateDaily(p.Daily, p.Hourly)
	if err != nil {
		return nil, err
	}
	log.Debug("daily archive updated", "path", p.Daily, "replaced", replaced)

	return &Result{
		ArchiveRoot: p.ArchiveRoot,
		HourlyPath:  p.Hourly,
		DailyPath:   p.Daily,
		Entries:     entries,
		Replaced:    replaced,
	}, nil
}
