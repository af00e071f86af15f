package archive

import (
	"path/filepath"
	"time"
)

// Default layout values. The formats are Go time layouts; with the
// defaults a day's archive is 2026-08-24.zip and the 2 PM hourly archive
// is 14.zip.
const (
	DefaultRootName     = "archives"
	DefaultDailyFormat  = "2006-01-02.zip"
	DefaultHourlyFormat = "15.zip"

	// MetadataDirName is zipnest's own scratch directory name. It is
	// always excluded from archiving, like the archive root itself.
	MetadataDirName = ".zipnest"
)

// Layout derives archive locations from a backup root and a wall-clock
// time. It holds no state and performs no I/O.
type Layout struct {
	// RootName is the subdirectory of the backup root that holds all
	// produced archives.
	RootName string

	// DailyFormat is the time layout producing the daily archive filename.
	DailyFormat string

	// HourlyFormat is the time layout producing the hourly archive filename.
	HourlyFormat string
}

// DefaultLayout returns the layout used when nothing is configured.
func DefaultLayout() Layout {
	return Layout{
		RootName:     DefaultRootName,
		DailyFormat:  DefaultDailyFormat,
		HourlyFormat: DefaultHourlyFormat,
	}
}

// Paths are the resolved archive locations for one run.
type Paths struct {
	// ArchiveRoot is <backupRoot>/<RootName>.
	ArchiveRoot string

	// Daily is the daily archive file, stable for all runs within a
	// calendar day.
	Daily string

	// Hourly is the hourly archive file, rebuilt on every run within
	// the hour.
	Hourly string
}

// Resolve computes the archive paths for the given backup root at the
// given time.
func (l Layout) Resolve(backupRoot string, now time.Time) Paths {
	root := filepath.Join(backupRoot, l.RootName)
	return Paths{
		ArchiveRoot: root,
		Daily:       filepath.Join(root, now.Format(l.DailyFormat)),
		Hourly:      filepath.Join(root, now.Format(l.HourlyFormat)),
	}
}

// DailyName returns the daily archive filename for the given time.
func (l Layout) DailyName(now time.Time) string {
	return now.Format(l.DailyFormat)
}

// HourlyName returns the hourly archive filename for the given time.
func (l Layout) HourlyName(now time.Time) string {
	return now.Format(l.HourlyFormat)
}
