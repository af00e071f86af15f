// Package retention removes archives that have aged out of the
// configured window. Retention is best understood as a sweep over the
// archive root: any zip older than the cutoff is deleted, daily and
// hourly alike. Age is judged by modification time, which both archive
// kinds update on every run that touches them.
package retention

import (
	"context"
	"os"
	"time"

	"github.com/thoreinstein/zipnest/internal/archive"
	"github.com/thoreinstein/zipnest/internal/errors"
	"github.com/thoreinstein/zipnest/internal/logging"
)

// Prune deletes archives in archiveRoot whose modification time is older
// than keepDays before now. keepDays <= 0 disables pruning entirely.
// Returns the paths that were removed.
//
// Files the layout does not recognize as daily or hourly archives are
// left alone; retention never deletes something it did not produce.
func Prune(ctx context.Context, archiveRoot string, layout archive.Layout, keepDays int, now time.Time) ([]string, error) {
	if keepDays <= 0 {
		return nil, nil
	}

	log := logging.FromContext(ctx)
	cutoff := now.AddDate(0, 0, -keepDays)

	infos, err := archive.Inventory(archiveRoot, layout)
	if err != nil {
		return nil, errors.Wrap(err, "scanning archive root")
	}

	var removed []string
	for _, info := range infos {
		if info.Kind == archive.KindUnknown {
			continue
		}
		if !info.ModTime.Before(cutoff) {
			continue
		}

		if err := os.Remove(info.Path); err != nil {
			return removed, errors.Wrapf(err, "removing expired archive %s", info.Path)
		}
		log.Debug("removed expired archive", "path", info.Path, "mod_time", info.ModTime)
		removed = append(removed, info.Path)
	}

	return removed, nil
}
