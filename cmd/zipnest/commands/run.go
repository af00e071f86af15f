package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zipnest/internal/archive"
	"github.com/thoreinstein/zipnest/internal/errors"
	"github.com/thoreinstein/zipnest/internal/logging"
	"github.com/thoreinstein/zipnest/internal/retention"
	"github.com/thoreinstein/zipnest/internal/session"
)

var runSource string

func init() {
	runCmd.Flags().StringVar(&runSource, "source", "",
		"session directory to back up (overrides discovery)")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Perform one backup run",
	Long: `Perform one backup run against the live session directory.

The run rebuilds this hour's archive from scratch, then folds it into the
day's archive as a single entry. Rerunning within the same hour replaces
that hour's entry; runs in later hours accumulate alongside it.

Archives older than the retention window are pruned after a successful
backup (set retention.keep_days to 0 to disable).`,
	Example: `  # Back up the discovered session directory
  zipnest run

  # Back up a specific directory
  zipnest run --source /srv/app/sessions

  See Also:
    zipnest watch - Run on a schedule
    zipnest list  - Inspect produced archives`,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, _ []string) error {
	return runBackup(cmd.Context(), cmd.OutOrStdout(), runSource)
}

// runBackup performs one full backup run and prints a summary to w.
func runBackup(ctx context.Context, w io.Writer, override string) error {
	cfg := currentConfig()
	log := logging.FromContext(ctx)

	dir, err := discoverSession(ctx, cfg, override)
	if err != nil {
		if errors.Is(err, session.ErrNoActiveSession) {
			fmt.Fprintf(w, "%sNo active session; nothing to back up.%s\n", colorGray, colorReset)
			return errors.NewNothingToDoError(err)
		}
		return errors.NewUserError(err, "Check the [source] section of your config")
	}
	log.Info("starting backup run", "source", dir)

	runner := archive.NewRunner(cfg.Layout(), cfg.Archive.Exclude...)
	res, err := runner.Run(ctx, dir, time.Now())
	if err != nil {
		return errors.NewSystemError(err, "Check permissions and free space under "+dir)
	}

	fmt.Fprintf(w, "%s✓ archived %d entries → %s%s", colorGreen, res.Entries,
		filepath.Base(res.HourlyPath), colorReset)
	if res.Replaced {
		fmt.Fprintf(w, " %s(replaced this hour's entry)%s", colorYellow, colorReset)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s✓ daily archive updated → %s%s\n", colorGreen,
		filepath.Base(res.DailyPath), colorReset)

	// Retention is housekeeping; a prune failure does not undo a
	// successful backup.
	removed, err := retention.Prune(ctx, res.ArchiveRoot, cfg.Layout(),
		cfg.Retention.KeepDays, time.Now())
	if err != nil {
		log.Warn("retention pruning failed", "error", err)
	} else if len(removed) > 0 {
		fmt.Fprintf(w, "%s✓ pruned %d expired archive(s)%s\n", colorGreen,
			len(removed), colorReset)
	}

	return nil
}
