package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zipnest/internal/errors"
	"github.com/thoreinstein/zipnest/internal/retention"
	"github.com/thoreinstein/zipnest/internal/session"
)

var (
	pruneSource   string
	pruneKeepDays int
)

func init() {
	pruneCmd.Flags().StringVar(&pruneSource, "source", "",
		"session directory whose archives to prune (overrides discovery)")
	pruneCmd.Flags().IntVar(&pruneKeepDays, "keep-days", -1,
		"remove archives older than this many days (default from config)")
	rootCmd.AddCommand(pruneCmd)
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove archives older than the retention window",
	Long: `Remove archives older than the retention window.

Age is judged by file modification time. Files in the archive root whose
names match neither the daily nor the hourly format are never touched.`,
	Example: `  # Prune with the configured retention window
  zipnest prune

  # Keep only the last two days
  zipnest prune --keep-days 2`,
	RunE: runPrune,
}

func runPrune(cmd *cobra.Command, _ []string) error {
	cfg := currentConfig()
	w := cmd.OutOrStdout()

	keepDays := pruneKeepDays
	if keepDays < 0 {
		keepDays = cfg.Retention.KeepDays
	}
	if keepDays == 0 {
		fmt.Fprintf(w, "%sRetention disabled (keep_days = 0); nothing to prune.%s\n",
			colorGray, colorReset)
		return nil
	}

	dir, err := discoverSession(cmd.Context(), cfg, pruneSource)
	if err != nil {
		if errors.Is(err, session.ErrNoActiveSession) {
			return errors.NewNothingToDoError(err)
		}
		return errors.NewUserError(err, "Check the [source] section of your config")
	}

	layout := cfg.Layout()
	archiveRoot := filepath.Join(dir, layout.RootName)

	removed, err := retention.Prune(cmd.Context(), archiveRoot, layout, keepDays, time.Now())
	if err != nil {
		return errors.NewSystemError(err, "Check that "+archiveRoot+" is writable")
	}

	if len(removed) == 0 {
		fmt.Fprintf(w, "%sNothing to prune.%s\n", colorGray, colorReset)
		return nil
	}
	for _, path := range removed {
		fmt.Fprintf(w, "%s✓ removed %s%s\n", colorGreen, filepath.Base(path), colorReset)
	}
	return nil
}
