package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/zipnest/internal/errors"
	"github.com/thoreinstein/zipnest/internal/logging"
	"github.com/thoreinstein/zipnest/internal/session"
)

var (
	watchSchedule string
	watchSource   string
)

func init() {
	watchCmd.Flags().StringVar(&watchSchedule, "schedule", "",
		"cron schedule expression (default from config, hourly)")
	watchCmd.Flags().StringVar(&watchSource, "source", "",
		"session directory to back up (overrides discovery)")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run backups on a schedule until interrupted",
	Long: `Run backups on a cron schedule until interrupted with Ctrl-C.

Each tick performs the same work as a single 'zipnest run'. Ticks that
find no active session are skipped quietly; the watcher keeps running
and picks the session up again once it reappears. Overlapping ticks are
never started: if a backup is still in progress when the next tick
fires, that tick is dropped.`,
	Example: `  # Back up at the top of every hour
  zipnest watch

  # Back up every 15 minutes
  zipnest watch --schedule "*/15 * * * *"`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg := currentConfig()
	log := logging.FromContext(cmd.Context())

	schedule := watchSchedule
	if schedule == "" {
		schedule = cfg.Watch.Schedule
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))
	_, err := c.AddFunc(schedule, func() {
		err := runBackup(ctx, cmd.OutOrStdout(), watchSource)
		switch {
		case err == nil:
		case errors.Is(err, session.ErrNoActiveSession):
			log.Debug("no active session, skipping tick")
		default:
			log.Error("backup run failed", "error", err)
		}
	})
	if err != nil {
		return errors.NewUserError(err, "Check the cron expression syntax")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%sWatching on schedule %q (Ctrl-C to stop)%s\n",
		colorCyan, schedule, colorReset)
	c.Start()

	<-ctx.Done()
	log.Info("shutting down, waiting for in-flight run")

	// Stop returns a context that is done once running jobs finish.
	<-c.Stop().Done()
	fmt.Fprintf(cmd.OutOrStdout(), "%sStopped.%s\n", colorGray, colorReset)
	return nil
}
