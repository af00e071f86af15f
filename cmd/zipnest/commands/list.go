package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/zipnest/internal/archive"
	"github.com/thoreinstein/zipnest/internal/errors"
	"github.com/thoreinstein/zipnest/internal/session"
)

var (
	listSource      string
	listJSON        bool
	listYAML        bool
	listEntriesOf   string
	listInteractive bool
)

func init() {
	listCmd.Flags().StringVar(&listSource, "source", "",
		"session directory whose archives to list (overrides discovery)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	listCmd.Flags().BoolVar(&listYAML, "yaml", false, "output as YAML")
	listCmd.Flags().StringVar(&listEntriesOf, "entries", "",
		"list the entries of the named archive instead")
	listCmd.Flags().BoolVarP(&listInteractive, "interactive", "i", false,
		"pick an archive with a fuzzy finder and show its entries")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List produced archives",
	Long: `List the archives produced so far, newest first.

Daily archives accumulate one entry per backed-up hour; hourly archives
hold the session content itself. With --entries the contents of a single
archive are shown; with --interactive an archive is picked with a fuzzy
finder first.`,
	Example: `  # All archives, newest first
  zipnest list

  # Machine-readable
  zipnest list --json

  # What is inside today's archive?
  zipnest list --entries 2026-08-24.zip

  # Browse interactively
  zipnest list -i`,
	RunE: runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg := currentConfig()

	if listJSON && listYAML {
		return errors.NewUserError(nil, "cannot use --json and --yaml together")
	}

	dir, err := discoverSession(cmd.Context(), cfg, listSource)
	if err != nil {
		if errors.Is(err, session.ErrNoActiveSession) {
			return errors.NewNothingToDoError(err)
		}
		return errors.NewUserError(err, "Check the [source] section of your config")
	}

	layout := cfg.Layout()
	archiveRoot := filepath.Join(dir, layout.RootName)

	if listEntriesOf != "" {
		return printEntries(cmd.OutOrStdout(), filepath.Join(archiveRoot, listEntriesOf))
	}

	infos, err := archive.Inventory(archiveRoot, layout)
	if err != nil {
		return errors.NewSystemError(err, "Check that "+archiveRoot+" is readable")
	}

	if listInteractive {
		return pickArchive(cmd.OutOrStdout(), infos)
	}

	return printInventory(cmd.OutOrStdout(), infos)
}

func printInventory(w io.Writer, infos []archive.Info) error {
	switch {
	case listJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	case listYAML:
		return yaml.NewEncoder(w).Encode(infos)
	}

	if len(infos) == 0 {
		fmt.Fprintf(w, "%sNo archives yet. Run: zipnest run%s\n", colorGray, colorReset)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%sNAME\tKIND\tENTRIES\tSIZE\tMODIFIED%s\n", colorBold, colorReset)
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			info.Name, info.Kind, info.Entries,
			formatSize(info.Size),
			info.ModTime.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func printEntries(w io.Writer, path string) error {
	entries, err := archive.ListEntries(path)
	if err != nil {
		return errors.NewUserError(err, "Run: zipnest list")
	}

	switch {
	case listJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case listYAML:
		return yaml.NewEncoder(w).Encode(entries)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%sENTRY\tSIZE\tMODIFIED%s\n", colorBold, colorReset)
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n",
			e.Name, formatSize(int64(e.Size)), e.Modified.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

// pickArchive lets the user choose an archive with a fuzzy finder, with
// the archive's entries shown in the preview pane, then prints the
// chosen archive's entries.
func pickArchive(w io.Writer, infos []archive.Info) error {
	if len(infos) == 0 {
		fmt.Fprintf(w, "%sNo archives yet. Run: zipnest run%s\n", colorGray, colorReset)
		return nil
	}

	idx, err := fuzzyfinder.Find(infos,
		func(i int) string {
			return fmt.Sprintf("%s (%s, %d entries)", infos[i].Name, infos[i].Kind, infos[i].Entries)
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i < 0 {
				return ""
			}
			entries, err := archive.ListEntries(infos[i].Path)
			if err != nil {
				return fmt.Sprintf("unreadable: %v", err)
			}
			preview := ""
			for _, e := range entries {
				preview += e.Name + "\n"
			}
			return preview
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.NewSystemError(err, "Try: zipnest list")
	}

	return printEntries(w, infos[idx].Path)
}

// formatSize renders a byte count in a short human-readable form.
func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
