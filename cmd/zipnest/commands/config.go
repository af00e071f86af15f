package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/zipnest/internal/archive"
	"github.com/thoreinstein/zipnest/internal/config"
	"github.com/thoreinstein/zipnest/internal/errors"
	"github.com/thoreinstein/zipnest/internal/paths"
	"github.com/thoreinstein/zipnest/pkg/fileutil"
)

var (
	configOutputFormat string
	configInitForce    bool
)

func init() {
	configCmd.Flags().StringVarP(&configOutputFormat, "format", "f", "toml",
		"output format: toml, yaml, json")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false,
		"overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration after merging the config file,
environment variables (ZIPNEST_*), and built-in defaults.`,
	Example: `  # Effective configuration as TOML
  zipnest config

  # As YAML or JSON
  zipnest config -f yaml
  zipnest config -f json

  # Write a starter config file
  zipnest config init`,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg := currentConfig()
	w := cmd.OutOrStdout()

	switch configOutputFormat {
	case "toml":
		return toml.NewEncoder(w).Encode(cfg)
	case "yaml":
		return yaml.NewEncoder(w).Encode(cfg)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	default:
		return errors.NewUserError(
			errors.Newf("unknown format %q", configOutputFormat),
			"Use one of: toml, yaml, json")
	}
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Write a starter config file with the built-in defaults to the user
configuration directory. Refuses to overwrite an existing file unless
--force is given.`,
	RunE: runConfigInit,
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	dir := paths.ConfigDir()
	path := filepath.Join(dir, "config.toml")

	if !configInitForce {
		if _, err := os.Stat(path); err == nil {
			return errors.NewUserError(
				errors.Newf("config file already exists at %s", path),
				"Pass --force to overwrite it")
		}
	}

	if err := paths.EnsureDir(dir, 0); err != nil {
		return errors.NewSystemError(err, "Check permissions on "+dir)
	}

	if err := fileutil.AtomicWriteFile(path, []byte(starterConfig()), 0o644); err != nil {
		return errors.NewSystemError(err, "Check permissions on "+dir)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s✓ wrote %s%s\n", colorGreen, path, colorReset)
	return nil
}

// starterConfig renders a commented config file with the built-in defaults.
func starterConfig() string {
	return fmt.Sprintf(`# zipnest configuration.
# Every key can also be set via environment variables with the ZIPNEST_
# prefix, e.g. ZIPNEST_SOURCE_PATH.

[source]
# The live session directory to back up. The first of path, path_env and
# session_file that yields a directory wins; leave all three empty if
# you always pass --source on the command line.
path = ""
# Environment variable consulted for the session directory.
path_env = ""
# State file maintained by the live application; its first non-empty
# line is the session directory.
session_file = ""

[archive]
# Subdirectory of the session directory that holds produced archives.
root_name = %q
# Go time layouts for the archive filenames.
daily_format = %q
hourly_format = %q
# Directory names to skip anywhere in the tree.
exclude = []

[retention]
# Remove archives older than this many days. 0 disables pruning.
keep_days = %d

[watch]
# Cron schedule for 'zipnest watch'.
schedule = %q

[logging]
level = "info"
format = "text"
`,
		archive.DefaultRootName, archive.DefaultDailyFormat, archive.DefaultHourlyFormat,
		config.DefaultKeepDays, config.DefaultSchedule)
}
