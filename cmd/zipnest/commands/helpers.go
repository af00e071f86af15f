package commands

import (
	"context"

	"github.com/thoreinstein/zipnest/internal/config"
	"github.com/thoreinstein/zipnest/internal/session"
)

// Color constants for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// discoverSession resolves the live session directory. The override (from
// a --source flag) wins, then the configured fixed path, environment
// variable, and session state file, in that order. The discovered
// directory must actually exist.
func discoverSession(ctx context.Context, cfg *config.Config, override string) (string, error) {
	loc := session.Chain(
		session.Static(override),
		session.Static(cfg.Source.Path),
		session.Env(cfg.Source.PathEnv),
		session.File(cfg.Source.SessionFile),
	)

	dir, err := loc.Discover(ctx)
	if err != nil {
		return "", err
	}
	return session.Validate(dir)
}
