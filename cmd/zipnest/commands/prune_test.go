package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/thoreinstein/zipnest/internal/config"
)

func setPruneFlags(t *testing.T, source string, keepDays int) {
	t.Helper()
	prevSource, prevKeep := pruneSource, pruneKeepDays
	pruneSource, pruneKeepDays = source, keepDays
	t.Cleanup(func() { pruneSource, pruneKeepDays = prevSource, prevKeep })
}

func TestPruneCommand_Metadata(t *testing.T) {
	if pruneCmd.Use != "prune" {
		t.Errorf("Use = %q, want %q", pruneCmd.Use, "prune")
	}
	if pruneCmd.Flags().Lookup("keep-days") == nil {
		t.Error("--keep-days flag should be defined")
	}
}

func TestRunPrune_RemovesAgedArchives(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	setTestConfig(t, cfg)
	setPruneFlags(t, dir, 7)

	archiveRoot := filepath.Join(dir, cfg.Archive.RootName)
	if err := os.MkdirAll(archiveRoot, 0o755); err != nil {
		t.Fatal(err)
	}
	old := filepath.Join(archiveRoot, "2020-01-01.zip")
	fresh := filepath.Join(archiveRoot, time.Now().Format("2006-01-02.zip"))
	for _, path := range []string{old, fresh} {
		if err := os.WriteFile(path, []byte("PK\x05\x06"+strings.Repeat("\x00", 18)), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	stale := time.Now().AddDate(0, 0, -30)
	if err := os.Chtimes(old, stale, stale); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	pruneCmd.SetOut(&buf)
	pruneCmd.SetContext(t.Context())
	t.Cleanup(func() { pruneCmd.SetOut(nil) })

	if err := runPrune(pruneCmd, nil); err != nil {
		t.Fatalf("runPrune() error = %v", err)
	}

	if _, err := os.Stat(old); err == nil {
		t.Error("aged archive should have been removed")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Errorf("fresh archive should survive: %v", err)
	}
	if !strings.Contains(buf.String(), "removed 2020-01-01.zip") {
		t.Errorf("output should name the removed archive, got %q", buf.String())
	}
}

func TestRunPrune_DisabledRetention(t *testing.T) {
	setTestConfig(t, config.Default())
	setPruneFlags(t, t.TempDir(), 0)

	var buf bytes.Buffer
	pruneCmd.SetOut(&buf)
	pruneCmd.SetContext(t.Context())
	t.Cleanup(func() { pruneCmd.SetOut(nil) })

	if err := runPrune(pruneCmd, nil); err != nil {
		t.Fatalf("runPrune() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Retention disabled") {
		t.Errorf("output should say retention is disabled, got %q", buf.String())
	}
}
