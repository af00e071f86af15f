package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/thoreinstein/zipnest/internal/archive"
)

func TestListCommand_Metadata(t *testing.T) {
	if listCmd.Use != "list" {
		t.Errorf("Use = %q, want %q", listCmd.Use, "list")
	}
	for _, flag := range []string{"json", "yaml", "entries", "interactive", "source"} {
		if listCmd.Flags().Lookup(flag) == nil {
			t.Errorf("--%s flag should be defined", flag)
		}
	}
}

func TestPrintInventory_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := printInventory(&buf, nil); err != nil {
		t.Fatalf("printInventory() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No archives yet") {
		t.Errorf("empty inventory should say so, got %q", buf.String())
	}
}

func TestPrintInventory_Tabular(t *testing.T) {
	infos := []archive.Info{
		{
			Name:    "2026-08-24.zip",
			Kind:    archive.KindDaily,
			Size:    4096,
			ModTime: time.Date(2026, 8, 24, 15, 0, 0, 0, time.UTC),
			Entries: 3,
		},
		{
			Name:    "15.zip",
			Kind:    archive.KindHourly,
			Size:    2048,
			ModTime: time.Date(2026, 8, 24, 15, 0, 0, 0, time.UTC),
			Entries: 12,
		},
	}

	var buf bytes.Buffer
	if err := printInventory(&buf, infos); err != nil {
		t.Fatalf("printInventory() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{"NAME", "2026-08-24.zip", "daily", "15.zip", "hourly", "4.0 KiB"} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got:\n%s", want, output)
		}
	}
}

func TestPrintInventory_JSON(t *testing.T) {
	prev := listJSON
	listJSON = true
	t.Cleanup(func() { listJSON = prev })

	infos := []archive.Info{
		{Name: "14.zip", Kind: archive.KindHourly, Entries: 2},
	}

	var buf bytes.Buffer
	if err := printInventory(&buf, infos); err != nil {
		t.Fatalf("printInventory() error = %v", err)
	}

	var decoded []archive.Info
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Name != "14.zip" {
		t.Errorf("decoded = %+v, want one entry named 14.zip", decoded)
	}
}

func TestPrintEntries_UnreadableArchive(t *testing.T) {
	var buf bytes.Buffer
	err := printEntries(&buf, "/nonexistent/archive.zip")
	if err == nil {
		t.Fatal("expected an error for a missing archive")
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
		{5 * 1024 * 1024 * 1024, "5.0 GiB"},
	}
	for _, tt := range tests {
		if got := formatSize(tt.n); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
