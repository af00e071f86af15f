package archive

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_Run(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{
		"scripts/a.lua": "print('hi')",
		"loose.txt":     "ignored",
	})

	runner := NewRunner(DefaultLayout())
	now := time.Date(2026, 8, 24, 14, 5, 0, 0, time.UTC)

	res, err := runner.Run(t.Context(), src, now)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(src, "archives"), res.ArchiveRoot)
	assert.Equal(t, 2, res.Entries)
	assert.False(t, res.Replaced)

	// Both archives exist on disk; the hourly remains for direct access.
	assert.FileExists(t, res.HourlyPath)
	assert.FileExists(t, res.DailyPath)

	hourly := readZip(t, res.HourlyPath)
	assert.Equal(t, map[string]string{
		"scripts/":      "",
		"scripts/a.lua": "print('hi')",
	}, hourly)

	daily := readZip(t, res.DailyPath)
	require.Len(t, daily, 1)
	assert.Contains(t, daily, "14.zip")
}

func TestRunner_Run_CreatesArchiveRootOnce(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{"scripts/a.lua": "x"})

	runner := NewRunner(DefaultLayout())
	now := time.Date(2026, 8, 24, 14, 0, 0, 0, time.UTC)

	_, err := runner.Run(t.Context(), src, now)
	require.NoError(t, err)

	// A second run reuses the existing root.
	_, err = runner.Run(t.Context(), src, now)
	require.NoError(t, err)
}

func TestRunner_Run_RerunSameHourReplaces(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{"scripts/a.lua": "v1"})

	runner := NewRunner(DefaultLayout())
	now := time.Date(2026, 8, 24, 14, 0, 0, 0, time.UTC)

	_, err := runner.Run(t.Context(), src, now)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(
		filepath.Join(src, "scripts", "a.lua"), []byte("v2"), 0o644))

	res, err := runner.Run(t.Context(), src, now.Add(20*time.Minute))
	require.NoError(t, err)
	assert.True(t, res.Replaced)

	// Still exactly one 14.zip entry, now with the fresh content.
	daily := readZip(t, res.DailyPath)
	require.Len(t, daily, 1)

	hourly := readZip(t, res.HourlyPath)
	assert.Equal(t, "v2", hourly["scripts/a.lua"])
}

func TestRunner_Run_AccumulatesAcrossHours(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{"scripts/a.lua": "x"})

	runner := NewRunner(DefaultLayout())
	at14 := time.Date(2026, 8, 24, 14, 0, 0, 0, time.UTC)
	at15 := at14.Add(time.Hour)

	_, err := runner.Run(t.Context(), src, at14)
	require.NoError(t, err)

	res, err := runner.Run(t.Context(), src, at15)
	require.NoError(t, err)
	assert.False(t, res.Replaced)

	daily := readZip(t, res.DailyPath)
	require.Len(t, daily, 2)
	assert.Contains(t, daily, "14.zip")
	assert.Contains(t, daily, "15.zip")
}

func TestRunner_Run_NeverArchivesItself(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{"scripts/a.lua": "x"})

	runner := NewRunner(DefaultLayout())
	at14 := time.Date(2026, 8, 24, 14, 0, 0, 0, time.UTC)

	// Seed the archive root with a prior day's output.
	_, err := runner.Run(t.Context(), src, at14.Add(-24*time.Hour))
	require.NoError(t, err)

	res, err := runner.Run(t.Context(), src, at14)
	require.NoError(t, err)

	for name := range readZip(t, res.HourlyPath) {
		assert.NotContains(t, name, "archives")
	}
}

func TestRunner_Run_DirectoryCreateError(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	src := t.TempDir()
	require.NoError(t, os.Chmod(src, 0o500))
	t.Cleanup(func() { os.Chmod(src, 0o755) })

	runner := NewRunner(DefaultLayout())
	_, err := runner.Run(t.Context(), src, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDirectoryCreate)
}
