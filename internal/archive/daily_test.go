package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildHourly builds a small hourly archive named name with the given
// file contents and returns its path.
func buildHourly(t *testing.T, dir, name string, files map[string]string) string {
	t.Helper()
	src := t.TempDir()
	writeTree(t, src, files)

	path := filepath.Join(dir, name)
	_, err := Build(path, src, NewFilter(DefaultLayout()))
	require.NoError(t, err)
	return path
}

func TestUpdateDaily_CreatesWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	hourly := buildHourly(t, dir, "14.zip", map[string]string{"scripts/a.lua": "a"})
	daily := filepath.Join(dir, "2026-08-24.zip")

	replaced, err := UpdateDaily(daily, hourly)
	require.NoError(t, err)
	assert.False(t, replaced)

	got := readZip(t, daily)
	require.Len(t, got, 1)
	assert.Contains(t, got, "14.zip")
}

func TestUpdateDaily_AccumulatesAcrossHours(t *testing.T) {
	dir := t.TempDir()
	daily := filepath.Join(dir, "2026-08-24.zip")

	h14 := buildHourly(t, dir, "14.zip", map[string]string{"scripts/a.lua": "2pm"})
	_, err := UpdateDaily(daily, h14)
	require.NoError(t, err)

	h15 := buildHourly(t, dir, "15.zip", map[string]string{"scripts/a.lua": "3pm"})
	_, err = UpdateDaily(daily, h15)
	require.NoError(t, err)

	got := readZip(t, daily)
	require.Len(t, got, 2)
	assert.Contains(t, got, "14.zip")
	assert.Contains(t, got, "15.zip")
}

func TestUpdateDaily_ReplacesSameHourEntry(t *testing.T) {
	// Rerunning within the hour must not duplicate the entry; the stale
	// blob is replaced by the fresh one.
	dir := t.TempDir()
	daily := filepath.Join(dir, "2026-08-24.zip")

	stale := buildHourly(t, dir, "14.zip", map[string]string{"scripts/a.lua": "old"})
	_, err := UpdateDaily(daily, stale)
	require.NoError(t, err)

	fresh := buildHourly(t, dir, "14.zip", map[string]string{"scripts/a.lua": "new"})
	freshBytes, err := os.ReadFile(fresh)
	require.NoError(t, err)

	replaced, err := UpdateDaily(daily, fresh)
	require.NoError(t, err)
	assert.True(t, replaced)

	got := readZip(t, daily)
	require.Len(t, got, 1)
	assert.Equal(t, string(freshBytes), got["14.zip"])
}

func TestUpdateDaily_EmbeddedArchiveIsOpaque(t *testing.T) {
	// The nested hourly entry must be a byte-for-byte copy of the
	// finished hourly archive, itself a readable zip.
	dir := t.TempDir()
	hourly := buildHourly(t, dir, "14.zip", map[string]string{"scripts/a.lua": "nested"})
	hourlyBytes, err := os.ReadFile(hourly)
	require.NoError(t, err)

	daily := filepath.Join(dir, "2026-08-24.zip")
	_, err = UpdateDaily(daily, hourly)
	require.NoError(t, err)

	r, err := zip.OpenReader(daily)
	require.NoError(t, err)
	defer r.Close()

	require.Len(t, r.File, 1)
	rc, err := r.File[0].Open()
	require.NoError(t, err)
	embedded, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)

	assert.Equal(t, hourlyBytes, embedded)

	// The embedded bytes are themselves a valid zip with the expected content.
	inner, err := zip.NewReader(bytes.NewReader(embedded), int64(len(embedded)))
	require.NoError(t, err)
	var names []string
	for _, f := range inner.File {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "scripts/a.lua")
}

func TestUpdateDaily_FailureLeavesDailyIntact(t *testing.T) {
	dir := t.TempDir()
	daily := filepath.Join(dir, "2026-08-24.zip")

	h14 := buildHourly(t, dir, "14.zip", map[string]string{"scripts/a.lua": "2pm"})
	_, err := UpdateDaily(daily, h14)
	require.NoError(t, err)

	before, err := os.ReadFile(daily)
	require.NoError(t, err)

	// The hourly file vanished between build and embed.
	_, err = UpdateDaily(daily, filepath.Join(dir, "15.zip"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmbed)

	after, err := os.ReadFile(daily)
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed update must not corrupt accumulated entries")

	// No temp artifacts left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}

func TestUpdateDaily_EntryNamedByBareFilename(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "sub")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	hourly := buildHourly(t, nested, "09.zip", map[string]string{"scripts/a.lua": "x"})

	daily := filepath.Join(dir, "2026-08-24.zip")
	_, err := UpdateDaily(daily, hourly)
	require.NoError(t, err)

	got := readZip(t, daily)
	assert.Contains(t, got, "09.zip", "daily entries are a flat list of filenames, not paths")
}
