package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"

	"github.com/thoreinstein/zipnest/internal/errors"
	"github.com/thoreinstein/zipnest/pkg/fileutil"
)

// UpdateDaily inserts the finished hourly archive into the daily archive
// as a single entry named by the hourly file's bare filename. The daily
// archive is created if absent; if present, its existing entries are
// preserved and an entry with the same name is replaced rather than
// duplicated.
//
// The update is crash-safe: the new daily archive is assembled in a temp
// file next to the original, existing entries are copied over raw
// (without recompression), and the temp file is renamed into place only
// after a clean finalize. A failure at any point leaves the previous
// daily archive untouched. Returns whether an existing entry was replaced.
func UpdateDaily(dailyPath, hourlyPath string) (bool, error) {
	entryName := filepath.Base(hourlyPath)

	tmp, err := os.CreateTemp(filepath.Dir(dailyPath), ".zipnest-daily-*.tmp")
	if err != nil {
		return false, errors.Wrapf(ErrArchiveOpen, "%s: %v", dailyPath, err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	zw := zip.NewWriter(tmp)

	replaced, err := carryExistingEntries(zw, dailyPath, entryName)
	if err != nil {
		cleanup()
		return false, err
	}

	if err := embedHourly(zw, hourlyPath, entryName); err != nil {
		cleanup()
		return false, err
	}

	if err := zw.Close(); err != nil {
		cleanup()
		return false, errors.Wrapf(ErrArchiveFinalize, "%s: %v", dailyPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return false, errors.Wrapf(ErrArchiveFinalize, "%s: %v", dailyPath, err)
	}

	if err := fileutil.ReplaceFile(tmpName, dailyPath); err != nil {
		return false, errors.Wrapf(ErrArchiveFinalize, "%s: %v", dailyPath, err)
	}

	return replaced, nil
}

// carryExistingEntries copies the current daily archive's entries into zw
// raw, skipping any entry that matches the name about to be inserted.
// A missing daily archive is not an error; the day is just starting.
func carryExistingEntries(zw *zip.Writer, dailyPath, skipName string) (bool, error) {
	existing, err := zip.OpenReader(dailyPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, errors.Wrapf(ErrArchiveOpen, "%s: %v", dailyPath, err)
	}
	defer existing.Close()

	replaced := false
	for _, f := range existing.File {
		if f.Name == skipName {
			replaced = true
			continue
		}
		if err := zw.Copy(f); err != nil {
			return false, errors.Wrapf(ErrEmbed, "carrying entry %s: %v", f.Name, err)
		}
	}
	return replaced, nil
}

// embedHourly streams the hourly archive file into zw as one entry. The
// hourly zip is an opaque, already-compressed blob, so it is stored
// rather than deflated again.
func embedHourly(zw *zip.Writer, hourlyPath, entryName string) error {
	src, err := os.Open(hourlyPath)
	if err != nil {
		return errors.Wrapf(ErrEmbed, "%s: %v", hourlyPath, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return errors.Wrapf(ErrEmbed, "%s: %v", hourlyPath, err)
	}

	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return errors.Wrapf(ErrEmbed, "%s: %v", hourlyPath, err)
	}
	hdr.Name = entryName
	hdr.Method = zip.Store

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return errors.Wrapf(ErrEmbed, "%s: %v", entryName, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return errors.Wrapf(ErrEmbed, "%s: %v", entryName, err)
	}
	return nil
}
