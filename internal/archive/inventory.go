package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/thoreinstein/zipnest/internal/errors"
)

// Kind classifies an archive file by which layout format its name matches.
type Kind string

const (
	KindDaily   Kind = "daily"
	KindHourly  Kind = "hourly"
	KindUnknown Kind = "unknown"
)

// Info describes one archive file in the archive root.
type Info struct {
	Name    string    `json:"name" yaml:"name"`
	Path    string    `json:"path" yaml:"path"`
	Kind    Kind      `json:"kind" yaml:"kind"`
	Size    int64     `json:"size" yaml:"size"`
	ModTime time.Time `json:"mod_time" yaml:"mod_time"`
	Entries int       `json:"entries" yaml:"entries"`
}

// Entry describes one entry inside an archive file.
type Entry struct {
	Name     string    `json:"name" yaml:"name"`
	Size     uint64    `json:"size" yaml:"size"`
	Modified time.Time `json:"modified" yaml:"modified"`
	Dir      bool      `json:"dir" yaml:"dir"`
}

// Inventory scans the archive root and describes every zip file in it,
// newest first. A missing archive root yields an empty inventory, not an
// error: no run has happened yet.
func Inventory(archiveRoot string, layout Layout) ([]Info, error) {
	dirEntries, err := os.ReadDir(archiveRoot)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading archive root %s", archiveRoot)
	}

	var infos []Info
	for _, de := range dirEntries {
		if de.IsDir() || filepath.Ext(de.Name()) != ".zip" {
			continue
		}

		fi, err := de.Info()
		if err != nil {
			// Race-deleted between ReadDir and stat; skip.
			continue
		}

		path := filepath.Join(archiveRoot, de.Name())
		info := Info{
			Name:    de.Name(),
			Path:    path,
			Kind:    layout.Classify(de.Name()),
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
			Entries: countEntries(path),
		}
		infos = append(infos, info)
	}

	slices.SortFunc(infos, func(a, b Info) int {
		return b.ModTime.Compare(a.ModTime)
	})

	return infos, nil
}

// ListEntries returns the entries of a zip archive in stored order.
func ListEntries(path string) ([]Entry, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrapf(ErrArchiveOpen, "%s: %v", path, err)
	}
	defer r.Close()

	entries := make([]Entry, 0, len(r.File))
	for _, f := range r.File {
		entries = append(entries, Entry{
			Name:     f.Name,
			Size:     f.UncompressedSize64,
			Modified: f.Modified,
			Dir:      f.FileInfo().IsDir(),
		})
	}
	return entries, nil
}

// Classify reports which of the layout's formats a filename matches.
// Daily wins ties: a format like 2006-01-02.zip can never collide with
// 15.zip, but if a user configures overlapping formats the coarser
// classification is the useful one.
func (l Layout) Classify(name string) Kind {
	if _, err := time.Parse(l.DailyFormat, name); err == nil {
		return KindDaily
	}
	if _, err := time.Parse(l.HourlyFormat, name); err == nil {
		return KindHourly
	}
	return KindUnknown
}

// countEntries returns the entry count of a zip file, or 0 if it cannot
// be read. Inventory is informational; a corrupt file still gets listed
// with its size and mtime.
func countEntries(path string) int {
	r, err := zip.OpenReader(path)
	if err != nil {
		return 0
	}
	defer r.Close()
	return len(r.File)
}
