package archive

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/thoreinstein/zipnest/internal/errors"
)

// Build packs sourceRoot into a zip archive at archivePath, truncating
// any previous archive at that path. Entries are named by their
// slash-separated path relative to sourceRoot; excluded subtrees are
// pruned without descending into them.
//
// The build is all-or-nothing: on any entry failure the partial archive
// file is removed and the error names the offending path. Returns the
// number of entries written.
func Build(archivePath, sourceRoot string, filter *Filter) (int, error) {
	out, err := os.OpenFile(archivePath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, errors.Wrapf(ErrArchiveOpen, "%s: %v", archivePath, err)
	}

	zw := zip.NewWriter(out)
	entries, err := addTree(zw, sourceRoot, filter)
	if err != nil {
		// Release the half-written archive; a partial zip is not an
		// acceptable end state.
		zw.Close()
		out.Close()
		os.Remove(archivePath)
		return 0, err
	}

	if err := zw.Close(); err != nil {
		out.Close()
		os.Remove(archivePath)
		return 0, errors.Wrapf(ErrArchiveFinalize, "%s: %v", archivePath, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(archivePath)
		return 0, errors.Wrapf(ErrArchiveFinalize, "%s: %v", archivePath, err)
	}

	return entries, nil
}

// addTree walks sourceRoot depth-first and streams every included entry
// into zw. WalkDir visits a directory before its contents, so directory
// entries always precede the files within them.
func addTree(zw *zip.Writer, sourceRoot string, filter *Filter) (int, error) {
	entries := 0

	err := filepath.WalkDir(sourceRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return errors.Wrapf(ErrArchiveEntry, "%s: %v", path, walkErr)
		}
		if path == sourceRoot {
			return nil
		}

		rel, err := filepath.Rel(sourceRoot, path)
		if err != nil {
			return errors.Wrapf(ErrArchiveEntry, "%s: %v", path, err)
		}
		rel = filepath.ToSlash(rel)

		if !filter.Included(rel, d.IsDir()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if err := addDir(zw, rel, d); err != nil {
				return err
			}
		} else {
			if err := addFile(zw, rel, path, d); err != nil {
				return err
			}
		}

		entries++
		return nil
	})

	return entries, err
}

// addDir writes an explicit directory entry so the hierarchy survives
// even for empty directories.
func addDir(zw *zip.Writer, rel string, d fs.DirEntry) error {
	hdr, err := entryHeader(rel+"/", d)
	if err != nil {
		return err
	}
	if _, err := zw.CreateHeader(hdr); err != nil {
		return errors.Wrapf(ErrArchiveEntry, "%s: %v", rel, err)
	}
	return nil
}

// addFile streams the file's bytes into a new deflated entry. The file is
// read through io.Copy, never loaded whole into memory.
func addFile(zw *zip.Writer, rel, path string, d fs.DirEntry) error {
	hdr, err := entryHeader(rel, d)
	if err != nil {
		return err
	}
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return errors.Wrapf(ErrArchiveEntry, "%s: %v", rel, err)
	}

	src, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(ErrArchiveEntry, "%s: %v", rel, err)
	}
	defer src.Close()

	if _, err := io.Copy(w, src); err != nil {
		return errors.Wrapf(ErrArchiveEntry, "%s: %v", rel, err)
	}
	return nil
}

// entryHeader builds a zip header carrying the entry's name and mod time.
func entryHeader(name string, d fs.DirEntry) (*zip.FileHeader, error) {
	info, err := d.Info()
	if err != nil {
		return nil, errors.Wrapf(ErrArchiveEntry, "%s: %v", name, err)
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return nil, errors.Wrapf(ErrArchiveEntry, "%s: %v", name, err)
	}
	hdr.Name = name
	return hdr, nil
}
