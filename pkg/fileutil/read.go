package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/zipnest/internal/errors"
)

// MaxStateFileSize is the maximum size accepted for a session state file (64KB).
// State files hold a single path; anything larger is malformed.
const MaxStateFileSize = 64 * 1024

// ErrFileTooLarge indicates that a file exceeded MaxStateFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxStateFileSize)

// ReadFileWithLimit reads a file up to MaxStateFileSize.
// It returns an error if the file is larger than the limit.
func ReadFileWithLimit(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	// Fail fast if size is already too large
	info, err := f.Stat()
	if err == nil {
		if info.Size() > MaxStateFileSize {
			return nil, ErrFileTooLarge
		}
	}

	r := io.LimitReader(f, MaxStateFileSize+1)
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	if len(data) > MaxStateFileSize {
		return nil, ErrFileTooLarge
	}

	return data, nil
}
