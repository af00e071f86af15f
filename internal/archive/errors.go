package archive

import "github.com/thoreinstein/zipnest/internal/errors"

// Sentinel errors for the archive engine. Each names the stage that
// failed; wrapping adds the specific path so operators can tell a
// permission problem from a full disk without reading code.
var (
	// ErrDirectoryCreate indicates the archive root could not be created.
	ErrDirectoryCreate = errors.New("archive directory create failed")

	// ErrArchiveOpen indicates an archive file could not be opened or created.
	ErrArchiveOpen = errors.New("archive open failed")

	// ErrArchiveEntry indicates a single entry could not be added.
	// The wrap names the offending relative path.
	ErrArchiveEntry = errors.New("archive entry failed")

	// ErrArchiveFinalize indicates the archive could not be flushed and closed.
	ErrArchiveFinalize = errors.New("archive finalize failed")

	// ErrEmbed indicates the hourly archive could not be inserted into the daily archive.
	ErrEmbed = errors.New("daily embed failed")
)
