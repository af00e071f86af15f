package archive

import "strings"

// Filter decides which filesystem entries are eligible for archiving.
// It is a pure predicate over relative paths; unreadable entries are the
// walker's concern, not the filter's.
type Filter struct {
	excluded map[string]struct{}
}

// NewFilter builds a filter for the given layout plus any extra excluded
// directory names. The layout's root name and zipnest's own metadata
// directory are always excluded, so the archive tree never archives
// itself no matter where a future layout places it.
func NewFilter(layout Layout, extra ...string) *Filter {
	f := &Filter{excluded: make(map[string]struct{}, len(extra)+2)}
	f.add(layout.RootName)
	f.add(MetadataDirName)
	for _, name := range extra {
		f.add(name)
	}
	return f
}

func (f *Filter) add(name string) {
	if name != "" {
		f.excluded[name] = struct{}{}
	}
}

// Excludes reports whether a single directory name is in the exclusion set.
func (f *Filter) Excludes(name string) bool {
	_, ok := f.excluded[name]
	return ok
}

// Included reports whether the entry at rel (slash-separated, relative to
// the backup root) should be archived.
//
// An entry is excluded when any segment of its path matches an excluded
// name, or when it is a loose file sitting directly under the backup root:
// only material organized into subdirectories is backed up.
func (f *Filter) Included(rel string, isDir bool) bool {
	rel = strings.Trim(rel, "/")
	if rel == "" || rel == "." {
		return false
	}

	segments := strings.Split(rel, "/")
	for _, seg := range segments {
		if f.Excludes(seg) {
			return false
		}
	}

	// Loose files directly under the backup root.
	if !isDir && len(segments) == 1 {
		return false
	}

	return true
}
