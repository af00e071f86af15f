package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_ExcludedNameAnywhere(t *testing.T) {
	f := NewFilter(DefaultLayout(), "cache")

	tests := []struct {
		rel   string
		isDir bool
		want  bool
	}{
		{"cache", true, false},
		{"cache/render.bin", false, false},
		{"scripts/cache", true, false},
		{"scripts/cache/deep/file.lua", false, false},
		{"scripts", true, true},
		{"scripts/a.lua", false, true},
		{"scripts/nested/dir/b.lua", false, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Included(tt.rel, tt.isDir), "rel=%q", tt.rel)
	}
}

func TestFilter_SelfExclusion(t *testing.T) {
	f := NewFilter(DefaultLayout())

	// The archive root's own name disqualifies itself no matter how deep.
	assert.False(t, f.Included("archives", true))
	assert.False(t, f.Included("archives/2026-08-24.zip", false))
	assert.False(t, f.Included("deep/archives/old.zip", false))

	// zipnest's metadata directory is always excluded too.
	assert.False(t, f.Included(".zipnest", true))
	assert.False(t, f.Included(".zipnest/state", false))
}

func TestFilter_LooseRootFiles(t *testing.T) {
	f := NewFilter(DefaultLayout())

	// Files directly under the backup root are never archived.
	assert.False(t, f.Included("loose.txt", false))

	// Directories at the root level are fine, as is anything inside them.
	assert.True(t, f.Included("scripts", true))
	assert.True(t, f.Included("scripts/a.lua", false))
}

func TestFilter_RootAndEmpty(t *testing.T) {
	f := NewFilter(DefaultLayout())

	assert.False(t, f.Included("", true))
	assert.False(t, f.Included(".", true))
}

func TestFilter_CustomRootName(t *testing.T) {
	layout := DefaultLayout()
	layout.RootName = "backups"
	f := NewFilter(layout)

	assert.False(t, f.Included("backups", true))
	// The default name is no longer special.
	assert.True(t, f.Included("archives", true))
}

func TestFilter_EmptyExtraNamesIgnored(t *testing.T) {
	f := NewFilter(DefaultLayout(), "", "logs")

	assert.False(t, f.Excludes(""))
	assert.True(t, f.Excludes("logs"))
}
