package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestFindFilesByExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.hcl"))
	touch(t, filepath.Join(dir, "a.hcl"))
	touch(t, filepath.Join(dir, "nested", "c.hcl"))
	touch(t, filepath.Join(dir, "notes.txt"))

	files, err := FindFilesByExtension(dir, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.hcl"),
		filepath.Join(dir, "b.hcl"),
		filepath.Join(dir, "nested", "c.hcl"),
	}, files)

	assert.Panics(t, func() { _, _ = FindFilesByExtension(dir, "") })
}

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "conf", "triggers.hcl"))
	touch(t, filepath.Join(dir, "conf", "readme.md"))
	single := filepath.Join(dir, "local.settings")
	touch(t, single)

	t.Run("files and directories", func(t *testing.T) {
		got, err := ExpandPaths([]string{single, filepath.Join(dir, "conf"), single}, ".hcl")
		require.NoError(t, err)
		assert.Equal(t, []string{single, filepath.Join(dir, "conf", "triggers.hcl")}, got)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := ExpandPaths([]string{filepath.Join(dir, "nope")}, ".hcl")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error accessing path")
	})

	t.Run("nothing given", func(t *testing.T) {
		got, err := ExpandPaths(nil, ".hcl")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
