package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("# test"), 0o644))
	}
}

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.hcl", "nested/b.hcl", "c.yaml", "nested/deeper/d.hcl")

	files, err := FindFilesByExtension(root, ".hcl")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "a.hcl"),
		filepath.Join(root, "nested", "b.hcl"),
		filepath.Join(root, "nested", "deeper", "d.hcl"),
	}, files)
}

func TestFindFilesByExtension_PanicsOnEmptyExtension(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = FindFilesByExtension(t.TempDir(), "")
	})
}

func TestCollectFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "models/b.hcl", "models/a.hcl", "models/notes.txt", "extra.yaml")

	files, err := CollectFiles([]string{
		filepath.Join(root, "models"),
		filepath.Join(root, "extra.yaml"),
		filepath.Join(root, "models", "a.hcl"),
	}, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "models", "a.hcl"),
		filepath.Join(root, "models", "b.hcl"),
		filepath.Join(root, "extra.yaml"),
	}, files)
}

func TestCollectFiles_MissingPath(t *testing.T) {
	_, err := CollectFiles([]string{filepath.Join(t.TempDir(), "nope")}, ".hcl")
	require.ErrorIs(t, err, os.ErrNotExist)
}
