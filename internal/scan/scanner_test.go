package scan

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
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestScanRoot(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "b.txt"))
	touch(t, filepath.Join(root, "ward", "a.TXT"))
	touch(t, filepath.Join(root, "ward", "notes.md"))
	touch(t, filepath.Join(root, ".cache", "hidden.txt"))

	files, err := ScanRoot(root, []string{".txt"})
	require.NoError(t, err)

	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
		assert.Equal(t, int64(1), f.Size)
		assert.NotZero(t, f.Mtime)
	}
	assert.Equal(t, []string{
		filepath.Join(root, "b.txt"),
		filepath.Join(root, "ward", "a.TXT"),
	}, paths)
}

func TestScanRoot_Missing(t *testing.T) {
	files, err := ScanRoot(filepath.Join(t.TempDir(), "nope"), []string{".txt"})
	assert.NoError(t, err)
	assert.Empty(t, files)

	files, err = ScanRoot("", []string{".txt"})
	assert.NoError(t, err)
	assert.Empty(t, files)
}
