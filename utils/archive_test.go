package utils

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range entries {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return path
}

func TestExtractArchive(t *testing.T) {
	src := writeZip(t, map[string]string{
		"fighters.json":    `[]`,
		"nested/odds.json": `[]`,
	})
	dest := t.TempDir()

	require.NoError(t, ExtractArchive(src, dest))

	data, err := os.ReadFile(filepath.Join(dest, "fighters.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	_, err = os.Stat(filepath.Join(dest, "nested", "odds.json"))
	assert.NoError(t, err)
}

func TestExtractArchiveRejectsPathTraversal(t *testing.T) {
	src := writeZip(t, map[string]string{
		"../escape.json": `{}`,
	})
	dest := t.TempDir()

	err := ExtractArchive(src, dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "illegal file path")
}
