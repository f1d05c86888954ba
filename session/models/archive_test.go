package models

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.zip")
	content := []byte("PK\x03\x04rest of the archive")
	require.NoError(t, os.WriteFile(path, content, 0644))

	archive, err := ArchiveFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "project.zip", archive.Name)
	assert.Equal(t, int64(len(content)), archive.SizeBytes)
	assert.Equal(t, "application/zip", archive.MIMEHint)

	reader, err := archive.Open()
	require.NoError(t, err)
	defer reader.Close()
	read, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, read)
}

func TestArchiveFromFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ArchiveFromFile(filepath.Join(dir, "missing.zip"))
	assert.Error(t, err)

	_, err = ArchiveFromFile(dir)
	assert.Error(t, err)
}

func TestArchive_OpenWithoutContent(t *testing.T) {
	_, err := Archive{Name: "empty.zip"}.Open()
	assert.EqualError(t, err, `archive "empty.zip" has no content`)
}

func TestArchive_SizeMB(t *testing.T) {
	assert.Equal(t, "0.00 MB", NewArchive("a.zip", "", nil).SizeMB())
	assert.Equal(t, "1.50 MB", NewArchive("a.zip", "", make([]byte, 1536*1024)).SizeMB())
}
