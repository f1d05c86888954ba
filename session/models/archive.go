package models

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// Archive describes the project bundle selected for submission.
type Archive struct {
	Name      string
	SizeBytes int64
	MIMEHint  string

	open func() (io.ReadCloser, error)
}

// NewArchive wraps in-memory archive content.
func NewArchive(name, mimeHint string, content []byte) Archive {
	return Archive{
		Name:      name,
		SizeBytes: int64(len(content)),
		MIMEHint:  mimeHint,
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(content)), nil
		},
	}
}

// ArchiveFromFile describes a file on disk. The MIME hint is sniffed from the
// first bytes of the file, the same way a browser would report it.
func ArchiveFromFile(path string) (Archive, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Archive{}, fmt.Errorf("failed to stat archive: %w", err)
	}
	if info.IsDir() {
		return Archive{}, fmt.Errorf("archive path %s is a directory", path)
	}

	mimeHint, err := sniffMIME(path)
	if err != nil {
		return Archive{}, err
	}

	return Archive{
		Name:      filepath.Base(path),
		SizeBytes: info.Size(),
		MIMEHint:  mimeHint,
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

func sniffMIME(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open archive: %w", err)
	}
	defer file.Close()

	header := make([]byte, 512)
	n, err := io.ReadFull(file, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("failed to read archive header: %w", err)
	}
	return http.DetectContentType(header[:n]), nil
}

// Open returns a reader over the archive content.
func (a Archive) Open() (io.ReadCloser, error) {
	if a.open == nil {
		return nil, fmt.Errorf("archive %q has no content", a.Name)
	}
	return a.open()
}

// SizeMB formats the archive size in megabytes with two decimals.
func (a Archive) SizeMB() string {
	return fmt.Sprintf("%.2f MB", float64(a.SizeBytes)/1024/1024)
}
