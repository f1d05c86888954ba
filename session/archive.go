package session

import (
	"strings"

	"github.com/meysamhadeli/zendocs/session/models"
)

const archiveExtension = ".zip"

var archiveMIMETypes = map[string]struct{}{
	"application/zip":              {},
	"application/x-zip":            {},
	"application/x-zip-compressed": {},
	"multipart/x-zip":              {},
}

// IsArchive accepts a candidate whose name carries the archive extension or
// whose declared content type is a recognized archive type. Either signal is
// enough because reported content types are unreliable across platforms.
func IsArchive(candidate models.Archive) bool {
	if strings.HasSuffix(strings.ToLower(candidate.Name), archiveExtension) {
		return true
	}

	mimeType := strings.ToLower(strings.TrimSpace(candidate.MIMEHint))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	_, ok := archiveMIMETypes[mimeType]
	return ok
}
