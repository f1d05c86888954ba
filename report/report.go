package report

import (
	"fmt"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/meysamhadeli/zendocs/report/models"
)

const (
	// ArtifactMIMEType is the content type of the exported documentation.
	ArtifactMIMEType = "text/markdown"

	archiveExtension = ".zip"
	artifactSuffix   = "_documentation.md"
)

// BuildReport turns a service response into an immutable DocumentationReport.
// The successful file count is always recomputed from the entries.
func BuildReport(raw *models.RawResponse, archiveName string) (*models.DocumentationReport, error) {
	if raw == nil {
		return nil, NewIngestError(UndecodablePayload, "empty response", nil)
	}
	if raw.Documentation == nil {
		return nil, NewIngestError(MissingDocumentation, "", nil)
	}

	entries := make([]models.FileDocEntry, 0, len(raw.Files))
	successful := 0
	for i, file := range raw.Files {
		if err := validateEntry(file); err != nil {
			return nil, NewIngestError(MalformedEntry, fmt.Sprintf("entry %d has no file name", i), err)
		}
		if file.HasDocumentation {
			successful++
		}
		entries = append(entries, models.FileDocEntry{
			File:             *file.File,
			HasDocumentation: file.HasDocumentation,
			Summary:          file.Summary,
		})
	}

	processed := len(entries)
	if raw.ProcessedFiles != nil {
		processed = *raw.ProcessedFiles
	}
	// A processed count below the number of returned entries cannot be right
	if processed < len(entries) {
		processed = len(entries)
	}

	return &models.DocumentationReport{
		ProjectName:     ProjectName(archiveName),
		Documentation:   *raw.Documentation,
		ProcessedFiles:  processed,
		SuccessfulFiles: successful,
		Message:         raw.Message,
		Entries:         entries,
	}, nil
}

func validateEntry(entry models.RawFileEntry) error {
	return validation.ValidateStruct(&entry,
		validation.Field(&entry.File, validation.Required, validation.By(func(value any) error {
			name, _ := value.(*string)
			if name == nil || strings.TrimSpace(*name) == "" {
				return validation.NewError("zendocs.report.file_required", "file name is required")
			}
			return nil
		})),
	)
}

// ProjectName strips a single trailing archive extension, case-insensitively.
func ProjectName(archiveName string) string {
	if len(archiveName) >= len(archiveExtension) &&
		strings.EqualFold(archiveName[len(archiveName)-len(archiveExtension):], archiveExtension) {
		return archiveName[:len(archiveName)-len(archiveExtension)]
	}
	return archiveName
}

// ArtifactName is the file name used when exporting the combined documentation.
func ArtifactName(projectName string) string {
	return projectName + artifactSuffix
}

// LanguageOf labels an entry by its source file extension.
func LanguageOf(file string) string {
	switch {
	case strings.HasSuffix(file, ".js"):
		return "JavaScript"
	case strings.HasSuffix(file, ".ts"):
		return "TypeScript"
	default:
		return "Unknown"
	}
}

// Preview truncates documentation to at most limit runes, appending an
// ellipsis when text was cut. A non-positive limit disables truncation.
func Preview(documentation string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(documentation) <= limit {
		return documentation
	}
	runes := []rune(documentation)
	return string(runes[:limit]) + "..."
}
