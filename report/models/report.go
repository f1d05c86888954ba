package models

// RawFileEntry is one per-file outcome as returned by the generation service.
// Pointer fields distinguish a missing key from a zero value.
type RawFileEntry struct {
	File             *string `json:"file"`
	HasDocumentation bool    `json:"hasDocumentation"`
	Summary          string  `json:"summary"`
}

// RawResponse is the JSON payload returned by the generation service.
type RawResponse struct {
	Documentation   *string        `json:"documentation"`
	Files           []RawFileEntry `json:"files"`
	ProcessedFiles  *int           `json:"processedFiles"`
	SuccessfulFiles *int           `json:"successfulFiles"`
	Message         string         `json:"message"`
}

// FileDocEntry holds the documentation outcome of a single source file.
type FileDocEntry struct {
	File             string `json:"file" yaml:"file"`
	HasDocumentation bool   `json:"hasDocumentation" yaml:"has_documentation"`
	Summary          string `json:"summary" yaml:"summary"`
}

// DocumentationReport is the aggregate result of processing one archive.
// It is built once from a service response and never mutated afterwards.
type DocumentationReport struct {
	ProjectName     string         `json:"projectName" yaml:"project_name"`
	Documentation   string         `json:"documentation" yaml:"documentation"`
	ProcessedFiles  int            `json:"processedFiles" yaml:"processed_files"`
	SuccessfulFiles int            `json:"successfulFiles" yaml:"successful_files"`
	Message         string         `json:"message,omitempty" yaml:"message,omitempty"`
	Entries         []FileDocEntry `json:"files" yaml:"files"`
}

// EntryList returns a copy of the report entries in service order.
func (r *DocumentationReport) EntryList() []FileDocEntry {
	if r == nil {
		return nil
	}
	entries := make([]FileDocEntry, len(r.Entries))
	copy(entries, r.Entries)
	return entries
}

// FailedFiles returns the number of entries without documentation.
func (r *DocumentationReport) FailedFiles() int {
	if r == nil {
		return 0
	}
	return len(r.Entries) - r.SuccessfulFiles
}

// Clone returns a deep copy so callers cannot mutate a shared report.
func (r *DocumentationReport) Clone() *DocumentationReport {
	if r == nil {
		return nil
	}
	clone := *r
	clone.Entries = r.EntryList()
	return &clone
}
