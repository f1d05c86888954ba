package report

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/meysamhadeli/zendocs/report/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, payload string) *models.RawResponse {
	t.Helper()
	var raw models.RawResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))
	return &raw
}

func TestBuildReport_RecomputesSuccessfulFiles(t *testing.T) {
	raw := decode(t, `{
		"documentation": "# Docs",
		"files": [
			{"file": "a.js", "hasDocumentation": true, "summary": "x"},
			{"file": "b.ts", "hasDocumentation": false, "summary": ""}
		],
		"processedFiles": 2,
		"successfulFiles": 2
	}`)

	rep, err := BuildReport(raw, "project.zip")
	require.NoError(t, err)

	assert.Equal(t, 1, rep.SuccessfulFiles)
	assert.Equal(t, 2, rep.ProcessedFiles)
	assert.Equal(t, 1, rep.FailedFiles())
	assert.Equal(t, "project", rep.ProjectName)
	assert.Equal(t, "# Docs", rep.Documentation)
	assert.Equal(t, []models.FileDocEntry{
		{File: "a.js", HasDocumentation: true, Summary: "x"},
		{File: "b.ts", HasDocumentation: false, Summary: ""},
	}, rep.Entries)
}

func TestBuildReport_SuccessfulCountMatchesEntries(t *testing.T) {
	payloads := []string{
		`{"documentation": "", "files": []}`,
		`{"documentation": "d", "files": [{"file": "a", "hasDocumentation": false}], "successfulFiles": 7}`,
		`{"documentation": "d", "files": [{"file": "a", "hasDocumentation": true}, {"file": "b", "hasDocumentation": true}, {"file": "c"}], "successfulFiles": 0}`,
	}

	for _, payload := range payloads {
		rep, err := BuildReport(decode(t, payload), "x.zip")
		require.NoError(t, err)

		count := 0
		for _, entry := range rep.Entries {
			if entry.HasDocumentation {
				count++
			}
		}
		assert.Equal(t, count, rep.SuccessfulFiles)
		assert.LessOrEqual(t, rep.SuccessfulFiles, rep.ProcessedFiles)
	}
}

func TestBuildReport_ProcessedFilesDefaultsToEntryCount(t *testing.T) {
	raw := decode(t, `{"documentation": "d", "files": [{"file": "a.js"}, {"file": "b.js"}, {"file": "c.js"}]}`)

	rep, err := BuildReport(raw, "p.zip")
	require.NoError(t, err)
	assert.Equal(t, 3, rep.ProcessedFiles)
}

func TestBuildReport_ProcessedFilesFromResponse(t *testing.T) {
	raw := decode(t, `{"documentation": "d", "files": [{"file": "a.js"}], "processedFiles": 5}`)

	rep, err := BuildReport(raw, "p.zip")
	require.NoError(t, err)
	assert.Equal(t, 5, rep.ProcessedFiles)
}

func TestBuildReport_ProcessedFilesNeverBelowEntries(t *testing.T) {
	raw := decode(t, `{"documentation": "d", "files": [{"file": "a.js", "hasDocumentation": true}, {"file": "b.js", "hasDocumentation": true}], "processedFiles": 1}`)

	rep, err := BuildReport(raw, "p.zip")
	require.NoError(t, err)
	assert.Equal(t, 2, rep.ProcessedFiles)
	assert.Equal(t, 2, rep.SuccessfulFiles)
}

func TestBuildReport_MissingDocumentation(t *testing.T) {
	raw := decode(t, `{"files": [{"file": "a.js", "hasDocumentation": true}]}`)

	rep, err := BuildReport(raw, "p.zip")
	assert.Nil(t, rep)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingDocumentation)

	var ingestErr *IngestError
	require.True(t, errors.As(err, &ingestErr))
	assert.Equal(t, MissingDocumentation, ingestErr.Kind)
}

func TestBuildReport_EmptyDocumentationIsAccepted(t *testing.T) {
	raw := decode(t, `{"documentation": "", "files": [{"file": "a.js", "hasDocumentation": false, "summary": "error: timeout"}]}`)

	rep, err := BuildReport(raw, "p.zip")
	require.NoError(t, err)
	assert.Empty(t, rep.Documentation)
	assert.Equal(t, 0, rep.SuccessfulFiles)
}

func TestBuildReport_MalformedEntry(t *testing.T) {
	cases := map[string]string{
		"missing file": `{"documentation": "d", "files": [{"file": "a.js"}, {"hasDocumentation": true}]}`,
		"empty file":   `{"documentation": "d", "files": [{"file": ""}]}`,
		"blank file":   `{"documentation": "d", "files": [{"file": "   "}]}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			rep, err := BuildReport(decode(t, payload), "p.zip")
			assert.Nil(t, rep)
			assert.ErrorIs(t, err, ErrMalformedEntry)
			assert.NotErrorIs(t, err, ErrMissingDocumentation)
		})
	}
}

func TestBuildReport_NilResponse(t *testing.T) {
	_, err := BuildReport(nil, "p.zip")
	assert.ErrorIs(t, err, ErrUndecodablePayload)
}

func TestBuildReport_KeepsMessage(t *testing.T) {
	raw := decode(t, `{"documentation": "d", "files": [], "message": "Documentation generated"}`)

	rep, err := BuildReport(raw, "p.zip")
	require.NoError(t, err)
	assert.Equal(t, "Documentation generated", rep.Message)
}

func TestReport_CloneIsIndependent(t *testing.T) {
	raw := decode(t, `{"documentation": "d", "files": [{"file": "a.js", "hasDocumentation": true}]}`)
	rep, err := BuildReport(raw, "p.zip")
	require.NoError(t, err)

	clone := rep.Clone()
	clone.Entries[0].File = "changed.js"

	assert.Equal(t, "a.js", rep.Entries[0].File)
}

func TestProjectName(t *testing.T) {
	cases := map[string]string{
		"project.zip":     "project",
		"Project.ZIP":     "Project",
		"archive.zip.zip": "archive.zip",
		"notes.txt":       "notes.txt",
		"zip":             "zip",
		".zip":            "",
		"":                "",
	}

	for input, expected := range cases {
		assert.Equal(t, expected, ProjectName(input), "input %q", input)
	}
}

func TestArtifactName(t *testing.T) {
	assert.Equal(t, "project_documentation.md", ArtifactName(ProjectName("project.zip")))
}

func TestLanguageOf(t *testing.T) {
	assert.Equal(t, "JavaScript", LanguageOf("src/index.js"))
	assert.Equal(t, "TypeScript", LanguageOf("src/app.ts"))
	assert.Equal(t, "Unknown", LanguageOf("src/app.tsx"))
	assert.Equal(t, "Unknown", LanguageOf("README.md"))
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", Preview("short", 2000))
	assert.Equal(t, "abc...", Preview("abcdef", 3))
	assert.Equal(t, "héé...", Preview("héééé", 3))
	assert.Equal(t, "abcdef", Preview("abcdef", 0))
}

func TestIngestError_Message(t *testing.T) {
	err := NewIngestError(UndecodablePayload, "", errors.New("unexpected EOF"))

	assert.Equal(t, "invalid service response: response is not a valid documentation payload: unexpected EOF", err.Error())
	assert.Equal(t, "undecodable_payload", err.Kind.String())
}
