package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	reportmodels "github.com/meysamhadeli/zendocs/report/models"
	"github.com/meysamhadeli/zendocs/session/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(name string) *reportmodels.DocumentationReport {
	return &reportmodels.DocumentationReport{
		ProjectName:     name,
		Documentation:   "# " + name,
		ProcessedFiles:  2,
		SuccessfulFiles: 1,
		Entries: []reportmodels.FileDocEntry{
			{File: "a.js", HasDocumentation: true, Summary: "ok"},
			{File: "b.ts", HasDocumentation: false},
		},
	}
}

func TestReportCache_SetAndGet(t *testing.T) {
	reportCache, err := NewReportCache(t.TempDir())
	require.NoError(t, err)

	digest, err := Digest(models.NewArchive("project.zip", "", []byte("PK content")))
	require.NoError(t, err)
	assert.Len(t, digest, 16)

	_, err = reportCache.Get(digest)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, reportCache.Set(digest, "project.zip", sampleReport("project")))

	entry, err := reportCache.Get(digest)
	require.NoError(t, err)
	assert.Equal(t, "project.zip", entry.ArchiveName)
	assert.Equal(t, digest, entry.ArchiveDigest)
	assert.Equal(t, sampleReport("project"), entry.Report)

	latest, err := reportCache.Latest()
	require.NoError(t, err)
	assert.Equal(t, "project", latest.Report.ProjectName)
}

func TestReportCache_LatestIsReplaced(t *testing.T) {
	reportCache, err := NewReportCache(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, reportCache.Set("aaaa", "first.zip", sampleReport("first")))
	require.NoError(t, reportCache.Set("bbbb", "second.zip", sampleReport("second")))

	latest, err := reportCache.Latest()
	require.NoError(t, err)
	assert.Equal(t, "second", latest.Report.ProjectName)

	first, err := reportCache.Get("aaaa")
	require.NoError(t, err)
	assert.Equal(t, "first", first.Report.ProjectName)
}

func TestDigest_DependsOnContent(t *testing.T) {
	a, err := Digest(models.NewArchive("x.zip", "", []byte("one")))
	require.NoError(t, err)
	b, err := Digest(models.NewArchive("y.zip", "", []byte("one")))
	require.NoError(t, err)
	c, err := Digest(models.NewArchive("x.zip", "", []byte("two")))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	_, err = Digest(models.Archive{Name: "empty.zip"})
	assert.Error(t, err)
}

func TestReportCache_ClearCache(t *testing.T) {
	dir := t.TempDir()
	reportCache, err := NewReportCache(dir)
	require.NoError(t, err)

	require.NoError(t, reportCache.Set("aaaa", "first.zip", sampleReport("first")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("x"), 0644))

	deleted, err := reportCache.ClearCache()
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	_, err = reportCache.Latest()
	assert.ErrorIs(t, err, ErrNotFound)
	assert.FileExists(t, filepath.Join(dir, "keep.txt"))
}

func TestReportCache_CleanExpiredCache(t *testing.T) {
	reportCache, err := NewReportCache(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, reportCache.Set("aaaa", "first.zip", sampleReport("first")))

	deleted, err := reportCache.CleanExpiredCache(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)

	time.Sleep(10 * time.Millisecond)
	deleted, err = reportCache.CleanExpiredCache(time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
}

func TestReportCache_CorruptEntry(t *testing.T) {
	reportCache, err := NewReportCache(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(reportCache.cachePath(latestKey), []byte("garbage"), 0644))

	_, err = reportCache.Latest()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	deleted, err := reportCache.CleanExpiredCache(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
}

func TestReportCache_Stats(t *testing.T) {
	reportCache, err := NewReportCache(t.TempDir())
	require.NoError(t, err)

	_, _ = reportCache.Latest()
	require.NoError(t, reportCache.Set("aaaa", "first.zip", sampleReport("first")))
	_, _ = reportCache.Latest()

	stats, err := reportCache.GetCacheStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats["cache_files"])
	assert.Equal(t, int64(2), stats["total_requests"])
	assert.Equal(t, int64(1), stats["cache_hits"])
	assert.Equal(t, int64(1), stats["cache_misses"])
	assert.InDelta(t, 50.0, stats["hit_rate"], 0.001)
	assert.Greater(t, stats["total_size"], int64(0))
}
