package cache

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	reportmodels "github.com/meysamhadeli/zendocs/report/models"
	"github.com/meysamhadeli/zendocs/session/models"
	"github.com/zeebo/xxh3"
)

const (
	cacheExtension = ".cache"
	latestKey      = "latest"
)

// ErrNotFound is returned when no cached report exists for a key.
var ErrNotFound = errors.New("no cached report found")

// CacheEntry is a cached report with the archive it was generated from.
type CacheEntry struct {
	Report        *reportmodels.DocumentationReport
	ArchiveName   string
	ArchiveDigest string
	Timestamp     time.Time
}

// CacheStats tracks lookups since the cache was opened.
type CacheStats struct {
	TotalRequests int64
	CacheHits     int64
	CacheMisses   int64
	mutex         sync.RWMutex
}

// ReportCache stores generated reports on disk, keyed by archive digest, so
// they can be shown or exported again without re-uploading.
type ReportCache struct {
	cacheDir string
	mutex    sync.RWMutex
	stats    *CacheStats
}

// NewReportCache opens a cache rooted at cacheDir.
// If cacheDir is empty, it defaults to ".zendocs-cache" in the current working directory
func NewReportCache(cacheDir string) (*ReportCache, error) {
	if cacheDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current working directory: %w", err)
		}
		cacheDir = filepath.Join(cwd, ".zendocs-cache")
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &ReportCache{
		cacheDir: cacheDir,
		stats:    &CacheStats{},
	}, nil
}

// Dir returns the cache directory.
func (rc *ReportCache) Dir() string {
	return rc.cacheDir
}

// Digest hashes the archive content with xxh3.
func Digest(archive models.Archive) (string, error) {
	content, err := archive.Open()
	if err != nil {
		return "", err
	}
	defer content.Close()

	hasher := xxh3.New()
	if _, err := io.Copy(hasher, content); err != nil {
		return "", fmt.Errorf("failed to hash archive: %w", err)
	}
	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

func (rc *ReportCache) cachePath(key string) string {
	return filepath.Join(rc.cacheDir, fmt.Sprintf("%016x%s", xxh3.HashString(key), cacheExtension))
}

// Set stores the report under its archive digest and marks it as the latest.
func (rc *ReportCache) Set(digest string, archiveName string, report *reportmodels.DocumentationReport) error {
	rc.mutex.Lock()
	defer rc.mutex.Unlock()

	entry := CacheEntry{
		Report:        report.Clone(),
		ArchiveName:   archiveName,
		ArchiveDigest: digest,
		Timestamp:     time.Now(),
	}

	var buffer bytes.Buffer
	if err := gob.NewEncoder(&buffer).Encode(entry); err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	for _, key := range []string{digest, latestKey} {
		if err := os.WriteFile(rc.cachePath(key), buffer.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write cache file: %w", err)
		}
	}

	return nil
}

// Get loads the report cached for an archive digest.
func (rc *ReportCache) Get(digest string) (*CacheEntry, error) {
	return rc.load(digest)
}

// Latest loads the most recently stored report.
func (rc *ReportCache) Latest() (*CacheEntry, error) {
	return rc.load(latestKey)
}

func (rc *ReportCache) load(key string) (*CacheEntry, error) {
	rc.mutex.RLock()
	defer rc.mutex.RUnlock()

	data, err := os.ReadFile(rc.cachePath(key))
	if err != nil {
		rc.recordMiss()
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var entry CacheEntry
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&entry); err != nil {
		rc.recordMiss()
		return nil, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	if entry.Report == nil {
		rc.recordMiss()
		return nil, ErrNotFound
	}

	rc.recordHit()
	return &entry, nil
}

// ClearCache removes all cache entries.
func (rc *ReportCache) ClearCache() (int, error) {
	rc.mutex.Lock()
	defer rc.mutex.Unlock()

	files, err := os.ReadDir(rc.cacheDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	var deletedCount int
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), cacheExtension) {
			continue
		}
		if err := os.Remove(filepath.Join(rc.cacheDir, file.Name())); err == nil {
			deletedCount++
		}
	}

	return deletedCount, nil
}

// CleanExpiredCache removes entries older than maxAge and returns how many were deleted.
func (rc *ReportCache) CleanExpiredCache(maxAge time.Duration) (int, error) {
	rc.mutex.Lock()
	defer rc.mutex.Unlock()

	files, err := os.ReadDir(rc.cacheDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	var deletedCount int

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), cacheExtension) {
			continue
		}

		cachePath := filepath.Join(rc.cacheDir, file.Name())
		data, err := os.ReadFile(cachePath)
		if err != nil {
			continue
		}

		var entry CacheEntry
		if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&entry); err != nil {
			// Undecodable entries are never useful again
			if os.Remove(cachePath) == nil {
				deletedCount++
			}
			continue
		}

		if entry.Timestamp.Before(cutoff) {
			if os.Remove(cachePath) == nil {
				deletedCount++
			}
		}
	}

	return deletedCount, nil
}

// GetCacheStats returns storage and lookup statistics.
func (rc *ReportCache) GetCacheStats() (map[string]interface{}, error) {
	rc.mutex.RLock()
	files, err := os.ReadDir(rc.cacheDir)
	rc.mutex.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}

	var totalSize int64
	var count int
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), cacheExtension) {
			continue
		}
		info, err := file.Info()
		if err != nil {
			continue
		}
		count++
		totalSize += info.Size()
	}

	rc.stats.mutex.RLock()
	defer rc.stats.mutex.RUnlock()

	hitRate := 0.0
	if rc.stats.TotalRequests > 0 {
		hitRate = float64(rc.stats.CacheHits) / float64(rc.stats.TotalRequests) * 100
	}

	return map[string]interface{}{
		"cache_dir":      rc.cacheDir,
		"cache_files":    count,
		"total_size":     totalSize,
		"total_requests": rc.stats.TotalRequests,
		"cache_hits":     rc.stats.CacheHits,
		"cache_misses":   rc.stats.CacheMisses,
		"hit_rate":       hitRate,
	}, nil
}

func (rc *ReportCache) recordHit() {
	rc.stats.mutex.Lock()
	defer rc.stats.mutex.Unlock()
	rc.stats.TotalRequests++
	rc.stats.CacheHits++
}

func (rc *ReportCache) recordMiss() {
	rc.stats.mutex.Lock()
	defer rc.stats.mutex.Unlock()
	rc.stats.TotalRequests++
	rc.stats.CacheMisses++
}
