// FilePath: internal/campbell/service_test.go
package campbell

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terrasense/meteohub/internal/database"
	"github.com/terrasense/meteohub/internal/models"
)

type fakeCampbellRepo struct {
	stored map[time.Time]bool
}

func newFakeCampbellRepo() *fakeCampbellRepo {
	return &fakeCampbellRepo{stored: make(map[time.Time]bool)}
}

func (r *fakeCampbellRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	return nil, nil
}

func (r *fakeCampbellRepo) InsertBatch(ctx context.Context, readings []*models.CampbellReading) (int, int, error) {
	inserted, skipped := 0, 0
	for _, reading := range readings {
		if r.stored[reading.Timestamp] {
			skipped++
			continue
		}
		r.stored[reading.Timestamp] = true
		inserted++
	}
	return inserted, skipped, nil
}

func (r *fakeCampbellRepo) LatestTimestamp(ctx context.Context) (time.Time, error) {
	var latest time.Time
	for ts := range r.stored {
		if ts.After(latest) {
			latest = ts
		}
	}
	return latest, nil
}

type fakeScraper struct {
	path string
}

func (s *fakeScraper) Download(ctx context.Context, hourly bool) (string, error) {
	return s.path, nil
}

func writeExport(t *testing.T, rows string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "station_hourly.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvHeader+"\n"+rows), 0o644))
	return path
}

func TestScrapeImportsDownloadedFile(t *testing.T) {
	path := writeExport(t,
		"2024-01-15 10:00,4.21,12.65,1013.2,1.8,OK,120.5,6.0,0.2,82.1,198,3.4\n"+
			"2024-01-15 11:00,4.58,12.64,1012.8,2.0,OK,140.1,6.3,0.0,81.0,204,2.9\n")
	repo := newFakeCampbellRepo()
	svc := NewService(repo, &fakeScraper{path: path})

	result, err := svc.Scrape(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, path, result.File)
	assert.Equal(t, 2, result.Parsed)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 0, result.Skipped)
}

func TestImportFileSkipsStoredTimestamps(t *testing.T) {
	path := writeExport(t,
		"2024-01-15 10:00,4.21,12.65,1013.2,1.8,OK,120.5,6.0,0.2,82.1,198,3.4\n"+
			"2024-01-15 11:00,4.58,12.64,1012.8,2.0,OK,140.1,6.3,0.0,81.0,204,2.9\n")
	repo := newFakeCampbellRepo()
	repo.stored[time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)] = true
	svc := NewService(repo, &fakeScraper{path: path})

	result, err := svc.ImportFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 1, result.Skipped)
}

func TestDropDirScraperPicksNewestMatch(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "station1_hourly_old.csv")
	newer := filepath.Join(dir, "station1_hourly_new.csv")
	daily := filepath.Join(dir, "station1_daily.csv")
	require.NoError(t, os.WriteFile(old, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(daily, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(newer, []byte("x"), 0o644))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	scraper := &DropDirScraper{dir: dir, station: "station1", fileType: "csv"}

	path, err := scraper.Download(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, newer, path)

	path, err = scraper.Download(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, daily, path)
}

func TestDropDirScraperNoMatch(t *testing.T) {
	scraper := &DropDirScraper{dir: t.TempDir(), station: "station1"}

	_, err := scraper.Download(context.Background(), true)
	assert.Error(t, err)
}
