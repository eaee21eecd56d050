// FilePath: internal/campbell/scraper_dropdir.go
package campbell

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/terrasense/meteohub/internal/config"
	nuts "github.com/vaudience/go-nuts"
)

// DropDirScraper picks up exports that the external portal job drops
// into a shared directory. Download returns the newest file matching
// the configured station and cadence.
type DropDirScraper struct {
	dir      string
	station  string
	fileType string
}

func NewDropDirScraper(cfg config.ScraperConfig) *DropDirScraper {
	return &DropDirScraper{
		dir:      cfg.DownloadPath,
		station:  cfg.Station,
		fileType: cfg.FileType,
	}
}

func (s *DropDirScraper) Download(ctx context.Context, hourly bool) (string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", fmt.Errorf("reading drop directory %s: %w", s.dir, err)
	}

	var newest string
	var newestMod time.Time
	for _, entry := range entries {
		if entry.IsDir() || !s.matches(entry.Name(), hourly) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = entry.Name()
			newestMod = info.ModTime()
		}
	}
	if newest == "" {
		return "", fmt.Errorf("no export for station %s in %s", s.station, s.dir)
	}

	path := filepath.Join(s.dir, newest)
	nuts.L.Infof("[CampbellScraper] Picked up %s (modified %s)", path, newestMod.UTC().Format(time.RFC3339))
	return path, nil
}

func (s *DropDirScraper) matches(name string, hourly bool) bool {
	lower := strings.ToLower(name)
	if s.fileType != "" && !strings.HasSuffix(lower, "."+strings.ToLower(s.fileType)) {
		return false
	}
	if s.station != "" && !strings.Contains(lower, strings.ToLower(s.station)) {
		return false
	}
	if hourly != strings.Contains(lower, "hourly") {
		return false
	}
	return true
}
