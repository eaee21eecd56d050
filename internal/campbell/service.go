// FilePath: internal/campbell/service.go
package campbell

import (
	"context"

	"github.com/terrasense/meteohub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// Service runs the scrape-then-import pipeline for the Campbell station.
type Service struct {
	repo    repository.CampbellRepository
	scraper Scraper
}

// ImportResult reports how an export file import went.
type ImportResult struct {
	File     string `json:"file"`
	Parsed   int    `json:"parsed"`
	Inserted int    `json:"inserted"`
	Skipped  int    `json:"skipped"`
}

func NewService(repo repository.CampbellRepository, scraper Scraper) *Service {
	return &Service{repo: repo, scraper: scraper}
}

// Scrape downloads a fresh export from the portal and imports it.
func (s *Service) Scrape(ctx context.Context, hourly bool) (*ImportResult, error) {
	path, err := s.scraper.Download(ctx, hourly)
	if err != nil {
		return nil, err
	}
	nuts.L.Infof("[CampbellService] Downloaded export to %s", path)
	return s.ImportFile(ctx, path)
}

// ImportFile parses an export file and loads its rows. Rows whose logger
// timestamp is already stored are skipped.
func (s *Service) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	readings, err := ParseFile(path)
	if err != nil {
		return nil, err
	}

	inserted, skipped, err := s.repo.InsertBatch(ctx, readings)
	result := &ImportResult{
		File:     path,
		Parsed:   len(readings),
		Inserted: inserted,
		Skipped:  skipped,
	}
	if err != nil {
		return result, err
	}
	nuts.L.Infof("[CampbellService] Imported %s: %d inserted, %d skipped of %d rows",
		path, inserted, skipped, len(readings))
	return result, nil
}
