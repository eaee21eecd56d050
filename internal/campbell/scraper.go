// FilePath: internal/campbell/scraper.go
package campbell

import "context"

// Scraper downloads a fresh table-query export from the KonectGDS portal
// and returns the local path of the downloaded file. The portal has no
// API, so the production implementation drives a headless browser and
// lives outside this service; it is injected here so ingestion can be
// exercised without it.
type Scraper interface {
	Download(ctx context.Context, hourly bool) (string, error)
}
