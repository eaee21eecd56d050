// FilePath: internal/monitoring/monitoring.go
package monitoring

import (
	"sync"
	"time"

	nuts "github.com/vaudience/go-nuts"
)

// SourceStats accumulates ingestion counters for one provider.
type SourceStats struct {
	Inserted   int64     `json:"inserted"`
	Skipped    int64     `json:"skipped"`
	Failures   int64     `json:"failures"`
	LastIngest time.Time `json:"last_ingest"`
	LastError  string    `json:"last_error,omitempty"`
}

// Service tracks per-source ingestion counters for the stats endpoint.
type Service struct {
	mu      sync.Mutex
	sources map[string]*SourceStats
}

// NewService creates a new monitoring service
func NewService() *Service {
	return &Service{sources: make(map[string]*SourceStats)}
}

// RecordIngest records a completed ingestion for a source.
func (s *Service) RecordIngest(source string, inserted, skipped int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := s.source(source)
	stats.Inserted += int64(inserted)
	stats.Skipped += int64(skipped)
	stats.LastIngest = time.Now().UTC()

	nuts.L.Debugf("[Monitoring] %s ingest recorded: %d inserted, %d skipped", source, inserted, skipped)
}

// RecordFailure records a failed ingestion for a source.
func (s *Service) RecordFailure(source string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := s.source(source)
	stats.Failures++
	if err != nil {
		stats.LastError = err.Error()
	}
}

// Snapshot returns a copy of all per-source counters.
func (s *Service) Snapshot() map[string]SourceStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]SourceStats, len(s.sources))
	for name, stats := range s.sources {
		out[name] = *stats
	}
	return out
}

func (s *Service) source(name string) *SourceStats {
	stats, ok := s.sources[name]
	if !ok {
		stats = &SourceStats{}
		s.sources[name] = stats
	}
	return stats
}
