// FilePath: internal/davis/service.go
package davis

import (
	"context"
	"fmt"
	"io"

	"github.com/terrasense/meteohub/internal/config"
	"github.com/terrasense/meteohub/internal/errors"
	"github.com/terrasense/meteohub/internal/models"
	"github.com/terrasense/meteohub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// Service orchestrates WeatherLink ingestion: fetch or parse, normalize,
// deduplicate, store.
type Service struct {
	repo     repository.DavisRepository
	api      StationAPI
	identity ExportIdentity
}

// IngestResult reports how a batch of messages was handled. Skipped
// counts messages whose timestamp was already stored.
type IngestResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

func NewService(repo repository.DavisRepository, api StationAPI, cfg config.DavisConfig) *Service {
	return &Service{
		repo: repo,
		api:  api,
		identity: ExportIdentity{
			StationID:   cfg.StationID,
			StationUUID: cfg.StationUUID,
		},
	}
}

// IngestLive pulls the current station snapshot and stores it.
func (s *Service) IngestLive(ctx context.Context) (*IngestResult, error) {
	payload, err := s.api.Current(ctx)
	if err != nil {
		return nil, err
	}

	msg, err := ConsumeLive(payload)
	if err != nil {
		return nil, err
	}
	nuts.L.Infof("[DavisService] Received live message for station %d (%s), ts %d",
		msg.StationID, msg.StationIDUUID, msg.VantagePro2.TS)

	return s.storeMessages(ctx, []*models.DavisMessage{msg})
}

// IngestHistoric pulls archived samples for [start, end) and stores them.
// The archive endpoint caps a single request at 24 hours, so wider ranges
// are rejected before any network traffic happens.
func (s *Service) IngestHistoric(ctx context.Context, start, end int64) (*IngestResult, error) {
	if end <= start {
		return nil, errors.NewValidationError("historic range end must be after start", nil)
	}
	if end-start > maxHistoricRangeSeconds {
		return nil, errors.NewValidationError(
			fmt.Sprintf("historic range spans %d seconds, maximum is %d", end-start, maxHistoricRangeSeconds), nil)
	}

	payload, err := s.api.Historic(ctx, start, end)
	if err != nil {
		return nil, err
	}

	messages, err := ConsumeHistoric(payload)
	if err != nil {
		return nil, err
	}
	nuts.L.Infof("[DavisService] Received %d historic samples for station %d", len(messages), payload.StationID)

	return s.storeMessages(ctx, messages)
}

// IngestExport parses an uploaded WeatherLink desktop export and stores
// its rows.
func (s *Service) IngestExport(ctx context.Context, file io.Reader) (*IngestResult, error) {
	messages, err := ParseExport(file, s.identity)
	if err != nil {
		return nil, err
	}
	nuts.L.Infof("[DavisService] Parsed %d rows from export upload", len(messages))
	return s.storeMessages(ctx, messages)
}

func (s *Service) storeMessages(ctx context.Context, messages []*models.DavisMessage) (*IngestResult, error) {
	result := &IngestResult{}
	for _, msg := range messages {
		inserted, err := s.storeMessage(ctx, msg)
		if err != nil {
			return result, err
		}
		if inserted {
			result.Inserted++
		} else {
			result.Skipped++
		}
	}
	return result, nil
}

// storeMessage inserts one snapshot unless its weather timestamp is
// already stored. A retransmitted message is skipped silently; only the
// guard's existence check and a unique-constraint race can flag it.
func (s *Service) storeMessage(ctx context.Context, msg *models.DavisMessage) (bool, error) {
	exists, err := s.repo.ExistsByTS(ctx, msg.VantagePro2.TS)
	if err != nil {
		return false, err
	}
	if exists {
		nuts.L.Infof("[DavisService] Station data already inserted for ts %d", msg.VantagePro2.TS)
		return false, nil
	}

	station, err := s.repo.CreateSnapshot(ctx, msg)
	if err != nil {
		if err == repository.ErrDuplicate {
			nuts.L.Infof("[DavisService] Station data already inserted for ts %d", msg.VantagePro2.TS)
			return false, nil
		}
		return false, err
	}
	nuts.L.Infof("[DavisService] Stored station snapshot %s for ts %d", station.ID, msg.VantagePro2.TS)
	return true, nil
}
