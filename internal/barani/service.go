// FilePath: internal/barani/service.go
package barani

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/terrasense/meteohub/internal/errors"
	"github.com/terrasense/meteohub/internal/models"
	"github.com/terrasense/meteohub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// Service handles Barani webhook ingestion and sensor lookups.
type Service struct {
	repo     repository.BaraniRepository
	validate *validator.Validate
}

func NewService(repo repository.BaraniRepository) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
	}
}

// ProcessHelixMessage validates, normalizes and stores one Helix webhook
// message. A reading already stored under the same (serial, timestamp)
// key is skipped and returned as-is.
func (s *Service) ProcessHelixMessage(ctx context.Context, msg *HelixMessage) (*models.BaraniHelixReading, bool, error) {
	if err := s.validate.Struct(msg); err != nil {
		return nil, false, errors.NewValidationError("invalid helix message", err)
	}

	reading, err := NormalizeHelix(msg)
	if err != nil {
		return nil, false, err
	}

	exists, err := s.repo.HelixExists(ctx, reading.SerialNumber, reading.Timestamp)
	if err != nil {
		return nil, false, err
	}
	if exists {
		nuts.L.Infof("[BaraniService] Helix reading already stored for %s at %s",
			reading.SerialNumber, reading.Timestamp)
		return reading, false, nil
	}

	if err := s.repo.CreateHelixReading(ctx, reading); err != nil {
		if err == repository.ErrDuplicate {
			nuts.L.Infof("[BaraniService] Helix reading already stored for %s at %s",
				reading.SerialNumber, reading.Timestamp)
			return reading, false, nil
		}
		return nil, false, err
	}
	return reading, true, nil
}

// ProcessWindMessage validates, normalizes and stores one Wind webhook
// message.
func (s *Service) ProcessWindMessage(ctx context.Context, msg *WindMessage) (*models.BaraniWindReading, bool, error) {
	if err := s.validate.Struct(msg); err != nil {
		return nil, false, errors.NewValidationError("invalid wind message", err)
	}

	reading, err := NormalizeWind(msg)
	if err != nil {
		return nil, false, err
	}

	exists, err := s.repo.WindExists(ctx, reading.SerialNumber, reading.Timestamp)
	if err != nil {
		return nil, false, err
	}
	if exists {
		nuts.L.Infof("[BaraniService] Wind reading already stored for %s at %s",
			reading.SerialNumber, reading.Timestamp)
		return reading, false, nil
	}

	if err := s.repo.CreateWindReading(ctx, reading); err != nil {
		if err == repository.ErrDuplicate {
			nuts.L.Infof("[BaraniService] Wind reading already stored for %s at %s",
				reading.SerialNumber, reading.Timestamp)
			return reading, false, nil
		}
		return nil, false, err
	}
	return reading, true, nil
}

// GetSensorBySerial returns the most recent Helix readings for a station.
func (s *Service) GetSensorBySerial(ctx context.Context, serialNumber string, limit int) ([]*models.BaraniHelixReading, error) {
	if serialNumber == "" {
		return nil, errors.NewValidationError("serial number is required", nil)
	}
	if limit <= 0 {
		limit = 1
	}
	readings, err := s.repo.ListHelixBySerial(ctx, serialNumber, limit)
	if err != nil {
		return nil, err
	}
	if len(readings) == 0 {
		return nil, errors.NewNotFoundError("no readings for serial number", nil).WithDetails(serialNumber)
	}
	return readings, nil
}
