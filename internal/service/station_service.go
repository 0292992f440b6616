package service

import (
	"fmt"
	"io"

	"github.com/weatherflash/weatherflash-backend-go/internal/fields"
	"github.com/weatherflash/weatherflash-backend-go/internal/histogram"
	"github.com/weatherflash/weatherflash-backend-go/internal/importer"
	"github.com/weatherflash/weatherflash-backend-go/internal/models"
	"github.com/weatherflash/weatherflash-backend-go/internal/repository"
	"github.com/weatherflash/weatherflash-backend-go/internal/series"
)

// StationService handles station listing and observation imports.
type StationService struct {
	repo     *repository.ObservationRepository
	importer *importer.Importer
}

// NewStationService creates a new station service.
func NewStationService(repo *repository.ObservationRepository, catalog *fields.Catalog) *StationService {
	return &StationService{
		repo:     repo,
		importer: importer.New(catalog, repo),
	}
}

// Stations lists stored station codes.
func (s *StationService) Stations() ([]string, error) {
	return s.repo.GetStations()
}

// DateRange returns the stored observation span for a station.
func (s *StationService) DateRange(station string) (*models.DateRange, error) {
	first, last, ok, err := s.repo.GetDateRange(station)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &histogram.InsufficientDataError{
			Reason: fmt.Sprintf("no observations for station %q", station),
		}
	}
	return &models.DateRange{
		FirstDate: first.Format(series.DateFormat),
		LastDate:  last.Format(series.DateFormat),
	}, nil
}

// ImportCSV loads a daily CSV stream for a station.
func (s *StationService) ImportCSV(station string, r io.Reader) (*models.ImportReport, error) {
	return s.importer.ImportReader(station, r)
}
