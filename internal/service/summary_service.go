package service

import (
	"math"
	"time"

	"github.com/weatherflash/weatherflash-backend-go/internal/fields"
	"github.com/weatherflash/weatherflash-backend-go/internal/models"
	"github.com/weatherflash/weatherflash-backend-go/internal/repository"
	"github.com/weatherflash/weatherflash-backend-go/internal/series"
	"github.com/weatherflash/weatherflash-backend-go/internal/stats"
)

// SummaryService reports where the selected date's values sit inside the
// window's distributions.
type SummaryService struct {
	repo    *repository.ObservationRepository
	catalog *fields.Catalog
}

// NewSummaryService creates a new summary service.
func NewSummaryService(repo *repository.ObservationRepository, catalog *fields.Catalog) *SummaryService {
	return &SummaryService{repo: repo, catalog: catalog}
}

// GetSummary computes per-field selected-date values, percentile ranks and
// window records. A zero date selects the station's latest stored day.
func (s *SummaryService) GetSummary(station string, date time.Time, window models.Window) (*models.Summary, error) {
	dashboards := &DashboardService{repo: s.repo, catalog: s.catalog}
	full, err := dashboards.loadSeries(station)
	if err != nil {
		return nil, err
	}
	date = resolveDate(full, date)

	sub, err := sliceWindow(full, station, date, window)
	if err != nil {
		return nil, err
	}

	summary := &models.Summary{
		Station: station,
		Date:    date.Format(series.DateFormat),
		Window:  window,
		Fields:  make([]models.FieldSummary, 0, len(s.catalog.Fields)),
	}

	for _, f := range s.catalog.Fields {
		values, _ := sub.Column(f.Name)
		fs := models.FieldSummary{
			Field:        f.Name,
			DefinedCount: len(stats.Defined(values)),
		}
		if fs.DefinedCount > 0 {
			fs.WindowMin = ptr(stats.Min(values))
			fs.WindowMax = ptr(stats.Max(values))
			fs.WindowMean = ptr(stats.Mean(values))
		}
		if v := sub.ValueOn(date, f.Name); !math.IsNaN(v) {
			fs.Value = ptr(v)
			fs.PercentileRank = ptr(stats.PercentileRank(values, v))
		}
		summary.Fields = append(summary.Fields, fs)
	}

	return summary, nil
}

func ptr(v float64) *float64 {
	return &v
}
