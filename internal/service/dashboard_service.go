package service

import (
	"fmt"
	"time"

	"github.com/weatherflash/weatherflash-backend-go/internal/fields"
	"github.com/weatherflash/weatherflash-backend-go/internal/histogram"
	"github.com/weatherflash/weatherflash-backend-go/internal/models"
	"github.com/weatherflash/weatherflash-backend-go/internal/repository"
	"github.com/weatherflash/weatherflash-backend-go/internal/series"
)

// dashboardColumns is the width of the panel grid; the frequency-axis
// label is only emitted on each row's first panel.
const dashboardColumns = 4

// DashboardService assembles histogram dashboards for a station, date and
// historical window.
type DashboardService struct {
	repo    *repository.ObservationRepository
	catalog *fields.Catalog
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(repo *repository.ObservationRepository, catalog *fields.Catalog) *DashboardService {
	return &DashboardService{repo: repo, catalog: catalog}
}

// GetDashboard computes one histogram panel per catalog field over the
// requested window. A zero date selects the station's latest stored day.
func (s *DashboardService) GetDashboard(station string, date time.Time, window models.Window) (*models.Dashboard, error) {
	full, err := s.loadSeries(station)
	if err != nil {
		return nil, err
	}
	date = resolveDate(full, date)

	sub, err := sliceWindow(full, station, date, window)
	if err != nil {
		return nil, err
	}

	dashboard := &models.Dashboard{
		Station: station,
		Date:    date.Format(series.DateFormat),
		Window:  window,
		Title:   dashboardTitle(station, date, window, full, sub),
		Columns: dashboardColumns,
		Panels:  make([]models.Panel, 0, len(s.catalog.Fields)),
	}

	for i, f := range s.catalog.Fields {
		result, err := histogram.Compute(sub, f.Name, f.PairedWith, date)
		if err != nil {
			return nil, fmt.Errorf("histogram for %q: %w", f.Name, err)
		}
		s.attachClimatology(result, sub, f.Name)

		ylabel := ""
		if i%dashboardColumns == 0 {
			ylabel = window.YLabel()
		}
		dashboard.Panels = append(dashboard.Panels, models.Panel{
			Result: result,
			YLabel: ylabel,
		})
	}

	return dashboard, nil
}

// GetHistogram computes a single panel for one catalog field.
func (s *DashboardService) GetHistogram(station, field string, date time.Time, window models.Window) (*histogram.Result, error) {
	if !s.catalog.Has(field) {
		return nil, &histogram.ConfigurationError{Field: field}
	}
	paired, _ := s.catalog.PairOf(field)

	full, err := s.loadSeries(station)
	if err != nil {
		return nil, err
	}
	date = resolveDate(full, date)

	sub, err := sliceWindow(full, station, date, window)
	if err != nil {
		return nil, err
	}

	result, err := histogram.Compute(sub, field, paired, date)
	if err != nil {
		return nil, err
	}
	s.attachClimatology(result, sub, field)
	return result, nil
}

func (s *DashboardService) loadSeries(station string) (*series.Series, error) {
	full, err := s.repo.GetSeries(station, s.catalog.StorageNames(), time.Time{}, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("load series for %q: %w", station, err)
	}
	if full.Len() == 0 {
		return nil, &histogram.InsufficientDataError{
			Reason: fmt.Sprintf("no observations for station %q", station),
		}
	}
	return full, nil
}

// attachClimatology resolves the field's climatology column through the
// catalog's explicit mapping and pins its first defined value onto the
// result. Fields without a mapped or populated column are silently left
// without a marker.
func (s *DashboardService) attachClimatology(result *histogram.Result, sub *series.Series, field string) {
	climoField, ok := s.catalog.ClimatologyOf(field)
	if !ok {
		return
	}
	if v, ok := sub.FirstDefined(climoField); ok {
		result.Climatology = &v
	}
}

// resolveDate defaults a zero selection date to the series' latest day.
func resolveDate(full *series.Series, date time.Time) time.Time {
	if !date.IsZero() {
		return date
	}
	dates := full.Dates()
	return dates[len(dates)-1]
}

func sliceWindow(full *series.Series, station string, date time.Time, window models.Window) (*series.Series, error) {
	var sub *series.Series
	if window == models.WindowYears {
		sub = full.SameMonthDay(date)
	} else {
		sub = full.Trailing(date, window.Days())
	}
	if sub.Len() == 0 {
		return nil, &histogram.InsufficientDataError{
			Reason: fmt.Sprintf("no observations for station %q in window %s of %s",
				station, window, date.Format(series.DateFormat)),
		}
	}
	return sub, nil
}

func dashboardTitle(station string, date time.Time, window models.Window, full, sub *series.Series) string {
	if window == models.WindowYears {
		firstYear := full.Dates()[0].Year()
		return fmt.Sprintf("%s Weather on %ss since %d",
			station, date.Format("January 2"), firstYear)
	}
	from := sub.Dates()[0]
	return fmt.Sprintf("%s Weather from %s to %s",
		station, from.Format("January 2, 2006"), date.Format("January 2, 2006"))
}
