// Package importer loads IEM-style daily observation CSV exports into the
// observation store, normalizing the wire column names to the catalog's
// display names.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/weatherflash/weatherflash-backend-go/internal/fields"
	"github.com/weatherflash/weatherflash-backend-go/internal/models"
	"github.com/weatherflash/weatherflash-backend-go/internal/repository"
	"github.com/weatherflash/weatherflash-backend-go/internal/series"
)

// anchorField must be defined for a row to count; rows without it are
// partial station-days and get dropped.
const anchorField = "Max Temp F"

// renames maps title-cased wire names to catalog names.
var renames = map[string]string{
	"Climo High F":       "Climo Max Temp F",
	"Climo Low F":        "Climo Min Temp F",
	"Min Feel":           "Min Feel F",
	"Max Feel":           "Max Feel F",
	"Min Rh":             "Min Humidity %",
	"Max Rh":             "Max Humidity %",
	"Max Wind Speed Kts": "Max Wind Kts",
	"Max Wind Gust Kts":  "Max Gust Kts",
}

// Importer parses daily CSV files and writes them through the repository.
type Importer struct {
	catalog *fields.Catalog
	repo    *repository.ObservationRepository
}

// New creates an importer for the given catalog and repository.
func New(catalog *fields.Catalog, repo *repository.ObservationRepository) *Importer {
	return &Importer{catalog: catalog, repo: repo}
}

// ImportFile imports one CSV file for a station.
func (imp *Importer) ImportFile(station, path string) (*models.ImportReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return imp.ImportReader(station, f)
}

// ImportReader imports CSV data for a station from a stream.
func (imp *Importer) ImportReader(station string, r io.Reader) (*models.ImportReport, error) {
	if station == "" {
		return nil, fmt.Errorf("station is required")
	}
	observations, report, err := Parse(imp.catalog, r)
	if err != nil {
		return nil, err
	}
	if err := imp.repo.InsertObservations(station, observations); err != nil {
		return nil, err
	}
	report.Station = station
	return report, nil
}

// Parse reads a daily CSV export and returns the observations it carries.
// Column names are normalized to catalog names; columns the catalog does
// not know are ignored. Unparseable cells and negative readings of
// positive-only fields become undefined, and undefined cells are simply not
// emitted.
func Parse(catalog *fields.Catalog, r io.Reader) ([]models.Observation, *models.ImportReport, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}

	known := make(map[string]bool)
	for _, name := range catalog.StorageNames() {
		known[name] = true
	}

	dateCol := -1
	colNames := make([]string, len(header))
	for i, raw := range header {
		name := normalizeColumn(raw)
		if name == "Day" || name == "Date" {
			dateCol = i
			continue
		}
		if known[name] {
			colNames[i] = name
		}
	}
	if dateCol < 0 {
		return nil, nil, fmt.Errorf("csv has no day column")
	}

	var observations []models.Observation
	report := &models.ImportReport{}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read csv record: %w", err)
		}

		date, err := time.Parse(series.DateFormat, strings.TrimSpace(record[dateCol]))
		if err != nil {
			report.SkippedRows++
			continue
		}

		row := make(map[string]float64, len(header))
		for i, cell := range record {
			name := colNames[i]
			if name == "" {
				continue
			}
			v := parseValue(cell)
			if catalog.PositiveOnly(name) && v < 0 {
				v = math.NaN()
			}
			row[name] = v
		}

		if anchor, ok := row[anchorField]; !ok || math.IsNaN(anchor) {
			report.SkippedRows++
			continue
		}

		report.Rows++
		for name, v := range row {
			if math.IsNaN(v) {
				continue
			}
			observations = append(observations, models.Observation{
				Date:  date,
				Field: name,
				Value: v,
			})
			report.Values++
		}
	}

	return observations, report, nil
}

// normalizeColumn turns a wire column name like "max_wind_speed_kts" into
// its catalog name.
func normalizeColumn(raw string) string {
	words := strings.FieldsFunc(strings.TrimSpace(raw), func(r rune) bool {
		return r == '_' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	name := strings.Join(words, " ")
	if renamed, ok := renames[name]; ok {
		return renamed
	}
	return name
}

// parseValue coerces a CSV cell to a float. Missing-data sentinels ("M",
// "None", empty) and anything else unparseable come back as NaN.
func parseValue(cell string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
