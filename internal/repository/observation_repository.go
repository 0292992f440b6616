package repository

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/weatherflash/weatherflash-backend-go/internal/database"
	"github.com/weatherflash/weatherflash-backend-go/internal/models"
	"github.com/weatherflash/weatherflash-backend-go/internal/series"
)

// ObservationRepository handles database operations for daily observations.
type ObservationRepository struct {
	db *sql.DB
}

// NewObservationRepository creates a new observation repository.
func NewObservationRepository(db *sql.DB) *ObservationRepository {
	return &ObservationRepository{db: db}
}

// InsertObservations writes a batch of observations for one station in a
// single transaction, replacing values already stored for the same
// station-day-field.
func (r *ObservationRepository) InsertObservations(station string, observations []models.Observation) error {
	if len(observations) == 0 {
		return nil
	}
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT OR REPLACE INTO observations (station, date, field, value)
			VALUES (?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, obs := range observations {
			if _, err := stmt.Exec(
				station,
				obs.Date.Format(series.DateFormat),
				obs.Field,
				obs.Value,
			); err != nil {
				return fmt.Errorf("insert observation %s/%s: %w",
					obs.Date.Format(series.DateFormat), obs.Field, err)
			}
		}
		return nil
	})
}

// GetSeries loads the named columns for a station into a date-ordered
// series. Zero from/to times leave the corresponding bound open.
func (r *ObservationRepository) GetSeries(station string, fieldNames []string, from, to time.Time) (*series.Series, error) {
	if len(fieldNames) == 0 {
		return series.New(nil), nil
	}

	var conditions []string
	var args []interface{}

	conditions = append(conditions, "station = ?")
	args = append(args, station)

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(fieldNames)), ", ")
	conditions = append(conditions, "field IN ("+placeholders+")")
	for _, name := range fieldNames {
		args = append(args, name)
	}

	if !from.IsZero() {
		conditions = append(conditions, "date >= ?")
		args = append(args, from.Format(series.DateFormat))
	}
	if !to.IsZero() {
		conditions = append(conditions, "date <= ?")
		args = append(args, to.Format(series.DateFormat))
	}

	query := `SELECT date, field, value FROM observations WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY date`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query observations: %w", err)
	}
	defer rows.Close()

	byDate := make(map[string]map[string]float64)
	for rows.Next() {
		var date, field string
		var value float64
		if err := rows.Scan(&date, &field, &value); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		row, ok := byDate[date]
		if !ok {
			row = make(map[string]float64, len(fieldNames))
			byDate[date] = row
		}
		row[field] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	s := series.New(fieldNames)
	for _, d := range dates {
		t, err := time.Parse(series.DateFormat, d)
		if err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", d, err)
		}
		if err := s.Append(t, byDate[d]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// GetStations returns the station codes present in storage.
func (r *ObservationRepository) GetStations() ([]string, error) {
	rows, err := r.db.Query("SELECT DISTINCT station FROM observations ORDER BY station")
	if err != nil {
		return nil, fmt.Errorf("query stations: %w", err)
	}
	defer rows.Close()

	var stations []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan station: %w", err)
		}
		stations = append(stations, s)
	}
	return stations, rows.Err()
}

// HasStation reports whether any observations are stored for the station.
func (r *ObservationRepository) HasStation(station string) (bool, error) {
	var n int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM (SELECT 1 FROM observations WHERE station = ? LIMIT 1)",
		station,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check station: %w", err)
	}
	return n > 0, nil
}

// GetDateRange returns the first and last stored dates for a station.
// ok is false when the station has no observations.
func (r *ObservationRepository) GetDateRange(station string) (first, last time.Time, ok bool, err error) {
	var firstStr, lastStr sql.NullString
	err = r.db.QueryRow(
		"SELECT MIN(date), MAX(date) FROM observations WHERE station = ?",
		station,
	).Scan(&firstStr, &lastStr)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("query date range: %w", err)
	}
	if !firstStr.Valid || !lastStr.Valid {
		return time.Time{}, time.Time{}, false, nil
	}
	first, err = time.Parse(series.DateFormat, firstStr.String)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("parse first date: %w", err)
	}
	last, err = time.Parse(series.DateFormat, lastStr.String)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("parse last date: %w", err)
	}
	return first, last, true, nil
}
