package repository

import (
	"database/sql"
	"math"
	"testing"
	"time"

	"github.com/weatherflash/weatherflash-backend-go/internal/database"
	"github.com/weatherflash/weatherflash-backend-go/internal/models"
	"github.com/weatherflash/weatherflash-backend-go/internal/series"

	_ "modernc.org/sqlite"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	// One connection, or each pool connection sees its own memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func obs(t *testing.T, date, field string, value float64) models.Observation {
	t.Helper()
	d, err := time.Parse(series.DateFormat, date)
	if err != nil {
		t.Fatalf("parse %s: %v", date, err)
	}
	return models.Observation{Date: d, Field: field, Value: value}
}

func TestInsertAndGetSeries(t *testing.T) {
	repo := NewObservationRepository(testDB(t))

	err := repo.InsertObservations("KAMW", []models.Observation{
		obs(t, "2020-08-01", "Max Temp F", 75),
		obs(t, "2020-08-01", "Min Temp F", 55),
		obs(t, "2020-08-02", "Max Temp F", 72),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	s, err := repo.GetSeries("KAMW", []string{"Max Temp F", "Min Temp F"}, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("get series: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("rows = %d", s.Len())
	}
	d1, _ := time.Parse(series.DateFormat, "2020-08-01")
	d2, _ := time.Parse(series.DateFormat, "2020-08-02")
	if v := s.ValueOn(d1, "Min Temp F"); v != 55 {
		t.Fatalf("Min Temp F on day 1 = %v", v)
	}
	// Day 2 has no minimum stored, so the cell is undefined.
	if v := s.ValueOn(d2, "Min Temp F"); !math.IsNaN(v) {
		t.Fatalf("Min Temp F on day 2 = %v", v)
	}

	// Other stations stay invisible.
	other, err := repo.GetSeries("KDSM", []string{"Max Temp F"}, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("get series: %v", err)
	}
	if other.Len() != 0 {
		t.Fatalf("unexpected rows for other station: %d", other.Len())
	}
}

func TestInsertReplacesExistingValue(t *testing.T) {
	repo := NewObservationRepository(testDB(t))

	if err := repo.InsertObservations("KAMW", []models.Observation{
		obs(t, "2020-08-01", "Max Temp F", 75),
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.InsertObservations("KAMW", []models.Observation{
		obs(t, "2020-08-01", "Max Temp F", 76),
	}); err != nil {
		t.Fatalf("reinsert: %v", err)
	}

	s, err := repo.GetSeries("KAMW", []string{"Max Temp F"}, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("get series: %v", err)
	}
	d, _ := time.Parse(series.DateFormat, "2020-08-01")
	if v := s.ValueOn(d, "Max Temp F"); v != 76 {
		t.Fatalf("got %v after replace", v)
	}
}

func TestGetSeriesDateBounds(t *testing.T) {
	repo := NewObservationRepository(testDB(t))

	if err := repo.InsertObservations("KAMW", []models.Observation{
		obs(t, "2020-08-01", "Max Temp F", 70),
		obs(t, "2020-08-02", "Max Temp F", 71),
		obs(t, "2020-08-03", "Max Temp F", 72),
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	from, _ := time.Parse(series.DateFormat, "2020-08-02")
	s, err := repo.GetSeries("KAMW", []string{"Max Temp F"}, from, from)
	if err != nil {
		t.Fatalf("get series: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("rows = %d", s.Len())
	}
	if got := s.Dates()[0].Format(series.DateFormat); got != "2020-08-02" {
		t.Fatalf("date = %s", got)
	}
}

func TestStationsAndDateRange(t *testing.T) {
	repo := NewObservationRepository(testDB(t))

	if err := repo.InsertObservations("KDSM", []models.Observation{
		obs(t, "2019-01-01", "Max Temp F", 30),
		obs(t, "2020-12-31", "Max Temp F", 28),
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.InsertObservations("KAMW", []models.Observation{
		obs(t, "2020-08-01", "Max Temp F", 75),
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	stations, err := repo.GetStations()
	if err != nil {
		t.Fatalf("stations: %v", err)
	}
	if len(stations) != 2 || stations[0] != "KAMW" || stations[1] != "KDSM" {
		t.Fatalf("stations = %v", stations)
	}

	has, err := repo.HasStation("KDSM")
	if err != nil || !has {
		t.Fatalf("HasStation(KDSM) = %v, %v", has, err)
	}
	has, err = repo.HasStation("KXYZ")
	if err != nil || has {
		t.Fatalf("HasStation(KXYZ) = %v, %v", has, err)
	}

	first, last, ok, err := repo.GetDateRange("KDSM")
	if err != nil || !ok {
		t.Fatalf("date range: ok=%v err=%v", ok, err)
	}
	if first.Format(series.DateFormat) != "2019-01-01" ||
		last.Format(series.DateFormat) != "2020-12-31" {
		t.Fatalf("range = %s..%s", first.Format(series.DateFormat), last.Format(series.DateFormat))
	}
	if _, _, ok, err := repo.GetDateRange("KXYZ"); err != nil || ok {
		t.Fatalf("expected no range, ok=%v err=%v", ok, err)
	}
}
