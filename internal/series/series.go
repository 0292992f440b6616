package series

import (
	"fmt"
	"math"
	"time"
)

// DateFormat is the calendar-day key format used throughout the backend.
const DateFormat = "2006-01-02"

// Series is a date-ordered table of daily observations for one station.
// Each named column holds one value per row; NaN marks an undefined value.
// Dates are unique within a series.
type Series struct {
	dates   []time.Time
	index   map[string]int // DateFormat key -> row
	columns map[string][]float64
	names   []string
}

// New creates an empty series with the given column names.
func New(columnNames []string) *Series {
	s := &Series{
		index:   make(map[string]int),
		columns: make(map[string][]float64, len(columnNames)),
		names:   append([]string(nil), columnNames...),
	}
	for _, name := range columnNames {
		s.columns[name] = nil
	}
	return s
}

// Append adds one row. Rows must arrive in ascending date order, and values
// for columns the series does not know are rejected. Missing columns are
// filled with NaN.
func (s *Series) Append(date time.Time, values map[string]float64) error {
	key := date.Format(DateFormat)
	if _, ok := s.index[key]; ok {
		return fmt.Errorf("duplicate date %s", key)
	}
	if n := len(s.dates); n > 0 && !s.dates[n-1].Before(date) {
		return fmt.Errorf("date %s out of order", key)
	}
	for name := range values {
		if _, ok := s.columns[name]; !ok {
			return fmt.Errorf("unknown column %q", name)
		}
	}

	s.index[key] = len(s.dates)
	s.dates = append(s.dates, date)
	for _, name := range s.names {
		v, ok := values[name]
		if !ok {
			v = math.NaN()
		}
		s.columns[name] = append(s.columns[name], v)
	}
	return nil
}

// Len returns the number of rows.
func (s *Series) Len() int {
	return len(s.dates)
}

// Dates returns the row dates in order.
func (s *Series) Dates() []time.Time {
	return s.dates
}

// ColumnNames returns the column names in their declared order.
func (s *Series) ColumnNames() []string {
	return s.names
}

// HasColumn reports whether the series carries the named column.
func (s *Series) HasColumn(name string) bool {
	_, ok := s.columns[name]
	return ok
}

// Column returns the values of the named column, aligned with Dates.
func (s *Series) Column(name string) ([]float64, bool) {
	values, ok := s.columns[name]
	return values, ok
}

// ValueOn returns the column value for an exact calendar-day match.
// Dates outside the series, and undefined cells, both come back as NaN.
func (s *Series) ValueOn(date time.Time, name string) float64 {
	values, ok := s.columns[name]
	if !ok {
		return math.NaN()
	}
	row, ok := s.index[date.Format(DateFormat)]
	if !ok {
		return math.NaN()
	}
	return values[row]
}

// FirstDefined returns the first non-NaN value of the named column.
func (s *Series) FirstDefined(name string) (float64, bool) {
	values, ok := s.columns[name]
	if !ok {
		return 0, false
	}
	for _, v := range values {
		if !math.IsNaN(v) {
			return v, true
		}
	}
	return 0, false
}

// SameMonthDay returns the sub-series of rows sharing the month and day of
// the given date, one row per historical year.
func (s *Series) SameMonthDay(date time.Time) *Series {
	month, day := date.Month(), date.Day()
	return s.filter(func(t time.Time) bool {
		return t.Month() == month && t.Day() == day
	})
}

// Trailing returns the sub-series covering the closed interval
// [date-days, date].
func (s *Series) Trailing(date time.Time, days int) *Series {
	from := date.AddDate(0, 0, -days)
	return s.filter(func(t time.Time) bool {
		return !t.Before(from) && !t.After(date)
	})
}

func (s *Series) filter(keep func(time.Time) bool) *Series {
	out := New(s.names)
	for row, t := range s.dates {
		if !keep(t) {
			continue
		}
		out.index[t.Format(DateFormat)] = len(out.dates)
		out.dates = append(out.dates, t)
		for _, name := range s.names {
			out.columns[name] = append(out.columns[name], s.columns[name][row])
		}
	}
	return out
}
