package histogram

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/weatherflash/weatherflash-backend-go/internal/series"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	date, err := time.Parse(series.DateFormat, s)
	if err != nil {
		t.Fatalf("parse date %s: %v", s, err)
	}
	return date
}

func buildSeries(t *testing.T, columns []string, dates []string, rows []map[string]float64) *series.Series {
	t.Helper()
	s := series.New(columns)
	for i, d := range dates {
		if err := s.Append(mustDate(t, d), rows[i]); err != nil {
			t.Fatalf("append row %d: %v", i, err)
		}
	}
	return s
}

func tempSeries(t *testing.T) *series.Series {
	return buildSeries(t,
		[]string{"Max Temp F", "Min Temp F"},
		[]string{"2020-08-01", "2020-08-02", "2020-08-03", "2020-08-04"},
		[]map[string]float64{
			{"Max Temp F": 70, "Min Temp F": 50},
			{"Max Temp F": 72, "Min Temp F": 52},
			{"Max Temp F": 75, "Min Temp F": 55},
			{"Max Temp F": 71, "Min Temp F": 49},
		},
	)
}

func checkInvariants(t *testing.T, r *Result) {
	t.Helper()
	if len(r.Edges) < 2 {
		t.Fatalf("expected at least 2 edges, got %d", len(r.Edges))
	}
	for i := 1; i < len(r.Edges); i++ {
		if r.Edges[i] <= r.Edges[i-1] {
			t.Fatalf("edges not strictly increasing at %d: %v", i, r.Edges)
		}
	}
	if len(r.Counts) != len(r.Edges)-1 || len(r.PairedCounts) != len(r.Edges)-1 {
		t.Fatalf("count lengths %d/%d do not match %d bins",
			len(r.Counts), len(r.PairedCounts), len(r.Edges)-1)
	}
	if !(r.XLim[0] < r.Edges[0]) || !(r.Edges[len(r.Edges)-1] < r.XLim[1]) {
		t.Fatalf("xlim %v does not enclose edges [%v, %v]",
			r.XLim, r.Edges[0], r.Edges[len(r.Edges)-1])
	}
	if !(r.YLim[1] > r.YLim[0]) {
		t.Fatalf("invalid ylim %v", r.YLim)
	}
}

func TestComputeHighlightsSelectedDate(t *testing.T) {
	s := tempSeries(t)

	r, err := Compute(s, "Max Temp F", "Min Temp F", mustDate(t, "2020-08-02"))
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	checkInvariants(t, r)

	if r.HighlightBin < 0 {
		t.Fatal("expected a highlight bin")
	}
	lo, hi := r.Edges[r.HighlightBin], r.Edges[r.HighlightBin+1]
	if !(lo <= 72 && 72 < hi) {
		t.Fatalf("highlight bin [%v, %v) does not contain 72", lo, hi)
	}
	if r.Label != "Max Temp: 72.00 F" {
		t.Fatalf("unexpected label %q", r.Label)
	}
	if r.SelectedValue == nil || *r.SelectedValue != 72 {
		t.Fatalf("unexpected selected value %v", r.SelectedValue)
	}
	if r.NoData {
		t.Fatal("did not expect no-data flag")
	}
}

func TestComputeSharedAxesAcrossPair(t *testing.T) {
	s := tempSeries(t)

	a, err := Compute(s, "Max Temp F", "Min Temp F", mustDate(t, "2020-08-02"))
	if err != nil {
		t.Fatalf("compute field: %v", err)
	}
	b, err := Compute(s, "Min Temp F", "Max Temp F", mustDate(t, "2020-08-02"))
	if err != nil {
		t.Fatalf("compute paired: %v", err)
	}

	if !reflect.DeepEqual(a.Edges, b.Edges) {
		t.Fatalf("pair does not share edges: %v vs %v", a.Edges, b.Edges)
	}
	if a.XLim != b.XLim || a.YLim != b.YLim {
		t.Fatalf("pair does not share limits: %v/%v vs %v/%v",
			a.XLim, a.YLim, b.XLim, b.YLim)
	}

	// ylim carries 20% headroom above the taller of the two histograms.
	yMax := 0
	for _, c := range append(append([]int{}, a.Counts...), a.PairedCounts...) {
		if c > yMax {
			yMax = c
		}
	}
	if want := float64(yMax) * 1.2; math.Abs(a.YLim[1]-want) > 1e-9 {
		t.Fatalf("ylim %v, want top %v", a.YLim, want)
	}
}

func TestComputeUndefinedSelectionDate(t *testing.T) {
	s := tempSeries(t)

	for _, date := range []string{"2020-08-15", "1999-01-01"} {
		r, err := Compute(s, "Max Temp F", "Min Temp F", mustDate(t, date))
		if err != nil {
			t.Fatalf("compute: %v", err)
		}
		if r.HighlightBin != -1 {
			t.Fatalf("expected no highlight for %s, got bin %d", date, r.HighlightBin)
		}
		if r.Label != "Max Temp F" {
			t.Fatalf("expected raw field name label, got %q", r.Label)
		}
		if r.SelectedValue != nil {
			t.Fatalf("expected nil selected value, got %v", *r.SelectedValue)
		}
	}
}

func TestComputeAllZeroPrecipitation(t *testing.T) {
	s := buildSeries(t,
		[]string{"Precip In", "Snow In"},
		[]string{"2020-01-01", "2020-01-02", "2020-01-03"},
		[]map[string]float64{
			{"Precip In": 0, "Snow In": 0},
			{"Precip In": 0, "Snow In": 0},
			{"Precip In": 0, "Snow In": 0},
		},
	)

	r, err := Compute(s, "Precip In", "Snow In", mustDate(t, "2020-01-02"))
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	checkInvariants(t, r)

	total := 0
	for _, c := range r.Counts {
		total += c
	}
	if total != 3 {
		t.Fatalf("expected 3 counted zeros, got %d (counts %v)", total, r.Counts)
	}
	if r.Label != "Precip: 0.00 In" {
		t.Fatalf("unexpected label %q", r.Label)
	}
}

func TestComputeNoDataFlag(t *testing.T) {
	s := series.New([]string{"Precip In", "Snow In"})
	if err := s.Append(mustDate(t, "2020-01-01"), nil); err != nil {
		t.Fatalf("append: %v", err)
	}

	r, err := Compute(s, "Precip In", "Snow In", mustDate(t, "2020-01-01"))
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	checkInvariants(t, r)
	if !r.NoData {
		t.Fatal("expected no-data flag for all-undefined field")
	}
	if r.HighlightBin != -1 {
		t.Fatalf("expected no highlight, got %d", r.HighlightBin)
	}
	if r.YLim[1] <= 0 {
		t.Fatalf("ylim must stay positive with zero counts, got %v", r.YLim)
	}
}

func TestComputeIdenticalValuesOnBaseMultiple(t *testing.T) {
	s := buildSeries(t,
		[]string{"A X", "B X"},
		[]string{"2020-01-01", "2020-01-02"},
		[]map[string]float64{
			{"A X": 10, "B X": 10},
			{"A X": 10, "B X": 10},
		},
	)

	r, err := Compute(s, "A X", "B X", mustDate(t, "2020-01-01"))
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	checkInvariants(t, r)
	if r.HighlightBin != 0 {
		t.Fatalf("expected highlight in the single bin, got %d", r.HighlightBin)
	}
}

func TestComputeErrors(t *testing.T) {
	s := tempSeries(t)

	_, err := Compute(s, "Nope", "Min Temp F", mustDate(t, "2020-08-02"))
	var configErr *ConfigurationError
	if !errors.As(err, &configErr) || configErr.Field != "Nope" {
		t.Fatalf("expected ConfigurationError for missing field, got %v", err)
	}

	_, err = Compute(s, "Max Temp F", "Nope", mustDate(t, "2020-08-02"))
	if !errors.As(err, &configErr) || configErr.Field != "Nope" {
		t.Fatalf("expected ConfigurationError for missing pair, got %v", err)
	}

	empty := series.New([]string{"Max Temp F", "Min Temp F"})
	_, err = Compute(empty, "Max Temp F", "Min Temp F", mustDate(t, "2020-08-02"))
	var dataErr *InsufficientDataError
	if !errors.As(err, &dataErr) {
		t.Fatalf("expected InsufficientDataError for empty series, got %v", err)
	}
}

func TestComputeIsPure(t *testing.T) {
	s := tempSeries(t)
	date := mustDate(t, "2020-08-03")

	a, err := Compute(s, "Max Temp F", "Min Temp F", date)
	if err != nil {
		t.Fatalf("first compute: %v", err)
	}
	b, err := Compute(s, "Max Temp F", "Min Temp F", date)
	if err != nil {
		t.Fatalf("second compute: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical inputs produced different results")
	}
}

func TestComputeInvariantsAcrossMagnitudes(t *testing.T) {
	cases := []struct {
		name string
		a, b []float64
	}{
		{"temperatures", []float64{70, 72, 75, 71}, []float64{50, 52, 55, 49}},
		{"pressure", []float64{10130, 10180, 10210, 10090}, []float64{10020, 10050, 10110, 9990}},
		{"trace precip", []float64{0.01, 0.12, 0.4, 0.02}, []float64{0, 0.05, 0.3, 0}},
		{"below zero", []float64{-20, -15, -8, -12}, []float64{-25, -21, -18, -16}},
		{"mixed sign", []float64{-5, 3, 12, 7}, []float64{-11, -2, 4, 1}},
	}
	dates := []string{"2020-08-01", "2020-08-02", "2020-08-03", "2020-08-04"}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows := make([]map[string]float64, len(dates))
			for i := range dates {
				rows[i] = map[string]float64{"A X": tc.a[i], "B X": tc.b[i]}
			}
			s := buildSeries(t, []string{"A X", "B X"}, dates, rows)

			r, err := Compute(s, "A X", "B X", mustDate(t, dates[1]))
			if err != nil {
				t.Fatalf("compute: %v", err)
			}
			checkInvariants(t, r)
			if r.HighlightBin < 0 || r.HighlightBin >= r.Bins() {
				t.Fatalf("highlight bin %d out of range (%d bins)", r.HighlightBin, r.Bins())
			}
		})
	}
}

func TestHighlightBin(t *testing.T) {
	edges := []float64{0, 1, 2, 3}
	cases := []struct {
		value float64
		want  int
	}{
		{-0.5, -1}, // below range: no bin
		{0, 0},
		{0.5, 0},
		{1, 1}, // exact interior edge opens its bin
		{1.5, 1},
		{3, 2},   // last edge steps back into the final bin
		{4.2, 2}, // above range stays in the final bin
	}
	for _, tc := range cases {
		if got := highlightBin(edges, tc.value); got != tc.want {
			t.Errorf("highlightBin(%v) = %d, want %d", tc.value, got, tc.want)
		}
	}
}

func TestSplitFieldName(t *testing.T) {
	cases := []struct {
		field, name, unit string
	}{
		{"Max Temp F", "Max Temp", "F"},
		{"Min Humidity %", "Min Humidity", "%"},
		{"Precip In", "Precip", "In"},
		{"Pressure", "Pressure", ""},
	}
	for _, tc := range cases {
		name, unit := splitFieldName(tc.field)
		if name != tc.name || unit != tc.unit {
			t.Errorf("splitFieldName(%q) = %q, %q; want %q, %q",
				tc.field, name, unit, tc.name, tc.unit)
		}
	}
}
