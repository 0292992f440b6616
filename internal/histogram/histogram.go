// Package histogram computes adaptive histogram bins for a pair of related
// observation fields, keeping both on shared axes, and places the selected
// date's value inside the bins.
package histogram

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/weatherflash/weatherflash-backend-go/internal/series"
	"github.com/weatherflash/weatherflash-backend-go/internal/stats"
)

// Result holds everything a renderer needs to draw one histogram panel:
// bin edges, counts for the field and its paired field over the same edges,
// shared axis limits, and the highlight for the selected date.
type Result struct {
	Field       string `json:"field"`
	PairedField string `json:"paired_field"`

	Edges        []float64 `json:"edges"`
	Counts       []int     `json:"counts"`
	PairedCounts []int     `json:"paired_counts"`

	XLim [2]float64 `json:"xlim"`
	YLim [2]float64 `json:"ylim"`

	// HighlightBin is the index of the bin containing the selected date's
	// value, or -1 when that value is undefined.
	HighlightBin  int      `json:"highlight_bin"`
	SelectedValue *float64 `json:"selected_value,omitempty"`
	Label         string   `json:"label"`

	// NoData is set when the primary field has no countable values, so the
	// renderer can overlay a placeholder.
	NoData bool `json:"no_data"`

	// Climatology is an optional reference value for a vertical marker.
	// Compute leaves it nil; callers attach it via their own lookup.
	Climatology *float64 `json:"climatology,omitempty"`
}

// Bins returns the number of bins.
func (r *Result) Bins() int {
	return len(r.Edges) - 1
}

// Compute bins the named field (and its paired field, over identical edges)
// across the whole series and locates the bin holding the field's value on
// the selection date. Bin width adapts to the order of magnitude of the
// data so that large-range fields such as temperature and near-zero fields
// such as precipitation both land on readable edges.
//
// Compute is a pure function of its inputs and never mutates the series.
func Compute(s *series.Series, field, pairedField string, date time.Time) (*Result, error) {
	if s == nil || s.Len() == 0 {
		return nil, &InsufficientDataError{}
	}
	values, ok := s.Column(field)
	if !ok {
		return nil, &ConfigurationError{Field: field}
	}
	refValues, ok := s.Column(pairedField)
	if !ok {
		return nil, &ConfigurationError{Field: pairedField}
	}

	// Shared range across both fields keeps the pair comparable.
	combined := append(stats.Defined(values), stats.Defined(refValues)...)
	var varMin, varMax float64
	if len(combined) > 0 {
		varMin = stats.Min(combined)
		varMax = stats.Max(combined)
	}

	base := binBase(varMax)
	varMin = roundToMultiple(varMin, base, roundDown)
	varMax = roundToMultiple(varMax, base, roundUp)
	if varMax < 1 {
		// Guards all-zero data, notably precipitation.
		varMax = 1
	}
	if varMin == varMax {
		varMax += 0.01
	}

	edges := binEdges(varMin, varMax, base)
	counts := countBins(values, edges)
	refCounts := countBins(refValues, edges)

	yMax := float64(maxCount(counts))
	if ref := float64(maxCount(refCounts)); ref > yMax {
		yMax = ref
	}
	yTop := yMax
	if yTop == 0 {
		yTop = 1
	}

	result := &Result{
		Field:        field,
		PairedField:  pairedField,
		Edges:        edges,
		Counts:       counts,
		PairedCounts: refCounts,
		XLim:         [2]float64{varMin - base/3, varMax + base/3},
		YLim:         [2]float64{0, yTop * 1.2},
		HighlightBin: -1,
		Label:        field,
		NoData:       maxCount(counts) == 0,
	}

	selected := s.ValueOn(date, field)
	if !math.IsNaN(selected) {
		result.HighlightBin = highlightBin(edges, selected)
		result.SelectedValue = &selected
		name, unit := splitFieldName(field)
		result.Label = strings.TrimSpace(fmt.Sprintf("%s: %.2f %s", name, selected, unit))
	}

	return result, nil
}

// binBase derives the rounding base from the order of magnitude of the
// range maximum. For magnitudes above ten the raw power of ten would make
// absurdly wide bins, so its log is used instead.
func binBase(varMax float64) float64 {
	oom := 0.0
	if varMax != 0 {
		oom = math.Floor(math.Log10(math.Abs(varMax))) - 1
	}
	scale := math.Pow(10, oom)
	if oom > 0 {
		scale = math.Log10(scale)
	}
	return scale * 5
}

// binEdges generates the arithmetic edge sequence from varMin up to but not
// including varMax. How many multiples of base the range spans decides the
// step: narrow ranges get finer bins.
func binEdges(varMin, varMax, base float64) []float64 {
	span := (varMax - varMin) / base
	step := base
	switch {
	case span <= 7:
		step = base / 3
	case span <= 14:
		step = base / 2
	}

	var edges []float64
	for i := 0; ; i++ {
		edge := varMin + float64(i)*step
		if edge >= varMax {
			break
		}
		edges = append(edges, edge)
	}
	if len(edges) < 2 {
		// Degenerate range narrower than one step still needs one bin.
		edges = []float64{varMin, varMin + step}
	}
	return edges
}

// countBins tallies values into the bins defined by edges. Bins are
// right-open except the last, which also takes values equal to the final
// edge; NaN and out-of-range values are ignored.
func countBins(values, edges []float64) []int {
	counts := make([]int, len(edges)-1)
	last := len(edges) - 1
	for _, v := range values {
		if math.IsNaN(v) || v < edges[0] || v > edges[last] {
			continue
		}
		i := sort.SearchFloat64s(edges, v)
		if i < last && edges[i] == v {
			counts[i]++
			continue
		}
		counts[i-1]++
	}
	return counts
}

// highlightBin returns the index of the highest edge at or below the value,
// stepping back one bin when that edge is the last one. Values below the
// first edge belong to no bin and return -1; values above the last edge
// stay in the final bin, like a value sitting exactly on the last edge.
func highlightBin(edges []float64, value float64) int {
	if value < edges[0] {
		return -1
	}
	i := sort.SearchFloat64s(edges, value)
	if i >= len(edges) || edges[i] != value {
		i--
	}
	if i == len(edges)-1 {
		i--
	}
	return i
}

func maxCount(counts []int) int {
	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	return max
}

// splitFieldName treats the last whitespace-delimited token of a field name
// as its unit suffix and the remainder as the human-readable name.
func splitFieldName(field string) (name, unit string) {
	tokens := strings.Fields(field)
	if len(tokens) < 2 {
		return field, ""
	}
	return strings.Join(tokens[:len(tokens)-1], " "), tokens[len(tokens)-1]
}
