package models

// FieldSummary describes where the selected date's value sits inside the
// window's distribution for one field.
type FieldSummary struct {
	Field          string   `json:"field"`
	Value          *float64 `json:"value,omitempty"`
	PercentileRank *float64 `json:"percentile_rank,omitempty"`
	WindowMin      *float64 `json:"window_min,omitempty"`
	WindowMax      *float64 `json:"window_max,omitempty"`
	WindowMean     *float64 `json:"window_mean,omitempty"`
	DefinedCount   int      `json:"defined_count"`
}

// Summary is the selected-date overview across all catalog fields.
type Summary struct {
	Station string         `json:"station"`
	Date    string         `json:"date"`
	Window  Window         `json:"window"`
	Fields  []FieldSummary `json:"fields"`
}
