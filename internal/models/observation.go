package models

import "time"

// Observation is one stored value: a single field of a single station-day.
// Undefined values are never stored; absence from storage means undefined.
type Observation struct {
	Date  time.Time `json:"date"`
	Field string    `json:"field"`
	Value float64   `json:"value"`
}

// DateRange is the span of stored observations for a station.
type DateRange struct {
	FirstDate string `json:"first_date"`
	LastDate  string `json:"last_date"`
}
