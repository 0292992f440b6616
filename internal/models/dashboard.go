package models

import "github.com/weatherflash/weatherflash-backend-go/internal/histogram"

// Panel is one histogram cell of the dashboard grid.
type Panel struct {
	*histogram.Result

	// YLabel carries the frequency-axis label; only the first panel of
	// each grid row gets one, the rest share it visually.
	YLabel string `json:"ylabel"`
}

// Dashboard is the full render payload for one (station, date, window)
// selection.
type Dashboard struct {
	Station string  `json:"station"`
	Date    string  `json:"date"`
	Window  Window  `json:"window"`
	Title   string  `json:"title"`
	Columns int     `json:"columns"`
	Panels  []Panel `json:"panels"`
}
