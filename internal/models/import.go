package models

// ImportReport summarizes one CSV import run.
type ImportReport struct {
	Station     string `json:"station"`
	Rows        int    `json:"rows"`
	Values      int    `json:"values"`
	SkippedRows int    `json:"skipped_rows"`
}
