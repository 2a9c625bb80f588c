package domain

import "time"

// ConversionRecord is one persisted entry of the query history.
type ConversionRecord struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Question   string    `json:"question"`
	SQL        string    `json:"sql"`
	Method     string    `json:"method"`
	Success    bool      `json:"success"`
	RowCount   int       `json:"row_count"`
	DurationMS int64     `json:"duration_ms"`
}
