package model

import "time"

// QueryRun is the audit record written after each executed query.
type QueryRun struct {
	ID        string         `json:"id"`
	Operation string         `json:"operation"`
	Model     string         `json:"model"`
	Provider  string         `json:"provider"`
	Params    map[string]any `json:"params,omitempty"`
	RowCount  int            `json:"row_count"`
	Duration  time.Duration  `json:"duration"`
	Error     string         `json:"error,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
