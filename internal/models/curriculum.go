package models

import "time"

// Curriculum is one class/subject/topic unit of curriculum content.
type Curriculum struct {
	ID          int64     `db:"id" json:"id"`
	ClassName   string    `db:"class_name" json:"class_name"`
	Subject     string    `db:"subject" json:"subject"`
	Topic       string    `db:"topic" json:"topic"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ImportRowError explains why one spreadsheet row was not stored.
type ImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportSummary reports the outcome of a bulk import.
type ImportSummary struct {
	Total     int              `json:"total"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Errors    []ImportRowError `json:"errors,omitempty"`
}
