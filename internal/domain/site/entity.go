package site

import "time"

// Site is a guarded work site (案場). Only the name matters to the payroll
// engine; rows referencing an unregistered site still compute, flagged in
// their status.
type Site struct {
	ID        string
	Name      string
	Address   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
