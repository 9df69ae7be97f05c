package payroll

import (
	"github.com/guardsite/payroll-backend-go/internal/domain/employee"
)

// CalculateRequest drives one parse-then-aggregate-then-insure run.
type CalculateRequest struct {
	Year     int                       `json:"year"`
	Month    int                       `json:"month"`
	Category employee.RegistrationType `json:"category"`
	// ExtraCategories are tried, in order, when a name has no record under
	// Category (cross-registration fallback).
	ExtraCategories []employee.RegistrationType `json:"extra_categories,omitempty"`
	// TraceEmployee selects one employee for the daily-amount trace.
	TraceEmployee string `json:"trace_employee,omitempty"`
	// Commit persists the result rows, replacing any previous rows for the
	// same (year, month, category).
	Commit bool `json:"commit,omitempty"`
}

func (r CalculateRequest) Validate() error {
	if r.Year < 1 || r.Month < 1 || r.Month > 12 {
		return ErrInvalidPeriod
	}
	if !r.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

// CalculateResponse carries the rows together with the per-entity error
// list: a payroll batch can be mostly successful with some gaps, and the
// caller renders both.
type CalculateResponse struct {
	Rows     []ResultRow `json:"rows"`
	Errors   []CalcError `json:"errors"`
	Warnings []string    `json:"warnings,omitempty"`
	Trace    *Trace      `json:"trace,omitempty"`
}
