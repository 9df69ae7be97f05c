// Package proration holds the pure calendar arithmetic behind statutory
// billing: insured-day counts, the health-insurance month rule and the
// fixed /30 partial-month proration.
//
// Enrollment/cancellation convention: the enrollment day is covered, the
// cancellation day is not — coverage is the half-open interval
// [enrollDate, cancelDate). A missing cancellation date means coverage runs
// through month end inclusive.
package proration

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidDate is returned for a month outside 1..12 or a year before 1.
var ErrInvalidDate = errors.New("proration: invalid year/month")

// Partial months are billed against a fixed 30-day denominator regardless of
// the actual month length. Statutory practice, not a bug.
const prorationDenominator = 30

func validYearMonth(year, month int) error {
	if year < 1 || month < 1 || month > 12 {
		return ErrInvalidDate
	}
	return nil
}

func firstOfMonth(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

func lastOfMonth(year, month int) time.Time {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsLastDayOfMonth reports whether d is the final calendar day of its month.
func IsLastDayOfMonth(d time.Time) bool {
	return d.Day() == lastOfMonth(d.Year(), int(d.Month())).Day()
}

// DaysInMonth returns the calendar day count of the month (28-31).
func DaysInMonth(year, month int) (int, error) {
	if err := validYearMonth(year, month); err != nil {
		return 0, err
	}
	return lastOfMonth(year, month).Day(), nil
}

// InsuredDaysInMonth counts the days of the month covered by
// [enrollDate, cancelDate). With no cancellation the interval runs through
// month end inclusive. Returns 0 when the interval misses the month entirely.
func InsuredDaysInMonth(year, month int, enrollDate time.Time, cancelDate *time.Time) (int, error) {
	if err := validYearMonth(year, month); err != nil {
		return 0, err
	}
	first := firstOfMonth(year, month)
	last := lastOfMonth(year, month)

	start := dateOnly(enrollDate)
	if start.Before(first) {
		start = first
	}

	endExclusive := last.AddDate(0, 0, 1)
	if cancelDate != nil {
		cancel := dateOnly(*cancelDate)
		if !cancel.After(last) {
			endExclusive = cancel
		}
	}

	if !start.Before(endExclusive) {
		return 0, nil
	}
	return int(endExclusive.Sub(start).Hours() / 24), nil
}

// HealthInsuranceMonthRatio returns the month's health-insurance billing
// ratio, which is always 0 or 1:
//   - enrollment on the month's last day still bills the full month;
//   - a cancellation inside the month on a day that is not the month's last
//     day bills zero for the month;
//   - any other month inside the coverage interval bills in full.
func HealthInsuranceMonthRatio(year, month int, enrollDate time.Time, cancelDate *time.Time) (int, error) {
	if err := validYearMonth(year, month); err != nil {
		return 0, err
	}
	first := firstOfMonth(year, month)
	last := lastOfMonth(year, month)
	enroll := dateOnly(enrollDate)

	if enroll.After(last) {
		return 0, nil
	}
	if cancelDate != nil {
		cancel := dateOnly(*cancelDate)
		if cancel.Before(first) {
			return 0, nil
		}
		if !cancel.Before(first) && !cancel.After(last) && !IsLastDayOfMonth(cancel) {
			return 0, nil
		}
	}
	if enroll.Equal(last) {
		return 1, nil
	}
	if cancelDate == nil {
		return 1, nil
	}
	cancel := dateOnly(*cancelDate)
	if cancel.After(last) || IsLastDayOfMonth(cancel) {
		return 1, nil
	}
	return 0, nil
}

// ProratedMonthlyFee bills the full monthly amount when coverage spans the
// whole month, otherwise monthlyTotal/30*insuredDays rounded to 2 decimals,
// half-up. The denominator is a fixed 30 independent of month length.
func ProratedMonthlyFee(monthlyTotal decimal.Decimal, insuredDays, year, month int) (decimal.Decimal, error) {
	dim, err := DaysInMonth(year, month)
	if err != nil {
		return decimal.Zero, err
	}
	if insuredDays >= dim {
		return monthlyTotal, nil
	}
	fee := monthlyTotal.
		Div(decimal.NewFromInt(prorationDenominator)).
		Mul(decimal.NewFromInt(int64(insuredDays)))
	return fee.Round(2), nil
}
