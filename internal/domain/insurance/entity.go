package insurance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Bracket is one row of the statutory contribution table, keyed by insured
// salary level within an import. Amounts are nominal monthly figures.
type Bracket struct {
	ID                   string
	ImportID             string
	InsuredSalaryLevel   int
	LaborEmployer        decimal.Decimal
	LaborEmployee        decimal.Decimal
	HealthEmployer       decimal.Decimal
	HealthEmployee       decimal.Decimal
	OccupationalAccident decimal.Decimal
	LaborPension         decimal.Decimal
	GroupInsurance       decimal.Decimal
}

// BracketImport is one uploaded bracket-table version. The engine always
// works against the most recent import.
type BracketImport struct {
	ID         string
	FileName   string
	ImportedAt time.Time
	// Levels is the sorted list of insured salary levels in the import.
	Levels []int
}

// BracketRange is a derived salary range for one level: level N covers
// [previous level + 1, N], the first range starts at 1 and the last is
// open-ended (capped at 999999 for display).
type BracketRange struct {
	Level int `json:"level"`
	Low   int `json:"low"`
	High  int `json:"high"`
}

const openEndedHigh = 999999

// RangesFromLevels derives the low/high boundaries from a sorted-or-not
// list of levels.
func RangesFromLevels(levels []int) []BracketRange {
	if len(levels) == 0 {
		return nil
	}
	sorted := make([]int, len(levels))
	copy(sorted, levels)
	sort.Ints(sorted)
	out := make([]BracketRange, 0, len(sorted))
	for i, level := range sorted {
		low := 1
		if i > 0 {
			low = sorted[i-1] + 1
		}
		high := level
		if i == len(sorted)-1 {
			high = openEndedHigh
		}
		out = append(out, BracketRange{Level: level, Low: low, High: high})
	}
	return out
}

// SalaryToLevel maps an actual salary onto its bracket level, clamping to
// the nearest end bracket when out of range. ok is false for an empty table.
func SalaryToLevel(ranges []BracketRange, salary int) (int, bool) {
	if len(ranges) == 0 {
		return 0, false
	}
	for _, r := range ranges {
		if salary >= r.Low && salary <= r.High {
			return r.Level, true
		}
	}
	if salary > ranges[len(ranges)-1].High {
		return ranges[len(ranges)-1].Level, true
	}
	return ranges[0].Level, true
}
