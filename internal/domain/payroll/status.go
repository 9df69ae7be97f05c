package payroll

import (
	"fmt"
	"strings"

	"github.com/guardsite/payroll-backend-go/internal/domain/employee"
)

// StatusKind discriminates the attendance outcome of one result row.
type StatusKind string

const (
	StatusFullAttendance    StatusKind = "full_attendance"
	StatusPartialAttendance StatusKind = "partial_attendance"
	StatusDailyRate         StatusKind = "daily_rate"
	StatusHourlyRate        StatusKind = "hourly_rate"
	StatusWeeklyAccrual     StatusKind = "weekly_accrual"
	StatusMonthlyThreshold  StatusKind = "monthly_threshold"
	StatusZeroRequiredDays  StatusKind = "zero_required_days"

	// Configuration gaps: the row still exists, gross is zero.
	StatusMissingPropertySalary StatusKind = "missing_property_salary"
	StatusMissingWeeklyAmount   StatusKind = "missing_weekly_amount"
	StatusMissingPropertyMode   StatusKind = "missing_property_mode"
)

// AttendanceStatus is the structured attendance outcome. Counts are only
// meaningful for the kinds that use them; the display string is rendered at
// the output boundary, never parsed back.
type AttendanceStatus struct {
	Kind      StatusKind
	Completed int
	Required  int

	SiteNotOnFile bool
	CrossSite     bool
	// SourceRegistration is set when the employee matched under a fallback
	// registration type instead of the requested category.
	SourceRegistration employee.RegistrationType
}

// String renders the human-readable status text.
func (s AttendanceStatus) String() string {
	var b strings.Builder
	switch s.Kind {
	case StatusFullAttendance:
		b.WriteString("full attendance")
	case StatusPartialAttendance:
		b.WriteString("partial attendance")
	case StatusDailyRate:
		b.WriteString("daily rate")
	case StatusHourlyRate:
		b.WriteString("hourly rate")
	case StatusWeeklyAccrual:
		fmt.Fprintf(&b, "completed %d/%d weeks", s.Completed, s.Required)
	case StatusMonthlyThreshold:
		if s.Completed >= s.Required {
			fmt.Fprintf(&b, "full schedule (%d days)", s.Required)
		} else {
			fmt.Fprintf(&b, "attended %d/%d days (prorated)", s.Completed, s.Required)
		}
	case StatusZeroRequiredDays:
		b.WriteString("0/0 days attended")
	case StatusMissingPropertySalary:
		b.WriteString("property salary not configured")
	case StatusMissingWeeklyAmount:
		b.WriteString("weekly amount not configured")
	case StatusMissingPropertyMode:
		b.WriteString("property pay mode not configured")
	default:
		b.WriteString(string(s.Kind))
	}
	if s.SiteNotOnFile {
		b.WriteString("; site not on file")
	}
	if s.CrossSite {
		b.WriteString("; computed across sites (insurance charged once)")
	}
	if s.SourceRegistration != "" {
		fmt.Fprintf(&b, "; source: %s", s.SourceRegistration)
	}
	return b.String()
}
