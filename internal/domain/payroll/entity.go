package payroll

import (
	"time"

	"github.com/guardsite/payroll-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// PayType enum
type PayType string

const (
	PayTypeMonthly PayType = "monthly"
	PayTypeDaily   PayType = "daily"
	PayTypeHourly  PayType = "hourly"
)

// PropertyPayMode enum - accrual schemes used only by the property payroll
// category.
type PropertyPayMode string

const (
	// PropertyModeWeeklyAccrual pays a fixed weekly amount for every ISO
	// week whose summed hours reach 2, capped at the fixed property salary.
	PropertyModeWeeklyAccrual PropertyPayMode = "WEEKLY_ACCRUAL"
	// PropertyModeMonthlyThreshold prorates the fixed salary by days with
	// at least 8 hours over the month's required working days.
	PropertyModeMonthlyThreshold PropertyPayMode = "MONTHLY_THRESHOLD"
)

// AttendanceRecord is one parsed time-sheet line: hours one employee worked
// at one site on one day. Exists only for the duration of a calculation run.
type AttendanceRecord struct {
	Site     string
	Employee string
	Date     time.Time
	Hours    float64
}

// PayModeConfig is the fully resolved pay configuration for one employee
// for one payroll category, built once by the pay-rate resolver and never
// re-derived later. Exactly one of the three wage figures is native; the
// others are derived (daily = monthly/24, hourly = daily/12, rounded).
type PayModeConfig struct {
	PayType            PayType
	MonthlySalary      int64
	DailyWage          int64
	HourlyWage         int64
	InsuredSalaryLevel *int

	GroupInsuranceEnabled bool
	GroupInsuranceFee     decimal.Decimal
	SelfPensionEnabled    bool

	// Set only for the property payroll category. Zero value means the
	// figure is not configured.
	PropertyPayMode    PropertyPayMode
	WeeklyAmount       int64
	FixedMonthlySalary int64
}

// PropertySpecial reports whether cfg selects one of the property-specific
// accrual modes rather than the standard daily computation.
func (cfg PayModeConfig) PropertySpecial() bool {
	return cfg.PropertyPayMode == PropertyModeWeeklyAccrual ||
		cfg.PropertyPayMode == PropertyModeMonthlyThreshold
}

// ResultRow is the final output unit: one row per (site, employee) pair with
// attendance in the period. Insurance fields are non-zero on at most one row
// per employee.
type ResultRow struct {
	Site                     string                    `json:"site"`
	Employee                 string                    `json:"employee"`
	PayType                  PayType                   `json:"pay_type"`
	TotalHours               float64                   `json:"total_hours"`
	GrossSalary              int64                     `json:"gross_salary"`
	LaborInsuranceEmployee   int64                     `json:"labor_insurance_employee"`
	HealthInsuranceEmployee  int64                     `json:"health_insurance_employee"`
	GroupInsurance           int64                     `json:"group_insurance"`
	SelfPension              int64                     `json:"self_pension"`
	DeductionsTotal          int64                     `json:"deductions_total"`
	NetSalary                int64                     `json:"net_salary"`
	Status                   AttendanceStatus          `json:"-"`
	StatusText               string                    `json:"status"`
	SourceRegistrationType   employee.RegistrationType `json:"source_registration_type"`
	EnrollDate               *time.Time                `json:"enroll_date,omitempty"`
	GroupInsuranceDays       int                       `json:"group_insurance_days"`
	GroupInsuranceMonthlyFee int64                     `json:"group_insurance_monthly_fee"`
}

// TraceDay is one daily amount snapshot for the optional trace employee.
type TraceDay struct {
	Day           int     `json:"day"`
	Hours         float64 `json:"hours"`
	RawAmount     float64 `json:"raw_amount"`
	RoundedAmount int64   `json:"rounded_amount"`
}

// Trace is the diagnostic aid for one designated employee: the first five
// daily raw/rounded amounts plus both summation variants, so the
// round-each-day-then-sum rule can be verified against real data.
type Trace struct {
	Employee          string     `json:"employee"`
	PayType           PayType    `json:"pay_type"`
	MonthlySalary     int64      `json:"monthly_salary"`
	DailyWage         int64      `json:"daily_wage"`
	HourlyWage        int64      `json:"hourly_wage"`
	FirstDays         []TraceDay `json:"first_days"`
	GrossBySumRaw     int64      `json:"gross_by_sum_raw"`
	GrossBySumRounded int64      `json:"gross_by_sum_rounded_daily"`
	GrossFinal        int64      `json:"gross_final"`
}
