package payroll

import (
	"math"
	"strings"

	"github.com/guardsite/payroll-backend-go/internal/domain/employee"
	"github.com/guardsite/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}

func roundDecimal(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// payModeRaw picks the stored pay-mode field matching the payroll category.
// Cleaning has no mode field; resolution for it always reports a missing
// pay configuration.
func payModeRaw(emp employee.Employee, category employee.RegistrationType) string {
	switch category {
	case employee.RegistrationSecurity:
		return strings.TrimSpace(emp.SecurityPayMode)
	case employee.RegistrationProperty:
		return strings.TrimSpace(emp.PropertyPayMode)
	case employee.RegistrationSmith:
		return strings.TrimSpace(emp.SmithPayMode)
	case employee.RegistrationLixiang:
		return strings.TrimSpace(emp.LixiangPayMode)
	}
	return ""
}

// normalizePropertyMode accepts both canonical names and the legacy
// spellings still present in older records.
func normalizePropertyMode(raw string) payroll.PropertyPayMode {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "WEEKLY_ACCRUAL", "WEEKLY_2H":
		return payroll.PropertyModeWeeklyAccrual
	case "MONTHLY_THRESHOLD", "MONTHLY_8H_HOLIDAY":
		return payroll.PropertyModeMonthlyThreshold
	}
	return ""
}

// ResolvePayModeConfig builds the fully typed pay configuration for one
// employee under one payroll category. Returns nil when the employee has no
// usable configuration for that category; the caller reports the gap.
//
// The three wage figures obey a fixed derivation: the native rate is
// rounded to whole currency units, then daily = round(monthly/24) and
// hourly = round(daily/12) unless independently supplied.
func ResolvePayModeConfig(
	emp employee.Employee,
	category employee.RegistrationType,
	defaultGroupFee decimal.Decimal,
) *payroll.PayModeConfig {
	raw := payModeRaw(emp, category)
	if raw == "" && emp.RegistrationType != category {
		// Cross-registration match: the employee carries no mode for the
		// requested category, so pay them under their own registration's
		// mode. The result row keeps the source-registration annotation.
		raw = payModeRaw(emp, emp.RegistrationType)
	}
	if raw == "" {
		return nil
	}

	if category == employee.RegistrationProperty {
		if mode := normalizePropertyMode(raw); mode != "" {
			return propertyConfig(emp, mode, defaultGroupFee)
		}
	}

	switch employee.SalaryType(strings.ToLower(raw)) {
	case employee.SalaryTypeMonthly, employee.SalaryTypeDaily, employee.SalaryTypeHourly:
		return companyModeConfig(emp, employee.SalaryType(strings.ToLower(raw)), defaultGroupFee)
	}

	// Unrecognized mode string: for non-property categories fall back to
	// the salary type stored on the employee/profile.
	if category != employee.RegistrationProperty {
		return profileFallbackConfig(emp, defaultGroupFee)
	}
	return nil
}

func companyModeConfig(
	emp employee.Employee,
	mode employee.SalaryType,
	defaultGroupFee decimal.Decimal,
) *payroll.PayModeConfig {
	native := nativeRate(emp, mode)
	if native == nil || !native.IsPositive() {
		return nil
	}

	var monthly, daily, hourly int64
	var payType payroll.PayType
	switch mode {
	case employee.SalaryTypeMonthly:
		payType = payroll.PayTypeMonthly
		monthly = roundDecimal(*native)
		daily = roundDecimal(native.Div(decimal.NewFromInt(24)))
		hourly = roundHalfUp(float64(daily) / 12)
	case employee.SalaryTypeDaily:
		payType = payroll.PayTypeDaily
		daily = roundDecimal(*native)
		hourly = roundHalfUp(float64(daily) / 12)
	case employee.SalaryTypeHourly:
		payType = payroll.PayTypeHourly
		hourly = roundDecimal(*native)
	default:
		return nil
	}

	enabled, fee := groupInsuranceSettings(emp.Profile, defaultGroupFee)
	return &payroll.PayModeConfig{
		PayType:               payType,
		MonthlySalary:         monthly,
		DailyWage:             daily,
		HourlyWage:            hourly,
		InsuredSalaryLevel:    positiveLevel(emp.InsuredSalaryLevel),
		GroupInsuranceEnabled: enabled,
		GroupInsuranceFee:     fee,
		SelfPensionEnabled:    emp.SelfPensionEnabled,
	}
}

func profileFallbackConfig(emp employee.Employee, defaultGroupFee decimal.Decimal) *payroll.PayModeConfig {
	st := emp.SalaryType
	if st != employee.SalaryTypeMonthly && st != employee.SalaryTypeDaily && st != employee.SalaryTypeHourly {
		if emp.Profile == nil {
			return nil
		}
		st = emp.Profile.SalaryType
	}
	return companyModeConfig(emp, st, defaultGroupFee)
}

func propertyConfig(
	emp employee.Employee,
	mode payroll.PropertyPayMode,
	defaultGroupFee decimal.Decimal,
) *payroll.PayModeConfig {
	var weekly, fixed int64
	if emp.WeeklyAmount != nil {
		weekly = roundDecimal(*emp.WeeklyAmount)
	}
	if emp.PropertySalary != nil {
		fixed = roundDecimal(*emp.PropertySalary)
	}
	// Property employees always carry group insurance at the configured
	// flat fee; the salary profile is not consulted.
	return &payroll.PayModeConfig{
		PayType:               payroll.PayTypeMonthly,
		InsuredSalaryLevel:    positiveLevel(emp.InsuredSalaryLevel),
		GroupInsuranceEnabled: true,
		GroupInsuranceFee:     defaultGroupFee,
		SelfPensionEnabled:    emp.SelfPensionEnabled,
		PropertyPayMode:       mode,
		WeeklyAmount:          weekly,
		FixedMonthlySalary:    fixed,
	}
}

// nativeRate resolves the rate figure for the mode: the employee-level
// salary value wins, then the secondary profile field.
func nativeRate(emp employee.Employee, mode employee.SalaryType) *decimal.Decimal {
	if emp.SalaryValue != nil && emp.SalaryValue.IsPositive() {
		return emp.SalaryValue
	}
	if emp.Profile == nil {
		return nil
	}
	switch mode {
	case employee.SalaryTypeMonthly:
		return emp.Profile.MonthlyBase
	case employee.SalaryTypeDaily:
		return emp.Profile.DailyRate
	case employee.SalaryTypeHourly:
		return emp.Profile.HourlyRate
	}
	return nil
}

func groupInsuranceSettings(profile *employee.SalaryProfile, defaultFee decimal.Decimal) (bool, decimal.Decimal) {
	enabled := true
	fee := decimal.Zero
	if profile != nil {
		if profile.GroupInsuranceEnabled != nil {
			enabled = *profile.GroupInsuranceEnabled
		}
		if profile.GroupInsuranceFee != nil && profile.GroupInsuranceFee.IsPositive() {
			fee = *profile.GroupInsuranceFee
		}
	}
	if enabled && !fee.IsPositive() {
		fee = defaultFee
	}
	return enabled, fee
}

func positiveLevel(level *int) *int {
	if level == nil || *level <= 0 {
		return nil
	}
	v := *level
	return &v
}
