package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegistrationType is the legal corporate entity an employee is registered
// under for payroll. One natural person may hold several registrations
// sharing the same name.
type RegistrationType string

const (
	RegistrationSecurity RegistrationType = "security"
	RegistrationProperty RegistrationType = "property"
	RegistrationSmith    RegistrationType = "smith"
	RegistrationLixiang  RegistrationType = "lixiang"
	RegistrationCleaning RegistrationType = "cleaning"
)

// Valid reports whether t is one of the known registration types.
func (t RegistrationType) Valid() bool {
	switch t {
	case RegistrationSecurity, RegistrationProperty, RegistrationSmith,
		RegistrationLixiang, RegistrationCleaning:
		return true
	}
	return false
}

// SalaryType enum as stored on the employee record / salary profile.
type SalaryType string

const (
	SalaryTypeMonthly SalaryType = "monthly"
	SalaryTypeDaily   SalaryType = "daily"
	SalaryTypeHourly  SalaryType = "hourly"
)

// Employee is the canonical employee record as read from the store.
// Pay-mode fields are per payroll category; the pay-rate resolver picks the
// one matching the requested category.
type Employee struct {
	ID                 string
	Name               string
	RegistrationType   RegistrationType
	SalaryType         SalaryType
	SalaryValue        *decimal.Decimal
	SecurityPayMode    string
	PropertyPayMode    string
	SmithPayMode       string
	LixiangPayMode     string
	WeeklyAmount       *decimal.Decimal
	PropertySalary     *decimal.Decimal
	InsuredSalaryLevel *int
	SelfPensionEnabled bool
	EnrollDate         *time.Time
	CancelDate         *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined secondary profile; nil when the employee has none.
	Profile *SalaryProfile
}

// SalaryProfile is the secondary pay configuration consulted when primary
// employee fields are absent.
type SalaryProfile struct {
	SalaryType            SalaryType
	MonthlyBase           *decimal.Decimal
	DailyRate             *decimal.Decimal
	HourlyRate            *decimal.Decimal
	GroupInsuranceEnabled *bool
	GroupInsuranceFee     *decimal.Decimal
}
