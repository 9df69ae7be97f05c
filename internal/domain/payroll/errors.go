package payroll

import (
	"errors"

	"github.com/guardsite/payroll-backend-go/internal/domain/employee"
)

var (
	ErrInvalidPeriod   = errors.New("invalid payroll period")
	ErrInvalidCategory = errors.New("unknown payroll category")
)

// CalcErrorType discriminates the recoverable per-entity problems collected
// during one calculation run.
type CalcErrorType string

const (
	CalcErrEmployeeNotFound    CalcErrorType = "employee_not_found"
	CalcErrMissingPayConfig    CalcErrorType = "missing_pay_config"
	CalcErrMissingInsuredLevel CalcErrorType = "missing_insured_level"
	CalcErrMissingBracket      CalcErrorType = "missing_bracket"
	CalcErrMissingEnrollDate   CalcErrorType = "missing_enroll_date"
	CalcErrSiteNotFound        CalcErrorType = "site_not_found"
	CalcErrValidation          CalcErrorType = "validation_error"
)

// CalcError is one structured entry in the calculation error list. These are
// values, not Go errors: the aggregator never aborts on a per-row problem,
// it collects and continues.
type CalcError struct {
	Type               CalcErrorType             `json:"type"`
	EmployeeName       string                    `json:"employee_name,omitempty"`
	SiteName           string                    `json:"site_name,omitempty"`
	InsuredSalaryLevel *int                      `json:"insured_salary_level,omitempty"`
	RequestedCategory  employee.RegistrationType `json:"requested_category,omitempty"`
	SourceCategory     employee.RegistrationType `json:"source_category,omitempty"`
	Message            string                    `json:"message"`
}
