package response

import (
	"errors"
	"net/http"

	"github.com/guardsite/payroll-backend-go/internal/domain/employee"
	"github.com/guardsite/payroll-backend-go/internal/domain/insurance"
	"github.com/guardsite/payroll-backend-go/internal/domain/payroll"
	"github.com/guardsite/payroll-backend-go/internal/domain/site"
	"github.com/guardsite/payroll-backend-go/internal/pkg/timesheet"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	switch {
	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrInvalidCategory):
		BadRequest(w, "Unknown payroll category", nil)
	case errors.Is(err, timesheet.ErrUnsupportedFormat):
		UnprocessableEntity(w, err.Error())

	// Lookup domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, site.ErrSiteNotFound):
		NotFound(w, "Site not found")
	case errors.Is(err, insurance.ErrNoBracketImport):
		NotFound(w, "No insurance bracket table imported")
	case errors.Is(err, insurance.ErrBracketNotFound):
		NotFound(w, "Insurance bracket level not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
