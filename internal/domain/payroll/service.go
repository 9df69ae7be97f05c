package payroll

import (
	"context"

	"github.com/guardsite/payroll-backend-go/internal/domain/employee"
)

// PayrollService is the upload-facing contract: parse a spreadsheet, run the
// engine, optionally commit.
type PayrollService interface {
	CalculateFromFile(ctx context.Context, content []byte, filename string, req CalculateRequest) (CalculateResponse, error)
	Results(ctx context.Context, year, month int, category employee.RegistrationType) ([]ResultRow, error)
}
