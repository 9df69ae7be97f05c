package payroll

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/guardsite/payroll-backend-go/internal/domain/employee"
	"github.com/guardsite/payroll-backend-go/internal/domain/payroll"
	"github.com/guardsite/payroll-backend-go/internal/pkg/timesheet"
)

// Service implements payroll.PayrollService: spreadsheet in, result rows
// out, with an optional commit that replaces the stored rows for the period.
type Service struct {
	calculator *Calculator
	results    payroll.ResultRepository
	logger     *slog.Logger
}

func NewService(calculator *Calculator, results payroll.ResultRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		calculator: calculator,
		results:    results,
		logger:     logger,
	}
}

func (s *Service) CalculateFromFile(
	ctx context.Context,
	content []byte,
	filename string,
	req payroll.CalculateRequest,
) (payroll.CalculateResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.CalculateResponse{}, err
	}

	parsed, warnings, err := timesheet.Parse(content, filename, req.Year, req.Month)
	if err != nil {
		return payroll.CalculateResponse{}, err
	}

	records := make([]payroll.AttendanceRecord, 0, len(parsed))
	for _, r := range parsed {
		records = append(records, payroll.AttendanceRecord{
			Site:     r.Site,
			Employee: r.Employee,
			Date:     r.Date,
			Hours:    r.Hours,
		})
	}

	rows, calcErrs, trace, err := s.calculator.Calculate(ctx, records, req)
	if err != nil {
		return payroll.CalculateResponse{}, err
	}

	s.logger.Info("payroll calculated",
		"year", req.Year,
		"month", req.Month,
		"category", string(req.Category),
		"records", len(records),
		"rows", len(rows),
		"errors", len(calcErrs),
	)

	if req.Commit {
		if err := s.results.ReplaceForPeriod(ctx, req.Year, req.Month, req.Category, rows); err != nil {
			return payroll.CalculateResponse{}, fmt.Errorf("commit payroll results: %w", err)
		}
	}

	return payroll.CalculateResponse{
		Rows:     rows,
		Errors:   calcErrs,
		Warnings: warnings,
		Trace:    trace,
	}, nil
}

func (s *Service) Results(
	ctx context.Context,
	year, month int,
	category employee.RegistrationType,
) ([]payroll.ResultRow, error) {
	if err := (payroll.CalculateRequest{Year: year, Month: month, Category: category}).Validate(); err != nil {
		return nil, err
	}
	return s.results.ListForPeriod(ctx, year, month, category)
}
