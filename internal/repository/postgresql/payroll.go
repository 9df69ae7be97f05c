package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/guardsite/payroll-backend-go/internal/domain/employee"
	"github.com/guardsite/payroll-backend-go/internal/domain/payroll"
	"github.com/guardsite/payroll-backend-go/internal/pkg/database"
)

type payrollResultRepositoryImpl struct {
	db *database.DB
}

func NewPayrollResultRepository(db *database.DB) payroll.ResultRepository {
	return &payrollResultRepositoryImpl{db: db}
}

// ReplaceForPeriod implements payroll.ResultRepository. Delete and insert
// run in one transaction so a failed commit never leaves a half-replaced
// period behind.
func (p *payrollResultRepositoryImpl) ReplaceForPeriod(
	ctx context.Context,
	year, month int,
	category employee.RegistrationType,
	rows []payroll.ResultRow,
) error {
	return WithTransaction(ctx, p.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, p.db)

		deleteQuery := `
			DELETE FROM payroll_results
			WHERE year = $1 AND month = $2 AND category = $3
		`
		if _, err := q.Exec(txCtx, deleteQuery, year, month, category); err != nil {
			return fmt.Errorf("failed to delete payroll results for %d-%02d %s: %w", year, month, category, err)
		}

		insertQuery := `
			INSERT INTO payroll_results (
				id, year, month, category, site, employee, pay_type, total_hours,
				gross_salary, labor_insurance_employee, health_insurance_employee,
				group_insurance, self_pension, deductions_total, net_salary,
				status, source_registration_type, enroll_date,
				group_insurance_days, group_insurance_monthly_fee, created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8,
				$9, $10, $11, $12, $13, $14, $15,
				$16, $17, $18, $19, $20, NOW()
			)
		`
		for _, row := range rows {
			_, err := q.Exec(txCtx, insertQuery,
				uuid.NewString(), year, month, category,
				row.Site, row.Employee, row.PayType, row.TotalHours,
				row.GrossSalary, row.LaborInsuranceEmployee, row.HealthInsuranceEmployee,
				row.GroupInsurance, row.SelfPension, row.DeductionsTotal, row.NetSalary,
				row.StatusText, row.SourceRegistrationType, row.EnrollDate,
				row.GroupInsuranceDays, row.GroupInsuranceMonthlyFee,
			)
			if err != nil {
				return fmt.Errorf("failed to insert payroll result for %s/%s: %w", row.Site, row.Employee, err)
			}
		}

		return nil
	})
}

// ListForPeriod implements payroll.ResultRepository.
func (p *payrollResultRepositoryImpl) ListForPeriod(
	ctx context.Context,
	year, month int,
	category employee.RegistrationType,
) ([]payroll.ResultRow, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT site, employee, pay_type, total_hours,
			gross_salary, labor_insurance_employee, health_insurance_employee,
			group_insurance, self_pension, deductions_total, net_salary,
			status, source_registration_type, enroll_date,
			group_insurance_days, group_insurance_monthly_fee
		FROM payroll_results
		WHERE year = $1 AND month = $2 AND category = $3
		ORDER BY site, employee
	`

	dbRows, err := q.Query(ctx, query, year, month, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll results for %d-%02d %s: %w", year, month, category, err)
	}
	defer dbRows.Close()

	var out []payroll.ResultRow
	for dbRows.Next() {
		var row payroll.ResultRow
		err := dbRows.Scan(
			&row.Site, &row.Employee, &row.PayType, &row.TotalHours,
			&row.GrossSalary, &row.LaborInsuranceEmployee, &row.HealthInsuranceEmployee,
			&row.GroupInsurance, &row.SelfPension, &row.DeductionsTotal, &row.NetSalary,
			&row.StatusText, &row.SourceRegistrationType, &row.EnrollDate,
			&row.GroupInsuranceDays, &row.GroupInsuranceMonthlyFee,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err = dbRows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
