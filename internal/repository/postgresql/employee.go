package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/guardsite/payroll-backend-go/internal/domain/employee"
	"github.com/guardsite/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// GetByNameAndRegistration implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByNameAndRegistration(
	ctx context.Context,
	name string,
	registration employee.RegistrationType,
) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT e.id, e.name, e.registration_type, e.salary_type, e.salary_value,
			e.security_pay_mode, e.property_pay_mode, e.smith_pay_mode, e.lixiang_pay_mode,
			e.weekly_amount, e.property_salary, e.insured_salary_level, e.self_pension_enabled,
			e.enroll_date, e.cancel_date, e.created_at, e.updated_at,
			p.salary_type, p.monthly_base, p.daily_rate, p.hourly_rate,
			p.group_insurance_enabled, p.group_insurance_fee
		FROM employees e
		LEFT JOIN salary_profiles p ON p.employee_id = e.id
		WHERE e.name = $1 AND e.registration_type = $2 AND e.deleted_at IS NULL
		ORDER BY e.created_at
		LIMIT 1
	`

	var emp employee.Employee
	var profile employee.SalaryProfile
	var profileSalaryType *string
	err := q.QueryRow(ctx, query, name, registration).Scan(
		&emp.ID, &emp.Name, &emp.RegistrationType, &emp.SalaryType, &emp.SalaryValue,
		&emp.SecurityPayMode, &emp.PropertyPayMode, &emp.SmithPayMode, &emp.LixiangPayMode,
		&emp.WeeklyAmount, &emp.PropertySalary, &emp.InsuredSalaryLevel, &emp.SelfPensionEnabled,
		&emp.EnrollDate, &emp.CancelDate, &emp.CreatedAt, &emp.UpdatedAt,
		&profileSalaryType, &profile.MonthlyBase, &profile.DailyRate, &profile.HourlyRate,
		&profile.GroupInsuranceEnabled, &profile.GroupInsuranceFee,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %q (%s): %w", name, registration, err)
	}

	if profileSalaryType != nil {
		profile.SalaryType = employee.SalaryType(*profileSalaryType)
		emp.Profile = &profile
	}

	return emp, nil
}
