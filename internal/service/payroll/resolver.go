package payroll

import (
	"context"
	"errors"
	"strings"

	"github.com/guardsite/payroll-backend-go/internal/domain/employee"
)

// CrossRegistrationResolver resolves an employee name to a concrete record
// by trying registration types in priority order: the primary category
// first, then each fallback in the order supplied. First match wins; no
// aggregation across registrations.
type CrossRegistrationResolver struct {
	employees employee.EmployeeRepository
}

func NewCrossRegistrationResolver(employees employee.EmployeeRepository) *CrossRegistrationResolver {
	return &CrossRegistrationResolver{employees: employees}
}

// Resolve returns employee.ErrEmployeeNotFound when no registration type
// matches. Duplicate and invalid fallback categories are skipped.
func (r *CrossRegistrationResolver) Resolve(
	ctx context.Context,
	name string,
	primary employee.RegistrationType,
	fallbacks []employee.RegistrationType,
) (employee.Employee, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}

	seen := map[employee.RegistrationType]bool{}
	ordered := make([]employee.RegistrationType, 0, 1+len(fallbacks))
	for _, t := range append([]employee.RegistrationType{primary}, fallbacks...) {
		if t == "" || !t.Valid() || seen[t] {
			continue
		}
		seen[t] = true
		ordered = append(ordered, t)
	}

	for _, registration := range ordered {
		emp, err := r.employees.GetByNameAndRegistration(ctx, name, registration)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				continue
			}
			return employee.Employee{}, err
		}
		return emp, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}
