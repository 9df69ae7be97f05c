package employee

import "context"

// EmployeeRepository is the lookup boundary consumed by the payroll engine.
// GetByNameAndRegistration is an exact match on both fields, first result
// if multiple, and returns ErrEmployeeNotFound when there is none.
type EmployeeRepository interface {
	GetByNameAndRegistration(ctx context.Context, name string, registration RegistrationType) (Employee, error)
}
