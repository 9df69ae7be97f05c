package payroll

import (
	"context"

	"github.com/guardsite/payroll-backend-go/internal/domain/employee"
)

// ResultRepository persists calculation output. ReplaceForPeriod must be
// atomic delete-then-insert so concurrent recalculations of the same
// (year, month, category) leave at most one committed result set.
type ResultRepository interface {
	ReplaceForPeriod(ctx context.Context, year, month int, category employee.RegistrationType, rows []ResultRow) error
	ListForPeriod(ctx context.Context, year, month int, category employee.RegistrationType) ([]ResultRow, error)
}
