package insurance

import (
	"context"

	"github.com/guardsite/payroll-backend-go/internal/domain/insurance"
)

// Service implements insurance.BracketService on top of the latest bracket
// import: salary ranges are derived from the level list, never stored.
type Service struct {
	brackets insurance.BracketRepository
}

func NewService(brackets insurance.BracketRepository) *Service {
	return &Service{brackets: brackets}
}

func (s *Service) Ranges(ctx context.Context) ([]insurance.BracketRange, error) {
	imp, err := s.brackets.LatestImport(ctx)
	if err != nil {
		return nil, err
	}
	return insurance.RangesFromLevels(imp.Levels), nil
}

func (s *Service) LevelForSalary(ctx context.Context, salary int) (int, error) {
	ranges, err := s.Ranges(ctx)
	if err != nil {
		return 0, err
	}
	level, ok := insurance.SalaryToLevel(ranges, salary)
	if !ok {
		return 0, insurance.ErrNoBracketImport
	}
	return level, nil
}
