package insurance

import "context"

// BracketService exposes the derived views of the latest bracket import.
type BracketService interface {
	Ranges(ctx context.Context) ([]BracketRange, error)
	LevelForSalary(ctx context.Context, salary int) (int, error)
}
