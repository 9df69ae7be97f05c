package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/guardsite/payroll-backend-go/internal/domain/insurance"
	"github.com/guardsite/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type bracketRepositoryImpl struct {
	db *database.DB
}

func NewBracketRepository(db *database.DB) insurance.BracketRepository {
	return &bracketRepositoryImpl{db: db}
}

// LatestImport implements insurance.BracketRepository.
func (b *bracketRepositoryImpl) LatestImport(ctx context.Context) (insurance.BracketImport, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		SELECT id, file_name, imported_at
		FROM insurance_bracket_imports
		ORDER BY imported_at DESC
		LIMIT 1
	`

	var imp insurance.BracketImport
	err := q.QueryRow(ctx, query).Scan(&imp.ID, &imp.FileName, &imp.ImportedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return insurance.BracketImport{}, insurance.ErrNoBracketImport
		}
		return insurance.BracketImport{}, fmt.Errorf("failed to get latest bracket import: %w", err)
	}

	levelsQuery := `
		SELECT insured_salary_level
		FROM insurance_brackets
		WHERE import_id = $1
		ORDER BY insured_salary_level
	`

	rows, err := q.Query(ctx, levelsQuery, imp.ID)
	if err != nil {
		return insurance.BracketImport{}, fmt.Errorf("failed to list bracket levels for import %s: %w", imp.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var level int
		if err := rows.Scan(&level); err != nil {
			return insurance.BracketImport{}, err
		}
		imp.Levels = append(imp.Levels, level)
	}
	if err = rows.Err(); err != nil {
		return insurance.BracketImport{}, err
	}

	return imp, nil
}

// BracketByLevel implements insurance.BracketRepository.
func (b *bracketRepositoryImpl) BracketByLevel(ctx context.Context, importID string, level int) (insurance.Bracket, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		SELECT id, import_id, insured_salary_level,
			labor_employer, labor_employee, health_employer, health_employee,
			occupational_accident, labor_pension, group_insurance
		FROM insurance_brackets
		WHERE import_id = $1 AND insured_salary_level = $2
		LIMIT 1
	`

	var br insurance.Bracket
	err := q.QueryRow(ctx, query, importID, level).Scan(
		&br.ID, &br.ImportID, &br.InsuredSalaryLevel,
		&br.LaborEmployer, &br.LaborEmployee, &br.HealthEmployer, &br.HealthEmployee,
		&br.OccupationalAccident, &br.LaborPension, &br.GroupInsurance,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return insurance.Bracket{}, insurance.ErrBracketNotFound
		}
		return insurance.Bracket{}, fmt.Errorf("failed to get bracket level %d: %w", level, err)
	}

	return br, nil
}
