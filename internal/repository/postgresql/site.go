package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/guardsite/payroll-backend-go/internal/domain/site"
	"github.com/guardsite/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type siteRepositoryImpl struct {
	db *database.DB
}

func NewSiteRepository(db *database.DB) site.SiteRepository {
	return &siteRepositoryImpl{db: db}
}

// GetByName implements site.SiteRepository.
func (s *siteRepositoryImpl) GetByName(ctx context.Context, name string) (site.Site, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, name, address, created_at, updated_at
		FROM sites
		WHERE name = $1 AND deleted_at IS NULL
		LIMIT 1
	`

	var st site.Site
	err := q.QueryRow(ctx, query, name).Scan(&st.ID, &st.Name, &st.Address, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return site.Site{}, site.ErrSiteNotFound
		}
		return site.Site{}, fmt.Errorf("failed to get site %q: %w", name, err)
	}

	return st, nil
}
