package postgres

import (
	"context"
	"fmt"

	"github.com/haguru/cookbook/internal/constants"
	"github.com/haguru/cookbook/internal/interfaces"
	"github.com/haguru/cookbook/internal/models"
	"github.com/haguru/cookbook/pkg/databases/postgres"
)

var categoriesSchema = []string{
	`CREATE TABLE IF NOT EXISTS ` + constants.CategoriesCollection + ` (
		id UUID PRIMARY KEY,
		category_name TEXT NOT NULL UNIQUE
	)`,
}

// PostgresCategoryRepository reads the categories table.
type PostgresCategoryRepository struct {
	dbClient *postgres.PostgresDatabaseClient
}

var _ interfaces.CategoryRepository = (*PostgresCategoryRepository)(nil)

func NewPostgresCategoryRepository(dbClient *postgres.PostgresDatabaseClient) (*PostgresCategoryRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &PostgresCategoryRepository{dbClient: dbClient}, nil
}

// ListCategories returns every category ordered by name.
func (r *PostgresCategoryRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.dbClient.Query(ctx,
		`SELECT id, category_name FROM `+constants.CategoriesCollection+` ORDER BY category_name ASC`)
	if err != nil {
		return nil, postgres.WrapError("list categories", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.CategoryName); err != nil {
			return nil, postgres.WrapError("scan category", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.WrapError("list categories", err)
	}
	return categories, nil
}

// EnsureIndices creates the categories table. Rows are seeded externally.
func (r *PostgresCategoryRepository) EnsureIndices(ctx context.Context) error {
	if err := r.dbClient.EnsureSchema(ctx, constants.CategoriesCollection, categoriesSchema); err != nil {
		return postgres.WrapError("ensure categories table", err)
	}
	return nil
}
