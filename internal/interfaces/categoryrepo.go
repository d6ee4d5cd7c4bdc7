package interfaces

import (
	"context"

	"github.com/haguru/cookbook/internal/models"
)

// CategoryRepository reads the externally seeded categories.
type CategoryRepository interface {
	// ListCategories returns all categories sorted by name.
	ListCategories(ctx context.Context) ([]models.Category, error)
	EnsureIndices(ctx context.Context) error
}
