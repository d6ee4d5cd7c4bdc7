package interfaces

import (
	"context"

	"github.com/haguru/cookbook/internal/models"
)

// RecipeRepository stores recipe documents.
//
// Methods taking an id fail with apperrors.ErrMalformedIdentifier when the
// id does not parse to the store's id format.
type RecipeRepository interface {
	// ListAll returns every recipe, newest first.
	ListAll(ctx context.Context) ([]models.Recipe, error)
	// Search runs the store's full-text search and returns at most limit
	// recipes in relevance order.
	Search(ctx context.Context, query string, limit int64) ([]models.Recipe, error)
	// GetRecipeByID returns nil, nil when no recipe matches a well-formed id.
	GetRecipeByID(ctx context.Context, id string) (*models.Recipe, error)
	// IncrementViews atomically adds one to the views counter.
	IncrementViews(ctx context.Context, id string) error
	AddRecipe(ctx context.Context, recipe models.Recipe) (string, error)
	// ReplaceRecipe overwrites the whole document; fails with apperrors.ErrNotFound.
	ReplaceRecipe(ctx context.Context, id string, recipe models.Recipe) error
	// DeleteRecipe is a no-op for ids that do not exist.
	DeleteRecipe(ctx context.Context, id string) error
	EnsureIndices(ctx context.Context) error
}
